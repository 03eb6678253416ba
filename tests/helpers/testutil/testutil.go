// Package testutil provides testing utilities and helpers for package tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/GriffinCanCode/bibkit/internal/domain/entry"
	"github.com/GriffinCanCode/bibkit/internal/providers/fulltext"
	"github.com/GriffinCanCode/bibkit/internal/shared/id"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDownloader is a mock implementation of fulltext.Downloader for testing.
type MockDownloader struct {
	mock.Mock
}

// Download mocks the Download method.
func (m *MockDownloader) Download(ctx context.Context, rawURL string) (string, error) {
	args := m.Called(ctx, rawURL)
	return args.String(0), args.Error(1)
}

// NewMockDownloader creates a mock downloader with no default behaviors;
// any unexpected download fails the test.
func NewMockDownloader(t *testing.T) *MockDownloader {
	t.Helper()
	m := new(MockDownloader)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// MockRecorder is a mock implementation of fulltext.Recorder for testing.
type MockRecorder struct {
	mock.Mock
}

// RecordFullText mocks the RecordFullText method.
func (m *MockRecorder) RecordFullText(provider string, outcome fulltext.Outcome, elapsed time.Duration) {
	m.Called(provider, outcome, elapsed)
}

// CreateTestEntry creates an entry with a fixed ID and the given fields.
func CreateTestEntry(t *testing.T, fields map[string]string) *entry.Entry {
	t.Helper()

	entryID, err := id.ParseEntryID("entry_01HZX3J9M8K4Q2V7T5R6N0P1A2")
	require.NoError(t, err)

	e := entry.FromFields(entryID, "article", fields)
	return e
}

// AssertFieldEquals is a helper to assert a field exists with the expected value.
func AssertFieldEquals(t *testing.T, rec entry.Record, field, expected string) {
	t.Helper()

	actual, ok := rec.Field(field)
	if !ok {
		t.Fatalf("Field %s not set", field)
	}
	if actual != expected {
		t.Fatalf("Field %s: expected %q, got %q", field, expected, actual)
	}
}

// AssertFieldAbsent is a helper to assert a field is not set.
func AssertFieldAbsent(t *testing.T, rec entry.Record, field string) {
	t.Helper()

	if value, ok := rec.Field(field); ok {
		t.Fatalf("Field %s: expected absent, got %q", field, value)
	}
}
