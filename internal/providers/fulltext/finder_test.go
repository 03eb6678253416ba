package fulltext_test

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/GriffinCanCode/bibkit/internal/domain/entry"
	"github.com/GriffinCanCode/bibkit/internal/providers/fulltext"
	"github.com/GriffinCanCode/bibkit/tests/helpers/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	name  string
	found string
	err   error
	calls int
}

func (s *stubFetcher) Name() string { return s.name }

func (s *stubFetcher) FindFullText(_ context.Context, _ entry.Record) (*url.URL, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.found == "" {
		return nil, nil
	}
	return url.Parse(s.found)
}

func TestFinderFirstFoundWins(t *testing.T) {
	first := &stubFetcher{name: "first"}
	second := &stubFetcher{name: "second", found: "https://a.example/doc.pdf"}
	third := &stubFetcher{name: "third", found: "https://b.example/doc.pdf"}

	finder := fulltext.NewFinder(nil, first, second, third)
	e := testutil.CreateTestEntry(t, nil)

	u, err := finder.FindFullText(context.Background(), e)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "https://a.example/doc.pdf", u.String())
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
	assert.Equal(t, 0, third.calls)
}

func TestFinderErrorsDoNotStopLaterFetchers(t *testing.T) {
	failing := &stubFetcher{name: "failing", err: errors.New("timeout")}
	working := &stubFetcher{name: "working", found: "https://a.example/doc.pdf"}

	u, err := fulltext.NewFinder(nil, failing, working).FindFullText(context.Background(), testutil.CreateTestEntry(t, nil))
	require.NoError(t, err)
	require.NotNil(t, u)
}

func TestFinderJoinsErrorsWhenNothingFound(t *testing.T) {
	errA := errors.New("a failed")
	errB := errors.New("b failed")

	finder := fulltext.NewFinder(nil,
		&stubFetcher{name: "a", err: errA},
		&stubFetcher{name: "miss"},
		&stubFetcher{name: "b", err: errB},
	)

	u, err := finder.FindFullText(context.Background(), testutil.CreateTestEntry(t, nil))
	assert.Nil(t, u)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
}

func TestFinderNotFound(t *testing.T) {
	finder := fulltext.NewFinder(nil, &stubFetcher{name: "a"}, &stubFetcher{name: "b"})

	u, err := finder.FindFullText(context.Background(), testutil.CreateTestEntry(t, nil))
	assert.NoError(t, err)
	assert.Nil(t, u)
}

func TestFinderRejectsNilEntry(t *testing.T) {
	stub := &stubFetcher{name: "a"}

	_, err := fulltext.NewFinder(nil, stub).FindFullText(context.Background(), nil)
	assert.ErrorIs(t, err, fulltext.ErrInvalidArgument)
	assert.Equal(t, 0, stub.calls)
}

func TestFinderStopsOnCancelledContext(t *testing.T) {
	stub := &stubFetcher{name: "a"}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fulltext.NewFinder(nil, stub).FindFullText(ctx, testutil.CreateTestEntry(t, nil))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, stub.calls)
}

func TestFinderRecordsOutcomes(t *testing.T) {
	recorder := new(testutil.MockRecorder)
	recorder.On("RecordFullText", "failing", fulltext.OutcomeError, mock.Anything).Once()
	recorder.On("RecordFullText", "miss", fulltext.OutcomeNotFound, mock.Anything).Once()
	recorder.On("RecordFullText", "hit", fulltext.OutcomeFound, mock.Anything).Once()

	finder := fulltext.NewFinder(nil,
		&stubFetcher{name: "failing", err: errors.New("boom")},
		&stubFetcher{name: "miss"},
		&stubFetcher{name: "hit", found: "https://a.example/doc.pdf"},
	).WithRecorder(recorder)

	_, err := finder.FindFullText(context.Background(), testutil.CreateTestEntry(t, nil))
	require.NoError(t, err)
	recorder.AssertExpectations(t)
}

func TestDefaultFetchersOrder(t *testing.T) {
	finder := fulltext.NewFinder(nil, fulltext.DefaultFetchers(testutil.NewMockDownloader(t), nil)...)
	assert.Equal(t, []string{"ieee", "sciencedirect", "springer"}, finder.Fetchers())
}

func TestFinderOverProviders(t *testing.T) {
	downloader := testutil.NewMockDownloader(t)
	downloader.On("Download", mock.Anything, "https://doi.org/10.1007/s00453-015-0093-9").
		Return(`<a href="https://link.springer.com/content/pdf/10.1007/s00453-015-0093-9.pdf">PDF</a>`, nil).Once()

	finder := fulltext.NewFinder(nil, fulltext.DefaultFetchers(downloader, nil)...)
	e := testutil.CreateTestEntry(t, map[string]string{"doi": "https://doi.org/10.1007/s00453-015-0093-9"})

	u, err := finder.FindFullText(context.Background(), e)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "https://link.springer.com/content/pdf/10.1007/s00453-015-0093-9.pdf", u.String())
	downloader.AssertNumberOfCalls(t, "Download", 1)
}
