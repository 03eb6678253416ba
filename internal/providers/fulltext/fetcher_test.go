package fulltext_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/GriffinCanCode/bibkit/internal/domain/entry"
	"github.com/GriffinCanCode/bibkit/internal/infrastructure/config"
	"github.com/GriffinCanCode/bibkit/internal/providers/fulltext"
	"github.com/GriffinCanCode/bibkit/internal/providers/http/client"
	"github.com/GriffinCanCode/bibkit/tests/helpers/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	ieeeStampPage = `<html><frameset><frame src="http://ieeexplore.ieee.org/ielx5/5/16739/00771073.pdf?tp=&amp;arnumber=771073&amp;isnumber=16739" frameborder=0 /></frameset></html>`
	ieeePDF       = "http://ieeexplore.ieee.org/ielx5/5/16739/00771073.pdf?tp=&arnumber=771073&isnumber=16739"
	ieeeLanding   = "https://ieeexplore.ieee.org/stamp/stamp.jsp?tp=&arnumber=771073"
)

func TestPatternFetcherRejectsNilEntry(t *testing.T) {
	downloader := testutil.NewMockDownloader(t)
	fetcher := fulltext.NewIEEE(downloader, nil)

	_, err := fetcher.FindFullText(context.Background(), nil)
	assert.ErrorIs(t, err, fulltext.ErrInvalidArgument)

	var typedNil *entry.Entry
	_, err = fetcher.FindFullText(context.Background(), typedNil)
	assert.ErrorIs(t, err, fulltext.ErrInvalidArgument)

	downloader.AssertNotCalled(t, "Download", mock.Anything, mock.Anything)
}

func TestIEEEDirectLink(t *testing.T) {
	downloader := testutil.NewMockDownloader(t)
	downloader.On("Download", mock.Anything, ieeeLanding).Return(ieeeStampPage, nil).Once()

	e := testutil.CreateTestEntry(t, map[string]string{
		"url": "http://ieeexplore.ieee.org/stamp/stamp.jsp?tp=&arnumber=771073",
		"doi": "10.1109/5.771073",
	})

	u, err := fulltext.NewIEEE(downloader, nil).FindFullText(context.Background(), e)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, ieeePDF, u.String())

	// A direct hit never resolves the DOI
	downloader.AssertNotCalled(t, "Download", mock.Anything, "https://doi.org/10.1109/5.771073")
	downloader.AssertNumberOfCalls(t, "Download", 1)
}

func TestIEEEDirectLinkWithoutScheme(t *testing.T) {
	downloader := testutil.NewMockDownloader(t)
	downloader.On("Download", mock.Anything, ieeeLanding).Return(ieeeStampPage, nil).Once()

	e := testutil.CreateTestEntry(t, map[string]string{
		"url": "ieeexplore.ieee.org/stamp/stamp.jsp?tp=&arnumber=771073",
	})

	u, err := fulltext.NewIEEE(downloader, nil).FindFullText(context.Background(), e)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, ieeePDF, u.String())
}

func TestIEEEDirectLinkOnOtherHostIsIgnored(t *testing.T) {
	downloader := testutil.NewMockDownloader(t)

	e := testutil.CreateTestEntry(t, map[string]string{
		"url": "https://mirror.example.org/stamp/stamp.jsp?tp=&arnumber=771073",
	})

	u, err := fulltext.NewIEEE(downloader, nil).FindFullText(context.Background(), e)
	require.NoError(t, err)
	assert.Nil(t, u)
	downloader.AssertNumberOfCalls(t, "Download", 0)
}

func TestIEEEResolvesDOI(t *testing.T) {
	downloader := testutil.NewMockDownloader(t)
	downloader.On("Download", mock.Anything, "https://doi.org/10.1109/5.771073").
		Return(`<a href="/stamp/stamp.jsp?tp=&arnumber=771073">PDF</a>`, nil).Once()
	downloader.On("Download", mock.Anything, ieeeLanding).Return(ieeeStampPage, nil).Once()

	e := testutil.CreateTestEntry(t, map[string]string{"doi": "doi:10.1109/5.771073"})

	u, err := fulltext.NewIEEE(downloader, nil).FindFullText(context.Background(), e)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, ieeePDF, u.String())
	downloader.AssertNumberOfCalls(t, "Download", 2)
}

func TestIEEEDocumentOnResolvedPage(t *testing.T) {
	downloader := testutil.NewMockDownloader(t)
	downloader.On("Download", mock.Anything, "https://doi.org/10.1109/5.771073").
		Return(ieeeStampPage, nil).Once()

	e := testutil.CreateTestEntry(t, map[string]string{"doi": "10.1109/5.771073"})

	u, err := fulltext.NewIEEE(downloader, nil).FindFullText(context.Background(), e)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, ieeePDF, u.String())
	downloader.AssertNumberOfCalls(t, "Download", 1)
}

func TestIEEENotFound(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
	}{
		{name: "no url or doi", fields: map[string]string{"title": "Nothing to go on"}},
		{name: "foreign doi", fields: map[string]string{"doi": "10.1016/j.jrmge.2015.08.004"}},
		{name: "malformed doi", fields: map[string]string{"doi": "not a doi"}},
		{name: "url without stamp path", fields: map[string]string{"url": "https://ieeexplore.ieee.org/document/771073"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			downloader := testutil.NewMockDownloader(t)
			e := testutil.CreateTestEntry(t, tt.fields)

			u, err := fulltext.NewIEEE(downloader, nil).FindFullText(context.Background(), e)
			require.NoError(t, err)
			assert.Nil(t, u)
			downloader.AssertNumberOfCalls(t, "Download", 0)
		})
	}
}

func TestIEEELandingPageWithoutDocument(t *testing.T) {
	downloader := testutil.NewMockDownloader(t)
	downloader.On("Download", mock.Anything, ieeeLanding).Return("<html>sign in</html>", nil).Once()

	e := testutil.CreateTestEntry(t, map[string]string{
		"url": "https://ieeexplore.ieee.org/stamp/stamp.jsp?tp=&arnumber=771073",
	})

	u, err := fulltext.NewIEEE(downloader, nil).FindFullText(context.Background(), e)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestIEEEResolvedPageWithoutLinks(t *testing.T) {
	downloader := testutil.NewMockDownloader(t)
	downloader.On("Download", mock.Anything, "https://doi.org/10.1109/5.771073").
		Return("<html>nothing</html>", nil).Once()

	e := testutil.CreateTestEntry(t, map[string]string{"doi": "10.1109/5.771073"})

	u, err := fulltext.NewIEEE(downloader, nil).FindFullText(context.Background(), e)
	require.NoError(t, err)
	assert.Nil(t, u)
	downloader.AssertNumberOfCalls(t, "Download", 1)
}

func TestTransportErrorsPropagate(t *testing.T) {
	errIO := errors.New("connection reset")

	t.Run("resolution", func(t *testing.T) {
		downloader := testutil.NewMockDownloader(t)
		downloader.On("Download", mock.Anything, "https://doi.org/10.1109/5.771073").Return("", errIO).Once()

		e := testutil.CreateTestEntry(t, map[string]string{"doi": "10.1109/5.771073"})

		u, err := fulltext.NewIEEE(downloader, nil).FindFullText(context.Background(), e)
		assert.ErrorIs(t, err, errIO)
		assert.Nil(t, u)
	})

	t.Run("landing page", func(t *testing.T) {
		downloader := testutil.NewMockDownloader(t)
		downloader.On("Download", mock.Anything, ieeeLanding).Return("", errIO).Once()

		e := testutil.CreateTestEntry(t, map[string]string{
			"url": "https://ieeexplore.ieee.org/stamp/stamp.jsp?tp=&arnumber=771073",
		})

		u, err := fulltext.NewIEEE(downloader, nil).FindFullText(context.Background(), e)
		assert.ErrorIs(t, err, errIO)
		assert.Nil(t, u)
	})
}

func TestScienceDirectResolvesDOI(t *testing.T) {
	page := `<div class="PdfDownloadButton"><a href="/science/article/pii/S1674775515001079/pdfft?md5=2b19b19a387cffbae237ca6a987279df&amp;pid=1-s2.0-S1674775515001079-main.pdf" target="_blank">Download PDF</a></div>`

	downloader := testutil.NewMockDownloader(t)
	downloader.On("Download", mock.Anything, "https://doi.org/10.1016/j.jrmge.2015.08.004").Return(page, nil).Once()

	e := testutil.CreateTestEntry(t, map[string]string{"doi": "10.1016/j.jrmge.2015.08.004"})

	u, err := fulltext.NewScienceDirect(downloader, nil).FindFullText(context.Background(), e)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t,
		"https://www.sciencedirect.com/science/article/pii/S1674775515001079/pdfft?md5=2b19b19a387cffbae237ca6a987279df&pid=1-s2.0-S1674775515001079-main.pdf",
		u.String())
}

func TestScienceDirectDirectLink(t *testing.T) {
	page := `<a href="https://www.sciencedirect.com/science/article/pii/S1674775515001079/pdfft?pid=main.pdf">PDF</a>`

	downloader := testutil.NewMockDownloader(t)
	downloader.On("Download", mock.Anything, "https://www.sciencedirect.com/science/article/pii/S1674775515001079").
		Return(page, nil).Once()

	e := testutil.CreateTestEntry(t, map[string]string{
		"url": "http://sciencedirect.com/science/article/pii/S1674775515001079",
	})

	u, err := fulltext.NewScienceDirect(downloader, nil).FindFullText(context.Background(), e)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "https://www.sciencedirect.com/science/article/pii/S1674775515001079/pdfft?pid=main.pdf", u.String())
}

func TestScienceDirectUnknownArticle(t *testing.T) {
	downloader := testutil.NewMockDownloader(t)
	downloader.On("Download", mock.Anything, "https://doi.org/10.1016/j.aasri.2014.0559.002").
		Return("<html>DOI Not Found</html>", nil).Once()

	e := testutil.CreateTestEntry(t, map[string]string{"doi": "10.1016/j.aasri.2014.0559.002"})

	u, err := fulltext.NewScienceDirect(downloader, nil).FindFullText(context.Background(), e)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUnregisteredDOIIsNotFound(t *testing.T) {
	const unregistered = "https://doi.org/10.1016/j.aasri.2014.0559.002"

	downloader := testutil.NewMockDownloader(t)
	downloader.On("Download", mock.Anything, unregistered).
		Return("", &client.StatusError{URL: unregistered, StatusCode: http.StatusNotFound, Status: "404 Not Found"}).
		Once()

	e := testutil.CreateTestEntry(t, map[string]string{"doi": "10.1016/j.aasri.2014.0559.002"})

	u, err := fulltext.NewScienceDirect(downloader, nil).FindFullText(context.Background(), e)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestMissingLandingPageIsNotFound(t *testing.T) {
	downloader := testutil.NewMockDownloader(t)
	downloader.On("Download", mock.Anything, ieeeLanding).
		Return("", &client.StatusError{URL: ieeeLanding, StatusCode: http.StatusGone, Status: "410 Gone"}).
		Once()

	e := testutil.CreateTestEntry(t, map[string]string{
		"url": "https://ieeexplore.ieee.org/stamp/stamp.jsp?tp=&arnumber=771073",
	})

	u, err := fulltext.NewIEEE(downloader, nil).FindFullText(context.Background(), e)
	require.NoError(t, err)
	assert.Nil(t, u)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestUnregisteredDOIThroughHTTPClient(t *testing.T) {
	c := client.NewClient(config.Default().HTTPClient, nil)
	c.Resty.SetTransport(roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Status:     "404 Not Found",
			Header:     http.Header{"Content-Type": []string{"text/html"}},
			Body:       io.NopCloser(strings.NewReader("<html>DOI Not Found</html>")),
			Request:    r,
		}, nil
	}))

	e := testutil.CreateTestEntry(t, map[string]string{"doi": "10.1016/j.aasri.2014.0559.002"})

	u, err := fulltext.NewScienceDirect(c, nil).FindFullText(context.Background(), e)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestSpringerDirectLink(t *testing.T) {
	downloader := testutil.NewMockDownloader(t)
	downloader.On("Download", mock.Anything, "https://link.springer.com/article/10.1007/s00453-015-0093-9").
		Return(`<a class="c-pdf-download__link" href="/content/pdf/10.1007/s00453-015-0093-9.pdf">Download PDF</a>`, nil).Once()

	e := testutil.CreateTestEntry(t, map[string]string{
		"url": "https://link.springer.com/article/10.1007/s00453-015-0093-9",
	})

	u, err := fulltext.NewSpringer(downloader, nil).FindFullText(context.Background(), e)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "https://link.springer.com/content/pdf/10.1007/s00453-015-0093-9.pdf", u.String())
}

func TestNewPatternFetcherRejectsRelativeBase(t *testing.T) {
	assert.Panics(t, func() {
		fulltext.NewPatternFetcher(fulltext.Provider{Name: "broken", BaseURL: "/relative"}, nil, nil)
	})
}
