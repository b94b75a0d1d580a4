package server

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedsift/pkg/domain"
	"github.com/umputun/feedsift/pkg/embed"
	"github.com/umputun/feedsift/pkg/rank"
	"github.com/umputun/feedsift/server/mocks"
)

func getBody(t *testing.T, url string) (string, *http.Response) {
	resp, err := http.Get(url) //nolint:gosec // test url
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body), resp
}

func TestServer_RSS(t *testing.T) {
	ingester := &mocks.IngesterMock{
		GetFunc: func(_ context.Context, _ string, _ []string) *domain.FetchResult { return testFetchResult(2) },
	}
	ranker := passthroughRanker()
	ts := newTestServer(t, testConfigMock(), ingester, ranker, &mocks.DeduperMock{})

	body, resp := getBody(t, ts.URL+"/api/v1/rss/astronomy")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/rss+xml; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, body, "<title>FeedSift - astronomy</title>")
	assert.Contains(t, body, "article 0")

	require.Len(t, ranker.RankCalls(), 1)
	assert.Equal(t, rank.SortByRelevance, ranker.RankCalls()[0].Mode)
	assert.Equal(t, "space news", ranker.RankCalls()[0].Query)
}

func TestServer_RSSDefaultCategory(t *testing.T) {
	ingester := &mocks.IngesterMock{
		GetFunc: func(_ context.Context, _ string, _ []string) *domain.FetchResult { return testFetchResult(1) },
	}
	ts := newTestServer(t, testConfigMock(), ingester, passthroughRanker(), &mocks.DeduperMock{})

	body, resp := getBody(t, ts.URL+"/api/v1/rss")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "FeedSift - astronomy")
}

func TestServer_RSSUnknownCategory(t *testing.T) {
	ts := newTestServer(t, testConfigMock(), &mocks.IngesterMock{}, passthroughRanker(), &mocks.DeduperMock{})
	_, resp := getBody(t, ts.URL+"/api/v1/rss/nonsense")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_RSSDegradedFallsBackToDate(t *testing.T) {
	ingester := &mocks.IngesterMock{
		GetFunc: func(_ context.Context, _ string, _ []string) *domain.FetchResult { return testFetchResult(1) },
	}
	ranker := &mocks.RankerMock{
		RankFunc: func(_ context.Context, _ string, articles []domain.Article, mode rank.SortMode) ([]domain.Article, error) {
			if mode == rank.SortByRelevance {
				return nil, embed.ErrEmbeddingUnavailable
			}
			return articles, nil
		},
	}
	ts := newTestServer(t, testConfigMock(), ingester, ranker, &mocks.DeduperMock{})

	_, resp := getBody(t, ts.URL+"/api/v1/rss/astronomy")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, ranker.RankCalls(), 2)
	assert.Equal(t, rank.SortByDate, ranker.RankCalls()[1].Mode)
}

func TestServer_OPML(t *testing.T) {
	ts := newTestServer(t, testConfigMock(), &mocks.IngesterMock{}, passthroughRanker(), &mocks.DeduperMock{})

	body, resp := getBody(t, ts.URL+"/api/v1/opml")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/x-opml; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, body, `xmlUrl="https://example.com/astro"`)
	assert.Contains(t, body, `xmlUrl="https://example.com/fin"`)
}
