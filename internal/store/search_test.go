// internal/store/search_test.go
package store

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "internmatch/internal/common/errors"
	"internmatch/internal/common/logger"
	"internmatch/internal/search"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func createSearchStore(t *testing.T, status int, body string) *SearchStore {
	t.Helper()
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://elasticsearch:9200"},
		Transport: roundTripFunc(func(_ *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: status,
				Body:       io.NopCloser(strings.NewReader(body)),
				Header: http.Header{
					"X-Elastic-Product": []string{"Elasticsearch"},
					"Content-Type":      []string{"application/json"},
				},
			}, nil
		}),
	})
	require.NoError(t, err)
	return NewSearchStore(client, "internships", 10, logger.NewNoOpLogger())
}

func TestFindPostingsByFilter_Success(t *testing.T) {
	body := `{
		"hits": {
			"total": {"value": 23},
			"hits": [
				{"_source": {"id": "posting-1", "title": "Backend Intern", "isActive": true}},
				{"_source": {"id": "posting-2", "title": "Data Intern", "isActive": true}}
			]
		}
	}`
	s := createSearchStore(t, http.StatusOK, body)

	postings, pagination, err := s.FindPostingsByFilter(context.Background(),
		&search.Filters{FreeText: "intern", Page: 2})
	require.NoError(t, err)

	require.Len(t, postings, 2)
	assert.Equal(t, "posting-1", postings[0].ID)
	assert.Equal(t, 23, pagination.TotalCount)
	assert.Equal(t, 3, pagination.TotalPages)
	assert.Equal(t, 2, pagination.Page)
	assert.True(t, pagination.HasNext)
	assert.True(t, pagination.HasPrev)
}

func TestFindPostingsByFilter_IndexMissing(t *testing.T) {
	s := createSearchStore(t, http.StatusNotFound,
		`{"error":{"type":"index_not_found_exception"}}`)

	_, _, err := s.FindPostingsByFilter(context.Background(), &search.Filters{Page: 1})
	require.Error(t, err)

	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeIndexNotFound, stdErr.Code)
}

func TestFindPostingsByFilter_ServerError(t *testing.T) {
	s := createSearchStore(t, http.StatusInternalServerError,
		`{"error":{"type":"search_phase_execution_exception"}}`)

	_, _, err := s.FindPostingsByFilter(context.Background(), &search.Filters{Page: 1})
	require.Error(t, err)

	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeSearchQueryFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}
