// internal/store/search.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	stderrors "internmatch/internal/common/errors"
	"internmatch/internal/common/logger"
	"internmatch/internal/common/metrics"
	"internmatch/internal/models"
	"internmatch/internal/search"
)

// SearchStore executes posting filter queries against Elasticsearch.
type SearchStore struct {
	client   *elasticsearch.Client
	index    string
	pageSize int
	logger   logger.Logger
}

func NewSearchStore(client *elasticsearch.Client, index string, pageSize int, log logger.Logger) *SearchStore {
	if pageSize <= 0 {
		pageSize = search.DefaultPageSize
	}
	return &SearchStore{client: client, index: index, pageSize: pageSize, logger: log}
}

// searchResponse is the slice of the ES reply the executor needs.
type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source models.InternshipPosting `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// FindPostingsByFilter runs the structured query and returns one page of
// postings with pagination metadata. Deadline expiry maps to
// SEARCH_TIMEOUT, a missing index to INDEX_NOT_FOUND.
func (s *SearchStore) FindPostingsByFilter(ctx context.Context, filters *search.Filters) ([]models.InternshipPosting, search.Pagination, error) {
	start := time.Now()
	none := search.Pagination{}

	req, err := search.BuildSearchRequest(filters, s.index, s.pageSize)
	if err != nil {
		metrics.SearchQueries.WithLabelValues("error").Inc()
		return nil, none, stderrors.NewSearchQueryFailedError(err)
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		metrics.SearchQueries.WithLabelValues("error").Inc()
		if ctx.Err() == context.DeadlineExceeded {
			return nil, none, stderrors.NewSearchTimeoutError()
		}
		return nil, none, stderrors.NewSearchQueryFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		metrics.SearchQueries.WithLabelValues("error").Inc()
		if res.StatusCode == http.StatusNotFound {
			return nil, none, stderrors.NewIndexNotFoundError(s.index)
		}
		return nil, none, stderrors.NewSearchQueryFailedError(
			fmt.Errorf("search query failed: %s", res.String()))
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		metrics.SearchQueries.WithLabelValues("error").Inc()
		return nil, none, stderrors.NewSearchQueryFailedError(err)
	}

	postings := make([]models.InternshipPosting, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		postings = append(postings, hit.Source)
	}
	pagination := search.NewPagination(filters.Page, s.pageSize, parsed.Hits.Total.Value)

	metrics.SearchQueries.WithLabelValues("ok").Inc()
	s.logger.Debug("Posting search executed", map[string]interface{}{
		"totalCount": pagination.TotalCount,
		"page":       pagination.Page,
		"tookMs":     time.Since(start).Milliseconds(),
	})
	return postings, pagination, nil
}
