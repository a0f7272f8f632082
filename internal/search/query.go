// internal/search/query.go
package search

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var ErrMissingIndex = errors.New("index name is required")

// DefaultPageSize is the number of postings per result page.
const DefaultPageSize = 10

// BuildQuery translates validated filters into an Elasticsearch bool
// query. Every provided filter is conjunctive; inactive postings are
// always excluded.
func BuildQuery(f *Filters) map[string]interface{} {
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if f.FreeText != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  f.FreeText,
				"fields": []string{"title^3", "description^2"},
				"type":   "best_fields",
			},
		})
	}

	if len(f.Skills) > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"terms": map[string]interface{}{"requiredSkills": f.Skills},
		})
	}

	if len(f.Branches) > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"terms": map[string]interface{}{"branchPreference": f.Branches},
		})
	}

	if f.MinCGPACeiling > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"minCGPA": map[string]interface{}{"lte": f.MinCGPACeiling},
			},
		})
	}

	if f.Location != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"match": map[string]interface{}{"location": f.Location},
		})
	}

	if f.Mode != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"mode": f.Mode},
		})
	}

	// Only live postings are searchable.
	filterClauses = append(filterClauses, map[string]interface{}{
		"term": map[string]interface{}{"isActive": true},
	})

	if len(mustClauses) == 0 {
		mustClauses = append(mustClauses, map[string]interface{}{
			"match_all": map[string]interface{}{},
		})
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must":   mustClauses,
				"filter": filterClauses,
			},
		},
	}
}

// BuildSearchRequest wraps the query into a paginated search request.
func BuildSearchRequest(f *Filters, index string, pageSize int) (*esapi.SearchRequest, error) {
	if index == "" {
		return nil, ErrMissingIndex
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	page := f.Page
	if page < 1 {
		page = 1
	}

	body, _ := json.Marshal(BuildQuery(f))
	from := (page - 1) * pageSize
	size := pageSize

	return &esapi.SearchRequest{
		Index:          []string{index},
		Body:           strings.NewReader(string(body)),
		From:           &from,
		Size:           &size,
		TrackTotalHits: true,
	}, nil
}

// Pagination describes one page of search results.
type Pagination struct {
	Page       int  `json:"page"`
	TotalPages int  `json:"totalPages"`
	TotalCount int  `json:"totalCount"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// NewPagination derives page metadata from a total hit count.
func NewPagination(page, pageSize, totalCount int) Pagination {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	totalPages := (totalCount + pageSize - 1) / pageSize

	return Pagination{
		Page:       page,
		TotalPages: totalPages,
		TotalCount: totalCount,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
