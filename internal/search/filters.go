// internal/search/filters.go
package search

import (
	"fmt"
	"strings"

	stderrors "internmatch/internal/common/errors"
	"internmatch/internal/common/validation"
	"internmatch/internal/models"
)

var validModes = map[string]bool{
	models.ModeRemote: true, models.ModeOnsite: true, models.ModeHybrid: true,
}

// filterSchema shape-checks the scalar filter fields before parsing.
// Skills and branches are polymorphic (csv string or array) and are
// handled by parseStringArray instead.
var filterSchema = validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"freeText": {Type: "string"},
		"minCGPA":  {Type: "number", Minimum: float64Ptr(0), Maximum: float64Ptr(10)},
		"location": {Type: "string"},
		"mode":     {Type: "string"},
		"page":     {Type: "number", Minimum: float64Ptr(1)},
	},
	AdditionalProperties: true,
}

func float64Ptr(v float64) *float64 { return &v }

// Filters is the validated, normalized search input. Zero values mean
// "not filtered on".
type Filters struct {
	FreeText string   `json:"freeText"`
	Skills   []string `json:"skills"`
	Branches []string `json:"branches"`
	// MinCGPACeiling keeps only postings whose minCGPA requirement is at
	// or below this value, so students can hide postings out of reach.
	MinCGPACeiling float64 `json:"minCGPA"`
	Location       string  `json:"location"`
	Mode           string  `json:"mode"`
	Page           int     `json:"page"`
}

// ParseFilters validates and defaults raw filter input. Every filter is
// optional; malformed shapes or out-of-range values fail with
// INVALID_FILTER_FORMAT rather than being silently dropped.
func ParseFilters(raw map[string]interface{}) (*Filters, error) {
	if raw == nil {
		raw = make(map[string]interface{})
	}

	if result := validation.ValidateInput(raw, filterSchema); !result.Valid {
		return nil, stderrors.NewInvalidFilterFormatError(
			strings.Join(result.GetErrorMessages(), "; "))
	}

	parsed := &Filters{
		Skills:   []string{},
		Branches: []string{},
		Page:     1,
	}

	if freeTextRaw, ok := raw["freeText"]; ok {
		if s, ok := freeTextRaw.(string); ok {
			parsed.FreeText = strings.TrimSpace(s)
		}
	}

	if skillsRaw, ok := raw["skills"]; ok {
		skills, err := parseStringArray("skills", skillsRaw)
		if err != nil {
			return nil, err
		}
		parsed.Skills = skills
	}

	if branchesRaw, ok := raw["branches"]; ok {
		branches, err := parseStringArray("branches", branchesRaw)
		if err != nil {
			return nil, err
		}
		parsed.Branches = branches
	}

	if cgpaRaw, ok := raw["minCGPA"]; ok {
		cgpa, err := parseNumber(cgpaRaw)
		if err != nil {
			return nil, stderrors.NewInvalidFilterFormatError(
				fmt.Sprintf("minCGPA: %v", err))
		}
		parsed.MinCGPACeiling = cgpa
	}

	if locationRaw, ok := raw["location"]; ok {
		if s, ok := locationRaw.(string); ok {
			parsed.Location = strings.TrimSpace(s)
		}
	}

	if modeRaw, ok := raw["mode"]; ok {
		if s, ok := modeRaw.(string); ok && s != "" {
			mode := strings.ToLower(strings.TrimSpace(s))
			if !validModes[mode] {
				return nil, stderrors.NewInvalidFilterFormatError(
					fmt.Sprintf("mode: unknown value '%s'", s))
			}
			parsed.Mode = mode
		}
	}

	if pageRaw, ok := raw["page"]; ok {
		page, err := parseNumber(pageRaw)
		if err != nil {
			return nil, stderrors.NewInvalidFilterFormatError(
				fmt.Sprintf("page: %v", err))
		}
		if int(page) >= 1 {
			parsed.Page = int(page)
		}
	}

	return parsed, nil
}

// parseStringArray accepts a comma-separated string, []interface{}, or
// []string and returns trimmed, deduplicated values.
func parseStringArray(field string, raw interface{}) ([]string, error) {
	result := []string{}
	if raw == nil {
		return result, nil
	}

	seen := make(map[string]bool)
	add := func(s string) {
		trimmed := strings.TrimSpace(s)
		if trimmed != "" && !seen[trimmed] {
			result = append(result, trimmed)
			seen[trimmed] = true
		}
	}

	switch v := raw.(type) {
	case string:
		for _, part := range strings.Split(v, ",") {
			add(part)
		}
	case []interface{}:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, stderrors.NewInvalidFilterFormatError(
					fmt.Sprintf("%s: expected string entries, got %T", field, item))
			}
			add(s)
		}
	case []string:
		for _, s := range v {
			add(s)
		}
	default:
		return nil, stderrors.NewInvalidFilterFormatError(
			fmt.Sprintf("%s: expected string or array, got %T", field, raw))
	}
	return result, nil
}

func parseNumber(raw interface{}) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("expected number, got %T", raw)
	}
}
