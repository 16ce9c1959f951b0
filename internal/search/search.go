// Package search holds the listing helpers shared by every table view:
// search term normalisation, pagination, sorting and autocomplete ranking.
package search

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
)

var (
	ErrInvalidPage = errors.New("invalid pagination parameters")
	ErrInvalidSort = errors.New("invalid sort field")
)

// DefaultSuggestLimit caps autocomplete results when no limit is given.
const DefaultSuggestLimit = 10

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Normalize trims, lowercases and collapses whitespace in a search term.
func Normalize(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}

// ContainsPattern returns an ILIKE pattern matching q anywhere.
func ContainsPattern(q string) string {
	return "%" + likeEscaper.Replace(Normalize(q)) + "%"
}

// PrefixPattern returns an ILIKE pattern matching values starting with q.
func PrefixPattern(q string) string {
	return likeEscaper.Replace(Normalize(q)) + "%"
}

// Page is a resolved pagination window.
type Page struct {
	Page   int
	Limit  int
	Offset int
}

// ParsePage reads the page and limit query parameters. Missing values fall
// back to page 1 and defaultLimit; limit is clamped to [1, maxLimit].
func ParsePage(values url.Values, defaultLimit, maxLimit int) (Page, error) {
	p := Page{Page: 1, Limit: defaultLimit}

	if raw := values.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Page{}, fmt.Errorf("%w: page %q", ErrInvalidPage, raw)
		}
		if n > 1 {
			p.Page = n
		}
	}

	if raw := values.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Page{}, fmt.Errorf("%w: limit %q", ErrInvalidPage, raw)
		}
		p.Limit = n
	}

	if p.Limit < 1 {
		p.Limit = 1
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}

	p.Offset = (p.Page - 1) * p.Limit
	return p, nil
}

// ParseSort resolves a sort parameter like "-price" against the allowed
// fields. An empty value returns the fallback field ascending.
func ParseSort(raw string, allowed []string, fallback string) (string, bool, error) {
	if raw == "" {
		return fallback, false, nil
	}

	desc := strings.HasPrefix(raw, "-")
	field := strings.TrimPrefix(raw, "-")
	for _, a := range allowed {
		if a == field {
			return field, desc, nil
		}
	}
	return "", false, fmt.Errorf("%w: %q", ErrInvalidSort, raw)
}

// RankSuggestions orders candidates for an autocomplete box: labels that
// start with q come first, then labels that merely contain it. Candidates
// matching neither are dropped. Order within each group is preserved.
func RankSuggestions(q string, candidates []models.Suggestion, limit int) []models.Suggestion {
	q = Normalize(q)
	if q == "" {
		return []models.Suggestion{}
	}
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}

	rank := func(s models.Suggestion) int {
		label := Normalize(s.Label)
		switch {
		case strings.HasPrefix(label, q):
			return 0
		case strings.Contains(label, q):
			return 1
		}
		return 2
	}

	matched := make([]models.Suggestion, 0, len(candidates))
	for _, c := range candidates {
		if rank(c) < 2 {
			matched = append(matched, c)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return rank(matched[i]) < rank(matched[j])
	})

	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

// ParseLimit reads an optional positive integer parameter.
func ParseLimit(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: limit %q", ErrInvalidPage, raw)
	}
	return n, nil
}
