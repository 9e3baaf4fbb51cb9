package history

import (
	"fmt"
	"strings"

	"github.com/opticode-ai/opticode/internal/domain"
)

// Filter selects a subset of the cached records. The set is closed.
type Filter string

const (
	FilterAll          Filter = "all"
	FilterStarred      Filter = "starred"
	FilterLevel1       Filter = "level1"
	FilterLevel2       Filter = "level2"
	FilterAnalysisOnly Filter = "analysis"
)

// ParseFilter validates a filter name from user input.
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case FilterAll, FilterStarred, FilterLevel1, FilterLevel2, FilterAnalysisOnly:
		return Filter(s), nil
	}
	return "", fmt.Errorf("unknown filter %q (expected all, starred, level1, level2 or analysis)", s)
}

// Projector derives the display list from the cache as a pure function of
// (cache contents, filter, query). The result is memoized and re-derived
// only when one of the three inputs changes; the cache itself is never
// mutated.
type Projector struct {
	cache *Cache

	memo       []*domain.Session
	memoGen    uint64
	memoFilter Filter
	memoQuery  string
	memoValid  bool
}

// NewProjector creates a projector over the given cache.
func NewProjector(cache *Cache) *Projector {
	return &Projector{cache: cache}
}

// Project returns the records passing both the filter and the search query,
// in cache order (newest first). The query matches case-insensitively as a
// substring of the display name, either code payload, or any change
// description; an empty query matches everything.
func (p *Projector) Project(filter Filter, query string) []*domain.Session {
	if p.memoValid && p.memoGen == p.cache.Generation() &&
		p.memoFilter == filter && p.memoQuery == query {
		return p.memo
	}

	q := strings.ToLower(strings.TrimSpace(query))

	var out []*domain.Session
	for _, s := range p.cache.Sessions() {
		if matchesFilter(s, filter) && matchesQuery(s, q) {
			out = append(out, s)
		}
	}

	p.memo = out
	p.memoGen = p.cache.Generation()
	p.memoFilter = filter
	p.memoQuery = query
	p.memoValid = true
	return out
}

func matchesFilter(s *domain.Session, filter Filter) bool {
	switch filter {
	case FilterStarred:
		return s.Starred
	case FilterLevel1:
		return s.Level == domain.LevelOne
	case FilterLevel2:
		return s.Level == domain.LevelTwo
	case FilterAnalysisOnly:
		return s.Level == domain.LevelNone
	default:
		return true
	}
}

func matchesQuery(s *domain.Session, q string) bool {
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(s.Name), q) ||
		strings.Contains(strings.ToLower(s.OriginalCode), q) ||
		strings.Contains(strings.ToLower(s.OptimizedCode), q) {
		return true
	}
	for _, change := range s.Changes {
		if strings.Contains(strings.ToLower(change), q) {
			return true
		}
	}
	return false
}
