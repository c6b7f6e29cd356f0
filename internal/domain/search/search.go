// Package search filters and orders tasks for the search endpoint: fuzzy
// title matching by edit distance, an exact status filter, an exclusive
// due-date window and a stable sort by due date.
package search

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/agext/levenshtein"

	"github.com/phrazzld/taskr-api/internal/domain"
)

// DateLayout is the accepted format of the after/before bounds.
const DateLayout = "2006-01-02"

// Defaults used when the engine is built with non-positive settings.
const (
	DefaultDistanceThreshold = 21
	DefaultMinQueryLength    = 3
)

// SortOrder is the direction of the due-date sort.
type SortOrder string

// Recognised sort orders.
const (
	SortDescending SortOrder = "descending"
	SortAscending  SortOrder = "ascending"
)

// Query validation errors.
var (
	ErrUnknownStatus       = errors.New("unknown status")
	ErrIncompleteDateRange = errors.New("after and before must be provided together")
	ErrInvalidDateFormat   = errors.New("dates must use the YYYY-MM-DD format")
	ErrInvalidDateRange    = errors.New("after must not be later than before")
	ErrInvalidSortOrder    = errors.New("sort_order must be ascending or descending")
)

// Params holds the raw, unvalidated search parameters. Empty means absent,
// except that TitleSet marks a title parameter supplied with an empty value.
type Params struct {
	Title     string
	TitleSet  bool
	Status    string
	After     string
	Before    string
	SortOrder string
}

// Query is a validated search request.
type Query struct {
	Title     string
	HasTitle  bool              // an empty Title with HasTitle matches nothing
	Status    domain.TaskStatus // empty when not filtering
	After     time.Time         // zero when no date window
	Before    time.Time
	SortOrder SortOrder // empty sorts descending
}

// HasDateRange reports whether the query carries a due-date window.
func (q Query) HasDateRange() bool {
	return !q.After.IsZero() || !q.Before.IsZero()
}

// Validate checks the invariants ParseQuery establishes, for queries
// assembled by hand.
func (q Query) Validate() error {
	if q.Status != "" && !q.Status.IsValid() {
		return fmt.Errorf("%w %q, must be one of: %s", ErrUnknownStatus, q.Status, domain.ValidStatusList())
	}
	if q.After.IsZero() != q.Before.IsZero() {
		return ErrIncompleteDateRange
	}
	if q.After.After(q.Before) {
		return ErrInvalidDateRange
	}
	switch q.SortOrder {
	case "", SortAscending, SortDescending:
		return nil
	default:
		return ErrInvalidSortOrder
	}
}

// Key renders the query canonically, for use in cache keys.
func (q Query) Key() string {
	v := url.Values{}
	if q.HasTitle {
		v.Set("title", q.Title)
	}
	v.Set("status", string(q.Status))
	v.Set("sort", string(q.SortOrder))
	if q.HasDateRange() {
		v.Set("after", q.After.Format(DateLayout))
		v.Set("before", q.Before.Format(DateLayout))
	}
	return v.Encode()
}

// ParseQuery validates raw parameters. The first failure is returned and
// no partial query is produced.
func ParseQuery(p Params) (Query, error) {
	q := Query{
		Title:     p.Title,
		HasTitle:  p.TitleSet || p.Title != "",
		SortOrder: SortDescending,
	}

	if p.Status != "" {
		status, err := domain.ParseTaskStatus(p.Status)
		if err != nil {
			return Query{}, fmt.Errorf("%w %q, must be one of: %s", ErrUnknownStatus, p.Status, domain.ValidStatusList())
		}
		q.Status = status
	}

	if p.After != "" || p.Before != "" {
		if p.After == "" || p.Before == "" {
			return Query{}, ErrIncompleteDateRange
		}
		after, err := time.Parse(DateLayout, strings.TrimSpace(p.After))
		if err != nil {
			return Query{}, fmt.Errorf("%w: after %q", ErrInvalidDateFormat, p.After)
		}
		before, err := time.Parse(DateLayout, strings.TrimSpace(p.Before))
		if err != nil {
			return Query{}, fmt.Errorf("%w: before %q", ErrInvalidDateFormat, p.Before)
		}
		if after.After(before) {
			return Query{}, ErrInvalidDateRange
		}
		q.After, q.Before = after, before
	}

	if p.SortOrder != "" {
		order := SortOrder(p.SortOrder)
		if order != SortAscending && order != SortDescending {
			return Query{}, fmt.Errorf("%w, got %q", ErrInvalidSortOrder, p.SortOrder)
		}
		q.SortOrder = order
	}

	return q, nil
}

// Engine runs queries over an in-memory task set.
type Engine struct {
	threshold      int
	minQueryLength int
}

// NewEngine returns an engine that accepts titles whose edit distance to
// the query is below threshold. Non-positive arguments select the defaults.
func NewEngine(threshold, minQueryLength int) *Engine {
	if threshold <= 0 {
		threshold = DefaultDistanceThreshold
	}
	if minQueryLength <= 0 {
		minQueryLength = DefaultMinQueryLength
	}
	return &Engine{threshold: threshold, minQueryLength: minQueryLength}
}

// Search filters tasks by q and sorts the survivors by due date. The input
// slice is not modified; tasks with equal due dates keep their input order.
func (e *Engine) Search(tasks []domain.Task, q Query) ([]domain.Task, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if e.keep(t, q) {
			out = append(out, t)
		}
	}

	slices.SortStableFunc(out, func(a, b domain.Task) int {
		if q.SortOrder == SortAscending {
			return a.DueDate.Compare(b.DueDate)
		}
		return b.DueDate.Compare(a.DueDate)
	})

	return out, nil
}

func (e *Engine) keep(t domain.Task, q Query) bool {
	if (q.HasTitle || q.Title != "") && !e.MatchesTitle(q.Title, t.Title) {
		return false
	}
	if q.Status != "" && t.Status != q.Status {
		return false
	}
	if q.HasDateRange() && !(t.DueDate.After(q.After) && t.DueDate.Before(q.Before)) {
		return false
	}
	return true
}

// MatchesTitle reports whether title is a fuzzy match for query. Short
// queries never match, and the query must occur in the title as a
// case-insensitive substring on top of being within the distance threshold.
func (e *Engine) MatchesTitle(query, title string) bool {
	if utf8.RuneCountInString(query) < e.minQueryLength {
		return false
	}

	q, t := strings.ToLower(query), strings.ToLower(title)
	if !strings.Contains(t, q) {
		return false
	}

	return levenshtein.Distance(q, t, nil) < e.threshold
}
