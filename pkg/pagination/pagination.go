// Package pagination slices ordered result sets into pages.
package pagination

import (
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

type Params struct {
	Page  int
	Limit int
}

// ParseParams reads page and limit query values. Missing, non-numeric and
// non-positive values fall back to the defaults instead of failing.
func ParseParams(page string, limit string) Params {
	return Params{
		Page:  parsePositive(page, DefaultPage),
		Limit: parsePositive(limit, DefaultLimit),
	}
}

func parsePositive(value string, fallback int) int {
	number, err := strconv.Atoi(value)
	if err != nil || number < 1 {
		return fallback
	}

	return number
}

// Normalised replaces out of range values with the defaults
func (p Params) Normalised() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}

	return p
}

func (p Params) Skip() int {
	p = p.Normalised()
	return (p.Page - 1) * p.Limit
}

func TotalPages(total int, limit int) int {
	if limit < 1 {
		limit = DefaultLimit
	}

	return (total + limit - 1) / limit
}

type Result[T any] struct {
	Items      []T
	Total      int
	Page       int
	TotalPages int
}

func (r Result[T]) Count() int {
	return len(r.Items)
}

func NewResult[T any](items []T, total int, params Params) Result[T] {
	params = params.Normalised()

	if items == nil {
		items = []T{}
	}

	return Result[T]{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		TotalPages: TotalPages(total, params.Limit),
	}
}

// Page filters source, keeping its order, and returns the requested page of it.
// Total is the size of the filtered set regardless of which page is requested.
func Page[T any](source []T, params Params, filter Predicate[T]) Result[T] {
	params = params.Normalised()

	matching := make([]T, 0, len(source))
	for _, item := range source {
		if filter == nil || filter(item) {
			matching = append(matching, item)
		}
	}

	skip := params.Skip()
	if skip >= len(matching) {
		return NewResult([]T{}, len(matching), params)
	}

	end := min(skip+params.Limit, len(matching))

	return NewResult(matching[skip:end], len(matching), params)
}
