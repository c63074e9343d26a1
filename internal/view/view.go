// Package view derives the displayed product list from the store snapshot
// and the transient table parameters. Everything here is a pure function of
// its inputs; there is no state beyond the Query value the caller owns.
package view

import (
	"strings"

	"github.com/bpsoft/catalog/internal/catalog"
)

// DefaultPageSize matches the table's initial page size.
const DefaultPageSize = 10

// Query holds the transient table parameters. Use the setters: changing the
// search term or the page size resets the page index to 0 so the table never
// lands on a stale page. An out-of-range page index set via GoToPage simply
// yields an empty page.
type Query struct {
	Search    string
	PageIndex int
	PageSize  int
}

// NewQuery returns a query with the default page size.
func NewQuery() Query {
	return Query{PageSize: DefaultPageSize}
}

// SetSearch updates the search term and resets the page index.
func (q *Query) SetSearch(term string) {
	q.Search = term
	q.PageIndex = 0
}

// SetPageSize updates the page size and resets the page index.
// Non-positive sizes fall back to the default.
func (q *Query) SetPageSize(size int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	q.PageSize = size
	q.PageIndex = 0
}

// GoToPage jumps to the given page. Negative indexes clamp to 0; indexes past
// the last page are kept and produce an empty page.
func (q *Query) GoToPage(index int) {
	if index < 0 {
		index = 0
	}
	q.PageIndex = index
}

// Page is one derived view of the catalog.
type Page struct {
	Items        []catalog.Product
	TotalResults int
	TotalPages   int
	PageIndex    int
	PageSize     int
}

// Filter returns the products whose name contains term, case-insensitively.
// An empty term matches everything.
func Filter(products []catalog.Product, term string) []catalog.Product {
	if term == "" {
		return products
	}
	needle := strings.ToLower(term)
	filtered := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Paginate slices one page out of the filtered collection.
func Paginate(filtered []catalog.Product, pageIndex, pageSize int) []catalog.Product {
	if pageSize <= 0 {
		return []catalog.Product{}
	}
	start := pageIndex * pageSize
	if start < 0 || start >= len(filtered) {
		return []catalog.Product{}
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// TotalPages returns ceil(total / pageSize).
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Compute recomputes the full derived view for the given inputs.
func Compute(products []catalog.Product, q Query) Page {
	filtered := Filter(products, q.Search)
	return Page{
		Items:        Paginate(filtered, q.PageIndex, q.PageSize),
		TotalResults: len(filtered),
		TotalPages:   TotalPages(len(filtered), q.PageSize),
		PageIndex:    q.PageIndex,
		PageSize:     q.PageSize,
	}
}
