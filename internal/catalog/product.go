// Package catalog defines the product entity shared by the client core and
// the reference backend.
package catalog

// Product is the sole entity managed by the system. The id is chosen by the
// user at creation time and never changes afterwards; DateRevision must equal
// DateRelease plus exactly one year (same month and day).
type Product struct {
	ID           string `json:"id"            validate:"required,min=3,max=10"`
	Name         string `json:"name"          validate:"required,min=5,max=10"`
	Description  string `json:"description"   validate:"required,min=10,max=200"`
	Logo         string `json:"logo"          validate:"required"`
	DateRelease  Date   `json:"date_release"  validate:"required"`
	DateRevision Date   `json:"date_revision" validate:"required"`
}

// RevisionConsistent reports whether the revision date is exactly one year
// after the release date.
func (p Product) RevisionConsistent() bool {
	return !p.DateRelease.IsZero() && p.DateRevision.Equal(p.DateRelease.AddYears(1))
}
