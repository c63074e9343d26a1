// Package form carries the in-progress product draft and the validation
// engine that gates submission.
package form

import (
	"github.com/bpsoft/catalog/internal/catalog"
)

// Draft is the not-yet-submitted field values of a product being created or
// edited. The validate tags encode the per-field rules; the cross-field
// revision rule and the id-uniqueness rule live in the validator.
type Draft struct {
	ID           string       `json:"id"            validate:"required,min=3,max=10"`
	Name         string       `json:"name"          validate:"required,min=5,max=10"`
	Description  string       `json:"description"   validate:"required,min=10,max=200"`
	Logo         string       `json:"logo"          validate:"required"`
	DateRelease  catalog.Date `json:"date_release"  validate:"required,todayorfuture"`
	DateRevision catalog.Date `json:"date_revision" validate:"required"`
}

// NewDraft returns the add-form defaults: empty strings, release date today,
// revision date one year out.
func NewDraft() Draft {
	today := catalog.Today()
	return Draft{
		DateRelease:  today,
		DateRevision: today.AddYears(1),
	}
}

// DraftFrom populates a draft from an existing product for editing.
func DraftFrom(p catalog.Product) Draft {
	return Draft{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Logo:         p.Logo,
		DateRelease:  p.DateRelease,
		DateRevision: p.DateRevision,
	}
}

// SetDateRelease updates the release date and overwrites the revision date
// with release plus one year. The revision date is never edited directly in
// the default flow; this derivation is the only way it changes.
func (d *Draft) SetDateRelease(release catalog.Date) {
	d.DateRelease = release
	d.DateRevision = release.AddYears(1)
}

// Product converts the draft into the entity submitted to the gateway.
func (d Draft) Product() catalog.Product {
	return catalog.Product{
		ID:           d.ID,
		Name:         d.Name,
		Description:  d.Description,
		Logo:         d.Logo,
		DateRelease:  d.DateRelease,
		DateRevision: d.DateRevision,
	}
}
