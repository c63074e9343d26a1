package form

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/bpsoft/catalog/internal/catalog"
)

// crossFieldTag marks the revision-equals-release-plus-one-year rule, which
// is reported from the struct-level validation rather than a field tag.
const crossFieldTag = "revision_plus_year"

// messages translates (field, rule) pairs into the inline messages the view
// layer renders. Rules short-circuit per field, so at most one message per
// field ever surfaces.
var messages = map[string]map[string]string{
	"id": {
		"required": "id is required",
		"min":      "id must be at least 3 characters",
		"max":      "id must be at most 10 characters",
	},
	"name": {
		"required": "name is required",
		"min":      "name must be at least 5 characters",
		"max":      "name must be at most 10 characters",
	},
	"description": {
		"required": "description is required",
		"min":      "description must be at least 10 characters",
		"max":      "description must be at most 200 characters",
	},
	"logo": {
		"required": "logo is required",
	},
	"date_release": {
		"required":      "release date is required",
		"todayorfuture": "release date must be today or a future date",
	},
	"date_revision": {
		"required":    "revision date is required",
		crossFieldTag: "revision date must be exactly one year after the release date",
	},
}

// MsgIDExists is merged into the error map when the asynchronously resolved
// uniqueness flag reports a collision on a new product.
const MsgIDExists = "id already exists"

// Validator evaluates a draft against the field rules, the cross-field date
// rule and the previously fetched uniqueness flag. It holds no per-draft
// state and is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

// NewValidator builds the engine with the date rules registered and error
// fields named after the wire field names.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("todayorfuture", todayOrFuture)
	v.RegisterStructValidation(revisionPlusYear, Draft{})
	return &Validator{v: v}
}

// Validate returns the field-to-message error map for the draft. An empty map
// means the draft is acceptable for submission. idExists is the most recently
// resolved uniqueness flag; it is only consulted for new products (isEdit
// false), since the id is immutable on edit.
func (fv *Validator) Validate(d Draft, isEdit, idExists bool) map[string]string {
	errs := make(map[string]string)

	if err := fv.v.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				field := fe.Field()
				if _, taken := errs[field]; taken {
					// first failing rule per field wins
					continue
				}
				if msg, ok := messages[field][fe.Tag()]; ok {
					errs[field] = msg
				} else {
					errs[field] = "invalid value"
				}
			}
		}
	}

	// Uniqueness is the last rule in the id chain: it only applies once the
	// id passes the length rules, and never on edit.
	if _, taken := errs["id"]; !taken && !isEdit && idExists {
		errs["id"] = MsgIDExists
	}

	return errs
}

// todayOrFuture accepts release dates from today onwards.
func todayOrFuture(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(catalog.Date)
	if !ok {
		return false
	}
	return !d.Before(catalog.Today())
}

// revisionPlusYear enforces the cross-field invariant: once both dates are
// present, the revision date must land on the same month and day one year
// after the release date.
func revisionPlusYear(sl validator.StructLevel) {
	d, ok := sl.Current().Interface().(Draft)
	if !ok {
		return
	}
	if d.DateRelease.IsZero() || d.DateRevision.IsZero() {
		return
	}
	if !d.DateRevision.Equal(d.DateRelease.AddYears(1)) {
		sl.ReportError(d.DateRevision, "date_revision", "DateRevision", crossFieldTag, "")
	}
}
