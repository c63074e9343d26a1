package form

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bpsoft/catalog/internal/catalog"
)

func validDraft() Draft {
	d := Draft{
		ID:          "trj-crd",
		Name:        "Visa Gold",
		Description: "Premium credit card with travel insurance",
		Logo:        "https://cdn.example.com/visa-gold.png",
	}
	d.SetDateRelease(catalog.Today())
	return d
}

func Test_Validate_ValidDraft(t *testing.T) {
	// given
	fv := NewValidator()
	// when
	errs := fv.Validate(validDraft(), false, false)
	// then
	assert.Empty(t, errs)
}

func Test_Validate_FieldRules(t *testing.T) {
	fv := NewValidator()

	testCases := []struct {
		name     string
		mutate   func(*Draft)
		field    string
		expected string
	}{
		{
			name:     "Missing id",
			mutate:   func(d *Draft) { d.ID = "" },
			field:    "id",
			expected: "id is required",
		},
		{
			name:     "Id too short",
			mutate:   func(d *Draft) { d.ID = "ab" },
			field:    "id",
			expected: "id must be at least 3 characters",
		},
		{
			name:     "Id too long",
			mutate:   func(d *Draft) { d.ID = "abcdefghijk" },
			field:    "id",
			expected: "id must be at most 10 characters",
		},
		{
			name:     "Name too short",
			mutate:   func(d *Draft) { d.Name = "abcd" },
			field:    "name",
			expected: "name must be at least 5 characters",
		},
		{
			name:     "Description too short",
			mutate:   func(d *Draft) { d.Description = "too short" },
			field:    "description",
			expected: "description must be at least 10 characters",
		},
		{
			name:     "Missing logo",
			mutate:   func(d *Draft) { d.Logo = "" },
			field:    "logo",
			expected: "logo is required",
		},
		{
			name:     "Release date in the past",
			mutate:   func(d *Draft) { d.SetDateRelease(catalog.Today().AddYears(-1)) },
			field:    "date_release",
			expected: "release date must be today or a future date",
		},
		{
			name:     "Revision date not one year after release",
			mutate:   func(d *Draft) { d.DateRevision = d.DateRelease },
			field:    "date_revision",
			expected: "revision date must be exactly one year after the release date",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			d := validDraft()
			tc.mutate(&d)
			// when
			errs := fv.Validate(d, false, false)
			// then
			assert.Equal(t, tc.expected, errs[tc.field])
		})
	}
}

func Test_Validate_EmptyDraft(t *testing.T) {
	// given
	fv := NewValidator()
	// when
	errs := fv.Validate(Draft{}, false, false)
	// then: only the first failing rule surfaces per field
	assert.Equal(t, "id is required", errs["id"])
	assert.Equal(t, "name is required", errs["name"])
	assert.Equal(t, "description is required", errs["description"])
	assert.Equal(t, "logo is required", errs["logo"])
	assert.Equal(t, "release date is required", errs["date_release"])
	assert.Equal(t, "revision date is required", errs["date_revision"])
}

func Test_Validate_IDExists(t *testing.T) {
	fv := NewValidator()

	t.Run("Collision blocks a new product", func(t *testing.T) {
		errs := fv.Validate(validDraft(), false, true)
		assert.Equal(t, MsgIDExists, errs["id"])
	})

	t.Run("Collision is ignored on edit", func(t *testing.T) {
		errs := fv.Validate(validDraft(), true, true)
		assert.Empty(t, errs)
	})

	t.Run("Length rule outranks the uniqueness flag", func(t *testing.T) {
		d := validDraft()
		d.ID = "ab"
		errs := fv.Validate(d, false, true)
		assert.Equal(t, "id must be at least 3 characters", errs["id"])
	})
}

func Test_Draft_SetDateRelease_DerivesRevision(t *testing.T) {
	// given
	d := NewDraft()
	release := catalog.Today().AddYears(2)
	// when
	d.SetDateRelease(release)
	// then
	assert.True(t, d.DateRelease.Equal(release))
	assert.True(t, d.DateRevision.Equal(release.AddYears(1)))
}

func Test_NewDraft_Defaults(t *testing.T) {
	d := NewDraft()
	assert.True(t, d.DateRelease.Equal(catalog.Today()))
	assert.True(t, d.DateRevision.Equal(catalog.Today().AddYears(1)))
	assert.Empty(t, d.ID)
}

func Test_DraftFrom_RoundTrip(t *testing.T) {
	// given
	p := validDraft().Product()
	// when
	d := DraftFrom(p)
	// then
	assert.Equal(t, p, d.Product())
}
