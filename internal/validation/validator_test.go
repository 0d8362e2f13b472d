package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/booktrackapp/booktrack-server/internal/errors"
)

func TestValidAttribute(t *testing.T) {
	valid := []string{"Sci-Fi Favorites", "u1", "books to read (2026)"}
	for _, s := range valid {
		assert.True(t, ValidAttribute(s), "%q should be valid", s)
	}

	invalid := []string{
		"",
		`say "hi"`,
		"it's mine",
		`back\slash`,
		"tab\there",
		"new\nline",
		"bell\x07",
	}
	for _, s := range invalid {
		assert.False(t, ValidAttribute(s), "%q should be invalid", s)
	}
}

func TestValidate_AttrValueTag(t *testing.T) {
	type req struct {
		Name string `json:"name" validate:"required,attrvalue"`
	}

	v := New()

	require.NoError(t, v.Validate(req{Name: "My List"}))

	err := v.Validate(req{Name: `bad"name`})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

	var derr *domainerrors.Error
	require.True(t, domainerrors.As(err, &derr))
	details, ok := derr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "name")
}

func TestValidate_RequiredUsesJSONName(t *testing.T) {
	type req struct {
		CustomerID string `json:"customer_id" validate:"required"`
	}

	err := New().Validate(req{})
	require.Error(t, err)

	var derr *domainerrors.Error
	require.True(t, domainerrors.As(err, &derr))
	details := derr.Details.(map[string]string)
	assert.Equal(t, "is required", details["customer_id"])
}
