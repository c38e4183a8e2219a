package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"young-ats/pkg/validation"
)

func TestCustomTags(t *testing.T) {
	v := validation.New()

	t.Run("uf", func(t *testing.T) {
		assert.NoError(t, v.Var("rs", "uf"))
		assert.NoError(t, v.Var("", "uf"))
		assert.Error(t, v.Var("RX", "uf"))
	})

	t.Run("no emoji", func(t *testing.T) {
		assert.NoError(t, v.Var("Porto Alegre", "no_emoji"))
		assert.Error(t, v.Var("Porto 🚀", "no_emoji"))
	})
}

func TestRegisterEnum(t *testing.T) {
	v := validation.New()
	require.NoError(t, validation.RegisterEnum(v, "color", false, "red", "blue"))
	require.NoError(t, validation.RegisterEnum(v, "shade", true, "dark"))

	assert.NoError(t, v.Var("red", "color"))
	assert.Error(t, v.Var("green", "color"))
	assert.Error(t, v.Var("", "color"))

	assert.NoError(t, v.Var("", "shade"))
	assert.Error(t, v.Var("light", "shade"))
}

func TestFormatValidationErrors(t *testing.T) {
	v := validation.New()
	addr := struct {
		City  string `json:"city" validate:"required"`
		State string `json:"state" validate:"uf"`
	}{City: "Canoas", State: "ZZ"}

	err := v.Struct(addr)
	require.Error(t, err)

	msgs := validation.FormatValidationErrors(err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Estado: sigla de estado inválida", msgs[0])
}
