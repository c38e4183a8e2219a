package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"young-ats/pkg/normalize"
)

func TestNormalizeCity(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"Santo Antônio da Patrulha - RS", "Santo Antônio da Patrulha"},
		{"Canoas (RS)", "Canoas"},
		{"são paulo/SP", "São Paulo"},
		{"  PORTO ALEGRE rs ", "Porto Alegre"},
		{"Porto Alegre", "Porto Alegre"},
		{"rio de janeiro", "Rio de Janeiro"},
		{"De Pedro", "De Pedro"},
		{"Capão da Canoa-RS", "Capão da Canoa"},
		{"Gravataí (Morungava) RS", "Gravataí"},
		{"Lagoa dos Três Cantos", "Lagoa dos Três Cantos"},
		{"Ipê e Viamão", "Ipê e Viamão"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.NormalizeCity(tt.raw))
		})
	}
}

func TestNormalizeInterests(t *testing.T) {
	assert.Equal(t, []string{"Administrativa", "Comercial", "Financeira"},
		normalize.NormalizeInterests("Administrativa, Comercial, Financeira"))
	assert.Equal(t, []string{"TI"}, normalize.NormalizeInterests(" , TI,, "))
	assert.Empty(t, normalize.NormalizeInterests(""))
	assert.NotNil(t, normalize.NormalizeInterests(""))
}

func TestIsStateCode(t *testing.T) {
	assert.True(t, normalize.IsStateCode("rs"))
	assert.True(t, normalize.IsStateCode(" SP "))
	assert.False(t, normalize.IsStateCode("XX"))
}
