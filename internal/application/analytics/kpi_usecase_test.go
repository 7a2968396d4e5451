package analytics_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/application/analytics"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain/entity"
)

func TestSummarize_GanadoYNuevo(t *testing.T) {
	deals := []entity.Record{
		{"value": json.Number("100"), "stage": "won"},
		{"value": json.Number("50"), "stage": "new"},
	}

	got := analytics.Summarize(deals)

	assert.Equal(t, 2, got.Total)
	assert.Equal(t, 1, got.WonCount)
	assert.Equal(t, 150.0, got.EstSum)
	assert.Equal(t, 100.0, got.WonSum)
	assert.Equal(t, []dto.StageCount{
		{Stage: "new", Count: 1},
		{Stage: "qualify", Count: 0},
		{Stage: "proposal", Count: 0},
		{Stage: "negotiation", Count: 0},
		{Stage: "won", Count: 1},
		{Stage: "lost", Count: 0},
	}, got.ByStage)
}

func TestSummarize_SinNegocios_TodasLasEtapasEnCero(t *testing.T) {
	got := analytics.Summarize(nil)

	assert.Equal(t, 0, got.Total)
	require.Len(t, got.ByStage, 6)
	for _, sc := range got.ByStage {
		assert.Zero(t, sc.Count, sc.Stage)
	}
}

func TestSummarize_SumaDecimalExacta(t *testing.T) {
	deals := []entity.Record{
		{"value": json.Number("0.1"), "stage": "won"},
		{"value": json.Number("0.2"), "stage": "won"},
	}
	assert.Equal(t, 0.3, analytics.Summarize(deals).WonSum)
}

func TestValue_Coercion(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{json.Number("12.5"), "12.5"},
		{"  40 ", "40"},
		{"abc", "0"},
		{"", "0"},
		{nil, "0"},
		{true, "1"},
		{false, "0"},
		{float64(3), "3"},
		{map[string]any{"x": 1}, "0"},
	}
	for _, c := range cases {
		assert.True(t, decimal.RequireFromString(c.want).Equal(analytics.Value(c.in)), "%v", c.in)
	}
}
