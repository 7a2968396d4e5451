package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/application/dto"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0.00", formatMoney(0))
	assert.Equal(t, "150.00", formatMoney(150))
	assert.Equal(t, "1,234,567.50", formatMoney(1234567.5))
	assert.Equal(t, "-1,000.00", formatMoney(-1000))
}

func TestGenerateKPIReport_DevuelvePDF(t *testing.T) {
	kpi := &dto.KPIResponse{
		Total: 2, WonCount: 1, EstSum: 150, WonSum: 100,
		ByStage: []dto.StageCount{{Stage: "new", Count: 1}, {Stage: "won", Count: 1}},
	}

	out, err := NewKPIReportGenerator().GenerateKPIReport(context.Background(), "Admin", kpi, time.Now())

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
