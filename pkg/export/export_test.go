package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"Staff", "Amount", "Status"},
		Rows: []map[string]string{
			{"Staff": "Jane Doe", "Amount": "1500.00", "Status": "pending"},
			{"Staff": "John Aku", "Amount": "320.50", "Status": "approved"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	payload, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)
	out := string(payload)
	assert.Contains(t, out, "Staff,Amount,Status")
	assert.Contains(t, out, "Jane Doe,1500.00,pending")
	assert.Contains(t, out, "John Aku,320.50,approved")
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	payload, err := NewPDFExporter().Render(sampleDataset(), "Cash Advance Requests")
	require.NoError(t, err)
	require.NotEmpty(t, payload)
	assert.Equal(t, "%PDF", string(payload[:4]))
}

func TestPDFExporterRequiresHeaders(t *testing.T) {
	_, err := NewPDFExporter().Render(Dataset{}, "")
	require.Error(t, err)
}
