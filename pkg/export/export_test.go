package export_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/docprotocol/pkg/core"
	"github.com/aretw0/docprotocol/pkg/export"
)

func records() []core.Protocol {
	return core.SeedProtocols(time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, export.FormatCSV, records()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, export.CSVHeader, rows[0])
	assert.Equal(t, []string{
		"PRT-2026-001",
		"Contrato de Prestação de Serviços - TI",
		"Tech Solutions Ltda",
		"Departamento de TI",
		"PENDING",
		"PHYSICAL",
		"Contrato",
		"2026-03-14T09:30:00Z",
	}, rows[1])
	assert.Equal(t, "PRT-2026-002", rows[2][0])
}

func TestWriteCSVQuotesFields(t *testing.T) {
	p := records()[0]
	p.Title = `Ofício "urgente", 2ª via`

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, export.FormatCSV, []core.Protocol{p}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, p.Title, rows[1][1])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, export.FormatJSON, records()))

	var got []core.Protocol
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "PRT-2026-001", got[0].Code)
	assert.Equal(t, core.StatusDelivered, got[1].Status)

	buf.Reset()
	require.NoError(t, export.Write(&buf, export.FormatJSON, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, export.FormatYAML, records()))

	var got []core.Protocol
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Mega Store Informatica", got[1].Sender)
	assert.Contains(t, buf.String(), "code: PRT-2026-001")
}

func TestParseFormat(t *testing.T) {
	tests := map[string]export.Format{
		"csv":   export.FormatCSV,
		"JSON":  export.FormatJSON,
		".yml":  export.FormatYAML,
		"yaml ": export.FormatYAML,
	}
	for in, want := range tests {
		got, err := export.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := export.ParseFormat("xlsx")
	assert.Error(t, err)
	assert.Error(t, export.Write(&bytes.Buffer{}, export.Format("xlsx"), nil))
}
