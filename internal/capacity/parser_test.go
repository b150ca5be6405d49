package capacity

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	csv := "boom_length,radius,capacity\n30.0,3.0,100000\n30.0,5.0,80000\n\n40.0,3.0,90000"
	charts, err := ParseCSV(csv)
	require.NoError(t, err)

	require.Len(t, charts, 2)
	assert.Equal(t, 30.0, charts[0].BoomLengthM)
	assert.Len(t, charts[0].Points, 2)
	assert.Equal(t, 40.0, charts[1].BoomLengthM)
	assert.Len(t, charts[1].Points, 1)
}

func TestParseCSV_ReportsLineNumbers(t *testing.T) {
	tests := []struct {
		name string
		data string
		line int
		msg  string
	}{
		{"too few columns", "h\n30,3,100\n30,5", 3, "expected 3 columns, got 2"},
		{"too many columns", "h\n30,3,100,7", 2, "expected 3 columns, got 4"},
		{"bad boom", "h\nabc,3,100", 2, "invalid boom length 'abc'"},
		{"bad radius", "h\n\n30,x,100", 3, "invalid radius 'x'"},
		{"bad capacity", "h\n30,3,lots", 2, "invalid capacity 'lots'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSV(tt.data)
			require.Error(t, err)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.line, pe.Line)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestParseJSON(t *testing.T) {
	json := `{
		"charts": [
			{
				"boom_length_m": 30.0,
				"points": [
					{"radius_m": 5.0, "capacity_kg": 80000},
					{"radius_m": 3.0, "capacity_kg": 100000}
				]
			}
		]
	}`

	charts, err := ParseJSON(json)
	require.NoError(t, err)
	require.Len(t, charts, 1)
	require.Len(t, charts[0].Points, 2)
	assert.Equal(t, 3.0, charts[0].Points[0].RadiusM)
}

func TestParseJSON_Malformed(t *testing.T) {
	_, err := ParseJSON(`{"charts": [`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON parse error")
}

func TestParseTable(t *testing.T) {
	table := `
BOOM LENGTH: 30.0m
Radius(m)  Capacity(kg)
3.0        100000
5.0        80000

boom length: 40.0M
Radius(m)  Capacity(kg)
3.0        90000
not a row
`

	charts, err := ParseTable(table)
	require.NoError(t, err)
	require.Len(t, charts, 2)
	assert.Equal(t, 30.0, charts[0].BoomLengthM)
	assert.Len(t, charts[0].Points, 2)
	assert.Equal(t, 40.0, charts[1].BoomLengthM)
	assert.Len(t, charts[1].Points, 1)
}

func TestParseTable_DropsEmptySections(t *testing.T) {
	charts, err := ParseTable("BOOM LENGTH: 30m\nRADIUS CAPACITY\nBOOM LENGTH: 40m\n3 90000\n")
	require.NoError(t, err)
	require.Len(t, charts, 1)
	assert.Equal(t, 40.0, charts[0].BoomLengthM)
}

func TestParseTable_BadHeader(t *testing.T) {
	_, err := ParseTable("\nBOOM LENGTH: long\n")
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Line)
}

func TestBuilder(t *testing.T) {
	chart, err := NewBuilder().
		WithOverSideFactor(0.8).
		AddChartsFromCSV("boom_length,radius,capacity\n30.0,3.0,100000").
		Build()
	require.NoError(t, err)

	assert.Equal(t, 0.8, chart.OverSideFactor)
	assert.Equal(t, DefaultOverRearFactor, chart.OverRearFactor)
	assert.Len(t, chart.Charts, 1)
}

func TestBuilder_KeepsFirstError(t *testing.T) {
	_, err := NewBuilder().
		AddChartsFromCSV("h\nbad").
		AddChartsFromJSON(`{"charts": []}`).
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "ltm.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("boom,radius,cap\n30,3,100000\n30,10,40000\n"), 0644))
	chart, err := LoadFile(csvPath)
	require.NoError(t, err)
	capacity, ok := chart.Capacity(30, 6.5, 0, 1, false)
	require.True(t, ok)
	assert.InDelta(t, 70000, capacity, 1)

	txtPath := filepath.Join(dir, "ltm.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("BOOM LENGTH: 40m\n3 90000\n"), 0644))
	chart, err = LoadFile(txtPath)
	require.NoError(t, err)
	assert.Equal(t, []float64{40}, chart.BoomLengths())

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatCSV, FormatFromPath("a/b/chart.CSV"))
	assert.Equal(t, FormatJSON, FormatFromPath("chart.json"))
	assert.Equal(t, FormatTable, FormatFromPath("chart.txt"))
	assert.Equal(t, FormatTable, FormatFromPath("chart"))
}
