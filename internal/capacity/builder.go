package capacity

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Builder assembles a Chart step by step
type Builder struct {
	chart Chart
	err   error
}

// NewBuilder starts from an empty chart with default factors
func NewBuilder() *Builder {
	return &Builder{chart: NewChart()}
}

// WithOverSideFactor sets the over-side de-rating factor
func (b *Builder) WithOverSideFactor(f float64) *Builder {
	b.chart.OverSideFactor = f
	return b
}

// WithOverRearFactor sets the over-rear de-rating factor
func (b *Builder) WithOverRearFactor(f float64) *Builder {
	b.chart.OverRearFactor = f
	return b
}

// WithDynamicFactor sets the moving-load factor
func (b *Builder) WithDynamicFactor(f float64) *Builder {
	b.chart.DynamicFactor = f
	return b
}

// WithOutriggerIntermediateFactor sets the partial-extension factor
func (b *Builder) WithOutriggerIntermediateFactor(f float64) *Builder {
	b.chart.OutriggerIntermediateFactor = f
	return b
}

// WithOnTiresFactor sets the on-tires factor
func (b *Builder) WithOnTiresFactor(f float64) *Builder {
	b.chart.OnTiresFactor = f
	return b
}

// AddChart adds a single load chart
func (b *Builder) AddChart(chart LoadChart) *Builder {
	b.chart.AddChart(chart)
	return b
}

// AddChartsFromCSV parses CSV data and adds every chart found
func (b *Builder) AddChartsFromCSV(data string) *Builder {
	return b.addParsed(ParseCSV(data))
}

// AddChartsFromJSON parses JSON data and adds every chart found
func (b *Builder) AddChartsFromJSON(data string) *Builder {
	return b.addParsed(ParseJSON(data))
}

// AddChartsFromTable parses manufacturer table data and adds every chart found
func (b *Builder) AddChartsFromTable(data string) *Builder {
	return b.addParsed(ParseTable(data))
}

func (b *Builder) addParsed(charts []LoadChart, err error) *Builder {
	if b.err != nil {
		return b
	}
	if err != nil {
		b.err = err
		return b
	}
	for _, c := range charts {
		b.chart.AddChart(c)
	}
	return b
}

// Build returns the chart or the first parse error encountered
func (b *Builder) Build() (Chart, error) {
	if b.err != nil {
		return Chart{}, b.err
	}
	return b.chart, nil
}

// Format identifies a chart file format
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// FormatFromPath infers the format from the file extension.
// Anything that is not .csv or .json is read as a manufacturer table.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".json":
		return FormatJSON
	default:
		return FormatTable
	}
}

// Parse dispatches to the parser for the given format
func Parse(format Format, data string) ([]LoadChart, error) {
	switch format {
	case FormatCSV:
		return ParseCSV(data)
	case FormatJSON:
		return ParseJSON(data)
	case FormatTable:
		return ParseTable(data)
	}
	return nil, fmt.Errorf("unknown chart format %q", format)
}

// LoadFile reads a chart file and builds a Chart with default factors
func LoadFile(path string) (Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Chart{}, fmt.Errorf("failed to read chart file: %w", err)
	}

	charts, err := Parse(FormatFromPath(path), string(data))
	if err != nil {
		return Chart{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	b := NewBuilder()
	for _, c := range charts {
		b.AddChart(c)
	}
	return b.Build()
}

// ExampleLiebherrLTM1100 returns a sample chart for the LTM 1100-5.2
func ExampleLiebherrLTM1100() Chart {
	rows := []struct {
		boom   float64
		points []Point
	}{
		{30, []Point{{3, 100000}, {5, 80000}, {10, 40000}, {15, 25000}, {20, 15000}, {25, 10000}}},
		{40, []Point{{3, 90000}, {5, 70000}, {10, 35000}, {20, 12000}, {30, 7000}, {35, 5000}}},
		{50, []Point{{3, 80000}, {10, 30000}, {20, 10000}, {30, 6000}, {40, 4000}, {45, 3000}}},
	}

	b := NewBuilder().
		WithOverSideFactor(0.85).
		WithOverRearFactor(0.75)
	for _, row := range rows {
		lc := NewLoadChart(row.boom)
		lc.Points = append(lc.Points, row.points...)
		b.AddChart(lc)
	}
	return b.chart
}
