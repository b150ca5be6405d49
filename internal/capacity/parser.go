package capacity

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports a malformed chart document.
// Line is 1-based; 0 means the error is not tied to a line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return e.Msg
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func lineErr(line int, format string, args ...any) error {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// ParseCSV reads a chart in the form
//
//	boom_length,radius,capacity
//	30.0,3.0,100000
//	30.0,5.0,80000
//
// The first line is a header and is ignored, as are blank lines. Rows are
// grouped into one load chart per boom length key.
func ParseCSV(data string) ([]LoadChart, error) {
	grouped := NewChart()

	scanner := bufio.NewScanner(strings.NewReader(data))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if lineNum == 1 || strings.TrimSpace(line) == "" {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) != 3 {
			return nil, lineErr(lineNum, "expected 3 columns, got %d", len(parts))
		}

		boom, err := parseField(parts[0])
		if err != nil {
			return nil, lineErr(lineNum, "invalid boom length '%s'", strings.TrimSpace(parts[0]))
		}
		radius, err := parseField(parts[1])
		if err != nil {
			return nil, lineErr(lineNum, "invalid radius '%s'", strings.TrimSpace(parts[1]))
		}
		capacity, err := parseField(parts[2])
		if err != nil {
			return nil, lineErr(lineNum, "invalid capacity '%s'", strings.TrimSpace(parts[2]))
		}

		key := Key(boom)
		chart, ok := grouped.Charts[key]
		if !ok {
			chart = NewLoadChart(boom)
		}
		chart.AddPoint(radius, capacity)
		grouped.Charts[key] = chart
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Msg: err.Error()}
	}

	return grouped.LoadCharts(), nil
}

// ParseJSON reads a chart in the form
//
//	{"charts": [{"boom_length_m": 30.0, "points": [{"radius_m": 3.0, "capacity_kg": 100000}]}]}
func ParseJSON(data string) ([]LoadChart, error) {
	var doc struct {
		Charts []LoadChart `json:"charts"`
	}
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, &ParseError{Msg: fmt.Sprintf("JSON parse error: %v", err)}
	}

	for i := range doc.Charts {
		doc.Charts[i].sortPoints()
	}
	return doc.Charts, nil
}

// ParseTable reads the manufacturer table format:
//
//	BOOM LENGTH: 30.0m
//	Radius(m)  Capacity(kg)
//	3.0        100000
//	5.0        80000
//
// Each "BOOM LENGTH:" header (any case) opens a new chart. Lines mentioning
// RADIUS and blank lines are sub-headers. Rows that are not two numbers are
// skipped, and charts without points are dropped.
func ParseTable(data string) ([]LoadChart, error) {
	var charts []LoadChart
	var current *LoadChart

	flush := func() {
		if current != nil && len(current.Points) > 0 {
			charts = append(charts, *current)
		}
		current = nil
	}

	scanner := bufio.NewScanner(strings.NewReader(data))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		upper := strings.ToUpper(line)

		if strings.HasPrefix(upper, "BOOM LENGTH:") {
			flush()

			value := strings.TrimSpace(line[len("BOOM LENGTH:"):])
			value = strings.TrimSpace(strings.TrimRight(value, "mM"))
			boom, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, lineErr(lineNum, "invalid boom length '%s'", value)
			}

			chart := NewLoadChart(boom)
			current = &chart
			continue
		}

		if line == "" || strings.Contains(upper, "RADIUS") {
			continue
		}

		if current == nil {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		radius, errR := strconv.ParseFloat(fields[0], 64)
		capacity, errC := strconv.ParseFloat(fields[1], 64)
		if errR != nil || errC != nil {
			continue
		}
		current.AddPoint(radius, capacity)
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Msg: err.Error()}
	}
	flush()

	return charts, nil
}

func parseField(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
