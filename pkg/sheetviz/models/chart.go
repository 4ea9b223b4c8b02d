package models

import "fmt"

// ChartType is the kind of chart to render.
type ChartType string

const (
	// ChartBar is a categorical bar chart.
	ChartBar ChartType = "bar"
	// ChartLine is a categorical line chart.
	ChartLine ChartType = "line"
	// ChartPie aggregates values by category.
	ChartPie ChartType = "pie"
	// ChartScatter plots numeric (x, y) pairs.
	ChartScatter ChartType = "scatter"
	// ChartColumn3D renders scaled columns in a 3D scene.
	ChartColumn3D ChartType = "3d-column"
)

// ChartTypes lists every supported chart type in display order.
var ChartTypes = []ChartType{ChartBar, ChartLine, ChartPie, ChartScatter, ChartColumn3D}

// DefaultChartTitle is the title of a fresh configuration.
const DefaultChartTitle = "Chart"

// ParseChartType converts a wire name to a ChartType.
func ParseChartType(s string) (ChartType, error) {
	for _, t := range ChartTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid chart type: %q", s)
}

// Label returns a human-readable name for the chart type.
func (t ChartType) Label() string {
	switch t {
	case ChartBar:
		return "Bar Chart"
	case ChartLine:
		return "Line Chart"
	case ChartPie:
		return "Pie Chart"
	case ChartScatter:
		return "Scatter Plot"
	case ChartColumn3D:
		return "3D Column"
	default:
		return string(t)
	}
}

// ChartConfig is the user's current chart selection.
type ChartConfig struct {
	// Type is the chart type.
	Type ChartType `json:"type"`
	// XAxis is the header bound to the X axis ("" when unset).
	XAxis string `json:"xAxis"`
	// YAxis is the header bound to the Y axis ("" when unset).
	YAxis string `json:"yAxis"`
	// Title is the display title.
	Title string `json:"title"`
}

// DefaultChartConfig returns the configuration used when no dataset is active.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Type:  ChartBar,
		Title: DefaultChartTitle,
	}
}

// ConfigPatch is a partial ChartConfig update. Nil fields are left unchanged.
type ConfigPatch struct {
	Type  *ChartType
	XAxis *string
	YAxis *string
	Title *string
}

// Apply returns c with the non-nil fields of p applied.
func (c ChartConfig) Apply(p ConfigPatch) ChartConfig {
	if p.Type != nil {
		c.Type = *p.Type
	}
	if p.XAxis != nil {
		c.XAxis = *p.XAxis
	}
	if p.YAxis != nil {
		c.YAxis = *p.YAxis
	}
	if p.Title != nil {
		c.Title = *p.Title
	}
	return c
}
