package models

// CategoryPoint is one labelled value of a bar, line or pie series.
type CategoryPoint struct {
	// Label is the stringified X cell.
	Label string `json:"label"`
	// Value is the coerced Y cell (or the group sum for pie charts).
	Value float64 `json:"value"`
}

// XYPoint is one scatter point.
type XYPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Column3D is one column of a 3D column scene.
type Column3D struct {
	// Label is the stringified X cell, or "Item <n>" when blank.
	Label string `json:"label"`
	// Value is the coerced Y cell.
	Value float64 `json:"value"`
	// Height is Value scaled so the largest value maps to the scene height.
	Height float64 `json:"height"`
	// X is the column position along the scene's X axis.
	X float64 `json:"x"`
}

// View is renderer-ready data for one chart. Exactly one of Categories,
// Points or Columns is populated, according to Type.
type View struct {
	// Type is the chart type the view was projected for.
	Type ChartType `json:"type"`
	// Title is the chart title.
	Title string `json:"title"`
	// XLabel is the X axis header.
	XLabel string `json:"x_label"`
	// YLabel is the Y axis header.
	YLabel string `json:"y_label"`
	// Categories holds bar, line and pie data.
	Categories []CategoryPoint `json:"categories,omitempty"`
	// Points holds scatter data.
	Points []XYPoint `json:"points,omitempty"`
	// Columns holds 3D column data.
	Columns []Column3D `json:"columns,omitempty"`
}

// Len returns the number of data points in the view.
func (v View) Len() int {
	switch v.Type {
	case ChartScatter:
		return len(v.Points)
	case ChartColumn3D:
		return len(v.Columns)
	default:
		return len(v.Categories)
	}
}
