// Package chart decides which columns a chart may bind and projects
// datasets into renderer-ready views.
package chart

import (
	"fmt"

	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/models"
)

// NumericSampleRows is how many leading rows IsNumericColumn inspects.
const NumericSampleRows = 10

// IsNumericColumn reports whether at least one of the first
// NumericSampleRows cells of column idx is numerically coercible.
func IsNumericColumn(ds *models.Dataset, idx int) bool {
	if ds == nil || idx < 0 {
		return false
	}
	n := ds.NumRows()
	if n > NumericSampleRows {
		n = NumericSampleRows
	}
	for row := 0; row < n; row++ {
		if _, ok := ds.Cell(row, idx).Float(); ok {
			return true
		}
	}
	return false
}

// NumericColumns returns the headers of every numeric column, in order.
func NumericColumns(ds *models.Dataset) []string {
	if ds == nil {
		return nil
	}
	var out []string
	for i, h := range ds.Headers() {
		if IsNumericColumn(ds, i) {
			out = append(out, h)
		}
	}
	return out
}

// RequiresNumericY reports whether the chart type only accepts numeric Y columns.
func RequiresNumericY(t models.ChartType) bool {
	return t != models.ChartPie
}

// XAxisOptions returns the headers selectable for the X axis.
func XAxisOptions(ds *models.Dataset, t models.ChartType) []string {
	if ds == nil {
		return nil
	}
	return ds.Headers()
}

// YAxisOptions returns the headers selectable for the Y axis.
func YAxisOptions(ds *models.Dataset, t models.ChartType) []string {
	if !RequiresNumericY(t) {
		return XAxisOptions(ds, t)
	}
	return NumericColumns(ds)
}

// Reason explains why a configuration cannot be rendered.
type Reason string

const (
	// ReasonNoDataset means no dataset is active.
	ReasonNoDataset Reason = "no dataset"
	// ReasonAxisUnset means an axis has no header bound.
	ReasonAxisUnset Reason = "axis unset"
	// ReasonUnknownColumn means an axis names a header the dataset lacks.
	ReasonUnknownColumn Reason = "unknown column"
	// ReasonNotNumeric means the chart type needs a numeric Y column.
	ReasonNotNumeric Reason = "non-numeric Y column"
	// ReasonUnknownType means the chart type is not supported.
	ReasonUnknownType Reason = "unknown chart type"
)

// IncompleteError reports a configuration that is not yet renderable.
type IncompleteError struct {
	Axis   string // "x", "y" or "" when not axis specific
	Column string
	Reason Reason
}

func (e *IncompleteError) Error() string {
	switch {
	case e.Axis == "":
		return fmt.Sprintf("configuration incomplete: %s", e.Reason)
	case e.Column == "":
		return fmt.Sprintf("configuration incomplete: %s axis: %s", e.Axis, e.Reason)
	default:
		return fmt.Sprintf("configuration incomplete: %s axis %q: %s", e.Axis, e.Column, e.Reason)
	}
}

// Check returns nil when cfg can be rendered against ds, or an
// *IncompleteError describing the first violation.
func Check(ds *models.Dataset, cfg models.ChartConfig) error {
	if ds == nil {
		return &IncompleteError{Reason: ReasonNoDataset}
	}
	if _, err := models.ParseChartType(string(cfg.Type)); err != nil {
		return &IncompleteError{Column: string(cfg.Type), Reason: ReasonUnknownType}
	}
	if cfg.XAxis == "" {
		return &IncompleteError{Axis: "x", Reason: ReasonAxisUnset}
	}
	if cfg.YAxis == "" {
		return &IncompleteError{Axis: "y", Reason: ReasonAxisUnset}
	}
	if ds.HeaderIndex(cfg.XAxis) < 0 {
		return &IncompleteError{Axis: "x", Column: cfg.XAxis, Reason: ReasonUnknownColumn}
	}
	yIdx := ds.HeaderIndex(cfg.YAxis)
	if yIdx < 0 {
		return &IncompleteError{Axis: "y", Column: cfg.YAxis, Reason: ReasonUnknownColumn}
	}
	if RequiresNumericY(cfg.Type) && !IsNumericColumn(ds, yIdx) {
		return &IncompleteError{Axis: "y", Column: cfg.YAxis, Reason: ReasonNotNumeric}
	}
	return nil
}

// Renderable reports whether cfg can be rendered against ds.
func Renderable(ds *models.Dataset, cfg models.ChartConfig) bool {
	return Check(ds, cfg) == nil
}
