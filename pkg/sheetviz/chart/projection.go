package chart

import (
	"fmt"
	"math"

	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/models"
)

const (
	// MaxColumns3D bounds the rows a 3D column scene draws.
	MaxColumns3D = 20
	// ColumnHeight is the scene height the largest 3D column is scaled to.
	ColumnHeight = 8.0
	// ColumnSpacing is the distance between neighbouring 3D columns.
	ColumnSpacing = 2.0
	// UnknownLabel names the pie group of rows with a blank X cell.
	UnknownLabel = "Unknown"
)

// Project computes the view for cfg over ds. The second result is false
// when the configuration is not renderable; callers should then show an
// incomplete-configuration state instead of a chart.
func Project(ds *models.Dataset, cfg models.ChartConfig) (models.View, bool) {
	if !Renderable(ds, cfg) {
		return models.View{}, false
	}

	view := models.View{
		Type:   cfg.Type,
		Title:  cfg.Title,
		XLabel: cfg.XAxis,
		YLabel: cfg.YAxis,
	}
	x, y := ds.HeaderIndex(cfg.XAxis), ds.HeaderIndex(cfg.YAxis)

	switch cfg.Type {
	case models.ChartPie:
		view.Categories = AggregateByCategory(ds, x, y)
	case models.ChartScatter:
		view.Points = PointPairs(ds, x, y)
	case models.ChartColumn3D:
		view.Columns = ScaledColumns(ds, x, y)
	default:
		view.Categories = CategorySeries(ds, x, y)
	}
	return view, true
}

// CategorySeries returns one (label, value) pair per row in row order.
// Values that do not coerce read as 0.
func CategorySeries(ds *models.Dataset, x, y int) []models.CategoryPoint {
	out := make([]models.CategoryPoint, ds.NumRows())
	for row := range out {
		out[row] = models.CategoryPoint{
			Label: ds.Cell(row, x).String(),
			Value: ds.Cell(row, y).FloatOr(0),
		}
	}
	return out
}

// AggregateByCategory sums Y values per distinct X label, in first-seen
// order. Labels match exactly; blank X cells group under UnknownLabel.
func AggregateByCategory(ds *models.Dataset, x, y int) []models.CategoryPoint {
	var out []models.CategoryPoint
	index := make(map[string]int)
	for row := 0; row < ds.NumRows(); row++ {
		label := ds.Cell(row, x).String()
		if label == "" {
			label = UnknownLabel
		}
		i, ok := index[label]
		if !ok {
			i = len(out)
			index[label] = i
			out = append(out, models.CategoryPoint{Label: label})
		}
		out[i].Value = clampSum(out[i].Value + ds.Cell(row, y).FloatOr(0))
	}
	return out
}

// clampSum keeps a running total finite when finite addends overflow.
func clampSum(v float64) float64 {
	if math.IsInf(v, 0) {
		return math.Copysign(math.MaxFloat64, v)
	}
	return v
}

// PointPairs returns the numeric (x, y) pair of each row. Rows where either
// cell fails to coerce are dropped.
func PointPairs(ds *models.Dataset, x, y int) []models.XYPoint {
	var out []models.XYPoint
	for row := 0; row < ds.NumRows(); row++ {
		xv, ok := ds.Cell(row, x).Float()
		if !ok {
			continue
		}
		yv, ok := ds.Cell(row, y).Float()
		if !ok {
			continue
		}
		out = append(out, models.XYPoint{X: xv, Y: yv})
	}
	return out
}

// ScaledColumns projects at most the first MaxColumns3D rows into columns
// whose heights are proportional to their Y value, with the largest value
// at ColumnHeight. Rows with a non-numeric Y are dropped. When every value
// is zero all heights are zero.
func ScaledColumns(ds *models.Dataset, x, y int) []models.Column3D {
	n := ds.NumRows()
	if n > MaxColumns3D {
		n = MaxColumns3D
	}

	var out []models.Column3D
	for row := 0; row < n; row++ {
		v, ok := ds.Cell(row, y).Float()
		if !ok {
			continue
		}
		label := ds.Cell(row, x).String()
		if label == "" {
			label = fmt.Sprintf("Item %d", row+1)
		}
		out = append(out, models.Column3D{
			Label: label,
			Value: v,
			X:     float64(len(out)) * ColumnSpacing,
		})
	}

	scale := columnScale(out)
	for i := range out {
		if scale != 0 {
			out[i].Height = out[i].Value / scale * ColumnHeight
		}
	}
	return out
}

// columnScale returns the divisor mapping values to heights: the largest
// value when positive, otherwise the largest magnitude.
func columnScale(cols []models.Column3D) float64 {
	var maxVal, maxAbs float64
	for i, c := range cols {
		if i == 0 || c.Value > maxVal {
			maxVal = c.Value
		}
		if a := math.Abs(c.Value); a > maxAbs {
			maxAbs = a
		}
	}
	if maxVal > 0 {
		return maxVal
	}
	return maxAbs
}
