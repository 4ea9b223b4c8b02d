// Package export renders chart views to images and documents, and writes
// datasets to interchange formats.
package export

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/models"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	// ErrEmptyView indicates a view with nothing to draw.
	ErrEmptyView = errors.New("empty view")

	// ErrNonFiniteValue indicates a view holding NaN or an infinity.
	ErrNonFiniteValue = errors.New("non-finite value in view")
)

// Format is an export file format.
type Format string

const (
	// FormatPNG is a raster chart image.
	FormatPNG Format = "png"
	// FormatPDF is a one-page document holding the chart image.
	FormatPDF Format = "pdf"
	// FormatParquet is a Snappy-compressed Parquet dataset file.
	FormatParquet Format = "parquet"
	// FormatCSV is a comma-separated dataset file.
	FormatCSV Format = "csv"
)

// ParseFormat converts a format name, ignoring case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatPNG, FormatPDF, FormatParquet, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("invalid export format: %q", s)
	}
}

// Default image size in pixels.
const (
	DefaultWidth  = 1024
	DefaultHeight = 576
)

// RenderOptions sets the image size. Zero values use the defaults.
type RenderOptions struct {
	Width  int
	Height int
}

func (o RenderOptions) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

var palette = []drawing.Color{
	drawing.ColorFromHex("3B82F6"),
	drawing.ColorFromHex("8B5CF6"),
	drawing.ColorFromHex("10B981"),
	drawing.ColorFromHex("F59E0B"),
	drawing.ColorFromHex("EF4444"),
	drawing.ColorFromHex("06B6D4"),
	drawing.ColorFromHex("84CC16"),
	drawing.ColorFromHex("F97316"),
	drawing.ColorFromHex("EC4899"),
	drawing.ColorFromHex("6366F1"),
}

// RenderPNG draws the view as a PNG image.
func RenderPNG(w io.Writer, view models.View, opts RenderOptions) error {
	if view.Len() == 0 {
		return ErrEmptyView
	}
	if err := checkFinite(view); err != nil {
		return err
	}
	width, height := opts.size()

	var err error
	switch view.Type {
	case models.ChartPie:
		err = renderPie(w, view, width, height)
	case models.ChartScatter:
		err = renderScatter(w, view, width, height)
	case models.ChartLine:
		err = renderLine(w, view, width, height)
	case models.ChartColumn3D:
		bars := make([]chart.Value, len(view.Columns))
		for i, c := range view.Columns {
			bars[i] = chart.Value{Label: c.Label, Value: c.Height}
		}
		err = renderBars(w, view, bars, width, height)
	default:
		bars := make([]chart.Value, len(view.Categories))
		for i, c := range view.Categories {
			bars[i] = chart.Value{Label: c.Label, Value: c.Value}
		}
		err = renderBars(w, view, bars, width, height)
	}
	if err != nil {
		return fmt.Errorf("render %s chart: %w", view.Type, err)
	}
	return nil
}

// checkFinite rejects views go-chart cannot draw. Infinite bar heights
// never finish rasterizing.
func checkFinite(view models.View) error {
	bad := func(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }
	for _, c := range view.Categories {
		if bad(c.Value) {
			return fmt.Errorf("%w: %q = %v", ErrNonFiniteValue, c.Label, c.Value)
		}
	}
	for _, p := range view.Points {
		if bad(p.X) || bad(p.Y) {
			return fmt.Errorf("%w: (%v, %v)", ErrNonFiniteValue, p.X, p.Y)
		}
	}
	for _, c := range view.Columns {
		if bad(c.Value) || bad(c.Height) || bad(c.X) {
			return fmt.Errorf("%w: %q = %v", ErrNonFiniteValue, c.Label, c.Value)
		}
	}
	return nil
}

func renderBars(w io.Writer, view models.View, bars []chart.Value, width, height int) error {
	values := make([]float64, len(bars))
	for i := range bars {
		values[i] = bars[i].Value
		bars[i].Style = chart.Style{
			FillColor:   palette[i%len(palette)],
			StrokeColor: palette[i%len(palette)],
		}
	}

	barWidth := (width - 100) / (2 * len(bars))
	if barWidth > 60 {
		barWidth = 60
	}
	if barWidth < 4 {
		barWidth = 4
	}

	graph := chart.BarChart{
		Title:    view.Title,
		Width:    width,
		Height:   height,
		BarWidth: barWidth,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Name:  view.YLabel,
			Range: paddedRange(values, true),
		},
		Bars: bars,
	}
	return graph.Render(chart.PNG, w)
}

func renderLine(w io.Writer, view models.View, width, height int) error {
	xs := make([]float64, len(view.Categories))
	ys := make([]float64, len(view.Categories))
	ticks := make([]chart.Tick, len(view.Categories))
	for i, c := range view.Categories {
		xs[i] = float64(i)
		ys[i] = c.Value
		ticks[i] = chart.Tick{Value: float64(i), Label: c.Label}
	}

	graph := chart.Chart{
		Title:  view.Title,
		Width:  width,
		Height: height,
		XAxis: chart.XAxis{
			Name:  view.XLabel,
			Ticks: ticks,
			Range: paddedRange(xs, false),
		},
		YAxis: chart.YAxis{
			Name:  view.YLabel,
			Range: paddedRange(ys, false),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    view.YLabel,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: palette[0],
					StrokeWidth: 2,
					DotColor:    palette[0],
					DotWidth:    3,
				},
			},
		},
	}
	return graph.Render(chart.PNG, w)
}

func renderScatter(w io.Writer, view models.View, width, height int) error {
	xs := make([]float64, len(view.Points))
	ys := make([]float64, len(view.Points))
	for i, p := range view.Points {
		xs[i], ys[i] = p.X, p.Y
	}

	graph := chart.Chart{
		Title:  view.Title,
		Width:  width,
		Height: height,
		XAxis: chart.XAxis{
			Name:  view.XLabel,
			Range: paddedRange(xs, false),
		},
		YAxis: chart.YAxis{
			Name:  view.YLabel,
			Range: paddedRange(ys, false),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    fmt.Sprintf("%s vs %s", view.YLabel, view.XLabel),
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    5,
					DotColor:    palette[0],
				},
			},
		},
	}
	return graph.Render(chart.PNG, w)
}

func renderPie(w io.Writer, view models.View, width, height int) error {
	var values []chart.Value
	for _, c := range view.Categories {
		// Slices cannot show negative or zero shares.
		if c.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: c.Label,
			Value: c.Value,
			Style: chart.Style{FillColor: palette[len(values)%len(palette)]},
		})
	}
	if len(values) == 0 {
		return ErrEmptyView
	}

	graph := chart.PieChart{
		Title:  view.Title,
		Width:  width,
		Height: height,
		Values: values,
	}
	return graph.Render(chart.PNG, w)
}

// paddedRange returns an axis range covering values that never has zero
// width. Bar axes always include zero.
func paddedRange(values []float64, includeZero bool) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 1) {
		lo, hi = 0, 1
	}
	if includeZero {
		lo = math.Min(lo, 0)
		hi = math.Max(hi, 0)
	}
	if hi == lo {
		lo, hi = lo-1, hi+1
	} else if !includeZero {
		pad := (hi - lo) * 0.05
		lo, hi = lo-pad, hi+pad
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

// Filename suggests a file name for an exported chart: the title (or
// "chart" when empty) with path separators replaced, plus the extension.
func Filename(title string, format Format) string {
	name := strings.TrimSpace(title)
	if name == "" {
		name = "chart"
	}
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}
		return r
	}, name)
	return name + "." + string(format)
}
