package export

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/chart"
	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/models"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func sampleViews() []models.View {
	cats := []models.CategoryPoint{{Label: "A", Value: 15}, {Label: "B", Value: 20}, {Label: "C", Value: 5}}
	return []models.View{
		{Type: models.ChartBar, Title: "Bar", XLabel: "City", YLabel: "Sales", Categories: cats},
		{Type: models.ChartLine, Title: "Line", XLabel: "City", YLabel: "Sales", Categories: cats},
		{Type: models.ChartPie, Title: "Pie", XLabel: "City", YLabel: "Sales", Categories: cats},
		{Type: models.ChartScatter, Title: "Scatter", XLabel: "x", YLabel: "y",
			Points: []models.XYPoint{{X: 1, Y: 2}, {X: 2, Y: 4}, {X: 3, Y: 5}}},
		{Type: models.ChartColumn3D, Title: "3D", XLabel: "City", YLabel: "Sales",
			Columns: []models.Column3D{{Label: "A", Value: 10, Height: 4}, {Label: "B", Value: 20, Height: 8, X: 2}}},
	}
}

func TestRenderPNG(t *testing.T) {
	for _, view := range sampleViews() {
		var buf bytes.Buffer
		if err := RenderPNG(&buf, view, RenderOptions{Width: 640, Height: 400}); err != nil {
			t.Errorf("RenderPNG(%s) failed: %v", view.Type, err)
			continue
		}
		if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
			t.Errorf("RenderPNG(%s) did not produce a PNG", view.Type)
		}
	}
}

func TestRenderSinglePoint(t *testing.T) {
	views := []models.View{
		{Type: models.ChartLine, Categories: []models.CategoryPoint{{Label: "only", Value: 3}}},
		{Type: models.ChartBar, Categories: []models.CategoryPoint{{Label: "zero", Value: 0}}},
		{Type: models.ChartScatter, Points: []models.XYPoint{{X: 1, Y: 1}}},
	}
	for _, view := range views {
		var buf bytes.Buffer
		if err := RenderPNG(&buf, view, RenderOptions{}); err != nil {
			t.Errorf("RenderPNG(%s) with one point failed: %v", view.Type, err)
		}
	}
}

func TestRenderEmptyView(t *testing.T) {
	tests := []models.View{
		{Type: models.ChartBar},
		{Type: models.ChartScatter},
		{Type: models.ChartPie, Categories: []models.CategoryPoint{{Label: "A", Value: 0}}},
	}
	for _, view := range tests {
		err := RenderPNG(&bytes.Buffer{}, view, RenderOptions{})
		if !errors.Is(err, ErrEmptyView) {
			t.Errorf("RenderPNG(%s) = %v, expected ErrEmptyView", view.Type, err)
		}
	}
}

func TestRenderPDF(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, FormatPDF, sampleViews()[0], RenderOptions{}); err != nil {
		t.Fatalf("Render PDF failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("expected PDF header, got %q", buf.Bytes()[:8])
	}

	if err := Render(&buf, FormatCSV, sampleViews()[0], RenderOptions{}); err == nil {
		t.Error("expected error for a data format")
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		title    string
		format   Format
		expected string
	}{
		{"Chart", FormatPNG, "Chart.png"},
		{"", FormatPDF, "chart.pdf"},
		{"  ", FormatPNG, "chart.png"},
		{"Q1/Q2 sales", FormatPNG, "Q1_Q2 sales.png"},
	}
	for _, tt := range tests {
		if got := Filename(tt.title, tt.format); got != tt.expected {
			t.Errorf("Filename(%q, %q) = %q, expected %q", tt.title, tt.format, got, tt.expected)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("PNG"); err != nil || f != FormatPNG {
		t.Errorf("ParseFormat(PNG) = (%q, %v)", f, err)
	}
	if _, err := ParseFormat("gif"); err == nil {
		t.Error("expected error for gif")
	}
}

func TestRenderRejectsNonFinite(t *testing.T) {
	inf := math.Inf(1)
	views := []models.View{
		{Type: models.ChartBar, Categories: []models.CategoryPoint{{Label: "a", Value: inf}, {Label: "b", Value: 2}}},
		{Type: models.ChartLine, Categories: []models.CategoryPoint{{Label: "a", Value: math.NaN()}}},
		{Type: models.ChartPie, Categories: []models.CategoryPoint{{Label: "a", Value: -inf}, {Label: "b", Value: 2}}},
		{Type: models.ChartScatter, Points: []models.XYPoint{{X: 1, Y: inf}}},
		{Type: models.ChartColumn3D, Columns: []models.Column3D{{Label: "a", Value: inf, Height: 8}}},
	}
	for _, view := range views {
		err := RenderPNG(&bytes.Buffer{}, view, RenderOptions{})
		if !errors.Is(err, ErrNonFiniteValue) {
			t.Errorf("RenderPNG(%s) = %v, expected ErrNonFiniteValue", view.Type, err)
		}
	}
}

func TestRenderInfinityCells(t *testing.T) {
	ds, err := models.NewDataset("inf.csv", 0, [][]models.Cell{
		{models.Str("k"), models.Str("v"), models.Str("n")},
		{models.Str("a"), models.Str("Infinity"), models.Num(1)},
		{models.Str("a"), models.Str("-1e400"), models.Num(2)},
		{models.Str("b"), models.Num(2), models.Num(3)},
		{models.Str("c"), models.Num(3), models.Num(4)},
	})
	if err != nil {
		t.Fatalf("NewDataset failed: %v", err)
	}

	tests := []struct {
		typ models.ChartType
		x   string
	}{
		{models.ChartBar, "k"},
		{models.ChartLine, "k"},
		{models.ChartPie, "k"},
		{models.ChartScatter, "n"},
		{models.ChartColumn3D, "k"},
	}
	for _, tt := range tests {
		view, ok := chart.Project(ds, models.ChartConfig{Type: tt.typ, XAxis: tt.x, YAxis: "v", Title: "Inf"})
		if !ok {
			t.Errorf("%s: expected renderable view", tt.typ)
			continue
		}
		var buf bytes.Buffer
		if err := RenderPNG(&buf, view, RenderOptions{Width: 320, Height: 240}); err != nil {
			t.Errorf("RenderPNG(%s) failed: %v", tt.typ, err)
			continue
		}
		if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
			t.Errorf("RenderPNG(%s) did not produce a PNG", tt.typ)
		}
	}
}
