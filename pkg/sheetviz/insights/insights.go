// Package insights produces short advisory observations about a chart.
package insights

import (
	"fmt"
	"math"
	"sort"

	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/chart"
	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/models"
)

// Generator produces insights for a dataset and chart configuration.
type Generator interface {
	Generate(ds *models.Dataset, cfg models.ChartConfig) []models.Insight
}

// Confidence scores reported for each insight kind.
const (
	TrendConfidence          = 85
	OutlierConfidence        = 92
	CorrelationConfidence    = 78
	RecommendationConfidence = 90
)

// OutlierThreshold is the robust z-score above which a value is an outlier.
const OutlierThreshold = 3.5

// Heuristic derives insights from simple statistics over the bound columns.
// Its output is deterministic.
type Heuristic struct{}

// Generate returns trend, outlier, correlation and recommendation insights,
// or nil when cfg is not renderable against ds.
func (Heuristic) Generate(ds *models.Dataset, cfg models.ChartConfig) []models.Insight {
	if !chart.Renderable(ds, cfg) {
		return nil
	}
	x, y := ds.HeaderIndex(cfg.XAxis), ds.HeaderIndex(cfg.YAxis)
	values := numericValues(ds, y)

	return []models.Insight{
		trendInsight(cfg, values),
		outlierInsight(cfg, values),
		correlationInsight(cfg, chart.PointPairs(ds, x, y)),
		recommendationInsight(cfg),
	}
}

func numericValues(ds *models.Dataset, col int) []float64 {
	var out []float64
	for row := 0; row < ds.NumRows(); row++ {
		if v, ok := ds.Cell(row, col).Float(); ok {
			out = append(out, v)
		}
	}
	return out
}

func trendInsight(cfg models.ChartConfig, values []float64) models.Insight {
	in := models.Insight{
		Kind:       models.InsightTrend,
		Title:      "Data Trend Analysis",
		Confidence: TrendConfidence,
	}

	if len(values) < 2 {
		in.Content = fmt.Sprintf("The %s column has too few numeric values to show a trend.", cfg.YAxis)
		return in
	}

	first, last := values[0], values[len(values)-1]
	direction := "increase"
	if last < first {
		direction = "decrease"
	}
	switch {
	case first == last:
		in.Content = fmt.Sprintf("Values in the %s column end where they start (%s); the series is flat overall.",
			cfg.YAxis, formatValue(first))
	case first == 0:
		in.Content = fmt.Sprintf("Based on the %s column, there's an absolute %s of %s over the dataset range.",
			cfg.YAxis, direction, formatValue(math.Abs(last-first)))
	default:
		pct := math.Round(math.Abs(last-first) / math.Abs(first) * 100)
		in.Content = fmt.Sprintf("Based on the %s column, there's a %.0f%% %s in values over the dataset range.",
			cfg.YAxis, pct, direction)
	}
	return in
}

func outlierInsight(cfg models.ChartConfig, values []float64) models.Insight {
	n := countOutliers(values)
	in := models.Insight{
		Kind:       models.InsightOutlier,
		Title:      "Outlier Detection",
		Confidence: OutlierConfidence,
	}
	switch n {
	case 0:
		in.Content = fmt.Sprintf("No outliers found in the %s column; values stay close to the median.", cfg.YAxis)
	case 1:
		in.Content = fmt.Sprintf("Identified 1 potential outlier in the %s column. It differs significantly from the norm and might require investigation.", cfg.YAxis)
	default:
		in.Content = fmt.Sprintf("Identified %d potential outliers in the %s column. These values are significantly different from the norm and might require investigation.", n, cfg.YAxis)
	}
	return in
}

// countOutliers counts values whose modified z-score, based on the median
// absolute deviation, exceeds OutlierThreshold.
func countOutliers(values []float64) int {
	if len(values) < 3 {
		return 0
	}
	med := median(values)
	deviations := make([]float64, len(values))
	for i, v := range values {
		deviations[i] = math.Abs(v - med)
	}
	mad := median(deviations)
	if mad == 0 {
		return 0
	}

	n := 0
	for _, v := range values {
		if 0.6745*math.Abs(v-med)/mad > OutlierThreshold {
			n++
		}
	}
	return n
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func correlationInsight(cfg models.ChartConfig, points []models.XYPoint) models.Insight {
	in := models.Insight{
		Kind:       models.InsightCorrelation,
		Title:      "Pattern Recognition",
		Confidence: CorrelationConfidence,
	}

	r, ok := pearson(points)
	if !ok {
		in.Content = fmt.Sprintf("%s is not numeric enough to measure a correlation with %s; compare categories instead.",
			cfg.XAxis, cfg.YAxis)
		return in
	}

	strength := "Weak"
	switch a := math.Abs(r); {
	case a >= 0.7:
		strength = "Strong"
	case a >= 0.4:
		strength = "Moderate"
	}
	sign := "positive"
	if r < 0 {
		sign = "negative"
	}
	in.Content = fmt.Sprintf("%s %s correlation (r = %.2f) detected between %s and %s.",
		strength, sign, r, cfg.XAxis, cfg.YAxis)
	return in
}

// pearson returns the correlation coefficient of the points, or false when
// it is undefined (fewer than two points or a constant coordinate).
func pearson(points []models.XYPoint) (float64, bool) {
	n := float64(len(points))
	if len(points) < 2 {
		return 0, false
	}
	var sx, sy float64
	for _, p := range points {
		if math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return 0, false
		}
		sx += p.X
		sy += p.Y
	}
	mx, my := sx/n, sy/n

	var cov, vx, vy float64
	for _, p := range points {
		dx, dy := p.X-mx, p.Y-my
		cov += dx * dy
		vx += dx * dx
		vy += dy * dy
	}
	if vx == 0 || vy == 0 {
		return 0, false
	}
	return cov / math.Sqrt(vx*vy), true
}

func recommendationInsight(cfg models.ChartConfig) models.Insight {
	alt := "scatter plot to highlight correlations"
	if cfg.Type == models.ChartBar {
		alt = "line chart to show trends over time"
	}
	return models.Insight{
		Kind:       models.InsightRecommendation,
		Title:      "Visualization Recommendation",
		Content:    fmt.Sprintf("For your current data structure, consider using a %s as an alternative visualization.", alt),
		Confidence: RecommendationConfidence,
	}
}

func formatValue(v float64) string {
	return models.Num(v).String()
}
