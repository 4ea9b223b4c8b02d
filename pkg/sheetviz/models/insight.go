package models

// InsightKind categorizes an insight.
type InsightKind string

const (
	// InsightTrend compares the first and last Y values.
	InsightTrend InsightKind = "trend"
	// InsightOutlier counts values far from the median.
	InsightOutlier InsightKind = "outlier"
	// InsightCorrelation describes how X and Y move together.
	InsightCorrelation InsightKind = "correlation"
	// InsightRecommendation suggests another chart type.
	InsightRecommendation InsightKind = "recommendation"
)

// Insight is a labelled natural-language observation about a dataset.
type Insight struct {
	// Kind categorizes the observation.
	Kind InsightKind `json:"type"`
	// Title is a short heading.
	Title string `json:"title"`
	// Content is the observation text.
	Content string `json:"content"`
	// Confidence is a score from 0 to 100.
	Confidence int `json:"confidence"`
}
