// Package output serializes datasets, views and insights to JSON.
package output

import (
	"encoding/json"
	"time"

	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/chart"
	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/models"
)

// DatasetSummary is the JSON form of a dataset listing entry.
type DatasetSummary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	UploadDate time.Time `json:"uploadDate"`
	Size       int64     `json:"size"`
	Rows       int       `json:"rows"`
	Columns    int       `json:"columns"`
	Active     bool      `json:"active,omitempty"`
}

// Preview is the JSON form of a dataset preview.
type Preview struct {
	DatasetSummary
	Headers        []string        `json:"headers"`
	Rows           [][]models.Cell `json:"rows"`
	Stats          models.Stats    `json:"stats"`
	NumericColumns []string        `json:"numeric_columns"`
}

// Summarize builds a listing entry for ds.
func Summarize(ds *models.Dataset, active bool) DatasetSummary {
	return DatasetSummary{
		ID:         ds.ID(),
		Name:       ds.Name(),
		UploadDate: ds.UploadedAt(),
		Size:       ds.Size(),
		Rows:       ds.NumRows(),
		Columns:    ds.NumColumns(),
		Active:     active,
	}
}

// NewPreview builds a preview of the first n rows of ds.
func NewPreview(ds *models.Dataset, n int, active bool) Preview {
	numeric := chart.NumericColumns(ds)
	if numeric == nil {
		numeric = []string{}
	}
	return Preview{
		DatasetSummary: Summarize(ds, active),
		Headers:        ds.Headers(),
		Rows:           ds.Preview(n),
		Stats:          ds.Stats(),
		NumericColumns: numeric,
	}
}

// ToJSON serializes any value, optionally indented.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// ViewToJSON serializes a chart view.
func ViewToJSON(view *models.View, pretty bool) ([]byte, error) {
	return ToJSON(view, pretty)
}

// InsightsToJSON serializes insights; nil becomes an empty array.
func InsightsToJSON(insights []models.Insight, pretty bool) ([]byte, error) {
	if insights == nil {
		insights = []models.Insight{}
	}
	return ToJSON(insights, pretty)
}
