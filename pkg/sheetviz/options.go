// Package sheetviz loads spreadsheets into per-user sessions and turns them
// into chart views.
package sheetviz

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/insights"
	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/models"
	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/parser"
)

// Options configures a Session.
type Options struct {
	// APIBaseURL is the backend address. Empty keeps the session local.
	APIBaseURL string
	// Token is a bearer token from an earlier login.
	Token string
	// HTTPClient overrides the client used for backend calls.
	HTTPClient *http.Client
	// Logger receives session events. If nil, the logrus standard logger is used.
	Logger *logrus.Logger
	// Parser configures file parsing.
	Parser parser.Options
	// Insights generates insight text. If nil, insights.Heuristic is used.
	Insights insights.Generator
	// PreviewRows limits Preview. If nil, defaults to models.DefaultPreviewRows.
	PreviewRows *int
	// SyncOnLogin fetches the user's datasets after Login.
	// If nil, defaults to true.
	SyncOnLogin *bool
}

// DefaultOptions returns options for a local session.
func DefaultOptions() Options {
	return Options{}
}

// ShouldSyncOnLogin returns whether Login also fetches datasets.
func (o Options) ShouldSyncOnLogin() bool {
	if o.SyncOnLogin != nil {
		return *o.SyncOnLogin
	}
	return true
}

// PreviewLimit returns the number of rows Preview shows.
func (o Options) PreviewLimit() int {
	if o.PreviewRows != nil && *o.PreviewRows >= 0 {
		return *o.PreviewRows
	}
	return models.DefaultPreviewRows
}

func (o Options) logger() *logrus.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return logrus.StandardLogger()
}

func (o Options) generator() insights.Generator {
	if o.Insights != nil {
		return o.Insights
	}
	return insights.Heuristic{}
}
