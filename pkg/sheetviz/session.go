package sheetviz

import (
	"context"
	"io"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/chart"
	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/export"
	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/models"
	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/registry"
	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/remote"
	"golang.org/x/sync/semaphore"
)

// Session is the state of one user: the datasets they loaded, the active
// one, and the chart configuration bound to it. Methods are safe for
// concurrent use.
type Session struct {
	opts   Options
	log    *logrus.Logger
	remote *remote.Client
	ingest *semaphore.Weighted

	mu     sync.RWMutex
	reg    *registry.Registry
	config models.ChartConfig
	user   *remote.User
}

// NewSession creates a session. A remote client is attached when
// opts.APIBaseURL is set.
func NewSession(opts Options) *Session {
	s := &Session{
		opts:   opts,
		log:    opts.logger(),
		ingest: semaphore.NewWeighted(1),
		reg:    registry.New(),
		config: models.DefaultChartConfig(),
	}
	if opts.APIBaseURL != "" {
		s.remote = remote.New(opts.APIBaseURL,
			remote.WithHTTPClient(opts.HTTPClient),
			remote.WithToken(opts.Token),
		)
	}
	return s
}

// Close drops every dataset, the configuration and the token.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reg = registry.New()
	s.config = models.DefaultChartConfig()
	s.user = nil
	if s.remote != nil {
		s.remote.SetToken("")
	}
	s.log.Debug("session closed")
}

// Remote reports whether the session talks to a backend.
func (s *Session) Remote() bool {
	return s.remote != nil
}

// Upload loads the file at path into the session and makes it active.
func (s *Session) Upload(ctx context.Context, path string) (*models.Dataset, error) {
	if !s.ingest.TryAcquire(1) {
		return nil, ErrBusy
	}
	defer s.ingest.Release(1)

	ds, err := LoadFile(path, s.opts.Parser)
	if err != nil {
		s.log.WithError(err).WithField("path", path).Warn("upload failed")
		return nil, err
	}
	return s.admit(ctx, ds)
}

// Ingest loads a file read from r into the session and makes it active.
func (s *Session) Ingest(ctx context.Context, name string, r io.Reader, size int64) (*models.Dataset, error) {
	if !s.ingest.TryAcquire(1) {
		return nil, ErrBusy
	}
	defer s.ingest.Release(1)

	ds, err := Load(filepath.Base(name), r, size, s.opts.Parser)
	if err != nil {
		s.log.WithError(err).WithField("file", name).Warn("upload failed")
		return nil, err
	}
	return s.admit(ctx, ds)
}

func (s *Session) admit(ctx context.Context, ds *models.Dataset) (*models.Dataset, error) {
	if s.remote != nil {
		if err := s.remote.Upload(ctx, ds); err != nil {
			s.log.WithError(err).WithField("file", ds.Name()).Warn("remote upload failed")
			return nil, NewIngestError(ds.Name(), "submit", err)
		}
	}

	s.mu.Lock()
	s.reg.Add(ds)
	s.reg.SetActive(ds.ID())
	s.reconcileLocked()
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"id":      ds.ID(),
		"file":    ds.Name(),
		"rows":    ds.NumRows(),
		"columns": ds.NumColumns(),
	}).Info("dataset loaded")
	return ds, nil
}

// Login authenticates against the backend. When SyncOnLogin is enabled the
// user's datasets replace the local ones.
func (s *Session) Login(ctx context.Context, email, password string) (remote.User, error) {
	if s.remote == nil {
		return remote.User{}, ErrNoRemote
	}
	user, err := s.remote.Login(ctx, email, password)
	if err != nil {
		s.log.WithError(err).WithField("email", email).Warn("login failed")
		return remote.User{}, err
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	s.log.WithField("user", user.ID).Info("logged in")

	if s.opts.ShouldSyncOnLogin() {
		if err := s.Sync(ctx); err != nil {
			return user, err
		}
	}
	return user, nil
}

// Logout forgets the token and every dataset.
func (s *Session) Logout() {
	s.Close()
}

// User returns the logged-in user, if any.
func (s *Session) User() (remote.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return remote.User{}, false
	}
	return *s.user, true
}

// Token returns the bearer token in use, or "" for a local session.
func (s *Session) Token() string {
	if s.remote == nil {
		return ""
	}
	return s.remote.Token()
}

// Sync replaces the local datasets with the backend's list.
func (s *Session) Sync(ctx context.Context) error {
	if s.remote == nil {
		return ErrNoRemote
	}
	datasets, err := s.remote.List(ctx)
	if err != nil {
		s.log.WithError(err).Warn("sync failed")
		return err
	}

	s.mu.Lock()
	s.reg.ReplaceAll(datasets)
	s.reconcileLocked()
	s.mu.Unlock()

	s.log.WithField("datasets", len(datasets)).Info("datasets synced")
	return nil
}

// Delete removes a dataset from the backend and then from the session.
func (s *Session) Delete(ctx context.Context, id string) error {
	s.mu.RLock()
	found := s.reg.Get(id) != nil
	s.mu.RUnlock()
	if !found {
		return ErrNotFound
	}

	if s.remote != nil {
		if err := s.remote.Delete(ctx, id); err != nil {
			s.log.WithError(err).WithField("id", id).Warn("remote delete failed")
			return err
		}
	}

	s.mu.Lock()
	s.reg.Remove(id)
	s.reconcileLocked()
	s.mu.Unlock()

	s.log.WithField("id", id).Info("dataset deleted")
	return nil
}

// Activate makes the dataset with the given id active. An empty id clears
// the selection.
func (s *Session) Activate(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if s.reg.Get(id) == nil {
			return ErrNotFound
		}
	}
	s.reg.SetActive(id)
	s.reconcileLocked()
	s.log.WithField("id", id).Debug("dataset activated")
	return nil
}

// UpdateConfig merges p into the configuration and returns the result.
// While no dataset is active the patch is ignored.
func (s *Session) UpdateConfig(p models.ConfigPatch) models.ChartConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.reg.Active() == nil {
		return s.config
	}
	s.config = s.config.Apply(p)
	return s.config
}

// reconcileLocked keeps the configuration in step with the active dataset.
// Without one it is the default; otherwise axes naming missing headers are
// cleared.
func (s *Session) reconcileLocked() {
	ds := s.reg.Active()
	if ds == nil {
		s.config = models.DefaultChartConfig()
		return
	}
	if s.config.XAxis != "" && ds.HeaderIndex(s.config.XAxis) < 0 {
		s.config.XAxis = ""
	}
	if s.config.YAxis != "" && ds.HeaderIndex(s.config.YAxis) < 0 {
		s.config.YAxis = ""
	}
}

// Config returns the current chart configuration.
func (s *Session) Config() models.ChartConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Active returns the active dataset.
func (s *Session) Active() (*models.Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ds := s.reg.Active()
	return ds, ds != nil
}

// Datasets lists every dataset, newest first.
func (s *Session) Datasets() []*models.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reg.List()
}

// Preview returns the leading rows of the active dataset.
func (s *Session) Preview() ([]string, [][]models.Cell, bool) {
	ds, ok := s.Active()
	if !ok {
		return nil, nil, false
	}
	return ds.Headers(), ds.Preview(s.opts.PreviewLimit()), true
}

// View projects the active dataset through the configuration. It reports
// false while the chart is not renderable.
func (s *Session) View() (models.View, bool) {
	ds, cfg, ok := s.snapshot()
	if !ok {
		return models.View{}, false
	}
	return chart.Project(ds, cfg)
}

// Check explains why the current configuration is not renderable, or
// returns nil.
func (s *Session) Check() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return chart.Check(s.reg.Active(), s.config)
}

// Insights returns observations about the current chart.
func (s *Session) Insights() []models.Insight {
	ds, cfg, ok := s.snapshot()
	if !ok {
		return nil
	}
	return s.opts.generator().Generate(ds, cfg)
}

// AxisOptions returns the headers selectable for each axis under the
// current chart type.
func (s *Session) AxisOptions() (x, y []string) {
	ds, cfg, ok := s.snapshot()
	if !ok {
		return nil, nil
	}
	return chart.XAxisOptions(ds, cfg.Type), chart.YAxisOptions(ds, cfg.Type)
}

// ExportChart renders the current view to w and returns a suggested file
// name.
func (s *Session) ExportChart(w io.Writer, format export.Format, opts export.RenderOptions) (string, error) {
	view, ok := s.View()
	if !ok {
		return "", s.notRenderable()
	}
	if err := export.Render(w, format, view, opts); err != nil {
		return "", err
	}
	s.log.WithFields(logrus.Fields{
		"title":  view.Title,
		"format": format,
	}).Debug("chart exported")
	return export.Filename(view.Title, format), nil
}

// ExportDataset writes the active dataset to w and returns a suggested file
// name.
func (s *Session) ExportDataset(w io.Writer, format export.Format) (string, error) {
	ds, ok := s.Active()
	if !ok {
		return "", ErrNotFound
	}
	if err := export.WriteDataset(w, format, ds); err != nil {
		return "", err
	}
	base := ds.Name()
	if ext := filepath.Ext(base); ext != "" {
		base = base[:len(base)-len(ext)]
	}
	return export.Filename(base, format), nil
}

func (s *Session) notRenderable() error {
	if err := s.Check(); err != nil {
		return err
	}
	return export.ErrEmptyView
}

func (s *Session) snapshot() (*models.Dataset, models.ChartConfig, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ds := s.reg.Active()
	return ds, s.config, ds != nil
}
