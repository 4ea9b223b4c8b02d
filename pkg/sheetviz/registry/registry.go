// Package registry holds the datasets known to a session.
package registry

import "github.com/ukaji3/sheetviz-go/pkg/sheetviz/models"

// Registry is an ordered collection of datasets, newest first, with at most
// one active dataset. The active id always refers to a dataset in the
// collection. A Registry is not safe for concurrent use.
type Registry struct {
	datasets []*models.Dataset
	activeID string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{}
}

// Add inserts ds at the front. The active dataset is unchanged.
func (r *Registry) Add(ds *models.Dataset) {
	if ds == nil {
		return
	}
	r.datasets = append([]*models.Dataset{ds}, r.datasets...)
}

// ReplaceAll swaps the whole collection. The active id survives only if it
// still resolves.
func (r *Registry) ReplaceAll(datasets []*models.Dataset) {
	next := make([]*models.Dataset, 0, len(datasets))
	for _, ds := range datasets {
		if ds != nil {
			next = append(next, ds)
		}
	}
	r.datasets = next
	if r.index(r.activeID) < 0 {
		r.activeID = ""
	}
}

// SetActive makes id the active dataset. An empty id clears the selection;
// an unknown id is ignored.
func (r *Registry) SetActive(id string) {
	if id == "" {
		r.activeID = ""
		return
	}
	if r.index(id) >= 0 {
		r.activeID = id
	}
}

// Remove deletes the dataset with the given id, clearing the active id if it
// pointed there. Unknown ids are a no-op.
func (r *Registry) Remove(id string) {
	i := r.index(id)
	if i < 0 {
		return
	}
	r.datasets = append(r.datasets[:i:i], r.datasets[i+1:]...)
	if r.activeID == id {
		r.activeID = ""
	}
}

// Active returns the active dataset, or nil.
func (r *Registry) Active() *models.Dataset {
	return r.Get(r.activeID)
}

// ActiveID returns the active id, or "".
func (r *Registry) ActiveID() string {
	return r.activeID
}

// Get returns the dataset with the given id, or nil.
func (r *Registry) Get(id string) *models.Dataset {
	if i := r.index(id); i >= 0 {
		return r.datasets[i]
	}
	return nil
}

// List returns the datasets in registry order.
func (r *Registry) List() []*models.Dataset {
	out := make([]*models.Dataset, len(r.datasets))
	copy(out, r.datasets)
	return out
}

// Len returns the number of datasets.
func (r *Registry) Len() int {
	return len(r.datasets)
}

func (r *Registry) index(id string) int {
	if id == "" {
		return -1
	}
	for i, ds := range r.datasets {
		if ds.ID() == id {
			return i
		}
	}
	return -1
}
