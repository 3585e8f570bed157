package coordinator

import (
	"github.com/soyeahso/switchboard/internal/domain"
)

// ViewRegistry owns one binding record per display surface.
//
// Like StateStore, it carries no lock of its own; the Coordinator is the
// single mutation authority. The registry knows nothing about the reverse
// index, keeping the two independently testable.
type ViewRegistry struct {
	views map[string]*domain.ViewState
}

// NewViewRegistry creates an empty registry.
func NewViewRegistry() *ViewRegistry {
	return &ViewRegistry{views: make(map[string]*domain.ViewState)}
}

// Register creates an unbound view. Re-registering an existing id is
// idempotent and returns the existing state unchanged.
func (r *ViewRegistry) Register(viewID string) domain.ViewState {
	if v, ok := r.views[viewID]; ok {
		return *v
	}
	v := &domain.ViewState{ViewID: viewID}
	r.views[viewID] = v
	return *v
}

// Unregister removes the view. The caller is responsible for removing it
// from the reverse index as well.
func (r *ViewRegistry) Unregister(viewID string) {
	delete(r.views, viewID)
}

// Bind updates the view's current key. A bind for an unregistered view is a
// no-op: a surface may legitimately be torn down concurrently with a pending
// bind request.
func (r *ViewRegistry) Bind(viewID string, key domain.SessionKey) {
	if v, ok := r.views[viewID]; ok {
		v.Key = key
	}
}

// Get returns a copy of the view's state.
func (r *ViewRegistry) Get(viewID string) (domain.ViewState, bool) {
	v, ok := r.views[viewID]
	if !ok {
		return domain.ViewState{}, false
	}
	return *v, true
}

// Count returns the number of registered views.
func (r *ViewRegistry) Count() int {
	return len(r.views)
}
