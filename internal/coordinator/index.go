package coordinator

import (
	"sort"

	"github.com/soyeahso/switchboard/internal/domain"
)

// ViewIndex is the reverse mapping from session key to the set of views
// currently bound to it. Entries are pruned as soon as their set empties, so
// binding churn does not grow memory.
type ViewIndex struct {
	byKey map[domain.SessionKey]map[string]struct{}
}

// NewViewIndex creates an empty index.
func NewViewIndex() *ViewIndex {
	return &ViewIndex{byKey: make(map[domain.SessionKey]map[string]struct{})}
}

// Add indexes viewID under key.
func (x *ViewIndex) Add(key domain.SessionKey, viewID string) {
	set, ok := x.byKey[key]
	if !ok {
		set = make(map[string]struct{})
		x.byKey[key] = set
	}
	set[viewID] = struct{}{}
}

// Remove drops viewID from key's entry, deleting the entry entirely once it
// is empty.
func (x *ViewIndex) Remove(key domain.SessionKey, viewID string) {
	set, ok := x.byKey[key]
	if !ok {
		return
	}
	delete(set, viewID)
	if len(set) == 0 {
		delete(x.byKey, key)
	}
}

// ViewsFor returns the views bound to key, sorted for deterministic fan-out.
// Unknown keys yield an empty slice, never nil.
func (x *ViewIndex) ViewsFor(key domain.SessionKey) []string {
	set := x.byKey[key]
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Rebind moves viewID from oldKey to newKey in one step, so no reader ever
// observes the view indexed under neither or both keys. An oldKey with an
// empty SessionID means the view was previously unbound. Rebinding to the
// key the view already holds is a no-op.
func (x *ViewIndex) Rebind(viewID string, oldKey, newKey domain.SessionKey) {
	if oldKey == newKey {
		return
	}
	if oldKey.SessionID != "" {
		x.Remove(oldKey, viewID)
	}
	if newKey.SessionID != "" {
		x.Add(newKey, viewID)
	}
}

// Keys returns all session keys that currently have at least one bound view.
func (x *ViewIndex) Keys() []domain.SessionKey {
	keys := make([]domain.SessionKey, 0, len(x.byKey))
	for key := range x.byKey {
		keys = append(keys, key)
	}
	return keys
}
