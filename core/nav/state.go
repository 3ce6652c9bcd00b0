package nav

import "strconv"

// Store is the persistence port backing sidebar state across sessions.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Persisted keys.
const (
	keyExpandedMenu     = "nav.expandedMenu"
	keySidebarCollapsed = "nav.sidebarCollapsed"
)

// State is the sidebar's remembered UI state: which top-level submenu is
// expanded (at most one) and whether the sidebar is visually collapsed.
type State struct {
	ExpandedMenu     string
	SidebarCollapsed bool
}

func LoadState(store Store) State {
	var s State
	if v, ok := store.Get(keyExpandedMenu); ok {
		s.ExpandedMenu = v
	}
	if v, ok := store.Get(keySidebarCollapsed); ok {
		s.SidebarCollapsed, _ = strconv.ParseBool(v)
	}
	return s
}

func (s State) Save(store Store) error {
	if err := store.Set(keyExpandedMenu, s.ExpandedMenu); err != nil {
		return err
	}
	return store.Set(keySidebarCollapsed, strconv.FormatBool(s.SidebarCollapsed))
}

// Toggle expands the submenu with the given label, collapsing whichever was
// open; toggling the open one collapses it.
func (s *State) Toggle(label string) {
	if s.ExpandedMenu == label {
		s.ExpandedMenu = ""
		return
	}
	s.ExpandedMenu = label
}

func (s *State) ToggleSidebar() {
	s.SidebarCollapsed = !s.SidebarCollapsed
}

// SyncToRoute force-expands the top-level submenu owning the active route,
// collapsing the rest. A route owned by no submenu leaves the state alone.
func (s *State) SyncToRoute(menu []Item, route string) {
	for _, it := range menu {
		if len(it.Children) == 0 {
			continue
		}
		if it.OwnsRoute(route) {
			s.ExpandedMenu = it.Label
			return
		}
	}
}
