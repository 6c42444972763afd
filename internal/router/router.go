// Package router holds the active screen and switches it when navigation
// resolves to a different state. Unlike a stack router, there is no push
// or pop: storage decides the screen, so switching always replaces.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/radarsat1/re-up/internal/nav"
	"github.com/radarsat1/re-up/internal/screen"
)

// Router tracks the active screen and the resolution it was built from.
type Router struct {
	res    nav.Resolution
	active screen.Screen
}

// New creates an empty Router; the first Switch installs a screen.
func New() *Router {
	return &Router{}
}

// Resolution returns the navigation resolution the active screen was
// built from.
func (r *Router) Resolution() nav.Resolution {
	return r.res
}

// Active returns the current screen.
func (r *Router) Active() screen.Screen {
	return r.active
}

// Switch replaces the active screen and calls its Init. It is a no-op
// when the resolution has not changed, so in-screen state (cursor
// position, typed input) survives reconciliation.
func (r *Router) Switch(res nav.Resolution, build func() screen.Screen) tea.Cmd {
	if res == r.res && r.active != nil {
		return nil
	}
	r.res = res
	r.active = build()
	return r.active.Init()
}

// Update forwards a message to the active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if r.active == nil {
		return nil
	}
	updated, cmd := r.active.Update(msg)
	r.active = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	if r.active == nil {
		return ""
	}
	return r.active.View(width, height)
}
