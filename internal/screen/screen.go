// Package screen defines the contract every screen implements and the
// shared messages screens use to talk to the root model.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/radarsat1/re-up/internal/ui/layout"
)

// Screen is one full-window view.
type Screen interface {
	// Init returns an initial command when the screen is first shown.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface for screens with custom
// footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// RefreshNavMsg asks the root model to recompute navigation from storage
// and switch to the resulting screen. Screens emit it after every domain
// mutation.
type RefreshNavMsg struct{}

// ErrMsg surfaces a scoped operation error in the root error banner. The
// current screen stays up.
type ErrMsg struct {
	Err error
}

// RefreshNav is a convenience command emitting RefreshNavMsg.
func RefreshNav() tea.Msg { return RefreshNavMsg{} }
