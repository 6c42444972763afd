// Package app is the root Bubble Tea model. It owns the window frame, the
// dismissible error banner, and navigation reconciliation: after every
// domain mutation it recomputes the screen from storage.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/radarsat1/re-up/internal/nav"
	"github.com/radarsat1/re-up/internal/router"
	"github.com/radarsat1/re-up/internal/screen"
	"github.com/radarsat1/re-up/internal/screens/feedback"
	"github.com/radarsat1/re-up/internal/screens/planview"
	"github.com/radarsat1/re-up/internal/screens/quiz"
	"github.com/radarsat1/re-up/internal/screens/setup"
	"github.com/radarsat1/re-up/internal/session"
	"github.com/radarsat1/re-up/internal/store"
	"github.com/radarsat1/re-up/internal/ui/layout"
	"github.com/radarsat1/re-up/internal/ui/theme"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	kv     store.KV
	engine *session.Engine
	router *router.Router
	width  int
	height int
	errMsg string
}

func newAppModel(kv store.KV, engine *session.Engine) AppModel {
	m := AppModel{
		kv:     kv,
		engine: engine,
		router: router.New(),
	}
	return m
}

// reconcile recomputes navigation from storage and switches screens.
func (m *AppModel) reconcile() tea.Cmd {
	res := nav.Resolve(m.kv)
	return m.router.Switch(res, func() screen.Screen {
		switch res.State {
		case nav.StateQuiz:
			return quiz.New(m.engine, res.SessionID)
		case nav.StateFeedback:
			return feedback.New(m.engine, res.SessionID)
		case nav.StateStudyPlan:
			return planview.New(m.engine, res.PlanID)
		default:
			return setup.New(m.engine)
		}
	})
}

func (m AppModel) Init() tea.Cmd {
	return m.reconcile()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.RefreshNavMsg:
		return m, m.reconcile()

	case screen.ErrMsg:
		m.errMsg = msg.Err.Error()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		// Any other key dismisses the error banner and still reaches
		// the active screen.
		m.errMsg = ""
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	topic := ""
	if res := m.router.Resolution(); res.PlanID != "" {
		if plan, err := m.engine.Plan(res.PlanID); err == nil {
			topic = plan.Topic
		}
	}

	header := layout.RenderHeader(title, topic, m.width)

	hints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		hints = hp.KeyHints()
	}
	footer := layout.RenderFooter(hints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	if m.errMsg != "" {
		banner := theme.ErrorBanner.Width(m.width - 4).Render(m.errMsg)
		content = banner + "\n" + content
	}

	frame := layout.RenderFrame(header, content, footer, m.width, m.height)
	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(kv store.KV, engine *session.Engine) error {
	p := tea.NewProgram(newAppModel(kv, engine))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
