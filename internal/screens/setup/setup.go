// Package setup implements the entry screen: create a new study plan or
// pick up a saved one.
package setup

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/radarsat1/re-up/internal/screen"
	"github.com/radarsat1/re-up/internal/session"
	"github.com/radarsat1/re-up/internal/study"
	"github.com/radarsat1/re-up/internal/ui/components"
	"github.com/radarsat1/re-up/internal/ui/layout"
	"github.com/radarsat1/re-up/internal/ui/theme"
)

const (
	focusTopic = iota
	focusContext
	focusPlans
)

// planGeneratedMsg is sent when plan generation completes.
type planGeneratedMsg struct {
	Plan *study.StudyPlan
	Err  error
}

// SetupScreen implements screen.Screen for plan creation and selection.
type SetupScreen struct {
	engine       *session.Engine
	topicInput   components.TextInput
	contextInput components.TextInput
	plans        components.Menu
	focus        int
	generating   bool
	topic        string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates the setup screen.
func New(engine *session.Engine) *SetupScreen {
	s := &SetupScreen{
		engine:       engine,
		topicInput:   components.NewTextInput("Topic", "e.g. Go Concurrency", 120),
		contextInput: components.NewTextInput("Context (optional)", "paste a job description...", 2000),
	}
	s.plans = components.NewMenu(s.planItems())
	s.plans.Focused = false
	return s
}

func (s *SetupScreen) planItems() []components.MenuItem {
	plans := s.engine.Plans()
	history := s.engine.History()
	items := make([]components.MenuItem, 0, len(plans))
	for _, p := range plans {
		p := p
		attempted, total := study.PlanProgress(&p, history)
		items = append(items, components.MenuItem{
			Label:  p.Topic,
			Detail: fmt.Sprintf("%d/%d sections  %s", attempted, total, study.PlanGrade(&p, history)),
			Action: func() tea.Cmd {
				return s.selectPlan(p.ID)
			},
		})
	}
	return items
}

func (s *SetupScreen) selectPlan(planID string) tea.Cmd {
	if err := s.engine.SelectPlan(planID); err != nil {
		return func() tea.Msg { return screen.ErrMsg{Err: err} }
	}
	return screen.RefreshNav
}

func (s *SetupScreen) Init() tea.Cmd {
	return s.topicInput.Focus()
}

func (s *SetupScreen) Title() string {
	if s.generating {
		return "Generating Plan"
	}
	return "Setup"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	if s.generating {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Generate / Select"},
	}
	if s.focus == focusPlans {
		hints = append(hints, layout.KeyHint{Key: "D", Description: "Delete plan"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case planGeneratedMsg:
		s.generating = false
		if msg.Err != nil {
			return s, func() tea.Msg {
				return screen.ErrMsg{Err: fmt.Errorf("failed to generate a plan for %q: %w", s.topic, msg.Err)}
			}
		}
		return s, screen.RefreshNav

	case tea.KeyMsg:
		if s.generating {
			return s, nil
		}
		switch msg.String() {
		case "tab":
			return s, s.cycleFocus(1)
		case "shift+tab":
			return s, s.cycleFocus(-1)
		case "enter":
			if s.focus != focusPlans {
				return s, s.generate()
			}
		case "d", "D":
			if s.focus == focusPlans {
				return s, s.deleteSelected()
			}
		}
	}

	var cmd tea.Cmd
	switch s.focus {
	case focusTopic:
		s.topicInput, cmd = s.topicInput.Update(msg)
	case focusContext:
		s.contextInput, cmd = s.contextInput.Update(msg)
	case focusPlans:
		s.plans, cmd = s.plans.Update(msg)
	}
	return s, cmd
}

func (s *SetupScreen) cycleFocus(dir int) tea.Cmd {
	fields := 3
	if len(s.plans.Items) == 0 {
		fields = 2
	}
	s.focus = (s.focus + dir + fields) % fields

	s.topicInput.Blur()
	s.contextInput.Blur()
	s.plans.Focused = false

	switch s.focus {
	case focusTopic:
		return s.topicInput.Focus()
	case focusContext:
		return s.contextInput.Focus()
	case focusPlans:
		s.plans.Focused = true
	}
	return nil
}

func (s *SetupScreen) generate() tea.Cmd {
	topic := strings.TrimSpace(s.topicInput.Value())
	if topic == "" {
		return func() tea.Msg { return screen.ErrMsg{Err: fmt.Errorf("enter a topic first")} }
	}
	s.generating = true
	s.topic = topic
	planContext := strings.TrimSpace(s.contextInput.Value())
	engine := s.engine
	return func() tea.Msg {
		plan, err := engine.CreatePlan(context.Background(), topic, planContext)
		return planGeneratedMsg{Plan: plan, Err: err}
	}
}

func (s *SetupScreen) deleteSelected() tea.Cmd {
	if s.plans.Selected < 0 || s.plans.Selected >= len(s.plans.Items) {
		return nil
	}
	plans := s.engine.Plans()
	if s.plans.Selected >= len(plans) {
		return nil
	}
	if err := s.engine.DeletePlan(plans[s.plans.Selected].ID); err != nil {
		return func() tea.Msg { return screen.ErrMsg{Err: err} }
	}
	s.plans = components.NewMenu(s.planItems())
	s.plans.Focused = s.focus == focusPlans
	if len(s.plans.Items) == 0 && s.focus == focusPlans {
		return s.cycleFocus(1)
	}
	return nil
}

func (s *SetupScreen) View(width, height int) string {
	if s.generating {
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(theme.Title.Render("Building your study plan...") + "\n\n" +
				theme.Hint.Render(fmt.Sprintf("Topic: %s", s.topic)))
	}

	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render("What do you want to brush up on?"))
	b.WriteString("\n\n")
	b.WriteString(s.topicInput.View())
	b.WriteString("\n\n")
	b.WriteString(s.contextInput.View())

	if len(s.plans.Items) > 0 {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Saved plans"))
		b.WriteString("\n")
		b.WriteString(s.plans.View())
	}

	return theme.Card.Width(width - 4).Render(b.String())
}
