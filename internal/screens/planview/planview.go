// Package planview shows the active study plan: its sections, per-section
// grades, and overall progress. Quizzes start from here.
package planview

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

// quizStartedMsg is sent when StartQuiz completes.
type quizStartedMsg struct {
	Err error
}

// PlanScreen implements screen.Screen for the study plan view.
type PlanScreen struct {
	engine   *session.Engine
	plan     *study.StudyPlan
	sections components.Menu
	starting string
}

var _ screen.Screen = (*PlanScreen)(nil)
var _ screen.KeyHintProvider = (*PlanScreen)(nil)

// New creates the plan screen for a plan id. A dangling id yields a
// screen that immediately asks for reconciliation.
func New(engine *session.Engine, planID string) *PlanScreen {
	s := &PlanScreen{engine: engine}
	plan, err := engine.Plan(planID)
	if err != nil {
		return s
	}
	s.plan = plan
	s.sections = components.NewMenu(s.sectionItems())
	return s
}

func (s *PlanScreen) sectionItems() []components.MenuItem {
	history := s.engine.History()
	items := make([]components.MenuItem, 0, len(s.plan.Sections))
	for _, sec := range s.plan.Sections {
		sec := sec
		items = append(items, components.MenuItem{
			Label:  sec.Title,
			Detail: fmt.Sprintf("%-12s %s", sec.Difficulty, sectionGrade(history, s.plan.ID, sec.Title)),
			Action: func() tea.Cmd {
				return s.startQuiz(sec.Title, false)
			},
		})
	}
	return items
}

// sectionGrade is the grade of the most recent graded attempt for one
// section, or a resume marker for an unfinished attempt.
func sectionGrade(history []study.SessionRecord, planID, title string) string {
	for _, r := range history {
		if r.PlanID != planID || r.Section.Title != title {
			continue
		}
		if r.Status == study.StatusInProgress {
			return "resume"
		}
		if g := study.SessionGrade(r.GradedAnswers); g != study.GradeNA {
			return g
		}
	}
	return "not attempted"
}

func (s *PlanScreen) startQuiz(sectionTitle string, forceNew bool) tea.Cmd {
	s.starting = sectionTitle
	engine := s.engine
	planID := s.plan.ID
	return func() tea.Msg {
		_, err := engine.StartQuiz(context.Background(), planID, sectionTitle, forceNew)
		return quizStartedMsg{Err: err}
	}
}

func (s *PlanScreen) Init() tea.Cmd {
	if s.plan == nil {
		return screen.RefreshNav
	}
	return nil
}

func (s *PlanScreen) Title() string {
	if s.plan == nil {
		return "Study Plan"
	}
	return s.plan.Topic
}

func (s *PlanScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start / Resume quiz"},
		{Key: "N", Description: "Fresh questions"},
		{Key: "Esc", Description: "Back to setup"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *PlanScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizStartedMsg:
		s.starting = ""
		if msg.Err != nil {
			return s, func() tea.Msg {
				return screen.ErrMsg{Err: fmt.Errorf("could not start the quiz: %w", msg.Err)}
			}
		}
		return s, screen.RefreshNav

	case tea.KeyMsg:
		if s.plan == nil || s.starting != "" {
			return s, nil
		}
		switch msg.String() {
		case "esc":
			s.engine.ClearActivePlan()
			return s, screen.RefreshNav
		case "n", "N":
			if s.sections.Selected >= 0 && s.sections.Selected < len(s.plan.Sections) {
				return s, s.startQuiz(s.plan.Sections[s.sections.Selected].Title, true)
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.sections, cmd = s.sections.Update(msg)
	return s, cmd
}

func (s *PlanScreen) View(width, height int) string {
	if s.plan == nil {
		return ""
	}
	if s.starting != "" {
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(theme.Title.Render("Preparing quiz...") + "\n\n" +
				theme.Hint.Render(s.starting))
	}

	history := s.engine.History()
	attempted, total := study.PlanProgress(s.plan, history)

	var b strings.Builder
	b.WriteString(theme.Body.Render(s.plan.Summary))
	b.WriteString("\n\n")
	b.WriteString(components.ProgressBar{
		Label:   "Progress",
		Current: attempted,
		Total:   total,
		Width:   width - 12,
	}.View())
	b.WriteString("   ")
	b.WriteString(theme.GradeStyle(study.PlanGrade(s.plan, history)).Render(study.PlanGrade(s.plan, history)))
	b.WriteString("\n\n")
	b.WriteString(s.sections.View())

	return theme.Card.Width(width - 4).Render(b.String())
}
