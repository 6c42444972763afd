// Package feedback shows a completed session's graded answers and the
// overall session grade, and offers a retake.
package feedback

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/radarsat1/re-up/internal/screen"
	"github.com/radarsat1/re-up/internal/session"
	"github.com/radarsat1/re-up/internal/study"
	"github.com/radarsat1/re-up/internal/ui/layout"
	"github.com/radarsat1/re-up/internal/ui/theme"
)

// retakeStartedMsg is sent when a retake's StartQuiz completes.
type retakeStartedMsg struct {
	Err error
}

// FeedbackScreen implements screen.Screen for reviewing graded answers.
type FeedbackScreen struct {
	engine   *session.Engine
	rec      *study.SessionRecord
	idx      int
	starting bool
}

var _ screen.Screen = (*FeedbackScreen)(nil)
var _ screen.KeyHintProvider = (*FeedbackScreen)(nil)

// New creates the feedback screen for a session id.
func New(engine *session.Engine, sessionID string) *FeedbackScreen {
	s := &FeedbackScreen{engine: engine}
	if rec, err := engine.Session(sessionID); err == nil {
		s.rec = rec
	}
	return s
}

func (s *FeedbackScreen) Init() tea.Cmd {
	if s.rec == nil {
		return screen.RefreshNav
	}
	return nil
}

func (s *FeedbackScreen) Title() string {
	if s.rec == nil {
		return "Feedback"
	}
	return s.rec.Section.Title + " · Results"
}

func (s *FeedbackScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Browse answers"},
		{Key: "T", Description: "Retake (same questions)"},
		{Key: "N", Description: "Retake (fresh questions)"},
		{Key: "Esc", Description: "Back to plan"},
	}
}

func (s *FeedbackScreen) retake(forceNew bool) tea.Cmd {
	s.starting = true
	engine := s.engine
	planID := s.rec.PlanID
	sectionTitle := s.rec.Section.Title
	return func() tea.Msg {
		_, err := engine.StartQuiz(context.Background(), planID, sectionTitle, forceNew)
		return retakeStartedMsg{Err: err}
	}
}

func (s *FeedbackScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case retakeStartedMsg:
		s.starting = false
		if msg.Err != nil {
			return s, func() tea.Msg {
				return screen.ErrMsg{Err: fmt.Errorf("could not start the retake: %w", msg.Err)}
			}
		}
		return s, screen.RefreshNav

	case tea.KeyMsg:
		if s.rec == nil || s.starting {
			return s, nil
		}
		switch msg.String() {
		case "up", "k":
			if s.idx > 0 {
				s.idx--
			}
		case "down", "j":
			if s.idx < len(s.rec.GradedAnswers)-1 {
				s.idx++
			}
		case "t", "T":
			return s, s.retake(false)
		case "n", "N":
			return s, s.retake(true)
		case "esc":
			s.engine.CloseSession()
			return s, screen.RefreshNav
		}
	}
	return s, nil
}

func (s *FeedbackScreen) View(width, height int) string {
	if s.rec == nil {
		return ""
	}
	if s.starting {
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(theme.Title.Render("Preparing retake..."))
	}

	overall := study.SessionGrade(s.rec.GradedAnswers)

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render("Session grade"))
	b.WriteString("  ")
	b.WriteString(theme.GradeStyle(overall).Render(overall))
	b.WriteString("\n\n")

	for i, ga := range s.rec.GradedAnswers {
		marker := "  "
		if i == s.idx {
			marker = theme.Selected.Render("▸ ")
		}
		b.WriteString(fmt.Sprintf("%s%d. %s  %s\n",
			marker, i+1,
			truncateLine(ga.Question, width-20),
			theme.GradeStyle(ga.Grade).Render(ga.Grade)))
	}

	if s.idx < len(s.rec.GradedAnswers) {
		ga := s.rec.GradedAnswers[s.idx]
		b.WriteString("\n")
		b.WriteString(theme.Body.Render(ga.Summary))
		if len(ga.KeyConceptsMissed) > 0 {
			b.WriteString("\n\n")
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render("Missed concepts: "))
			b.WriteString(theme.Body.Render(strings.Join(ga.KeyConceptsMissed, ", ")))
		}
		if len(ga.SuggestedResearchLinks) > 0 {
			b.WriteString("\n")
			b.WriteString(theme.Hint.Render(strings.Join(ga.SuggestedResearchLinks, "\n")))
		}
	}

	return theme.Card.Width(width - 4).Render(b.String())
}

func truncateLine(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if max < 4 || len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
