// Package quiz implements the answering screen and the grading flow with
// live progress.
package quiz

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/radarsat1/re-up/internal/screen"
	"github.com/radarsat1/re-up/internal/session"
	"github.com/radarsat1/re-up/internal/study"
	"github.com/radarsat1/re-up/internal/ui/components"
	"github.com/radarsat1/re-up/internal/ui/layout"
	"github.com/radarsat1/re-up/internal/ui/theme"
)

// gradeEvent is one step of the grading loop, streamed from the engine
// goroutine into the update loop.
type gradeEvent struct {
	Current int
	Total   int
	Done    bool
	Err     error
}

type gradeMsg gradeEvent

// QuizScreen implements screen.Screen for answering one session's questions.
type QuizScreen struct {
	engine  *session.Engine
	rec     *study.SessionRecord
	answers []string
	idx     int
	input   textarea.Model

	grading  bool
	progress gradeEvent
	events   <-chan gradeEvent
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates the quiz screen for a session id. A record with no
// questions (possible after an import) is treated like a missing one.
func New(engine *session.Engine, sessionID string) *QuizScreen {
	s := &QuizScreen{engine: engine}
	rec, err := engine.Session(sessionID)
	if err != nil || len(rec.Questions) == 0 {
		return s
	}
	s.rec = rec
	// Imported records may carry a short answers slice.
	s.answers = make([]string, len(rec.Questions))
	copy(s.answers, rec.UserAnswers)

	ta := textarea.New()
	ta.Placeholder = "Type your answer..."
	ta.SetValue(s.answers[s.idx])
	s.input = ta
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	if s.rec == nil {
		// Drop the unrenderable session from the active slot so
		// navigation settles on the plan or setup screen.
		s.engine.CloseSession()
		return screen.RefreshNav
	}
	return s.input.Focus()
}

func (s *QuizScreen) Title() string {
	if s.rec == nil {
		return "Quiz"
	}
	return s.rec.Section.Title
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.grading {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	return []layout.KeyHint{
		{Key: "Ctrl+J/K", Description: "Next/Prev question"},
		{Key: "Ctrl+S", Description: "Submit for grading"},
		{Key: "Esc", Description: "Save & back"},
	}
}

// stash copies the textarea into the answer slot for the current question.
func (s *QuizScreen) stash() {
	s.answers[s.idx] = s.input.Value()
}

func (s *QuizScreen) show(idx int) {
	s.idx = idx
	s.input.SetValue(s.answers[idx])
}

func (s *QuizScreen) startGrading() tea.Cmd {
	s.stash()
	s.grading = true
	s.progress = gradeEvent{Current: len(s.rec.GradedAnswers), Total: len(s.rec.Questions)}

	ch := make(chan gradeEvent, 8)
	s.events = ch
	engine := s.engine
	sessionID := s.rec.ID
	answers := append([]string(nil), s.answers...)

	go func() {
		_, err := engine.FinishQuiz(context.Background(), sessionID, answers, func(current, total int) {
			ch <- gradeEvent{Current: current, Total: total}
		})
		ch <- gradeEvent{Done: true, Err: err}
		close(ch)
	}()

	return waitGrade(ch)
}

func waitGrade(ch <-chan gradeEvent) tea.Cmd {
	return func() tea.Msg {
		return gradeMsg(<-ch)
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case gradeMsg:
		ev := gradeEvent(msg)
		if !ev.Done {
			s.progress = ev
			return s, waitGrade(s.events)
		}
		s.grading = false
		s.events = nil
		if ev.Err != nil {
			// Progress up to the failing question is already persisted;
			// resubmitting grades only what is left.
			if rec, err := s.engine.Session(s.rec.ID); err == nil {
				s.rec = rec
			}
			return s, func() tea.Msg { return screen.ErrMsg{Err: ev.Err} }
		}
		return s, screen.RefreshNav

	case tea.KeyMsg:
		if s.grading {
			return s, nil
		}
		if s.rec == nil {
			return s, nil
		}
		switch msg.String() {
		case "esc":
			s.stash()
			if err := s.engine.UpdateAnswers(s.rec.ID, s.answers); err != nil {
				return s, func() tea.Msg { return screen.ErrMsg{Err: err} }
			}
			s.engine.CloseSession()
			return s, screen.RefreshNav
		case "ctrl+j":
			if s.idx < len(s.rec.Questions)-1 {
				s.stash()
				s.show(s.idx + 1)
			}
			return s, nil
		case "ctrl+k":
			if s.idx > 0 {
				s.stash()
				s.show(s.idx - 1)
			}
			return s, nil
		case "ctrl+s":
			return s, s.startGrading()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *QuizScreen) View(width, height int) string {
	if s.rec == nil {
		return ""
	}

	if s.grading {
		bar := components.ProgressBar{
			Label:   "Grading",
			Current: s.progress.Current,
			Total:   s.progress.Total,
			Width:   width - 16,
		}
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(theme.Title.Render("Your answers are being graded") + "\n\n" + bar.View())
	}

	q := s.rec.Questions[s.idx]

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Question %d of %d", s.idx+1, len(s.rec.Questions))))
	if s.idx < len(s.rec.GradedAnswers) {
		b.WriteString("  " + theme.Hint.Render("(already graded)"))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(q.Question))
	b.WriteString("\n\n")

	s.input.SetWidth(width - 12)
	b.WriteString(s.input.View())

	answered := 0
	for _, a := range s.answers {
		if strings.TrimSpace(a) != "" {
			answered++
		}
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("%d of %d answered", answered, len(s.answers))))

	return theme.Card.Width(width - 4).Render(b.String())
}
