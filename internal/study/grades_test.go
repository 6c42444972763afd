package study

import "testing"

func TestGradeValue(t *testing.T) {
	tests := []struct {
		grade string
		want  float64
	}{
		{"A+", 4.3},
		{"A", 4.0},
		{"a-", 3.7}, // case-insensitive
		{"B", 3.0},
		{"C-", 1.7},
		{"D+", 1.3},
		{"F", 0},
		{"E", 0},         // unrecognized fails toward worst
		{"excellent", 0}, // free-text noise fails toward worst
		{"", 0},
		{" B ", 3.0}, // whitespace tolerated
	}
	for _, tt := range tests {
		if got := GradeValue(tt.grade); got != tt.want {
			t.Errorf("GradeValue(%q) = %v, want %v", tt.grade, got, tt.want)
		}
	}
}

func TestLetterGrade(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{4.3, "A+"},
		{4.15, "A+"},
		{4.0, "A"},
		{3.5, "A-"},
		{3.49, "B+"},
		{3.0, "B"},
		{2.0, "C"},
		{1.0, "D"},
		{0.5, "D-"},
		{0.49, "F"},
		{0, "F"},
	}
	for _, tt := range tests {
		if got := LetterGrade(tt.value); got != tt.want {
			t.Errorf("LetterGrade(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func graded(grades ...string) []GradedAnswer {
	out := make([]GradedAnswer, len(grades))
	for i, g := range grades {
		out[i] = GradedAnswer{Grade: g}
	}
	return out
}

func TestSessionGrade(t *testing.T) {
	// (4.0 + 3.0) / 2 = 3.5 → A-
	if got := SessionGrade(graded("A", "B")); got != "A-" {
		t.Errorf("SessionGrade([A B]) = %q, want A-", got)
	}
	if got := SessionGrade(nil); got != GradeNA {
		t.Errorf("SessionGrade(empty) = %q, want %q", got, GradeNA)
	}
	// Unknown grades weigh in as 0, not skipped.
	if got := SessionGrade(graded("A", "??")); got != "C" {
		t.Errorf("SessionGrade([A ??]) = %q, want C", got)
	}
}

func TestPlanGrade(t *testing.T) {
	plan := &StudyPlan{
		ID:    "p1",
		Topic: "Go",
		Sections: []Section{
			{Title: "Basics"},
			{Title: "Concurrency"},
			{Title: "Tooling"},
		},
	}

	// Newest first: the older Basics attempt must be ignored.
	history := []SessionRecord{
		{PlanID: "p1", Section: Section{Title: "Basics"}, GradedAnswers: graded("A", "A")},
		{PlanID: "p1", Section: Section{Title: "Basics"}, GradedAnswers: graded("F", "F")},
		{PlanID: "p1", Section: Section{Title: "Concurrency"}, GradedAnswers: graded("B")},
		{PlanID: "other", Section: Section{Title: "Tooling"}, GradedAnswers: graded("F")},
	}

	// (4.0 + 3.0) / 2 = 3.5 → A-
	if got := PlanGrade(plan, history); got != "A-" {
		t.Errorf("PlanGrade = %q, want A-", got)
	}
}

func TestPlanGradeEmpty(t *testing.T) {
	plan := &StudyPlan{ID: "p1", Sections: []Section{{Title: "Basics"}}}
	if got := PlanGrade(plan, nil); got != GradeNA {
		t.Errorf("PlanGrade(no history) = %q, want %q", got, GradeNA)
	}

	// A latest attempt with nothing graded yet contributes no score.
	history := []SessionRecord{
		{PlanID: "p1", Section: Section{Title: "Basics"}, Status: StatusInProgress},
	}
	if got := PlanGrade(plan, history); got != GradeNA {
		t.Errorf("PlanGrade(ungraded latest) = %q, want %q", got, GradeNA)
	}
}

func TestPlanProgress(t *testing.T) {
	plan := &StudyPlan{
		ID: "p1",
		Sections: []Section{
			{Title: "Basics"}, {Title: "Concurrency"}, {Title: "Tooling"},
		},
	}
	history := []SessionRecord{
		{PlanID: "p1", Section: Section{Title: "Basics"}},
		{PlanID: "p1", Section: Section{Title: "Basics"}},
		{PlanID: "p2", Section: Section{Title: "Tooling"}},
	}
	attempted, total := PlanProgress(plan, history)
	if attempted != 1 || total != 3 {
		t.Errorf("PlanProgress = (%d, %d), want (1, 3)", attempted, total)
	}
}

func TestSessionRecordHelpers(t *testing.T) {
	rec := SessionRecord{
		Questions:     []Question{{Question: "q1"}, {Question: "q2"}},
		UserAnswers:   []string{"a1", "a2"},
		GradedAnswers: graded("A"),
	}
	if got := rec.ResumeIndex(); got != 1 {
		t.Errorf("ResumeIndex = %d, want 1", got)
	}
	if rec.Complete() {
		t.Error("Complete = true with one of two graded")
	}
	rec.GradedAnswers = graded("A", "B")
	if !rec.Complete() {
		t.Error("Complete = false with all graded")
	}
}
