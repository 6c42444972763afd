package study

import "strings"

// GradeNA is reported when there is nothing to average.
const GradeNA = "N/A"

// gradeValues maps the 13 letter grades to their numeric weight.
var gradeValues = map[string]float64{
	"A+": 4.3, "A": 4.0, "A-": 3.7,
	"B+": 3.3, "B": 3.0, "B-": 2.7,
	"C+": 2.3, "C": 2.0, "C-": 1.7,
	"D+": 1.3, "D": 1.0, "D-": 0.7,
	"F": 0,
}

// letterThresholds converts a numeric average back to a letter.
// Ordered highest first; the first threshold at or below the value wins.
var letterThresholds = []struct {
	min    float64
	letter string
}{
	{4.15, "A+"}, {3.85, "A"}, {3.5, "A-"},
	{3.15, "B+"}, {2.85, "B"}, {2.5, "B-"},
	{2.15, "C+"}, {1.85, "C"}, {1.5, "C-"},
	{1.15, "D+"}, {0.85, "D"}, {0.5, "D-"},
}

// GradeValue returns the numeric weight of a letter grade. An unrecognized
// grade string maps to 0: grading noise fails toward the worst grade
// rather than being skipped.
func GradeValue(grade string) float64 {
	return gradeValues[strings.ToUpper(strings.TrimSpace(grade))]
}

// LetterGrade converts a numeric average to its letter grade.
func LetterGrade(value float64) string {
	for _, t := range letterThresholds {
		if value >= t.min {
			return t.letter
		}
	}
	return "F"
}

// SessionAverage returns the numeric average across a session's graded
// answers. ok is false when there is nothing graded yet.
func SessionAverage(graded []GradedAnswer) (avg float64, ok bool) {
	if len(graded) == 0 {
		return 0, false
	}
	total := 0.0
	for _, g := range graded {
		total += GradeValue(g.Grade)
	}
	return total / float64(len(graded)), true
}

// SessionGrade returns the session's letter grade, or GradeNA when no
// answers have been graded.
func SessionGrade(graded []GradedAnswer) string {
	avg, ok := SessionAverage(graded)
	if !ok {
		return GradeNA
	}
	return LetterGrade(avg)
}

// PlanGrade averages the latest graded attempt of each section and
// converts the result to a letter. history must be ordered newest first,
// as the session engine maintains it. Sections with no graded attempt are
// excluded; a plan with none returns GradeNA.
func PlanGrade(plan *StudyPlan, history []SessionRecord) string {
	var scores []float64
	for _, section := range plan.Sections {
		for _, rec := range history {
			if rec.PlanID != plan.ID || rec.Section.Title != section.Title {
				continue
			}
			if avg, ok := SessionAverage(rec.GradedAnswers); ok {
				scores = append(scores, avg)
			}
			break // only the most recent attempt per section counts
		}
	}
	if len(scores) == 0 {
		return GradeNA
	}
	total := 0.0
	for _, s := range scores {
		total += s
	}
	return LetterGrade(total / float64(len(scores)))
}

// PlanProgress returns how many of the plan's sections have at least one
// recorded attempt, along with the section count.
func PlanProgress(plan *StudyPlan, history []SessionRecord) (attempted, total int) {
	seen := make(map[string]bool)
	for _, rec := range history {
		if rec.PlanID == plan.ID {
			seen[rec.Section.Title] = true
		}
	}
	for _, s := range plan.Sections {
		if seen[s.Title] {
			attempted++
		}
	}
	return attempted, len(plan.Sections)
}
