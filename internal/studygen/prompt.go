package studygen

import "fmt"

const planSystemPrompt = `You are an experienced technical mentor who builds
focused interview-preparation study plans. Plans are practical, ordered from
fundamentals to advanced material, and scoped to what interviews actually cover.`

const gradingSystemPrompt = `You are a senior interviewer evaluating candidate
answers. You are critical but fair: credit correct reasoning, call out gaps
precisely, and never inflate grades.`

func buildPlanPrompt(topic, context string) string {
	prompt := fmt.Sprintf(
		"Create a detailed study plan for the topic: %q. The plan should be structured for interview preparation.",
		topic,
	)
	if context != "" {
		prompt += fmt.Sprintf(" Base it on the following context/job description: %s", context)
	}
	prompt += fmt.Sprintf(" The plan must have at least %d sections and no more than %d.", minSections, maxSections)
	return prompt
}

func buildQuestionsPrompt(sectionTitle, topic string) string {
	return fmt.Sprintf(
		"Generate %d intermediate-level interview questions about %q within the broader topic of %q. "+
			"The questions should require detailed, conceptual answers, not just simple definitions. "+
			"Where appropriate, for scientific or mathematical topics, use LaTeX notation for formulas (e.g. \\( E = mc^2 \\)).",
		QuestionsPerQuiz, sectionTitle, topic,
	)
}

func buildGradingPrompt(question, userAnswer string) string {
	return fmt.Sprintf(
		"Evaluate the following answer to an interview question.\nQuestion: %q\nCandidate's answer: %q\n"+
			"Provide a letter grade, a constructive summary, the key concepts the candidate missed, "+
			"and relevant research links.",
		question, userAnswer,
	)
}
