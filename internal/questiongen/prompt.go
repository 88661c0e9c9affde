package questiongen

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizforge/internal/quiz"
)

const systemPrompt = `You are a quiz author creating questions for an adaptive trivia platform.

Rules:
- Generate the requested number of questions for the given category and difficulty.
- Each question must be clear, self-contained, and factually correct.
- Use plain text. No markdown, no LaTeX.
- For multiple_choice, provide exactly 4 options where exactly one is correct. Distractors should be plausible, not random.
- For true_false, provide exactly 2 options: "True" and "False", with the correct one marked.
- For open_text, provide exactly 1 answer: the accepted text, kept short so loose matching works.
- Assign points proportional to difficulty: roughly 10 for beginner, 15 for intermediate, 20 for advanced.
- Do not repeat any question from the "already generated" list.`

// buildUserMessage constructs the user message for a generation request.
func buildUserMessage(in GenerateInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Category: %s\n", in.CategoryID)
	fmt.Fprintf(&b, "Difficulty: %s\n", in.Difficulty)
	fmt.Fprintf(&b, "Count: %d\n", in.Count)

	b.WriteString("\nAlready generated for this category:\n")
	b.WriteString(buildDedup(in.PriorQuestions, cfg.MaxPriorQuestions))

	return b.String()
}

// buildDedup formats prior question texts for the prompt, keeping only
// the most recent max entries.
func buildDedup(prior []quiz.Question, max int) string {
	if len(prior) == 0 {
		return "None"
	}
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}

	var b strings.Builder
	for i, q := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q.Text)
	}
	return strings.TrimRight(b.String(), "\n")
}
