package qa

import (
	"fmt"
	"strings"

	"govlens/internal/portal"
)

// answerRule is one entry of the ordered degraded-answer table,
// evaluated first-match-wins against the lowercased question.
type answerRule struct {
	keywords []string // any of these triggers the rule
	answer   func(doc *portal.Document) string
}

// answerRules produce offline answers from the loaded document when the
// backend cannot be reached. They are keyword heuristics, not AI output;
// the transcript treats both identically.
var answerRules = []answerRule{
	{
		keywords: []string{"summary", "summarize", "about", "what is this"},
		answer: func(doc *portal.Document) string {
			return doc.Summary
		},
	},
	{
		keywords: []string{"key point", "highlight", "main point", "important"},
		answer: func(doc *portal.Document) string {
			if len(doc.KeyPoints) == 0 {
				return doc.Summary
			}
			return "The key points are: " + strings.Join(doc.KeyPoints, "; ") + "."
		},
	},
	{
		keywords: []string{"status", "journey", "passed", "law yet", "enacted"},
		answer: func(doc *portal.Document) string {
			for _, step := range doc.Journey {
				if step.Tag == "active" {
					return fmt.Sprintf("%s is currently at the %q stage (%s, %s).",
						doc.Title, step.Status, step.House, step.Date)
				}
			}
			if n := len(doc.Journey); n > 0 {
				last := doc.Journey[n-1]
				return fmt.Sprintf("The most recent milestone for %s is %q (%s, %s).",
					doc.Title, last.Status, last.House, last.Date)
			}
			return "No legislative journey information is available for this document."
		},
	},
	{
		keywords: []string{"change", "before", "result", "effect", "impact"},
		answer: func(doc *portal.Document) string {
			if doc.Timeline == nil {
				return doc.Summary
			}
			return doc.Timeline.Change.Summary
		},
	},
}

// RuleAnswer evaluates the ordered answer table against question and
// returns the first matching answer, or the document summary when no
// rule matches. Deterministic for a given question and document. The
// demo server serves these directly.
func RuleAnswer(question string, doc *portal.Document) string {
	lower := strings.ToLower(question)
	for _, rule := range answerRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.answer(doc)
			}
		}
	}
	return "Here is the document summary: " + doc.Summary
}

// OfflineAnswer wraps RuleAnswer as a degraded transcript message,
// marked so the reader knows the assistant itself was unreachable.
// doc may be nil when no document is scoped.
func OfflineAnswer(question string, doc *portal.Document) portal.ChatMessage {
	const notice = "(Offline answer based on the loaded document - the assistant is currently unreachable.)"

	if doc == nil {
		return portal.ChatMessage{
			Role: portal.RoleAssistant,
			Text: "I can't reach the assistant right now and no document is open, so I have nothing to answer from. Please open a document or try again later.",
		}
	}

	return portal.ChatMessage{
		Role: portal.RoleAssistant,
		Text: RuleAnswer(question, doc) + "\n" + notice,
	}
}
