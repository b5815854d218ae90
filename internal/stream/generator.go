package stream

import "strings"

// Generator produces the full assistant reply for a user message
type Generator func(userText string) string

// Reply kinds, checked in this order
const (
	KindCode    = "code"
	KindLong    = "long"
	KindExplain = "explain"
	KindDefault = "default"
)

var replyRules = []struct {
	kind     string
	keywords []string
}{
	{KindCode, []string{"code", "function", "example"}},
	{KindLong, []string{"long", "detailed", "comprehensive"}},
	{KindExplain, []string{"explain", "what", "how"}},
}

// Classify returns the reply kind for a user message
func Classify(userText string) string {
	lower := strings.ToLower(userText)
	for _, rule := range replyRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.kind
			}
		}
	}
	return KindDefault
}

// Generate returns the canned reply for userText. It is deterministic.
func Generate(userText string) string {
	switch Classify(userText) {
	case KindCode:
		return codeReply
	case KindLong:
		return longReply
	case KindExplain:
		return explainReply
	default:
		return defaultReply
	}
}

const codeReply = "Here is a small example to start from:\n\n" +
	"```go\n" +
	"func greet(name string) string {\n" +
	"\tif name == \"\" {\n" +
	"\t\tname = \"world\"\n" +
	"\t}\n" +
	"\treturn \"Hello, \" + name + \"!\"\n" +
	"}\n" +
	"```\n\n" +
	"The function falls back to a default when the argument is empty and returns the greeting instead of printing it, " +
	"which keeps it easy to test.\n\n" +
	"**Things to try next:**\n" +
	"- Accept a list of names\n" +
	"- Return an error for names that are too long\n" +
	"- Add a table-driven test\n\n" +
	"Want me to walk through any part of it?"

const explainReply = "Here is an explanation in a few steps:\n\n" +
	"The idea rests on one core principle, and everything else builds on top of it. " +
	"Once that principle is clear, the practical uses follow naturally.\n\n" +
	"**Key points:**\n" +
	"1. Start from the simplest case\n" +
	"2. Check each step against a concrete example\n" +
	"3. Generalise only after the small case works\n\n" +
	"Should I go deeper on any of these points?"

const longReply = "This deserves a longer answer, so let's take it in parts.\n\n" +
	"First, the background. Most problems of this kind look large only because several smaller concerns are tangled together. " +
	"Separating them is usually the first and most useful step, because each piece can then be reasoned about on its own.\n\n" +
	"Second, the approach. Pick the piece with the fewest dependencies and solve it completely before moving on. " +
	"Write down what you learned while doing it, since the same patterns tend to show up again in the remaining pieces.\n\n" +
	"Third, the integration. With the pieces solved, put them back together one at a time and verify the whole after each addition. " +
	"Problems that appear here are almost always about the boundaries between pieces, not about the pieces themselves.\n\n" +
	"Finally, review. Look at the finished result as a newcomer would and remove anything that does not earn its place.\n\n" +
	explainReply

const defaultReply = "Thanks for the message. I can help you explore ideas, work through problems and give a second opinion.\n\n" +
	"Some things I can do:\n" +
	"- **Technical questions**: code samples, design trade-offs, debugging\n" +
	"- **Explanations**: breaking a topic into smaller parts\n" +
	"- **Problem solving**: working through a task step by step\n" +
	"- **Writing**: drafting and refining text\n"
