package content

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// RejectedError reports why generated text failed a quality gate.
type RejectedError struct {
	Gate   string
	Reason string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s rejected: %s", e.Gate, e.Reason)
}

// BoilerplatePhrases are matched case-insensitively against generated summaries.
var BoilerplatePhrases = []string{
	"as an ai",
	"language model",
	"lorem ipsum",
	"[your name]",
	"insert name",
	"i cannot",
	"i'm sorry",
	"here is a",
	"here's a",
}

// QualityGate holds the thresholds for one kind of generated text.
type QualityGate struct {
	Name         string
	MinChars     int
	MinSentences int
	Banned       []string
}

var (
	summaryGate    = QualityGate{Name: "summary", MinChars: 80, MinSentences: 2, Banned: BoilerplatePhrases}
	experienceGate = QualityGate{Name: "experience", MinChars: 40}
)

// Check returns a *RejectedError when text does not pass the gate.
func (g QualityGate) Check(text string) error {
	if text == "" {
		return &RejectedError{Gate: g.Name, Reason: "empty"}
	}
	if n := len([]rune(text)); n < g.MinChars {
		return &RejectedError{Gate: g.Name, Reason: fmt.Sprintf("too short (%d < %d chars)", n, g.MinChars)}
	}
	if g.MinSentences > 0 {
		if n := strings.Count(text, ".") + strings.Count(text, "!") + strings.Count(text, "?"); n < g.MinSentences {
			return &RejectedError{Gate: g.Name, Reason: fmt.Sprintf("too few sentences (%d < %d)", n, g.MinSentences)}
		}
	}
	lower := strings.ToLower(text)
	for _, phrase := range g.Banned {
		if strings.Contains(lower, phrase) {
			return &RejectedError{Gate: g.Name, Reason: fmt.Sprintf("boilerplate phrase %q", phrase)}
		}
	}
	return nil
}

var (
	policy     = bluemonday.StrictPolicy()
	fenceRe    = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")
	spaceRe    = regexp.MustCompile(`\s+`)
	quoteTrims = "\"'`“”‘’"

	// Only lower-case tags with these element names are markup. Any other
	// "<" is text, as in "List<T>", "A<B" or "<50ms".
	tagRe   = regexp.MustCompile(`</?(?:a|b|i|u|s|p|br|hr|em|strong|small|mark|sub|sup|span|div|ul|ol|li|h[1-6]|code|pre|blockquote|table|thead|tbody|tr|td|th|script|style)(?:\s+[a-z-]+(?:\s*=\s*(?:"[^"]*"|'[^']*'|[^\s"'<>]+))?)*\s*/?>`)
	breakRe = regexp.MustCompile(`<br\s*/?>|</(?:p|div|li|h[1-6]|tr|blockquote)>`)
)

// Clean normalizes raw provider output: code fences and HTML tags are
// removed, whitespace is collapsed and surrounding quotes are stripped.
func Clean(raw string) string {
	text := stripMarkup(unfence(raw))
	text = spaceRe.ReplaceAllString(text, " ")
	return strings.Trim(strings.TrimSpace(text), quoteTrims)
}

// cleanLines is Clean without whitespace collapsing, for list answers.
func cleanLines(raw string) string {
	return stripMarkup(unfence(raw))
}

func unfence(raw string) string {
	text := strings.TrimSpace(raw)
	if m := fenceRe.FindStringSubmatch(text); m != nil {
		text = m[1]
	}
	return text
}

// stripMarkup removes recognized tags and keeps every other character.
// Block-level closing tags become line breaks so list items stay apart.
func stripMarkup(text string) string {
	if !tagRe.MatchString(text) {
		return html.UnescapeString(text)
	}
	text = breakRe.ReplaceAllString(text, "$0\n")
	return html.UnescapeString(policy.Sanitize(escapeStrayBrackets(text)))
}

// escapeStrayBrackets entity-encodes every "<" that does not open a
// recognized tag so the sanitizer keeps it as text.
func escapeStrayBrackets(text string) string {
	tags := tagRe.FindAllStringIndex(text, -1)
	var b strings.Builder
	b.Grow(len(text))
	next := 0
	for i := 0; i < len(text); i++ {
		if next < len(tags) && i == tags[next][0] {
			b.WriteString(text[i:tags[next][1]])
			i = tags[next][1] - 1
			next++
			continue
		}
		if text[i] == '<' {
			b.WriteString("&lt;")
			continue
		}
		b.WriteByte(text[i])
	}
	return b.String()
}
