package textract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field patterns are tried in order against the normalized text; the first
// pattern that matches wins and its first capture group is the value.
var (
	titlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:tender|bid|rfq|rfb)\s*title[:\-]\s*(.+)`),
		regexp.MustCompile(`(?i)(?:invitation to bid|invitation to tender)\s*(.+)`),
	}

	referencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:tender|bid|rfq|reference)\s*(?:no\.|number|ref)[:\-]\s*(.+)`),
		regexp.MustCompile(`(?i)(?:tender|bid)\s*no\.?:\s*([A-Za-z0-9/\-]+)`),
	}

	buyerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:issued by|procuring entity|employer|purchaser)[:\-]\s*(.+)`),
		regexp.MustCompile(`(?i)(?:department|entity|organisation|organization)[:\-]\s*(.+)`),
	}

	closingDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:closing date|closing time)[:\-]\s*([0-9]{4}-[0-9]{1,2}-[0-9]{1,2})`),
		regexp.MustCompile(`(?i)(?:closing date|closing time)[:\-]\s*([0-9]{1,2}[/\-][0-9]{1,2}[/\-][0-9]{2,4})`),
		regexp.MustCompile(`(?i)(?:closing date|closing time)[:\-]\s*([0-9]{1,2} \w+ 20[0-9]{2})`),
	}
)

// matchField returns the trimmed first capture group of the first matching
// pattern, capped at maxLen runes, or nil when nothing matched.
func matchField(patterns []*regexp.Regexp, text string, maxLen int) *string {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v := truncate(strings.TrimSpace(m[1]), maxLen)
		return &v
	}
	return nil
}

// sectionPattern pairs a section name with its heading pattern. Sections are
// independent: any subset may fire on a given document.
type sectionPattern struct {
	name string
	re   *regexp.Regexp
}

var sectionPatterns = []sectionPattern{
	{"scope_of_work", regexp.MustCompile(`scope of work|scope of services|scope`)},
	{"evaluation_criteria", regexp.MustCompile(`evaluation criteria|evaluation process|scoring`)},
	{"pricing", regexp.MustCompile(`pricing schedule|bill of quantities|boq`)},
	{"conditions", regexp.MustCompile(`terms and conditions|conditions of bid|conditions of contract`)},
}

// detectSections scans the lowercased text for known headings and emits a
// snippet of surrounding original-case context for each hit.
func detectSections(norm string) []Section {
	sections := []Section{}
	lower := strings.ToLower(norm)
	runes := []rune(norm)

	for _, sp := range sectionPatterns {
		loc := sp.re.FindStringIndex(lower)
		if loc == nil {
			continue
		}
		idx := utf8.RuneCountInString(lower[:loc[0]])

		start := idx - snippetBefore
		if start < 0 {
			start = 0
		}
		end := idx + snippetAfter
		if end > len(runes) {
			end = len(runes)
		}
		snippet := truncate(strings.TrimSpace(string(runes[start:end])), snippetMaxLen)
		sections = append(sections, Section{Name: sp.name, Snippet: snippet})
	}

	return sections
}
