// Package textract pulls tender metadata out of document text with ordered
// regex heuristics. Extraction is best-effort: a field that cannot be found
// is nil, never an empty-string sentinel, and no failure escapes the package.
package textract

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Section is a detected document section with surrounding context.
type Section struct {
	Name    string `json:"name"`
	Snippet string `json:"snippet"`
}

// Metadata is the extraction result. Pointer fields are nil when the
// corresponding pattern list found nothing.
type Metadata struct {
	FileName         string    `json:"file_name"`
	Title            *string   `json:"title"`
	ReferenceNumber  *string   `json:"reference_number"`
	Buyer            *string   `json:"buyer"`
	ClosingDate      *string   `json:"closing_date"`
	Summary          string    `json:"summary"`
	RawTextExcerpt   string    `json:"raw_text_excerpt"`
	DetectedSections []Section `json:"detected_sections"`
}

const (
	maxPDFPages      = 3
	fallbackMaxBytes = 16384
	summaryLines     = 8
	summaryMaxLen    = 1200
	excerptMaxLen    = 4000
	snippetBefore    = 200
	snippetAfter     = 300
	snippetMaxLen    = 600
)

// Extract reads a document and returns its metadata record. Text acquisition
// depends on the extension; unreadable input degrades to an empty record.
func Extract(path string) Metadata {
	text := readText(path)

	norm := normalize(text)
	lines := nonBlankLines(norm)

	md := Metadata{
		FileName:         filepath.Base(path),
		Title:            matchField(titlePatterns, norm, 200),
		ReferenceNumber:  matchField(referencePatterns, norm, 80),
		Buyer:            matchField(buyerPatterns, norm, 200),
		ClosingDate:      matchField(closingDatePatterns, norm, 40),
		Summary:          truncate(strings.Join(firstN(lines, summaryLines), " "), summaryMaxLen),
		RawTextExcerpt:   truncate(norm, excerptMaxLen),
		DetectedSections: detectSections(norm),
	}
	return md
}

// readText picks the acquisition strategy for a file. Formats the corpus can
// parse natively get real extraction; everything else is a raw-byte read.
func readText(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return readPDF(path, maxPDFPages)
	case ".docx":
		return readDocx(path)
	case ".md", ".markdown":
		return readMarkdown(path)
	case ".html", ".htm":
		return readHTML(path)
	default:
		return readRaw(path, fallbackMaxBytes)
	}
}

// readRaw decodes up to maxBytes of the file as text, dropping invalid UTF-8.
func readRaw(path string, maxBytes int) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	buf := make([]byte, maxBytes)
	n, _ := f.Read(buf)
	return strings.ToValidUTF8(string(buf[:n]), "")
}

var (
	hspaceRun  = regexp.MustCompile(`[ \t]+`)
	newlineRun = regexp.MustCompile(`\n+`)
)

// normalize collapses horizontal whitespace runs to one space and newline
// runs to one newline, so the field patterns can stay simple.
func normalize(text string) string {
	text = hspaceRun.ReplaceAllString(text, " ")
	return newlineRun.ReplaceAllString(text, "\n")
}

func nonBlankLines(text string) []string {
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			lines = append(lines, ln)
		}
	}
	return lines
}

func firstN(lines []string, n int) []string {
	if len(lines) > n {
		return lines[:n]
	}
	return lines
}

// truncate caps a string at max runes.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) > max {
		return string(r[:max])
	}
	return s
}
