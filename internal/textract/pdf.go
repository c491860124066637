package textract

import (
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// readPDF extracts plain text from the first maxPages pages of a PDF.
// Per-page extraction failures are skipped; an unreadable file yields "".
func readPDF(path string, maxPages int) string {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	numPages := reader.NumPage()
	if numPages > maxPages {
		numPages = maxPages
	}

	var buf strings.Builder
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(text)
	}
	return buf.String()
}
