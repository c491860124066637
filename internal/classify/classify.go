// Package classify labels tender-related files with a document category.
//
// Classification is a fixed-order heuristic: filename keywords first, then
// MIME type for brand assets, then a keyword scan over the leading bytes of
// the file. The first rule that matches wins; there is no scoring or voting.
package classify

import (
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// Label is a tender document category.
type Label string

const (
	LabelTender             Label = "tender"
	LabelPricingSchedule    Label = "pricing_schedule"
	LabelScopeOfWork        Label = "scope_of_work"
	LabelTermsAndConditions Label = "terms_and_conditions"
	LabelEvaluationCriteria Label = "evaluation_criteria"
	LabelComplianceDocument Label = "compliance_document"
	LabelBrandAsset         Label = "brand_asset"
	LabelUnknown            Label = "unknown"
)

// headScanBytes is how much of the file the content scan reads.
const headScanBytes = 4096

// rule pairs a label with the substrings that imply it. Rules are evaluated
// in slice order, first hit wins.
type rule struct {
	label    Label
	keywords []string
}

var filenameRules = []rule{
	{LabelPricingSchedule, []string{"pricing", "boq", "bill_of_quantities"}},
	{LabelScopeOfWork, []string{"scope", "sow"}},
	{LabelTermsAndConditions, []string{"terms", "conditions"}},
	{LabelEvaluationCriteria, []string{"eval"}},
	{LabelComplianceDocument, []string{"compliance", "bee", "bbb", "tax", "cidb"}},
	{LabelTender, []string{"rfq", "rfb", "tender", "bid"}},
}

var contentRules = []rule{
	{LabelPricingSchedule, []string{"pricing schedule", "bill of quantities", "boq", "pricing", "rate", "unit price"}},
	{LabelScopeOfWork, []string{"scope of work", "specification", "technical specification", "deliverables"}},
	{LabelTermsAndConditions, []string{"terms and conditions", "conditions of contract", "general conditions"}},
	{LabelEvaluationCriteria, []string{"evaluation criteria", "functionality", "weighting", "points"}},
	{LabelComplianceDocument, []string{"tax clearance", "bee certificate", "b-bbee", "company registration", "id copy"}},
	{LabelTender, []string{"request for bid", "rfb", "rfq", "tender number", "bid number", "invitation to bid"}},
}

// Classify returns the document category for a file. It never fails: an
// unreadable file degrades to a content scan over empty text.
func Classify(path string) Label {
	name := strings.ToLower(filepath.Base(path))
	for _, r := range filenameRules {
		for _, kw := range r.keywords {
			if strings.Contains(name, kw) {
				return r.label
			}
		}
	}

	// Extension-based MIME guess; images are brand assets (logos).
	if mt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); strings.HasPrefix(mt, "image/") {
		return LabelBrandAsset
	}

	head := strings.ToLower(readHead(path, headScanBytes))
	for _, r := range contentRules {
		for _, kw := range r.keywords {
			if strings.Contains(head, kw) {
				return r.label
			}
		}
	}

	return LabelUnknown
}

// readHead returns up to n leading bytes of the file as text, dropping
// invalid UTF-8. Read errors yield empty text.
func readHead(path string, n int64) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, n))
	if err != nil {
		return ""
	}
	return strings.ToValidUTF8(string(raw), "")
}
