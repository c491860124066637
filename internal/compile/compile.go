// Package compile merges document fragments, brand styling and a parsed
// pricing table into one self-contained, print-ready HTML string.
//
// No escaping is applied to any injected text: fragments, brand fields and
// spreadsheet cells land in the output verbatim. Every such write funnels
// through writeRawHTML so escaping can be added in one place later.
package compile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tritender/tendercore/internal/brand"
	"github.com/tritender/tendercore/internal/pricing"
)

// Fragment is one content section of the compiled proposal.
type Fragment struct {
	Title string `json:"title"`
	HTML  string `json:"html"`
}

// Normalize shapes loosely-typed document entries into Fragments. Raw
// strings become the fragment body; maps may carry "title" and "html" keys.
// An absent title key defaults to "Section N" (1-based), but a present empty
// title is kept as-is; anything unrecognized is dropped.
func Normalize(documents []any) []Fragment {
	var fragments []Fragment
	for i, doc := range documents {
		defaultTitle := fmt.Sprintf("Section %d", i+1)
		switch d := doc.(type) {
		case string:
			fragments = append(fragments, Fragment{Title: defaultTitle, HTML: d})
		case map[string]any:
			f := Fragment{Title: defaultTitle}
			if t, ok := d["title"].(string); ok {
				f.Title = t
			}
			if h, ok := d["html"].(string); ok {
				f.HTML = h
			}
			fragments = append(fragments, f)
		case Fragment:
			if d.Title == "" {
				d.Title = defaultTitle
			}
			fragments = append(fragments, d)
		}
	}
	return fragments
}

// Compile renders the final proposal document. A nil brand gets the default
// palette; a nil or failed pricing result renders no pricing block.
func Compile(documents []Fragment, b *brand.Record, p *pricing.Result) string {
	primary := brandField(b, func(r *brand.Record) string { return r.PrimaryColor }, brand.DefaultPrimary)
	secondary := brandField(b, func(r *brand.Record) string { return r.SecondaryColor }, brand.DefaultSecondary)
	accent := brandField(b, func(r *brand.Record) string { return r.AccentColor }, brand.DefaultAccent)
	brandName := brandField(b, func(r *brand.Record) string { return r.BrandName }, brand.DefaultBrandName)

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>Tender Proposal – ")
	writeRawHTML(&sb, brandName)
	sb.WriteString("</title>\n<style>\n")
	sb.WriteString(baseCSS)
	writeRawHTML(&sb, brandCSS(primary, secondary, accent))
	sb.WriteString("</style>\n</head>\n<body>\n<div class=\"page\">\n")

	sb.WriteString("<header class=\"header\">\n<div>\n<div class=\"brand-name\">")
	writeRawHTML(&sb, brandName)
	sb.WriteString("</div>\n<div class=\"badge\">Tri-Tender | AI-Assisted Tender Response</div>\n</div>\n</header>\n")

	for _, frag := range documents {
		sb.WriteString("<div class=\"section\">\n<h2>")
		writeRawHTML(&sb, frag.Title)
		sb.WriteString("</h2>\n<div>")
		writeRawHTML(&sb, frag.HTML)
		sb.WriteString("</div>\n</div>\n")
	}

	if p != nil && p.OK {
		writePricingBlock(&sb, p)
	}

	sb.WriteString("<div class=\"footer\">\nGenerated by Tri-Tender Core. This HTML is print-ready and can be converted to PDF.\n</div>\n")
	sb.WriteString("</div>\n</body>\n</html>\n")
	return sb.String()
}

// writePricingBlock renders the parsed pricing table: one header cell per
// detected column, one row per item sourced from its raw values, then the
// grand-total lines.
func writePricingBlock(sb *strings.Builder, p *pricing.Result) {
	sb.WriteString("<div class=\"section\">\n<h2>Pricing Schedule (Parsed)</h2>\n<table class=\"pricing\">\n<thead><tr>")
	for _, col := range p.ColumnNames {
		sb.WriteString("<th>")
		writeRawHTML(sb, col)
		sb.WriteString("</th>")
	}
	sb.WriteString("</tr></thead>\n<tbody>\n")

	for _, item := range p.Items {
		sb.WriteString("<tr>")
		for _, col := range p.ColumnNames {
			sb.WriteString("<td>")
			if v := item.Raw[col]; v != nil {
				writeRawHTML(sb, cellText(v))
			}
			sb.WriteString("</td>")
		}
		sb.WriteString("</tr>\n")
	}

	sb.WriteString("</tbody>\n</table>\n<div class=\"pricing-total\">\nGrand Total: ")
	writeRawHTML(sb, p.Currency)
	sb.WriteString(" ")
	sb.WriteString(formatAmount(p.GrandTotal))
	sb.WriteString(" <br/>\nGrand Total (with mark-up): ")
	writeRawHTML(sb, p.Currency)
	sb.WriteString(" ")
	sb.WriteString(formatAmount(p.GrandTotalWithMarkUp))
	sb.WriteString("\n</div>\n</div>\n")
}

// writeRawHTML is the single point where caller-supplied text enters the
// output unescaped. Harden here if escaping is ever required.
func writeRawHTML(sb *strings.Builder, s string) {
	sb.WriteString(s)
}

func brandField(b *brand.Record, get func(*brand.Record) string, fallback string) string {
	if b == nil {
		return fallback
	}
	if v := get(b); v != "" {
		return v
	}
	return fallback
}

func cellText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
