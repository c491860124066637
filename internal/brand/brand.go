// Package brand derives a color palette and brand name from a logo image or,
// failing that, from the filename alone.
package brand

import (
	"path/filepath"
	"strings"
	"unicode"
)

// Color defaults used whenever the extracted palette runs short. The HTML
// compiler carries the same values so a passed-through record stays styled
// consistently.
const (
	DefaultPrimary   = "#003366"
	DefaultSecondary = "#f5f5f5"
	DefaultAccent    = "#ffcc00"
	DefaultBrandName = "Tri-Tender Client"
)

// Record describes inferred brand styling. Colors are always present, even
// when no palette could be extracted.
type Record struct {
	FileName       string   `json:"file_name"`
	BrandName      string   `json:"brand_name"`
	PrimaryColor   string   `json:"primary_color"`
	SecondaryColor string   `json:"secondary_color"`
	AccentColor    string   `json:"accent_color"`
	Palette        []string `json:"palette"`
	Notes          []string `json:"notes"`
}

// Infer builds a brand record for a file. Images get dominant-color palette
// extraction; everything else falls back to filename heuristics. Decode
// failures are recorded as notes, never returned as errors.
func Infer(path string) Record {
	fileName := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(fileName))
	nameRoot := strings.TrimSuffix(fileName, filepath.Ext(fileName))

	var palette []string
	notes := []string{}

	switch ext {
	case ".png", ".jpg", ".jpeg":
		p, err := paletteFromImage(path, maxPaletteColors)
		if err != nil {
			notes = append(notes, "Failed to analyse image for palette: "+err.Error())
		} else {
			palette = p
			notes = append(notes, "Palette extracted from image logo.")
		}
	default:
		notes = append(notes, "Non-image file; brand colours inferred only from filename.")
	}

	brandName := brandNameFromFile(nameRoot)

	primary := paletteColor(palette, 0, DefaultPrimary)
	secondary := paletteColor(palette, 1, DefaultSecondary)
	accent := paletteColor(palette, 2, DefaultAccent)

	if len(palette) == 0 {
		palette = []string{primary, secondary, accent}
	}

	return Record{
		FileName:       fileName,
		BrandName:      brandName,
		PrimaryColor:   primary,
		SecondaryColor: secondary,
		AccentColor:    accent,
		Palette:        palette,
		Notes:          notes,
	}
}

func paletteColor(palette []string, i int, fallback string) string {
	if i < len(palette) {
		return palette[i]
	}
	return fallback
}

// brandNameFromFile turns "acme_corp-logo" into "Acme Corp Logo".
func brandNameFromFile(nameRoot string) string {
	s := strings.NewReplacer("_", " ", "-", " ").Replace(nameRoot)
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	name := strings.Join(words, " ")
	if name == "" {
		return DefaultBrandName
	}
	return name
}
