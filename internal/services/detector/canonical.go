package detector

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/etkecc/langdetect/internal/model"
)

// hebrewLegacy is the grandfathered Hebrew code, still emitted by some classifiers
const hebrewLegacy = "iw"

// Canonicalize converts classifier language tag (e.g. "en", "zh-Hans", "deu", "iw-IL")
// into two-letter lowercase ISO 639-1 code, never a deprecated one.
// Returns an error wrapping model.ErrUnknownLanguage if there is no such code
func Canonicalize(tag string) (string, error) {
	family := strings.ToLower(strings.TrimSpace(tag))
	if idx := strings.IndexAny(family, "-_"); idx != -1 {
		family = family[:idx]
	}

	// language.All applies deprecated and macrolanguage mappings, e.g. heb -> he, pes -> fa
	parsed, err := language.All.Parse(family)
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", model.ErrUnknownLanguage, tag, err)
	}
	base, _ := parsed.Base()
	code := base.String()
	if code == hebrewLegacy {
		code = "he"
	}
	if len(code) != 2 {
		return "", fmt.Errorf("%w %q: no two-letter code for %q", model.ErrUnknownLanguage, tag, code)
	}

	return code, nil
}

// Name returns English name of the language, or the code itself if the name is unknown
func Name(code string) string {
	base, err := language.ParseBase(code)
	if err != nil {
		return code
	}
	if name := namer.Name(base); name != "" {
		return name
	}
	return code
}
