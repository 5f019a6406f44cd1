package classifier

import (
	"strings"

	"github.com/abadojack/whatlanggo"

	"github.com/etkecc/langdetect/internal/model"
	"github.com/etkecc/langdetect/internal/services/detector"
)

// Whatlang classifier, based on github.com/abadojack/whatlanggo.
// Emits ISO 639-1 tags, or ISO 639-3 ones for languages without two-letter code
type Whatlang struct {
	options       whatlanggo.Options
	minConfidence float64
}

// NewWhatlang creates whatlanggo classifier with languages from the config
func NewWhatlang(cfg *model.ConfigDetection) *Whatlang {
	return &Whatlang{
		options:       whatlangOptions(cfg.Languages),
		minConfidence: cfg.MinConfidence,
	}
}

func whatlangOptions(inputLangs []string) whatlanggo.Options {
	if len(inputLangs) == 0 || strings.EqualFold(inputLangs[0], model.AllLanguages) {
		return whatlanggo.Options{}
	}

	langs := make(map[string]bool, len(inputLangs))
	for _, inputLang := range inputLangs {
		langs[strings.ToLower(strings.TrimSpace(inputLang))] = true
	}
	whitelist := map[whatlanggo.Lang]bool{}
	for lang := range whatlanggo.Langs {
		// some languages have ISO 639-3 code only (e.g. pes), match them by their macrolanguage
		code, err := detector.Canonicalize(whatlangTag(lang))
		if err != nil {
			continue
		}
		if langs[code] {
			whitelist[lang] = true
		}
	}
	return whatlanggo.Options{Whitelist: whitelist}
}

// Classify returns the most probable language of the text
func (w *Whatlang) Classify(text string) *model.ClassifierResult {
	info := whatlanggo.DetectWithOptions(text, w.options)
	tag := whatlangTag(info.Lang)
	return &model.ClassifierResult{
		Tag:        tag,
		Confidence: info.Confidence,
		Reliable:   tag != "" && info.IsReliable() && info.Confidence >= w.minConfidence,
	}
}

// Languages returns codes of the enabled languages
func (w *Whatlang) Languages() []string {
	codes := []string{}
	for lang := range whatlanggo.Langs {
		if len(w.options.Whitelist) > 0 && !w.options.Whitelist[lang] {
			continue
		}
		codes = append(codes, whatlangTag(lang))
	}
	return codes
}

func whatlangTag(lang whatlanggo.Lang) string {
	if tag := lang.Iso6391(); tag != "" {
		return tag
	}
	return lang.Iso6393()
}
