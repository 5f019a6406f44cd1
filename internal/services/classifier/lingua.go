package classifier

import (
	"fmt"
	"strings"

	"github.com/pemistahl/lingua-go"

	"github.com/etkecc/langdetect/internal/model"
)

// Lingua classifier, based on github.com/pemistahl/lingua-go
type Lingua struct {
	detector            lingua.LanguageDetector
	languages           []lingua.Language
	minConfidence       float64
	minRelativeDistance float64
}

// NewLingua creates lingua classifier with languages from the config
func NewLingua(cfg *model.ConfigDetection) (*Lingua, error) {
	languages := linguaLanguages(cfg.Languages)
	if len(languages) < 2 {
		return nil, fmt.Errorf("lingua requires at least 2 known languages, got %d from %v", len(languages), cfg.Languages)
	}

	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(languages...).
		WithMinimumRelativeDistance(cfg.MinRelativeDistance).
		Build()

	return &Lingua{
		detector:            detector,
		languages:           languages,
		minConfidence:       cfg.MinConfidence,
		minRelativeDistance: cfg.MinRelativeDistance,
	}, nil
}

func linguaLanguages(inputLangs []string) []lingua.Language {
	all := lingua.AllLanguages()
	if len(inputLangs) > 0 && strings.EqualFold(inputLangs[0], model.AllLanguages) {
		return all
	}

	enabled := make([]lingua.Language, 0, len(inputLangs))
	langs := make(map[string]bool, len(inputLangs))
	for _, inputLang := range inputLangs {
		langs[strings.ToUpper(strings.TrimSpace(inputLang))] = true
	}
	for _, lang := range all {
		if langs[lang.IsoCode639_1().String()] {
			enabled = append(enabled, lang)
		}
	}
	return enabled
}

// Classify returns the most probable language of the text.
// The result is reliable when the best guess is confident enough
// and far enough from the second best one
func (l *Lingua) Classify(text string) *model.ClassifierResult {
	cvs := l.detector.ComputeLanguageConfidenceValues(text)
	if len(cvs) == 0 {
		return &model.ClassifierResult{}
	}

	best := cvs[0]
	result := &model.ClassifierResult{
		Tag:        strings.ToLower(best.Language().IsoCode639_1().String()),
		Confidence: best.Value(),
	}
	if best.Value() < l.minConfidence {
		return result
	}
	if len(cvs) > 1 && best.Value()-cvs[1].Value() < l.minRelativeDistance {
		return result
	}
	result.Reliable = best.Language() != lingua.Unknown
	return result
}

// Languages returns ISO 639-1 codes of the enabled languages
func (l *Lingua) Languages() []string {
	codes := make([]string, 0, len(l.languages))
	for _, lang := range l.languages {
		codes = append(codes, strings.ToLower(lang.IsoCode639_1().String()))
	}
	return codes
}
