// Package detector decides the language of user-generated text
package detector

import (
	"context"
	"errors"
	"sync"
	"unicode/utf8"

	"github.com/etkecc/go-apm"
	"github.com/etkecc/go-kit"
	"golang.org/x/exp/slices"
	"golang.org/x/text/language/display"

	"github.com/etkecc/langdetect/internal/metrics"
	"github.com/etkecc/langdetect/internal/model"
	"github.com/etkecc/langdetect/internal/utils"
)

var namer = display.English.Languages()

// Classifier is a statistical language classifier.
// Implementations must be safe for concurrent use
type Classifier interface {
	Classify(text string) *model.ClassifierResult
}

// Vocabulary lists language tags known to the classifier
type Vocabulary interface {
	Languages() []string
}

type textNormalizer interface {
	Normalize(text string) string
}

type configService interface {
	Get() *model.Config
}

// Detector is the detection decision engine: it normalizes the text, applies the reliability gate,
// calls the classifier, canonicalizes its output and falls back to account or default locale
type Detector struct {
	cfg        configService
	normalizer textNormalizer
	classifier Classifier
	vocabulary Vocabulary

	languagesOnce sync.Once
	languages     []string
}

// New creates new detector
func New(cfg configService, normalizer textNormalizer, classifier Classifier, vocabulary Vocabulary) *Detector {
	return &Detector{
		cfg:        cfg,
		normalizer: normalizer,
		classifier: classifier,
		vocabulary: vocabulary,
	}
}

// Detect the language of the text.
// Returns nil detection if there is no content to judge (empty text after normalization),
// fallback locale (account's or default) if the text is too short or the classifier is not confident,
// and an error wrapping model.ErrUnknownLanguage if the classifier result cannot be canonicalized
func (d *Detector) Detect(ctx context.Context, text string, account *model.Account) (*model.Detection, error) {
	log := apm.Log(ctx)
	normalized := d.normalizer.Normalize(text)
	if normalized == "" {
		log.Debug().Msg("nothing to detect")
		metrics.Empty.Inc()
		return nil, nil
	}

	cfg := d.cfg.Get().Detection
	if length := utf8.RuneCountInString(normalized); length < cfg.Threshold {
		log.Debug().Int("length", length).Int("threshold", cfg.Threshold).Msg("text is too short")
		return d.Fallback(ctx, account, model.ReasonShort), nil
	}

	result := d.classifier.Classify(normalized)
	if result == nil || !result.Reliable {
		log.Debug().Any("result", result).Str("text", utils.Truncate(normalized, 64)).Msg("classifier result is not reliable")
		return d.Fallback(ctx, account, model.ReasonUnreliable), nil
	}

	code, err := Canonicalize(result.Tag)
	if err != nil {
		metrics.IncUnknownLanguage(result.Tag)
		return nil, err
	}

	log.Debug().Str("tag", result.Tag).Str("language", code).Float64("confidence", result.Confidence).Msg("language detected")
	metrics.IncDetections(string(model.SourceClassifier), "")
	metrics.IncLanguages(code)
	return &model.Detection{Language: code, Source: model.SourceClassifier}, nil
}

// Fallback returns account's preferred locale, or the system-wide default locale if the account has none.
// It never returns nil
func (d *Detector) Fallback(ctx context.Context, account *model.Account, reason model.Reason) *model.Detection {
	detection := &model.Detection{
		Language: d.cfg.Get().Detection.DefaultLocale,
		Source:   model.SourceDefault,
		Reason:   reason,
	}
	if account.HasLocale() {
		detection.Language = account.Locale
		detection.Source = model.SourceAccount
	}

	apm.Log(ctx).Debug().Str("language", detection.Language).Str("source", string(detection.Source)).Str("reason", string(reason)).Msg("fallback")
	metrics.IncDetections(string(detection.Source), string(reason))
	metrics.IncLanguages(detection.Language)
	return detection
}

// DetectOrFallback detects the language of the text,
// treating unknown classifier languages as unreliable results
func (d *Detector) DetectOrFallback(ctx context.Context, text string, account *model.Account) (*model.Detection, error) {
	detection, err := d.Detect(ctx, text, account)
	if errors.Is(err, model.ErrUnknownLanguage) {
		apm.Log(ctx).Error().Err(err).Msg("classifier returned unknown language, using fallback")
		return d.Fallback(ctx, account, model.ReasonUnknownLanguage), nil
	}
	return detection, err
}

// SupportedLanguages returns deduplicated and sorted two-letter codes of all languages known to the classifier.
// The result is computed once, because the classifier vocabulary is static.
// Tags without two-letter code are skipped, as the classifier results with such tags cannot be canonicalized anyway
func (d *Detector) SupportedLanguages(ctx context.Context) []string {
	d.languagesOnce.Do(func() {
		log := apm.Log(ctx)
		if d.vocabulary == nil {
			d.languages = []string{}
			return
		}

		tags := d.vocabulary.Languages()
		codes := make([]string, 0, len(tags))
		for _, tag := range tags {
			code, err := Canonicalize(tag)
			if err != nil {
				log.Warn().Err(err).Str("tag", tag).Msg("cannot canonicalize supported language")
				continue
			}
			codes = append(codes, code)
		}
		codes = kit.Uniq(codes)
		slices.Sort(codes)

		log.Info().Int("tags", len(tags)).Int("languages", len(codes)).Msg("supported languages loaded")
		d.languages = codes
	})

	return d.languages
}

// SupportedLanguagesNames returns supported languages with their English names
func (d *Detector) SupportedLanguagesNames(ctx context.Context) []*model.Language {
	codes := d.SupportedLanguages(ctx)
	languages := make([]*model.Language, 0, len(codes))
	for _, code := range codes {
		languages = append(languages, &model.Language{Code: code, Name: Name(code)})
	}
	return languages
}
