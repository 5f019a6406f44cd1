package model

// Source of the detected language
type Source string

const (
	// SourceClassifier - language detected by the classifier
	SourceClassifier Source = "classifier"
	// SourceAccount - account's preferred locale used as fallback
	SourceAccount Source = "account"
	// SourceDefault - system-wide default locale used as fallback
	SourceDefault Source = "default"
)

// Reason explains why the fallback locale was used
type Reason string

const (
	// ReasonShort - normalized text is shorter than the detection threshold
	ReasonShort Reason = "short"
	// ReasonUnreliable - the classifier is not confident in its guess
	ReasonUnreliable Reason = "unreliable"
	// ReasonUnknownLanguage - the classifier returned a language that cannot be canonicalized
	ReasonUnknownLanguage Reason = "unknown_language"
)

// ClassifierResult is the raw output of a language classifier
type ClassifierResult struct {
	Tag        string  // language family tag, e.g. "en", "zh-Hans", "heb"
	Reliable   bool    // is the classifier confident in the result
	Confidence float64 // classifier-specific confidence in [0,1]
}

// Detection is the outcome of language detection.
// nil detection means there was no content to judge.
type Detection struct {
	Language string `json:"language"`         // two-letter lowercase code or fallback locale
	Source   Source `json:"source"`           // where the language came from
	Reason   Reason `json:"reason,omitempty"` // why the fallback was used, empty for classifier results
}

// IsFallback returns true if the language was not detected by the classifier
func (d *Detection) IsFallback() bool {
	return d != nil && d.Source != SourceClassifier
}

// Language is a supported language
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// DetectRequest is a single detection request
type DetectRequest struct {
	ID        string `json:"id,omitempty"`
	Text      string `json:"text"`
	AccountID string `json:"account_id,omitempty"`
}

// DetectResponse is a single detection response
type DetectResponse struct {
	ID        string     `json:"id,omitempty"`
	Detection *Detection `json:"detection"`
	Error     string     `json:"error,omitempty"`
}
