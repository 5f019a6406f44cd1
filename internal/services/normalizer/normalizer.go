// Package normalizer converts raw user text (possibly HTML) into plain text suitable for language classification
package normalizer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"mvdan.cc/xurls/v2"

	"github.com/etkecc/langdetect/internal/model"
)

const (
	// DefaultMention matches user mentions, e.g. @alice or @alice@example.com
	DefaultMention = `(^|[^=/\p{L}\p{N}_])@[a-zA-Z0-9_]+(?:@[\p{L}\p{N}_.\-]+[\p{L}\p{N}_])?`
	// DefaultHashtag matches hashtags, e.g. #golang
	DefaultHashtag = `(^|[^/)\p{L}\p{N}_])#[\p{L}\p{N}_][\p{L}\p{N}_·]*`
	// DefaultShortcode matches custom emoji shortcodes, e.g. :blobcat:
	DefaultShortcode = `:[a-zA-Z0-9_]{2,}:`

	// boundary keeps the character captured before a mention or a hashtag
	boundary = "${1}"
)

var (
	lineBreaks     = regexp.MustCompile(`(?i)<br\s*/?>`)
	paragraphBreak = regexp.MustCompile(`(?i)</p>\s*<p\s*>`)
	paragraphEdges = regexp.MustCompile(`(?i)^<p\s*>|</p>$`)
	paragraphStray = regexp.MustCompile(`(?i)</?p\s*/?>`)

	// bluemonday escapes quotes and carriage returns, but they are plain text for the classifier
	unescaper = strings.NewReplacer("&#39;", "'", "&#34;", `"`, "&#13;", "\r")
)

// Pattern removes every substring matching Expr, replacing it with Replace
type Pattern struct {
	Name    string
	Expr    *regexp.Regexp
	Replace string
}

// Normalizer is immutable after creation and safe for concurrent use
type Normalizer struct {
	policy   *bluemonday.Policy
	patterns []*Pattern
}

// New creates a normalizer with the noise patterns from config.
// nil config means built-in patterns
func New(cfg *model.ConfigPatterns) (*Normalizer, error) {
	if cfg == nil {
		cfg = &model.ConfigPatterns{}
	}
	patterns, err := Patterns(cfg)
	if err != nil {
		return nil, err
	}
	return NewWithPatterns(patterns...), nil
}

// NewWithPatterns creates a normalizer with explicit noise patterns, applied in the given order
func NewWithPatterns(patterns ...*Pattern) *Normalizer {
	return &Normalizer{
		policy:   newPolicy(),
		patterns: patterns,
	}
}

// Patterns compiles noise patterns in their fixed order: url, mention, hashtag, shortcode
func Patterns(cfg *model.ConfigPatterns) ([]*Pattern, error) {
	url := xurls.Strict()
	if cfg.URLRelaxed {
		url = xurls.Relaxed()
	}

	mention, err := compile("mention", cfg.Mention, DefaultMention)
	if err != nil {
		return nil, err
	}
	hashtag, err := compile("hashtag", cfg.Hashtag, DefaultHashtag)
	if err != nil {
		return nil, err
	}
	shortcode, err := compile("shortcode", cfg.Shortcode, DefaultShortcode)
	if err != nil {
		return nil, err
	}

	return []*Pattern{
		{Name: "url", Expr: url},
		{Name: "mention", Expr: mention, Replace: boundary},
		{Name: "hashtag", Expr: hashtag, Replace: boundary},
		{Name: "shortcode", Expr: shortcode},
	}, nil
}

func compile(name, expr, defaultExpr string) (*regexp.Regexp, error) {
	if expr == "" {
		expr = defaultExpr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("cannot compile %s pattern: %w", name, err)
	}
	return re, nil
}

// newPolicy keeps paragraphs and line breaks only, everything else is reduced to text
func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "br")
	return p
}

// Normalize strips markup and noise tokens, collapses whitespace and trims the text
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = n.StripMarkup(text)
	text = n.RemoveNoise(text)

	return strings.Join(strings.Fields(text), " ")
}

// StripMarkup removes all tags except paragraphs and line breaks,
// and then converts the remaining ones into newlines
func (n *Normalizer) StripMarkup(text string) string {
	text = unescaper.Replace(n.policy.Sanitize(text))
	text = lineBreaks.ReplaceAllString(text, "\n")
	text = paragraphBreak.ReplaceAllString(text, "\n\n")
	text = paragraphEdges.ReplaceAllString(text, "")
	return paragraphStray.ReplaceAllString(text, "\n")
}

// RemoveNoise removes urls, mentions, hashtags and emoji shortcodes.
// Removal may expose a new token (e.g. "@:blobcat:alice"), so patterns are applied until nothing changes
func (n *Normalizer) RemoveNoise(text string) string {
	for {
		cleaned := text
		for _, pattern := range n.patterns {
			cleaned = pattern.Expr.ReplaceAllString(cleaned, pattern.Replace)
		}
		if cleaned == text {
			return cleaned
		}
		text = cleaned
	}
}
