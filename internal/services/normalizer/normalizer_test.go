package normalizer

import (
	"regexp"
	"strings"
	"testing"

	"github.com/etkecc/langdetect/internal/model"
)

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	n, err := New(nil)
	if err != nil {
		t.Fatalf("cannot create normalizer: %v", err)
	}
	return n
}

func TestNormalize(t *testing.T) {
	n := newTestNormalizer(t)
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", " \t\n  ", ""},
		{"plain text", "Hello world", "Hello world"},
		{"markup example", `<p>Check <a href="http://x.test/a">this</a> out @alice #cool :smile:</p>`, "Check this out"},
		{"paragraphs", "<p>Hello</p><p>World</p>", "Hello World"},
		{"paragraphs with whitespace between", "<p>Hello</p>\n<p>World</p>", "Hello World"},
		{"line breaks", "line<br>break<br/>here<BR />done", "line break here done"},
		{"stray paragraph", "before<p>inside</p>after", "before inside after"},
		{"self-closing paragraph", "a<p/>b", "a b"},
		{"self-closing paragraph only", "<p/>", ""},
		{"self-closing paragraph before script", "-=1<p/><script>", "-=1"},
		{"disallowed tags keep text", "<div><span>kept</span> <b>text</b></div>", "kept text"},
		{"script content dropped", "<script>alert(1)</script>hi", "hi"},
		{"url", "Visit https://example.com/path?x=1#frag now", "Visit now"},
		{"url inside paragraph", "<p>https://example.com</p><p>text</p>", "text"},
		{"mention", "Hello @alice and @bob!", "Hello and !"},
		{"remote mention", "cc @alice@mastodon.social please", "cc please"},
		{"email is not a mention", "write to foo@example.com", "write to foo@example.com"},
		{"hashtag", "I love #golang and #Go_lang", "I love and"},
		{"unicode hashtag", "привет #мир", "привет"},
		{"hash inside word", "issue a#b", "issue a#b"},
		{"shortcode", "nice :blobcat: work", "nice work"},
		{"one char shortcode is kept", "a :b: c", "a :b: c"},
		{"nested noise", "@:blobcat:alice hi", "hi"},
		{"quotes are kept", `<p>don't "quote"</p>`, `don't "quote"`},
		{"non-breaking spaces", "a&nbsp;&nbsp;b", "a b"},
		{"collapse whitespace", "  a \t\n b  ", "a b"},
		{"carriage returns", "a\r\nb", "a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Normalize(tt.input)
			if got != tt.want {
				t.Errorf("got [%s], want [%s]", got, tt.want)
			}
		})
	}
}

func TestNormalize_NoNoiseLeft(t *testing.T) {
	n := newTestNormalizer(t)
	input := `<p>Check <a href="http://x.test/a">this</a> out @alice #cool :smile:</p><p>https://x.test/b <i>more</i><br>text</p>`

	got := n.Normalize(input)
	for _, forbidden := range []string{"<", ">", "http", "@alice", "#cool", ":smile:", "  ", "\n"} {
		if strings.Contains(got, forbidden) {
			t.Errorf("[%s] contains [%s]", got, forbidden)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	n := newTestNormalizer(t)
	inputs := []string{
		"",
		"plain text",
		`<p>Check <a href="http://x.test/a">this</a> out @alice #cool :smile:</p>`,
		"a & b < c > d",
		"&amp;lt;b&amp;gt; escaped markup",
		"&amp;#39; double escaped quote",
		"&lt;b&gt;escaped&lt;/b&gt;",
		`<p>don't "quote"</p>`,
		"@:blobcat:alice #:wave:tag",
		"12:30:45 at the meeting",
		"<p>one</p><p>two</p><br><p>three",
		"<p/>a<P />b",
		"  spaced \t out \n text  ",
		"ünïcödé 日本語のテキスト @ユーザー",
	}
	for _, input := range inputs {
		once := n.Normalize(input)
		twice := n.Normalize(once)
		if once != twice {
			t.Errorf("not idempotent for [%s]: once [%s], twice [%s]", input, once, twice)
		}
	}
}

func TestNormalize_CustomPatterns(t *testing.T) {
	n := NewWithPatterns(&Pattern{Name: "digits", Expr: regexp.MustCompile(`[0-9]+`)})

	got := n.Normalize("<p>room 101</p><p>floor 3 @alice</p>")
	want := "room floor @alice"
	if got != want {
		t.Errorf("got [%s], want [%s]", got, want)
	}
}

func TestNew_CustomConfig(t *testing.T) {
	n, err := New(&model.ConfigPatterns{
		URLRelaxed: true,
		Shortcode:  `;[a-z]+;`,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := n.Normalize("see example.com ;wave; :kept:")
	want := "see :kept:"
	if got != want {
		t.Errorf("got [%s], want [%s]", got, want)
	}
}

func TestNew_InvalidPattern(t *testing.T) {
	tests := []struct {
		name string
		cfg  *model.ConfigPatterns
	}{
		{"mention", &model.ConfigPatterns{Mention: "(["}},
		{"hashtag", &model.ConfigPatterns{Hashtag: "(["}},
		{"shortcode", &model.ConfigPatterns{Shortcode: "(["}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.name) {
				t.Errorf("error [%v] does not mention [%s]", err, tt.name)
			}
		})
	}
}

func TestPatterns_Order(t *testing.T) {
	patterns, err := Patterns(&model.ConfigPatterns{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"url", "mention", "hashtag", "shortcode"}
	if len(patterns) != len(want) {
		t.Fatalf("got %d patterns, want %d", len(patterns), len(want))
	}
	for i, pattern := range patterns {
		if pattern.Name != want[i] {
			t.Errorf("pattern %d: got [%s], want [%s]", i, pattern.Name, want[i])
		}
	}
}
