package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func render(md string, opts ...Option) string {
	var buf bytes.Buffer
	New(opts...).Render(&buf, md)
	return buf.String()
}

func TestFormatInlineEmphasis(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"__bold__", "<strong>bold</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"_italic_", "<em>italic</em>"},
		{"text **bold** more", "text <strong>bold</strong> more"},
		{"**bold *italic* text**", "<strong>bold <em>italic</em> text</strong>"},
	}
	r := New()
	for _, tt := range tests {
		got := r.FormatInline(tt.input)
		if got != tt.expected {
			t.Errorf("FormatInline(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatInlineCodeIsNotFormatted(t *testing.T) {
	got := New().FormatInline("use `**kwargs` here")
	want := "use <code>**kwargs</code> here"
	if got != want {
		t.Errorf("FormatInline = %q, want %q", got, want)
	}
}

func TestFormatInlineLinks(t *testing.T) {
	r := New()

	got := r.FormatInline("see [the docs](https://example.com/a_b_c)")
	want := `see <a href="https://example.com/a_b_c">the docs</a>`
	if got != want {
		t.Errorf("FormatInline link = %q, want %q", got, want)
	}

	got = r.FormatInline("[ext](https://example.com)^")
	if !strings.Contains(got, `target="_blank"`) || !strings.Contains(got, `rel="noopener noreferrer"`) {
		t.Errorf("FormatInline new-tab link = %q", got)
	}

	got = r.FormatInline("[bad](javascript:alert(1))")
	if strings.Contains(got, "<a") {
		t.Errorf("FormatInline unsafe link rendered an anchor: %q", got)
	}
}

func TestFormatInlineEscapesHTML(t *testing.T) {
	got := New().FormatInline("<script>x</script>")
	if strings.Contains(got, "<script>") {
		t.Errorf("FormatInline did not escape: %q", got)
	}
}

func TestImageDefault(t *testing.T) {
	got := New().FormatInline(`![A cat](/img/cat.png "Our cat")`)
	want := `<img src="/img/cat.png" alt="A cat" loading="lazy"/><small>Our cat</small>`
	if got != want {
		t.Errorf("image = %q, want %q", got, want)
	}
}

func TestImageHook(t *testing.T) {
	var gotSrc, gotAlt, gotCaption string
	r := New(WithImage(func(src, alt, caption string) string {
		gotSrc, gotAlt, gotCaption = src, alt, caption
		return "<figure/>"
	}))
	out := r.FormatInline(`![Pipeline & stages](images/pipeline.png "CI/CD pipeline")`)
	if out != "<figure/>" {
		t.Errorf("FormatInline = %q", out)
	}
	if gotSrc != "images/pipeline.png" || gotAlt != "Pipeline & stages" || gotCaption != "CI/CD pipeline" {
		t.Errorf("hook args = %q %q %q", gotSrc, gotAlt, gotCaption)
	}
}

func TestRenderHeadings(t *testing.T) {
	got := render("# One\n## Two\n### Three")
	want := "<h1>One</h1><h2>Two</h2><h3>Three</h3>"
	if got != want {
		t.Errorf("headings = %q, want %q", got, want)
	}
}

func TestRenderParagraphs(t *testing.T) {
	got := render("first line\nsecond line\n\nnext")
	want := "<p>first line second line</p><p>next</p>"
	if got != want {
		t.Errorf("paragraphs = %q, want %q", got, want)
	}
}

func TestRenderCodeBlock(t *testing.T) {
	got := render("```yaml\ntrigger:\n  - master\n```")
	want := `<pre class="code-block"><code class="language-yaml">trigger:` + "\n" + `  - master` + "\n" + `</code></pre>`
	if got != want {
		t.Errorf("code block = %q, want %q", got, want)
	}

	got = render("```\n<b>\n```")
	if !strings.Contains(got, "&lt;b&gt;") {
		t.Errorf("code block did not escape: %q", got)
	}
}

func TestRenderUnclosedCodeBlock(t *testing.T) {
	got := render("```\nx")
	if !strings.HasSuffix(got, "</code></pre>") {
		t.Errorf("unclosed code block = %q", got)
	}
}

func TestRenderLists(t *testing.T) {
	got := render("- a\n- b\n\n1. one\n2. **two**\nafter")
	want := "<ul><li>a</li><li>b</li></ul><ol><li>one</li><li><strong>two</strong></li></ol><p>after</p>"
	if got != want {
		t.Errorf("lists = %q, want %q", got, want)
	}
}

func TestRenderQuoteAndRule(t *testing.T) {
	got := render("> quoted\n> more\n---")
	want := "<blockquote>quoted more</blockquote><hr/>"
	if got != want {
		t.Errorf("quote = %q, want %q", got, want)
	}
}

func TestRenderTable(t *testing.T) {
	got := render("| Stage | Tool |\n|---|:---:|\n| build | dotnet |")
	want := "<table><thead><tr><th>Stage</th><th>Tool</th></tr></thead><tbody><tr><td>build</td><td>dotnet</td></tr></tbody></table>"
	if got != want {
		t.Errorf("table = %q, want %q", got, want)
	}
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown("hello").Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "<p>hello</p>" {
		t.Errorf("component = %q", buf.String())
	}
}

func TestSafeURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/a", "/a"},
		{"#x", "#x"},
		{"images/a.png", "images/a.png"},
		{"https://x.io/?a=1&b=2", "https://x.io/?a=1&amp;b=2"},
		{"mailto:kj@example.com", "mailto:kj@example.com"},
		{"javascript:alert(1)", ""},
		{"  ", ""},
	}
	for _, tt := range tests {
		if got := SafeURL(tt.in); got != tt.want {
			t.Errorf("SafeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
