// Package markdown renders the small markdown subset used by post bodies.
//
// Supported blocks: headings (#, ##, ###), paragraphs, fenced code, "- " and
// "1. " lists, "> " quotes, pipe tables and "---" rules. Inline: bold,
// italic, code, links (a trailing ^ opens in a new tab) and images.
package markdown

import (
	"bytes"
	"context"
	"html"
	"io"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

var (
	reBold       = regexp.MustCompile(`\*\*(.+?)\*\*|__(.+?)__`)
	reItalic     = regexp.MustCompile(`\*([^*]+)\*|_([^_]+)_`)
	reInlineCode = regexp.MustCompile("`([^`]+)`")
	reLink       = regexp.MustCompile(`\[(.*?)\]\((.*?)\)(\^)?`)
	reOrdered    = regexp.MustCompile(`^\d+\.\s`)
	// ![alt](src) or ![alt](src "caption"); quotes are already escaped.
	reImage = regexp.MustCompile(`!\[(.*?)\]\((\S+?)(?:\s+&#34;(.*?)&#34;)?\)`)
)

// ImageFunc renders an image. Arguments are unescaped. A non-empty caption
// comes from the ![alt](src "caption") form.
type ImageFunc func(src, alt, caption string) string

// Renderer turns markdown into HTML.
type Renderer struct {
	image ImageFunc
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithImage replaces the default <img> output.
func WithImage(fn ImageFunc) Option {
	return func(r *Renderer) { r.image = fn }
}

// New returns a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{image: defaultImage}
	for _, o := range opts {
		o(r)
	}
	return r
}

func defaultImage(src, alt, caption string) string {
	out := `<img src="` + templ.EscapeString(src) + `" alt="` + templ.EscapeString(alt) + `" loading="lazy"/>`
	if caption != "" {
		out += `<small>` + templ.EscapeString(caption) + `</small>`
	}
	return out
}

// Markdown renders md with the default renderer.
func Markdown(md string) templ.Component {
	return New().Component(md)
}

// Component returns a templ.Component that renders md.
func (r *Renderer) Component(md string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		r.Render(&buf, md)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// Render writes the HTML for md to buf.
func (r *Renderer) Render(buf *bytes.Buffer, md string) {
	b := &blocks{r: r, buf: buf}
	for _, raw := range strings.Split(md, "\n") {
		b.line(strings.TrimRight(raw, "\r"))
	}
	b.closeAll()
	b.closeCode()
}

type blockKind int

const (
	none blockKind = iota
	para
	list
	ordered
	quote
	table
)

var closers = map[blockKind]string{
	para:    "</p>",
	list:    "</ul>",
	ordered: "</ol>",
	quote:   "</blockquote>",
}

// blocks tracks the open block while lines stream through.
type blocks struct {
	r         *Renderer
	buf       *bytes.Buffer
	open      blockKind
	inCode    bool
	tableBody bool
}

func (b *blocks) closeAll() {
	switch b.open {
	case none:
	case table:
		if b.tableBody {
			b.buf.WriteString("</tbody>")
		}
		b.buf.WriteString("</table>")
		b.tableBody = false
	default:
		b.buf.WriteString(closers[b.open])
	}
	b.open = none
}

func (b *blocks) closeCode() {
	if b.inCode {
		b.buf.WriteString("</code></pre>")
		b.inCode = false
	}
}

// enter closes the current block unless it is k, then opens k with tag.
func (b *blocks) enter(k blockKind, tag string) bool {
	if b.open == k {
		return false
	}
	b.closeAll()
	b.buf.WriteString(tag)
	b.open = k
	return true
}

func (b *blocks) inline(s string) string {
	return b.r.FormatInline(strings.TrimSpace(s))
}

func (b *blocks) line(line string) {
	if strings.HasPrefix(line, "```") {
		if b.inCode {
			b.closeCode()
			return
		}
		b.closeAll()
		if lang := strings.TrimSpace(line[3:]); lang != "" {
			b.buf.WriteString(`<pre class="code-block"><code class="language-` + templ.EscapeString(lang) + `">`)
		} else {
			b.buf.WriteString(`<pre class="code-block"><code>`)
		}
		b.inCode = true
		return
	}
	if b.inCode {
		b.buf.WriteString(templ.EscapeString(line))
		b.buf.WriteString("\n")
		return
	}
	if strings.TrimSpace(line) == "" {
		b.closeAll()
		return
	}

	switch {
	case strings.HasPrefix(line, "---"):
		b.closeAll()
		b.buf.WriteString("<hr/>")
	case strings.HasPrefix(line, "### "):
		b.heading(3, line[4:])
	case strings.HasPrefix(line, "## "):
		b.heading(2, line[3:])
	case strings.HasPrefix(line, "# "):
		b.heading(1, line[2:])
	case strings.HasPrefix(line, "|"):
		b.tableRow(line)
	case strings.HasPrefix(line, "- "):
		b.enter(list, "<ul>")
		b.buf.WriteString("<li>" + b.inline(line[2:]) + "</li>")
	case reOrdered.MatchString(line):
		b.enter(ordered, "<ol>")
		b.buf.WriteString("<li>" + b.inline(reOrdered.ReplaceAllString(line, "")) + "</li>")
	case strings.HasPrefix(line, "> "):
		if !b.enter(quote, "<blockquote>") {
			b.buf.WriteString(" ")
		}
		b.buf.WriteString(b.inline(line[2:]))
	default:
		if !b.enter(para, "<p>") {
			b.buf.WriteString(" ")
		}
		b.buf.WriteString(b.inline(line))
	}
}

func (b *blocks) heading(level int, text string) {
	b.closeAll()
	n := strconv.Itoa(level)
	b.buf.WriteString("<h" + n + ">" + b.inline(text) + "</h" + n + ">")
}

func (b *blocks) tableRow(line string) {
	cells := splitCells(line)
	if b.enter(table, "<table>") {
		b.buf.WriteString("<thead><tr>")
		for _, c := range cells {
			b.buf.WriteString("<th>" + b.inline(c) + "</th>")
		}
		b.buf.WriteString("</tr></thead>")
		return
	}
	if !b.tableBody {
		b.buf.WriteString("<tbody>")
		b.tableBody = true
	}
	if isSeparator(cells) {
		return
	}
	b.buf.WriteString("<tr>")
	for _, c := range cells {
		b.buf.WriteString("<td>" + b.inline(c) + "</td>")
	}
	b.buf.WriteString("</tr>")
}

func splitCells(line string) []string {
	parts := strings.Split(strings.Trim(strings.TrimSpace(line), "|"), "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func isSeparator(cells []string) bool {
	for _, c := range cells {
		if strings.Trim(c, "-: ") != "" {
			return false
		}
	}
	return true
}

// FormatInline escapes s and applies inline formatting.
func (r *Renderer) FormatInline(s string) string {
	out := templ.EscapeString(s)

	// Pull out code spans and images first so emphasis never touches them.
	var held []string
	hold := func(h string) string {
		held = append(held, h)
		return "\x00" + strconv.Itoa(len(held)-1) + "\x00"
	}
	out = reInlineCode.ReplaceAllStringFunc(out, func(m string) string {
		return hold("<code>" + reInlineCode.FindStringSubmatch(m)[1] + "</code>")
	})
	out = reImage.ReplaceAllStringFunc(out, func(m string) string {
		g := reImage.FindStringSubmatch(m)
		src := SafeURL(g[2])
		if src == "" {
			return g[1]
		}
		return hold(r.image(html.UnescapeString(src), html.UnescapeString(g[1]), html.UnescapeString(g[3])))
	})
	out = reLink.ReplaceAllStringFunc(out, func(m string) string {
		g := reLink.FindStringSubmatch(m)
		href := SafeURL(g[2])
		if href == "" {
			return g[1]
		}
		attrs := ""
		if g[3] == "^" {
			attrs = ` target="_blank" rel="noopener noreferrer"`
		}
		return `<a href="` + href + `"` + attrs + `>` + g[1] + `</a>`
	})
	out = outsideTags(out, func(seg string) string {
		seg = reBold.ReplaceAllString(seg, "<strong>$1$2</strong>")
		return reItalic.ReplaceAllString(seg, "<em>$1$2</em>")
	})
	for i, h := range held {
		out = strings.Replace(out, "\x00"+strconv.Itoa(i)+"\x00", h, 1)
	}
	return out
}

// outsideTags applies fn to the text between HTML tags only, so attribute
// values such as hrefs are left alone.
func outsideTags(s string, fn func(string) string) string {
	var b strings.Builder
	for s != "" {
		lt := strings.IndexByte(s, '<')
		if lt < 0 {
			b.WriteString(fn(s))
			break
		}
		b.WriteString(fn(s[:lt]))
		gt := strings.IndexByte(s[lt:], '>')
		if gt < 0 {
			b.WriteString(s[lt:])
			break
		}
		b.WriteString(s[lt : lt+gt+1])
		s = s[lt+gt+1:]
	}
	return b.String()
}

// SafeURL returns raw escaped for an attribute, or "" when its scheme is not
// one of http, https, mailto or tel. Relative paths and fragments pass.
func SafeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if !strings.Contains(val, ":") || strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return templ.EscapeString(val)
	}
	u, err := url.Parse(val)
	if err != nil {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "mailto", "tel":
		return templ.EscapeString(val)
	}
	return ""
}
