// Package html extracts readable text from HTML documents.
package html

import (
	"bytes"
	"context"
	"html"
	"regexp"
	"strings"

	"github.com/custodia-labs/persona-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor strips markup from HTML pages.
type Extractor struct{}

// New creates a new HTML extractor.
func New() *Extractor {
	return &Extractor{}
}

// Name identifies the extractor.
func (e *Extractor) Name() string {
	return "html"
}

// Extensions returns the suffixes this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".html", ".htm", ".xhtml"}
}

// MIMETypes returns the MIME types this extractor handles.
func (e *Extractor) MIMETypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// NeedsDeadline reports true; exported pages can be large.
func (e *Extractor) NeedsDeadline() bool {
	return true
}

// Extract returns the visible text of content. The page title, when present,
// becomes the first line.
func (e *Extractor) Extract(_ context.Context, _, _ string, content []byte) (string, error) {
	page := strings.ToValidUTF8(string(bytes.TrimPrefix(content, []byte{0xEF, 0xBB, 0xBF})), "")

	body := StripTags(page)
	title := Title(page)
	if title == "" || strings.HasPrefix(body, title) {
		return body, nil
	}
	if body == "" {
		return title, nil
	}
	return title + "\n" + body, nil
}

var (
	titleTag        = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	htmlComments    = regexp.MustCompile(`(?s)<!--.*?-->`)
	closeBlockTags  = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|tr|td|th|blockquote|pre|table|section|article|header|footer|ul|ol)>`)
	openBlockTags   = regexp.MustCompile(`(?i)<(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article|header|footer)(\s[^>]*)?>`)
	lineBreakTags   = regexp.MustCompile(`(?i)<(br|hr)\s*/?>`)
	cellTags        = regexp.MustCompile(`(?i)<t[dh](\s[^>]*)?>`)
	anyTag          = regexp.MustCompile(`<[^>]+>`)
	horizontalSpace = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)

	// Elements whose contents are never visible. Go regexps have no
	// backreferences, so each element gets its own pattern.
	dropElements = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<head(\s[^>]*)?>.*?</head>`),
		regexp.MustCompile(`(?is)<script(\s[^>]*)?>.*?</script>`),
		regexp.MustCompile(`(?is)<style(\s[^>]*)?>.*?</style>`),
		regexp.MustCompile(`(?is)<noscript(\s[^>]*)?>.*?</noscript>`),
		regexp.MustCompile(`(?is)<svg(\s[^>]*)?>.*?</svg>`),
		regexp.MustCompile(`(?is)<template(\s[^>]*)?>.*?</template>`),
	}
)

// Title returns the decoded contents of the <title> element, or "".
func Title(page string) string {
	m := titleTag.FindStringSubmatch(page)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(horizontalSpace.ReplaceAllString(html.UnescapeString(m[1]), " "))
}

// StripTags removes markup and returns one trimmed line per block of text.
func StripTags(page string) string {
	for _, re := range dropElements {
		page = re.ReplaceAllString(page, "")
	}
	page = htmlComments.ReplaceAllString(page, "")

	page = openBlockTags.ReplaceAllString(page, "\n")
	page = closeBlockTags.ReplaceAllString(page, "\n")
	page = lineBreakTags.ReplaceAllString(page, "\n")
	page = cellTags.ReplaceAllString(page, " ")
	page = anyTag.ReplaceAllString(page, "")

	page = html.UnescapeString(page)
	page = horizontalSpace.ReplaceAllString(page, " ")

	lines := strings.Split(page, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
