package render

import (
	"regexp"
	"strings"
)

var (
	blankLines = regexp.MustCompile(`\n\s*\n`)
	blockStart = regexp.MustCompile(`(?i)^<(p|div|h[1-6]|ul|ol|li|blockquote|pre|table|figure|hr|section|article|aside|header|footer|dl|form|address)[\s/>]`)
)

// AutoParagraph turns plain author text into html paragraphs the way the
// CMS displays it: blank lines separate paragraphs, single newlines become
// <br />, blocks that already open with a block-level tag are kept as is.
func AutoParagraph(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var out strings.Builder
	for _, block := range blankLines.Split(text, -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if blockStart.MatchString(block) {
			out.WriteString(block)
		} else {
			out.WriteString("<p>")
			out.WriteString(strings.ReplaceAll(block, "\n", "<br />\n"))
			out.WriteString("</p>")
		}
		out.WriteString("\n")
	}
	return out.String()
}
