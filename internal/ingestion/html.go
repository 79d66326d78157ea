package ingestion

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLToText flattens a rendered HTML résumé to plain text so it can be fed
// back into the analyzer. Scripts and styles are dropped; block boundaries
// become line breaks.
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", &EncodeError{Message: "failed to parse HTML", Cause: err}
	}

	doc.Find("script, style, noscript").Remove()

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	var sb strings.Builder
	root.Find("h1, h2, h3, h4, h5, h6, p, li, div, section, article, td, th").Each(func(_ int, s *goquery.Selection) {
		// Only leaves contribute text, otherwise parents repeat their children.
		if s.Children().Length() > 0 {
			return
		}
		line := strings.TrimSpace(s.Text())
		if line != "" {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	})

	text := strings.TrimSpace(sb.String())
	if text == "" {
		text = strings.TrimSpace(root.Text())
	}
	return text, nil
}
