package browser

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ArticleTitle picks the headline of an article document: og:title first,
// then the first h1, then the document title.
func ArticleTitle(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parsing article: %w", err)
	}

	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		if title := clean(og); title != "" {
			return title, nil
		}
	}
	if title := clean(doc.Find("h1").First().Text()); title != "" {
		return title, nil
	}
	return clean(doc.Find("title").First().Text()), nil
}

func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
