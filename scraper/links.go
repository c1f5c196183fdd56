package scraper

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Link is an anchor extracted from a listing page.
type Link struct {
	URL   string
	Title string
}

// ExtractNoticeLinks parses the page and returns absolute links whose anchor
// text contains any of the given keywords. An empty keyword list matches
// every anchor. Malformed HTML is tolerated; the parser recovers the way
// browsers do.
func ExtractNoticeLinks(page, pageURL string, keywords []string) []Link {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	var links []Link
	walkAnchors(page, func(href, text string) {
		text = strings.TrimSpace(text)
		if !matchesAny(text, keywords) {
			return
		}
		abs := resolve(base, href)
		if abs == "" {
			return
		}
		links = append(links, Link{URL: abs, Title: text})
	})
	return links
}

// ExtractPDFLinks returns every absolute .pdf link on the page.
func ExtractPDFLinks(page, pageURL string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	var links []string
	seen := make(map[string]bool)
	walkAnchors(page, func(href, _ string) {
		if !strings.Contains(strings.ToLower(href), ".pdf") {
			return
		}
		abs := resolve(base, href)
		if abs == "" || seen[abs] {
			return
		}
		seen[abs] = true
		links = append(links, abs)
	})
	return links
}

// ExtractText returns the page's visible text with scripts and styles
// removed, paragraph-ish blocks separated by newlines.
func ExtractText(page string) string {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return ""
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			case "p", "div", "br", "li", "tr", "h1", "h2", "h3", "h4":
				sb.WriteString("\n")
			}
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	lines := strings.Split(sb.String(), "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// walkAnchors calls fn for every <a href> element with its href attribute and
// concatenated text content.
func walkAnchors(page string, fn func(href, text string)) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if href, ok := attr(n, "href"); ok {
				fn(href, nodeText(n))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func matchesAny(text string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func resolve(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	abs := base.ResolveReference(ref)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return ""
	}
	return abs.String()
}
