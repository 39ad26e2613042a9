package process

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Anchor is one <a> element in document order. HasHref distinguishes a
// missing href attribute from an empty one; Raw keeps the rendered element
// for report lines.
type Anchor struct {
	Href    string
	HasHref bool
	Raw     string
}

// ExtractAnchors returns every anchor element in the document, in order.
func ExtractAnchors(body io.Reader) ([]Anchor, error) {
	doc, err := html.Parse(body)
	if err != nil {
		return nil, err
	}

	return collectAnchors(doc), nil
}

func collectAnchors(n *html.Node) []Anchor {
	var anchors []Anchor
	if n.Type == html.ElementNode && n.Data == "a" {
		a := Anchor{Raw: renderNode(n)}
		for _, attr := range n.Attr {
			if attr.Key == "href" {
				a.Href = strings.TrimSpace(attr.Val)
				a.HasHref = true
				break
			}
		}
		anchors = append(anchors, a)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		anchors = append(anchors, collectAnchors(c)...)
	}
	return anchors
}

func renderNode(n *html.Node) string {
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return ""
	}
	return sb.String()
}

// ExtractListing pulls the document filenames out of a GitHub directory
// listing page: the text of every anchor carrying the js-navigation-open
// class, in page order.
func ExtractListing(body io.Reader) ([]string, error) {
	doc, err := html.Parse(body)
	if err != nil {
		return nil, err
	}

	return collectListing(doc), nil
}

func collectListing(n *html.Node) []string {
	var names []string
	if n.Type == html.ElementNode && n.Data == "a" && hasClass(n, "js-navigation-open") {
		if name := strings.TrimSpace(nodeText(n)); name != "" {
			names = append(names, name)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		names = append(names, collectListing(c)...)
	}
	return names
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(nodeText(c))
	}
	return sb.String()
}
