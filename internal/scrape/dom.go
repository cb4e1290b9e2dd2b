package scrape

import (
	"strings"

	"golang.org/x/net/html"
)

// isElement reports whether n is an element with one of the given tags
func isElement(n *html.Node, tags ...string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, tag := range tags {
		if n.Data == tag {
			return true
		}
	}
	return false
}

// classContains reports whether any CSS class of n contains one of the
// given fragments, case-insensitively.
func classContains(n *html.Node, fragments ...string) bool {
	class := strings.ToLower(attr(n, "class"))
	if class == "" {
		return false
	}
	for _, c := range strings.Fields(class) {
		for _, f := range fragments {
			if strings.Contains(c, f) {
				return true
			}
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// textOf concatenates the text under n, skipping non-visible elements
func textOf(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if isElement(n, "script", "style", "noscript", "iframe") {
			return
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}

// findAll returns the descendants of n (n excluded) matching pred, in
// document order.
func findAll(n *html.Node, pred func(*html.Node) bool) []*html.Node {
	var results []*html.Node

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if pred(c) {
				results = append(results, c)
			}
			walk(c)
		}
	}

	walk(n)
	return results
}

// findFirst returns the first descendant of n matching pred
func findFirst(n *html.Node, pred func(*html.Node) bool) *html.Node {
	var result *html.Node

	var walk func(*html.Node) bool
	walk = func(node *html.Node) bool {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if pred(c) {
				result = c
				return true
			}
			if walk(c) {
				return true
			}
		}
		return false
	}

	walk(n)
	return result
}

// findParent returns the nearest ancestor with the given tag
func findParent(n *html.Node, tag string) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if isElement(p, tag) {
			return p
		}
	}
	return nil
}
