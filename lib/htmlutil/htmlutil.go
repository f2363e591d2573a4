package htmlutil

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// GetText concatenates every text node under node, dropping the markup.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var tableTag = regexp.MustCompile(`(?i)<table[\s>]`)

// ParseTableFragment parses a fragment of table markup. The HTML parser drops
// <tr> and <td> tags that appear outside of a <table>, so fragments that are
// only a run of rows get wrapped in one first.
func ParseTableFragment(fragment string) (*goquery.Document, error) {
	if !tableTag.MatchString(fragment) {
		fragment = "<table>" + fragment + "</table>"
	}
	return goquery.NewDocumentFromReader(strings.NewReader(fragment))
}
