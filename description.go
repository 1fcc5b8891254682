package kml

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// popupPolicy is built once; bluemonday policies are safe for concurrent
// use once configured.
var popupPolicy = sync.OnceValue(func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
})

// SanitizeDescription strips scripts, event handlers and other unsafe markup
// from an HTML description so it can be shown in a map popup.
func SanitizeDescription(s string) string {
	return popupPolicy().Sanitize(s)
}

// SanitizedDescription returns the placemark description made safe for a popup.
func (p Placemark) SanitizedDescription() string {
	return SanitizeDescription(p.Description)
}

// DescriptionText renders an HTML description as plain text. Block
// elements and <br> become line breaks and runs of spaces collapse.
func DescriptionText(s string) string {
	nodes, err := html.ParseFragment(strings.NewReader(s), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		return strings.TrimSpace(s)
	}

	var sb strings.Builder
	for _, n := range nodes {
		writeNodeText(&sb, n)
	}

	lines := strings.Split(sb.String(), "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func writeNodeText(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style:
			return
		case atom.Br:
			sb.WriteByte('\n')
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeNodeText(sb, c)
	}

	if n.Type == html.ElementNode && isBlock(n.DataAtom) {
		sb.WriteByte('\n')
	}
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Li, atom.Tr, atom.Table, atom.Ul, atom.Ol,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

// DescriptionText returns the placemark description as plain text.
func (p Placemark) DescriptionText() string {
	return DescriptionText(p.Description)
}
