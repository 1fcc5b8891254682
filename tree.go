package kml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// element is a parsed XML element. Names are local names; KML namespace
// prefixes (kml:, gx:) are ignored when matching.
type element struct {
	name     string
	attrs    []xml.Attr
	children []*element
	chunks   []textChunk
}

// textChunk is character data that appeared before children[pos].
type textChunk struct {
	pos  int
	text string
}

// parseTree reads the whole XML document into an element tree.
// Encodings other than UTF-8 are converted using the declared charset.
func parseTree(data []byte) (*element, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel

	var (
		root  *element
		stack []*element
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{name: t.Name.Local, attrs: t.Attr}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("%w: multiple root elements", ErrFormat)
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			}
			stack = append(stack, el)

		case xml.EndElement:
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			cur := stack[len(stack)-1]
			cur.chunks = append(cur.chunks, textChunk{pos: len(cur.children), text: string(t)})
		}
	}

	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrFormat)
	}
	return root, nil
}

// attr returns the value of the attribute with the given local name.
func (e *element) attr(name string) string {
	for _, a := range e.attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// child returns the first direct child called name.
func (e *element) child(name string) *element {
	if e == nil {
		return nil
	}
	for _, c := range e.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// find returns the first descendant called name in document order.
func (e *element) find(name string) *element {
	if e == nil {
		return nil
	}
	for _, c := range e.children {
		if c.name == name {
			return c
		}
		if found := c.find(name); found != nil {
			return found
		}
	}
	return nil
}

// findAll returns every descendant called name in document order.
func (e *element) findAll(name string) []*element {
	var out []*element
	e.walk(func(el *element) {
		if el.name == name {
			out = append(out, el)
		}
	})
	return out
}

// walk visits all descendants of e depth-first, parents before children.
func (e *element) walk(fn func(*element)) {
	if e == nil {
		return
	}
	for _, c := range e.children {
		fn(c)
		c.walk(fn)
	}
}

// path follows a chain of descendant lookups, e.g. path("Icon", "href").
func (e *element) path(names ...string) *element {
	cur := e
	for _, n := range names {
		cur = cur.find(n)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// text returns the concatenated character data of e and its descendants.
func (e *element) text() string {
	if e == nil {
		return ""
	}
	var sb strings.Builder
	e.writeText(&sb)
	return sb.String()
}

func (e *element) writeText(sb *strings.Builder) {
	ci := 0
	for i, c := range e.children {
		for ci < len(e.chunks) && e.chunks[ci].pos == i {
			sb.WriteString(e.chunks[ci].text)
			ci++
		}
		c.writeText(sb)
	}
	for ; ci < len(e.chunks); ci++ {
		sb.WriteString(e.chunks[ci].text)
	}
}
