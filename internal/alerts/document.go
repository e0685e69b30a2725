package alerts

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// element is a minimal XML tree node. text holds the concatenated character
// data of every descendant, the same value a DOM reports as textContent.
type element struct {
	name     string
	children []*element
	text     strings.Builder
}

// parseDocument builds a tree from a well-formed XML document and returns an
// unnamed document node whose only child is the root element. Content after
// the root element, other than whitespace, comments and processing
// instructions, is rejected.
func parseDocument(doc []byte) (*element, error) {
	doc = bytes.TrimPrefix(doc, []byte("\xef\xbb\xbf"))
	decoder := xml.NewDecoder(bytes.NewReader(doc))
	decoder.CharsetReader = charset.NewReaderLabel

	var root *element
	var stack []*element
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{name: t.Name.Local}
			switch {
			case len(stack) > 0:
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			case root != nil:
				return nil, errors.New("junk after document element")
			default:
				root = el
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				if len(bytes.TrimSpace(t)) > 0 {
					return nil, errors.New("text outside document element")
				}
				continue
			}
			for _, el := range stack {
				el.text.Write(t)
			}
		}
	}
	if root == nil {
		return nil, errors.New("no document element")
	}
	return &element{children: []*element{root}}, nil
}

// all returns every descendant named name, in document order.
func (e *element) all(name string) []*element {
	var found []*element
	var walk func(*element)
	walk = func(el *element) {
		for _, child := range el.children {
			if child.name == name {
				found = append(found, child)
			}
			walk(child)
		}
	}
	walk(e)
	return found
}

// first returns the first descendant named name, in document order.
func (e *element) first(name string) *element {
	for _, child := range e.children {
		if child.name == name {
			return child
		}
		if found := child.first(name); found != nil {
			return found
		}
	}
	return nil
}

// child returns the first direct child named name.
func (e *element) child(name string) *element {
	for _, c := range e.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

func (e *element) textContent() string {
	return e.text.String()
}
