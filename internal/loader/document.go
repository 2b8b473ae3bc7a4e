package loader

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	oerrors "github.com/opmodel/osinfo/internal/errors"
)

// rootElement is the document element every metadata file must use.
const rootElement = "libosinfo"

// node is a generic XML element. Metadata documents are open ended
// (custom "x-" elements, optional sections) so they are decoded into a
// tree and interpreted afterwards rather than into fixed structs.
type node struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Content string     `xml:",chardata"`
	Nodes   []node     `xml:",any"`
}

// Name returns the local element name.
func (n *node) Name() string {
	return n.XMLName.Local
}

// Attr returns the value of the named attribute, or "".
func (n *node) Attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return strings.TrimSpace(a.Value)
		}
	}
	return ""
}

// Text returns the trimmed character data.
func (n *node) Text() string {
	return strings.TrimSpace(n.Content)
}

// Children returns the direct children with the given name.
func (n *node) Children(name string) []*node {
	var out []*node
	for i := range n.Nodes {
		if n.Nodes[i].Name() == name {
			out = append(out, &n.Nodes[i])
		}
	}
	return out
}

// Child returns the first direct child with the given name, or nil.
func (n *node) Child(name string) *node {
	for i := range n.Nodes {
		if n.Nodes[i].Name() == name {
			return &n.Nodes[i]
		}
	}
	return nil
}

// ChildText returns the text of the first child with the given name, or "".
func (n *node) ChildText(name string) string {
	if c := n.Child(name); c != nil {
		return c.Text()
	}
	return ""
}

// element is a top-level entry of a metadata document.
type element struct {
	node
	line int
}

// document is a parsed metadata file.
type document struct {
	path     string
	elements []element
}

// location formats a file:line location for error reporting.
func (d *document) location(line int) string {
	return fmt.Sprintf("%s:%d", d.path, line)
}

// parseDocument decodes a metadata file. Only syntax and structure are
// checked here; semantic errors surface when the document is applied.
func parseDocument(path string, r io.Reader) (*document, error) {
	dec := xml.NewDecoder(r)
	doc := &document{path: path}

	root, err := nextStart(dec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, oerrors.NewParseError("document has no root element", path, "")
		}
		return nil, syntaxError(path, dec, err)
	}
	if root.Name.Local != rootElement {
		line, _ := dec.InputPos()
		return nil, oerrors.NewParseError(
			fmt.Sprintf("incorrect root element %q, expected %q", root.Name.Local, rootElement),
			fmt.Sprintf("%s:%d", path, line), root.Name.Local)
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, oerrors.NewParseError("unexpected end of document", path, rootElement)
			}
			return nil, syntaxError(path, dec, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			line, _ := dec.InputPos()
			var n node
			if err := dec.DecodeElement(&n, &t); err != nil {
				return nil, syntaxError(path, dec, err)
			}
			doc.elements = append(doc.elements, element{node: n, line: line})
		case xml.EndElement:
			return doc, nil
		}
	}
}

func nextStart(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return xml.StartElement{}, err
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se, nil
		}
	}
}

func syntaxError(path string, dec *xml.Decoder, err error) error {
	line, _ := dec.InputPos()
	msg := err.Error()
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		line = se.Line
		msg = se.Msg
	}
	return &oerrors.DetailError{
		Type:     "parse failed",
		Message:  "malformed XML: " + msg,
		Location: fmt.Sprintf("%s:%d", path, line),
		Cause:    errors.Join(oerrors.ErrParse, err),
	}
}
