// Copyright 2026 The netfilters Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logline

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/netfilters/netfilters/pkg/private/serrors"
)

// ErrMalformedXML indicates a payload that is not a single well-formed XML
// element.
var ErrMalformedXML = errors.New("malformed XML")

// Element is a node of a parsed payload.
type Element struct {
	// Tag is the element name. Names in a namespace, including the default
	// namespace, are written as {namespace}local.
	Tag string
	// Text is the character data preceding the first child element.
	Text     string
	Children []*Element

	// sealed is set once the first child starts; later character data is
	// not part of Text.
	sealed bool
}

// xmlNamespace is the namespace bound to the xml prefix.
const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

// scope is an open element together with the namespace declarations made on
// its start tag.
type scope struct {
	elem *Element
	name xml.Name
	ns   map[string]string
}

// Parse parses s, which must contain exactly one root element. Comments and
// processing instructions are skipped. Whitespace around the root element is
// allowed, anything else is an error. So are an XML declaration that is not
// at the very start, a document type declaration after the root element has
// started, duplicate attributes and unbound namespace prefixes.
func Parse(s string) (*Element, error) {
	dec := xml.NewDecoder(strings.NewReader(s))
	malformed := func(reason string) error {
		return serrors.Join(ErrMalformedXML, nil, "reason", reason, "offset", dec.InputOffset())
	}
	var root *Element
	var stack []scope
	for first := true; ; first = false {
		// RawToken leaves prefixes untouched, they are resolved in openScope.
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, serrors.Join(ErrMalformedXML, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) == 0 && root != nil {
				return nil, malformed("junk after document element")
			}
			sc, reason := openScope(t, stack)
			if reason != "" {
				return nil, malformed(reason)
			}
			if len(stack) == 0 {
				root = sc.elem
			} else {
				parent := stack[len(stack)-1].elem
				parent.Children = append(parent.Children, sc.elem)
				parent.sealed = true
			}
			stack = append(stack, sc)
		case xml.EndElement:
			if len(stack) == 0 || stack[len(stack)-1].name != t.Name {
				return nil, malformed("mismatched tag")
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				if strings.TrimSpace(string(t)) != "" {
					return nil, malformed("text outside document element")
				}
				continue
			}
			if top := stack[len(stack)-1].elem; !top.sealed {
				top.Text += string(t)
			}
		case xml.ProcInst:
			if strings.EqualFold(t.Target, "xml") && !first {
				return nil, malformed("XML declaration not at start of document")
			}
		case xml.Directive:
			if root != nil || !bytes.HasPrefix(t, []byte("DOCTYPE")) {
				return nil, malformed("misplaced declaration")
			}
		}
	}
	if len(stack) != 0 {
		return nil, malformed("unclosed element")
	}
	if root == nil {
		return nil, malformed("no element found")
	}
	return root, nil
}

// openScope creates the element for t. It returns a non-empty reason if the
// start tag is not namespace well-formed.
func openScope(t xml.StartElement, outer []scope) (scope, string) {
	sc := scope{name: t.Name, ns: map[string]string{}}
	for _, a := range t.Attr {
		switch {
		case a.Name.Space == "xmlns":
			if a.Value == "" {
				return scope{}, "empty namespace for prefix " + a.Name.Local
			}
			sc.ns[a.Name.Local] = a.Value
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			sc.ns[""] = a.Value
		}
	}

	if strings.Contains(t.Name.Local, ":") {
		return scope{}, "invalid element name"
	}
	space, ok := sc.lookup(t.Name.Space, outer)
	if !ok {
		return scope{}, "unbound prefix " + t.Name.Space
	}
	sc.elem = &Element{Tag: tagName(xml.Name{Space: space, Local: t.Name.Local})}

	seen := make(map[xml.Name]bool, len(t.Attr))
	for _, a := range t.Attr {
		if strings.Contains(a.Name.Local, ":") {
			return scope{}, "invalid attribute name"
		}
		var name xml.Name
		switch {
		case a.Name.Space == "xmlns", a.Name.Space == "" && a.Name.Local == "xmlns":
			// Declarations are compared by their raw name.
			name = xml.Name{Space: "xmlns", Local: a.Name.Local}
		case a.Name.Space == "":
			name = xml.Name{Local: a.Name.Local}
		default:
			space, ok := sc.lookup(a.Name.Space, outer)
			if !ok {
				return scope{}, "unbound prefix " + a.Name.Space
			}
			name = xml.Name{Space: space, Local: a.Name.Local}
		}
		if seen[name] {
			return scope{}, "duplicate attribute"
		}
		seen[name] = true
	}
	return sc, ""
}

// lookup resolves prefix against the declarations of sc and the enclosing
// scopes. The empty prefix resolves to the default namespace, which may be
// empty.
func (sc scope) lookup(prefix string, outer []scope) (string, bool) {
	if prefix == "xml" {
		return xmlNamespace, true
	}
	if space, ok := sc.ns[prefix]; ok {
		return space, true
	}
	for i := len(outer) - 1; i >= 0; i-- {
		if space, ok := outer[i].ns[prefix]; ok {
			return space, true
		}
	}
	return "", prefix == ""
}

// Find returns the first element below e, in document order, whose tag is
// tag. e itself is not considered. Find returns nil if there is no such
// element.
func (e *Element) Find(tag string) *Element {
	for _, c := range e.Children {
		if c.Tag == tag {
			return c
		}
		if found := c.Find(tag); found != nil {
			return found
		}
	}
	return nil
}

func tagName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return "{" + n.Space + "}" + n.Local
}
