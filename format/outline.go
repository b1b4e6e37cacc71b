package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/cxxtool/cxxhdr/cxx"
)

// OutlineEncoder renders an indented, human-readable declaration tree.
type OutlineEncoder struct {
	w      io.Writer
	header *cxx.Header
}

func NewOutlineEncoder(w io.Writer) *OutlineEncoder {
	return &OutlineEncoder{w: w}
}

func (e *OutlineEncoder) Encode(header *cxx.Header) error {
	e.header = header
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *OutlineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	h := e.header

	for _, ns := range h.UsingNamespaces {
		fmt.Fprintf(&sb, "using namespace %s\n", ns)
	}
	for _, en := range h.Enums {
		writeEnumOutline(&sb, en, 0)
	}
	for _, c := range h.Classes {
		writeClassOutline(&sb, c, 0)
	}
	for _, t := range h.Typedefs {
		fmt.Fprintf(&sb, "typedef %s = %s\n", t.Name, t.Type)
	}
	for _, u := range h.Usings {
		fmt.Fprintf(&sb, "using %s = %s\n", u.Name, u.Type)
	}
	for _, f := range h.Functions {
		fmt.Fprintf(&sb, "%s\n", Signature(f.Name, f.ReturnType, f.Parameters))
	}
	for _, v := range h.Variables {
		fmt.Fprintf(&sb, "%s %s\n", v.Type, v.Name)
	}

	return []byte(sb.String()), nil
}

func writeClassOutline(sb *strings.Builder, c *cxx.ClassDecl, depth int) {
	indent := strings.Repeat("  ", depth)
	name := c.Name
	if c.Namespace != "" {
		name = c.Namespace + "::" + name
	}
	fmt.Fprintf(sb, "%s%s %s\n", indent, c.Kind, name)

	for _, en := range c.Enums {
		writeEnumOutline(sb, en, depth+1)
	}
	for _, nested := range c.Classes {
		writeClassOutline(sb, nested, depth+1)
	}
	for _, f := range c.Fields {
		fmt.Fprintf(sb, "%s  %s: %s %s\n", indent, f.Access, f.Type, f.Name)
	}
	for _, m := range c.Methods {
		fmt.Fprintf(sb, "%s  %s: %s\n", indent, m.Access, Signature(m.Name, m.ReturnType, m.Parameters))
	}
}

func writeEnumOutline(sb *strings.Builder, e cxx.EnumDecl, depth int) {
	indent := strings.Repeat("  ", depth)
	name := e.Name
	if name == "" {
		name = "(anonymous)"
	}
	fmt.Fprintf(sb, "%senum %s\n", indent, name)
	for _, v := range e.Values {
		fmt.Fprintf(sb, "%s  %s\n", indent, v.Name)
	}
}

// Signature renders a function or method declaration on one line.
func Signature(name, returnType string, params []cxx.Parameter) string {
	var b strings.Builder
	if returnType != "" {
		b.WriteString(returnType)
		b.WriteString(" ")
	}
	b.WriteString(name)
	b.WriteString("(")
	for i, p := range params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Type)
		if p.Name != "" {
			b.WriteString(" ")
			b.WriteString(p.Name)
		}
	}
	b.WriteString(")")
	return b.String()
}
