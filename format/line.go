package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/cxxtool/cxxhdr/cxx"
)

// LineEncoder emits one tab-separated row per declaration, suitable for
// grep and cut.
type LineEncoder struct {
	w      io.Writer
	header *cxx.Header
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(header *cxx.Header) error {
	e.header = header
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	h := e.header

	for _, inc := range h.Includes {
		fmt.Fprintf(&sb, "include\t%s\n", inc.Filename)
	}
	for _, d := range h.ForwardDecls {
		fmt.Fprintf(&sb, "forward\t%s\t%s\n", qualified(d.Namespace, d.Name), d.Kind)
	}
	for _, en := range h.Enums {
		e.writeEnum(&sb, "", en)
	}
	for _, c := range h.Classes {
		e.writeClass(&sb, qualified(c.Namespace, ""), c)
	}
	for _, t := range h.Typedefs {
		fmt.Fprintf(&sb, "typedef\t%s\t%s\n", t.Name, t.Type)
	}
	for _, u := range h.Usings {
		fmt.Fprintf(&sb, "using\t%s\t%s\n", u.Name, u.Type)
	}
	for _, f := range h.Functions {
		fmt.Fprintf(&sb, "function\t%s\t%s\t%s\n",
			qualified(f.Namespace, f.Name), f.ReturnType, parametersStr(f.Parameters))
	}
	for _, v := range h.Variables {
		fmt.Fprintf(&sb, "variable\t%s\t%s\n", qualified(v.Namespace, v.Name), v.Type)
	}

	return []byte(sb.String()), nil
}

func (e *LineEncoder) writeClass(sb *strings.Builder, prefix string, c *cxx.ClassDecl) {
	name := prefix + c.Name
	fmt.Fprintf(sb, "%s\t%s\t%s\n", c.Kind, name, basesStr(c.Bases))

	for _, en := range c.Enums {
		e.writeEnum(sb, name+"::", en)
	}
	for _, nested := range c.Classes {
		e.writeClass(sb, name+"::", nested)
	}
	for _, f := range c.Fields {
		fmt.Fprintf(sb, "field\t%s::%s\t%s\t%s\n", name, f.Name, f.Type, f.Access)
	}
	for _, m := range c.Methods {
		fmt.Fprintf(sb, "method\t%s::%s\t%s\t%s\t%s\n",
			name, m.Name, m.ReturnType, parametersStr(m.Parameters), m.Access)
	}
}

func (e *LineEncoder) writeEnum(sb *strings.Builder, prefix string, en cxx.EnumDecl) {
	var names []string
	for _, v := range en.Values {
		names = append(names, v.Name)
	}
	fmt.Fprintf(sb, "enum\t%s%s\t%s\n", prefix, en.Name, strings.Join(names, ","))
}

func qualified(namespace, name string) string {
	if namespace == "" {
		return name
	}
	if name == "" {
		return namespace + "::"
	}
	return namespace + "::" + name
}

func parametersStr(params []cxx.Parameter) string {
	var types []string
	for _, p := range params {
		types = append(types, p.Type)
	}
	return "(" + strings.Join(types, ",") + ")"
}

func basesStr(bases []cxx.BaseClass) string {
	var names []string
	for _, b := range bases {
		names = append(names, b.Name)
	}
	return strings.Join(names, ",")
}
