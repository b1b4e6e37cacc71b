// Package cxxhdr parses C++ header files into a declaration summary.
//
// The heavy lifting happens in cxx/parser, which walks the token stream
// and reports semantic events to a visitor. This package provides the
// standard consumer: a visitor that assembles a cxx.Header from the
// event stream.
package cxxhdr

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cxxtool/cxxhdr/cxx"
	"github.com/cxxtool/cxxhdr/cxx/parser"
)

// ParseFile parses the header at path into a declaration summary.
func ParseFile(path string) (*cxx.Header, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	return Parse(bytes.NewReader(data), parser.WithFile(path))
}

// Parse parses a header from r.
func Parse(r io.Reader, opts ...parser.Option) (*cxx.Header, error) {
	b := &headerBuilder{header: &cxx.Header{}}
	if err := parser.ParseHeader(r, b, opts...); err != nil {
		return nil, err
	}
	return b.header, nil
}

// headerBuilder assembles a cxx.Header from parse events. It keeps its
// own stack of open classes and namespace segments, mirroring the
// parser's scope nesting.
type headerBuilder struct {
	parser.NullVisitor

	header     *cxx.Header
	classes    []*cxx.ClassDecl
	namespaces []string
}

func (b *headerBuilder) OnParseStart(root *parser.NamespaceBlockState) {
	if loc := root.Location(); loc.File != "" {
		b.header.File = loc.File
	}
}

func (b *headerBuilder) OnInclude(inc cxx.Include) {
	b.header.Includes = append(b.header.Includes, inc)
}

func (b *headerBuilder) OnDefine(def cxx.Define) {
	b.header.Defines = append(b.header.Defines, def)
}

func (b *headerBuilder) OnPragma(content string) {
	b.header.Pragmas = append(b.header.Pragmas, content)
}

func (b *headerBuilder) OnNamespaceStart(state *parser.NamespaceBlockState) {
	b.namespaces = append(b.namespaces, state.Namespace.Names...)
}

func (b *headerBuilder) OnNamespaceEnd(state *parser.NamespaceBlockState) {
	b.namespaces = b.namespaces[:len(b.namespaces)-len(state.Namespace.Names)]
}

func (b *headerBuilder) OnClassStart(state *parser.ClassBlockState) {
	b.classes = append(b.classes, state.ClassDecl)
}

func (b *headerBuilder) OnClassField(state *parser.ClassBlockState, f cxx.Field) {
	state.ClassDecl.Fields = append(state.ClassDecl.Fields, f)
}

func (b *headerBuilder) OnClassMethod(state *parser.ClassBlockState, m cxx.Method) {
	state.ClassDecl.Methods = append(state.ClassDecl.Methods, m)
}

func (b *headerBuilder) OnClassEnd(state *parser.ClassBlockState) {
	decl := state.ClassDecl
	b.classes = b.classes[:len(b.classes)-1]

	if parent := b.currentClass(); parent != nil {
		parent.Classes = append(parent.Classes, decl)
		return
	}
	decl.Namespace = strings.Join(b.namespaces, "::")
	b.header.Classes = append(b.header.Classes, decl)
}

func (b *headerBuilder) OnVariable(v cxx.Variable) {
	b.header.Variables = append(b.header.Variables, v)
}

func (b *headerBuilder) OnFunction(f cxx.Function) {
	b.header.Functions = append(b.header.Functions, f)
}

func (b *headerBuilder) OnTypedef(t cxx.Typedef) {
	if c := b.currentClass(); c != nil {
		c.Typedefs = append(c.Typedefs, t)
		return
	}
	b.header.Typedefs = append(b.header.Typedefs, t)
}

func (b *headerBuilder) OnUsingAlias(u cxx.UsingAlias) {
	if c := b.currentClass(); c != nil {
		c.Usings = append(c.Usings, u)
		return
	}
	b.header.Usings = append(b.header.Usings, u)
}

func (b *headerBuilder) OnUsingNamespace(names []string) {
	b.header.UsingNamespaces = append(b.header.UsingNamespaces, strings.Join(names, "::"))
}

func (b *headerBuilder) OnEnum(e cxx.EnumDecl) {
	if c := b.currentClass(); c != nil {
		c.Enums = append(c.Enums, e)
		return
	}
	b.header.Enums = append(b.header.Enums, e)
}

func (b *headerBuilder) OnForwardDecl(d cxx.ForwardDecl) {
	b.header.ForwardDecls = append(b.header.ForwardDecls, d)
}

func (b *headerBuilder) currentClass() *cxx.ClassDecl {
	if len(b.classes) == 0 {
		return nil
	}
	return b.classes[len(b.classes)-1]
}
