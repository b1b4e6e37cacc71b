package parser

import "github.com/cxxtool/cxxhdr/cxx"

// Visitor receives semantic events as the parser walks a header. All
// callbacks are synchronous; implementations must not re-enter the parser.
// Each scope's end event fires exactly once, and inner scopes always end
// before their enclosing scope.
type Visitor interface {
	// OnParseStart fires once with the translation unit root before any
	// other event; OnParseEnd fires once after the last one.
	OnParseStart(root *NamespaceBlockState)
	OnParseEnd()

	OnInclude(inc cxx.Include)
	OnDefine(def cxx.Define)
	OnPragma(content string)

	OnExternBlockStart(state *ExternBlockState)
	OnExternBlockEnd(state *ExternBlockState)

	OnNamespaceStart(state *NamespaceBlockState)
	OnNamespaceEnd(state *NamespaceBlockState)

	OnClassStart(state *ClassBlockState)
	OnClassField(state *ClassBlockState, f cxx.Field)
	OnClassMethod(state *ClassBlockState, m cxx.Method)
	OnClassEnd(state *ClassBlockState)

	OnVariable(v cxx.Variable)
	OnFunction(f cxx.Function)
	OnTypedef(t cxx.Typedef)
	OnUsingAlias(u cxx.UsingAlias)
	OnUsingNamespace(names []string)
	OnEnum(e cxx.EnumDecl)
	OnForwardDecl(d cxx.ForwardDecl)
}

// NullVisitor ignores every event. Embed it to implement only the
// callbacks you care about.
type NullVisitor struct{}

func (NullVisitor) OnParseStart(*NamespaceBlockState)          {}
func (NullVisitor) OnParseEnd()                                {}
func (NullVisitor) OnInclude(cxx.Include)                      {}
func (NullVisitor) OnDefine(cxx.Define)                        {}
func (NullVisitor) OnPragma(string)                            {}
func (NullVisitor) OnExternBlockStart(*ExternBlockState)       {}
func (NullVisitor) OnExternBlockEnd(*ExternBlockState)         {}
func (NullVisitor) OnNamespaceStart(*NamespaceBlockState)      {}
func (NullVisitor) OnNamespaceEnd(*NamespaceBlockState)        {}
func (NullVisitor) OnClassStart(*ClassBlockState)              {}
func (NullVisitor) OnClassField(*ClassBlockState, cxx.Field)   {}
func (NullVisitor) OnClassMethod(*ClassBlockState, cxx.Method) {}
func (NullVisitor) OnClassEnd(*ClassBlockState)                {}
func (NullVisitor) OnVariable(cxx.Variable)                    {}
func (NullVisitor) OnFunction(cxx.Function)                    {}
func (NullVisitor) OnTypedef(cxx.Typedef)                      {}
func (NullVisitor) OnUsingAlias(cxx.UsingAlias)                {}
func (NullVisitor) OnUsingNamespace([]string)                  {}
func (NullVisitor) OnEnum(cxx.EnumDecl)                        {}
func (NullVisitor) OnForwardDecl(cxx.ForwardDecl)              {}
