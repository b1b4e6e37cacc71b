package parser

import (
	"github.com/cxxtool/cxxhdr/cxx"
)

// modifierTokens is a small insertion-ordered keyword -> token mapping.
// Iteration order must be deterministic so that the same input always
// reports the same offending keyword. A later token for the same keyword
// replaces the earlier one.
type modifierTokens struct {
	keys   []string
	byName map[string]Token
}

func (m *modifierTokens) add(tok Token) {
	if m.byName == nil {
		m.byName = make(map[string]Token)
	}
	if _, ok := m.byName[tok.Literal]; !ok {
		m.keys = append(m.keys, tok.Literal)
	}
	m.byName[tok.Literal] = tok
}

func (m *modifierTokens) empty() bool {
	return len(m.keys) == 0
}

func (m *modifierTokens) first() Token {
	return m.byName[m.keys[0]]
}

func (m *modifierTokens) contains(keyword string) bool {
	_, ok := m.byName[keyword]
	return ok
}

// ParsedModifiers records which modifier keywords were seen on the
// declaration currently being parsed, partitioned by where the language
// allows them: only on variables, only on methods, or on either.
type ParsedModifiers struct {
	vars  modifierTokens
	both  modifierTokens
	meths modifierTokens
}

func (m *ParsedModifiers) AddVar(tok Token)    { m.vars.add(tok) }
func (m *ParsedModifiers) AddBoth(tok Token)   { m.both.add(tok) }
func (m *ParsedModifiers) AddMethod(tok Token) { m.meths.add(tok) }

func (m *ParsedModifiers) Has(keyword string) bool {
	return m.vars.contains(keyword) || m.both.contains(keyword) || m.meths.contains(keyword)
}

// Validate checks the recorded modifiers against the kind of declaration
// the grammar decided it is parsing. varOK means the position permits a
// variable declaration, methOK that it permits a method. The first
// offending keyword is reported with msg.
func (m *ParsedModifiers) Validate(varOK, methOK bool, msg string) error {
	if !varOK && !m.vars.empty() {
		tok := m.vars.first()
		return errorAt(tok.Span.Start, "%s: unexpected '%s'", msg, tok.Literal)
	}
	if !methOK && !m.meths.empty() {
		tok := m.meths.first()
		return errorAt(tok.Span.Start, "%s: unexpected '%s'", msg, tok.Literal)
	}
	if !methOK && !varOK && !m.both.empty() {
		tok := m.both.first()
		return errorAt(tok.Span.Start, "%s: unexpected '%s'", msg, tok.Literal)
	}
	return nil
}

// State is one entry on the parse-context stack: the parser is currently
// inside the lexical scope it describes. States form a singly linked chain
// from the innermost scope out to the translation unit root, which has no
// parent. The concrete variants are ExternBlockState, NamespaceBlockState
// and ClassBlockState.
type State interface {
	// Parent returns the enclosing scope's state, or nil for the
	// translation unit root.
	Parent() State

	// Location is the approximate source position where the scope began.
	Location() Position

	// UserData is a slot for visitor implementations; the parser never
	// touches it. Set it in an On*Start callback and read it back when
	// the matching end event fires.
	UserData() any
	SetUserData(v any)

	// finish fires the scope's end notification. The parser calls it
	// exactly once, when the scope's closing brace is consumed.
	finish(v Visitor)
}

type baseState struct {
	parent   State
	location Position
	userData any
	finished bool
}

func (s *baseState) Parent() State      { return s.parent }
func (s *baseState) Location() Position { return s.location }
func (s *baseState) UserData() any      { return s.userData }
func (s *baseState) SetUserData(v any)  { s.userData = v }

func (s *baseState) markFinished() {
	if s.finished {
		panic("parser: scope state finished twice")
	}
	s.finished = true
}

// ExternBlockState tracks an `extern "<linkage>" { ... }` block.
type ExternBlockState struct {
	baseState

	// Linkage holds the unquoted linkage specifier, e.g. `C`.
	Linkage string
}

func newExternBlockState(parent State, loc Position, linkage string) *ExternBlockState {
	return &ExternBlockState{
		baseState: baseState{parent: parent, location: loc},
		Linkage:   linkage,
	}
}

func (s *ExternBlockState) finish(v Visitor) {
	s.markFinished()
	v.OnExternBlockEnd(s)
}

// NamespaceBlockState tracks a namespace block. The namespace path may be
// extended by the grammar while the scope is open (nested inline namespace
// syntax); it is frozen from the consumer's point of view once the end
// notification fires.
type NamespaceBlockState struct {
	baseState

	Namespace *cxx.NamespaceDecl
}

func newNamespaceBlockState(parent State, loc Position, ns *cxx.NamespaceDecl) *NamespaceBlockState {
	return &NamespaceBlockState{
		baseState: baseState{parent: parent, location: loc},
		Namespace: ns,
	}
}

func (s *NamespaceBlockState) finish(v Visitor) {
	s.markFinished()
	v.OnNamespaceEnd(s)
}

// ClassBlockState tracks a class, struct or union body.
type ClassBlockState struct {
	baseState

	// ClassDecl is the declaration being assembled; the grammar attaches
	// members to it as they are parsed.
	ClassDecl *cxx.ClassDecl

	// Access applies to members parsed from here until the next access
	// specifier label.
	Access cxx.AccessLevel

	// Typedef reports whether this class body was introduced inside a
	// typedef statement; the declarator following the closing brace then
	// names an alias, not a variable.
	Typedef bool

	// Mods is scratch space for the member declaration currently being
	// parsed. The grammar resets it for every member; it is not a log.
	Mods ParsedModifiers
}

func newClassBlockState(parent State, loc Position, decl *cxx.ClassDecl, access cxx.AccessLevel, typedef bool) *ClassBlockState {
	return &ClassBlockState{
		baseState: baseState{parent: parent, location: loc},
		ClassDecl: decl,
		Access:    access,
		Typedef:   typedef,
	}
}

// SetAccess replaces the current member access level. The grammar calls
// it when it parses a `public:`, `protected:` or `private:` label.
func (s *ClassBlockState) SetAccess(access cxx.AccessLevel) {
	s.Access = access
}

func (s *ClassBlockState) finish(v Visitor) {
	s.markFinished()
	v.OnClassEnd(s)
}
