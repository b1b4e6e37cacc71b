package parser

import (
	"strings"
	"testing"

	"github.com/cxxtool/cxxhdr/cxx"
)

func modTok(literal string, line int) Token {
	return Token{
		Kind:    TokenIdent,
		Literal: literal,
		Span:    Span{Start: Position{File: "test.h", Line: line, Column: 1}},
	}
}

func TestParsedModifiersValidate(t *testing.T) {
	tests := []struct {
		name    string
		vars    []string
		both    []string
		meths   []string
		varOK   bool
		methOK  bool
		msg     string
		wantErr string
	}{
		{
			name: "no modifiers always pass",
			msg:  "parsing typedef",
		},
		{
			name:   "everything allowed when both positions permit",
			vars:   []string{"mutable"},
			both:   []string{"static", "inline"},
			meths:  []string{"virtual"},
			varOK:  true,
			methOK: true,
			msg:    "parsing member",
		},
		{
			name:  "mutable on variable",
			vars:  []string{"mutable"},
			varOK: true,
			msg:   "parsing variable",
		},
		{
			name:    "mutable on method",
			vars:    []string{"mutable"},
			methOK:  true,
			msg:     "parsing method",
			wantErr: "parsing method: unexpected 'mutable'",
		},
		{
			name:   "virtual on method",
			meths:  []string{"virtual"},
			methOK: true,
			msg:    "parsing method",
		},
		{
			name:    "virtual on variable",
			meths:   []string{"virtual"},
			varOK:   true,
			msg:     "parsing variable",
			wantErr: "parsing variable: unexpected 'virtual'",
		},
		{
			name:  "static allowed on variable",
			both:  []string{"static"},
			varOK: true,
			msg:   "parsing variable",
		},
		{
			name:   "static allowed on method",
			both:   []string{"static"},
			methOK: true,
			msg:    "parsing method",
		},
		{
			name:    "static rejected on typedef",
			both:    []string{"static"},
			msg:     "parsing typedef",
			wantErr: "parsing typedef: unexpected 'static'",
		},
		{
			name:   "inline and explicit on free function",
			both:   []string{"inline"},
			meths:  []string{"explicit"},
			methOK: true,
			msg:    "parsing function",
		},
		{
			name:    "variable-only reported before method-only",
			vars:    []string{"mutable"},
			meths:   []string{"virtual"},
			msg:     "parsing enum",
			wantErr: "parsing enum: unexpected 'mutable'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m ParsedModifiers
			for i, kw := range tt.vars {
				m.AddVar(modTok(kw, i+1))
			}
			for i, kw := range tt.both {
				m.AddBoth(modTok(kw, i+10))
			}
			for i, kw := range tt.meths {
				m.AddMethod(modTok(kw, i+20))
			}

			err := m.Validate(tt.varOK, tt.methOK, tt.msg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestParsedModifiersFirstOffender(t *testing.T) {
	var m ParsedModifiers
	m.AddMethod(modTok("explicit", 3))
	m.AddMethod(modTok("virtual", 5))

	err := m.Validate(true, false, "parsing variable")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "'explicit'") {
		t.Errorf("want first recorded keyword reported, got %q", err.Error())
	}
}

func TestParsedModifiersDuplicateKeepsLastPosition(t *testing.T) {
	var m ParsedModifiers
	m.AddVar(modTok("mutable", 2))
	m.AddVar(modTok("mutable", 7))

	err := m.Validate(false, true, "parsing method")
	if err == nil {
		t.Fatal("expected error")
	}
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("got %T, want *ParseError", err)
	}
	if perr.Loc.Line != 7 {
		t.Errorf("got line %d, want 7 (later occurrence wins)", perr.Loc.Line)
	}
}

func TestParsedModifiersHas(t *testing.T) {
	var m ParsedModifiers
	m.AddBoth(modTok("static", 1))
	m.AddMethod(modTok("virtual", 1))

	for _, kw := range []string{"static", "virtual"} {
		if !m.Has(kw) {
			t.Errorf("Has(%q) = false, want true", kw)
		}
	}
	if m.Has("mutable") {
		t.Error("Has(\"mutable\") = true, want false")
	}
}

func TestStateParentChain(t *testing.T) {
	root := newNamespaceBlockState(nil, Position{Line: 1}, &cxx.NamespaceDecl{})
	ns := newNamespaceBlockState(root, Position{Line: 2}, &cxx.NamespaceDecl{Names: []string{"app"}})
	cls := newClassBlockState(ns, Position{Line: 3}, &cxx.ClassDecl{Name: "Widget"}, cxx.AccessPrivate, false)

	if root.Parent() != nil {
		t.Error("root state must have no parent")
	}
	if cls.Parent() != State(ns) {
		t.Error("class parent should be the namespace state")
	}
	if ns.Parent() != State(root) {
		t.Error("namespace parent should be the root state")
	}
	if cls.Location().Line != 3 {
		t.Errorf("got location line %d, want 3", cls.Location().Line)
	}
}

func TestStateUserData(t *testing.T) {
	st := newExternBlockState(nil, Position{}, "C")
	if st.UserData() != nil {
		t.Error("fresh state should carry no user data")
	}
	st.SetUserData(42)
	if got := st.UserData(); got != 42 {
		t.Errorf("got %v, want 42", got)
	}
	if st.Linkage != "C" {
		t.Errorf("got linkage %q, want C", st.Linkage)
	}
}

func TestClassBlockStateSetAccess(t *testing.T) {
	decl := &cxx.ClassDecl{Name: "Widget", Kind: cxx.ClassKindClass}
	st := newClassBlockState(nil, Position{}, decl, decl.Kind.DefaultAccess(), false)
	if st.Access != cxx.AccessPrivate {
		t.Errorf("class body starts private, got %v", st.Access)
	}
	st.SetAccess(cxx.AccessPublic)
	if st.Access != cxx.AccessPublic {
		t.Errorf("got %v after SetAccess, want public", st.Access)
	}
}

func TestStateFinishTwicePanics(t *testing.T) {
	st := newNamespaceBlockState(nil, Position{}, &cxx.NamespaceDecl{Names: []string{"a"}})
	st.finish(NullVisitor{})

	defer func() {
		if recover() == nil {
			t.Error("second finish should panic")
		}
	}()
	st.finish(NullVisitor{})
}
