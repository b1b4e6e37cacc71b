package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/cxxtool/cxxhdr/cxx"
)

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// Parser converts a C++ header into a stream of semantic events delivered
// to a Visitor. It tracks lexical nesting with a stack of scope states;
// see State. Function bodies and initializer expressions are skipped or
// captured as raw text, never evaluated.
type Parser struct {
	file    string
	visitor Visitor
	tokens  []Token
	pos     int

	state State
	root  *NamespaceBlockState

	pendingTemplate string
	oneShotLinkage  string
}

// ParseHeader parses a single header from r and delivers events to
// visitor. It returns the first error encountered; the visitor may have
// received events for completed outer scopes before a failure.
func ParseHeader(r io.Reader, visitor Visitor, opts ...Option) error {
	p := &Parser{visitor: visitor}
	for _, opt := range opts {
		opt(p)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return p.run(data)
}

func (p *Parser) run(input []byte) error {
	p.tokenize(input)

	p.root = newNamespaceBlockState(nil, Position{File: p.file, Line: 1, Column: 1}, &cxx.NamespaceDecl{})
	p.state = p.root
	p.visitor.OnParseStart(p.root)

	for !p.check(TokenEOF) {
		if err := p.parseDeclaration(); err != nil {
			return err
		}
	}

	if p.state != p.root {
		loc := p.state.Location()
		return errorAt(loc, "unterminated %s scope (missing '}')", stateKind(p.state))
	}

	p.visitor.OnParseEnd()
	return nil
}

func (p *Parser) tokenize(input []byte) {
	lexer := NewLexer(input, p.file)
	for {
		tok := lexer.NextToken()
		switch tok.Kind {
		case TokenWhitespace, TokenComment, TokenLineComment:
			continue
		}
		p.tokens = append(p.tokens, tok)
		if tok.Kind == TokenEOF {
			break
		}
	}
}

func stateKind(s State) string {
	switch s.(type) {
	case *ExternBlockState:
		return "extern"
	case *ClassBlockState:
		return "class"
	default:
		return "namespace"
	}
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekN(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) expect(kind TokenKind) (Token, error) {
	tok := p.peek()
	if tok.Kind != kind {
		return tok, errorAt(tok.Span.Start, "expected '%s', got '%s'", kind, describe(tok))
	}
	p.advance()
	return tok, nil
}

func describe(tok Token) string {
	if tok.Kind == TokenEOF {
		return "end of input"
	}
	return tok.Literal
}

func (p *Parser) parseDeclaration() error {
	tok := p.peek()

	switch tok.Kind {
	case TokenPreprocessor:
		p.advance()
		p.handleDirective(tok)
		return nil

	case TokenSemicolon:
		p.advance()
		return nil

	case TokenRBrace:
		return p.closeScope()

	case TokenPublic, TokenProtected, TokenPrivate:
		if p.peekN(1).Kind == TokenColon {
			return p.parseAccessSpecifier()
		}

	case TokenNamespace:
		return p.parseNamespace(false)

	case TokenInline:
		if p.peekN(1).Kind == TokenNamespace {
			p.advance()
			return p.parseNamespace(true)
		}

	case TokenTemplate:
		return p.parseTemplate()

	case TokenUsing:
		return p.parseUsing()

	case TokenExtern:
		if p.peekN(1).Kind == TokenStringLiteral {
			return p.parseExtern()
		}

	case TokenFriend:
		p.advance()
		p.skipToSemicolon()
		return nil
	}

	return p.parseSimpleDeclaration()
}

func (p *Parser) handleDirective(tok Token) {
	line := strings.TrimSpace(strings.TrimPrefix(tok.Literal, "#"))
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch name {
	case "include":
		inc := cxx.Include{Filename: rest}
		if strings.HasPrefix(rest, "<") {
			inc.Filename = strings.Trim(rest, "<>")
			inc.System = true
		} else {
			inc.Filename = strings.Trim(rest, `"`)
		}
		p.visitor.OnInclude(inc)
	case "define":
		p.visitor.OnDefine(cxx.Define{Content: rest})
	case "pragma":
		p.visitor.OnPragma(rest)
	}
}

func (p *Parser) parseAccessSpecifier() error {
	tok := p.advance()
	if _, err := p.expect(TokenColon); err != nil {
		return err
	}

	cs, ok := p.state.(*ClassBlockState)
	if !ok {
		return errorAt(tok.Span.Start, "access specifier '%s' outside of class body", tok.Literal)
	}

	switch tok.Kind {
	case TokenPublic:
		cs.SetAccess(cxx.AccessPublic)
	case TokenProtected:
		cs.SetAccess(cxx.AccessProtected)
	case TokenPrivate:
		cs.SetAccess(cxx.AccessPrivate)
	}
	return nil
}

func (p *Parser) parseNamespace(inline bool) error {
	kw := p.advance()

	var names []string
	for p.check(TokenIdent) {
		names = append(names, p.advance().Literal)
		if p.check(TokenColonColon) {
			p.advance()
			continue
		}
		break
	}

	// namespace alias: namespace a = b::c;
	if p.check(TokenAssign) {
		p.skipToSemicolon()
		return nil
	}

	if len(names) == 0 {
		// anonymous namespace
		names = []string{""}
	}

	if _, err := p.expect(TokenLBrace); err != nil {
		return err
	}

	ns := &cxx.NamespaceDecl{Names: names, Inline: inline}
	state := newNamespaceBlockState(p.state, kw.Span.Start, ns)
	p.state = state
	p.visitor.OnNamespaceStart(state)
	return nil
}

func (p *Parser) parseExtern() error {
	kw := p.advance()
	str := p.advance()
	linkage := strings.Trim(str.Literal, `"`)

	if p.check(TokenLBrace) {
		p.advance()
		state := newExternBlockState(p.state, kw.Span.Start, linkage)
		p.state = state
		p.visitor.OnExternBlockStart(state)
		return nil
	}

	// extern "C" void f(); applies the linkage to a single declaration
	p.oneShotLinkage = linkage
	return p.parseSimpleDeclaration()
}

func (p *Parser) parseTemplate() error {
	kw := p.advance()
	if _, err := p.expect(TokenLT); err != nil {
		return err
	}

	var toks []Token
	depth := 1
	for depth > 0 {
		tok := p.peek()
		switch tok.Kind {
		case TokenEOF:
			return errorAt(kw.Span.Start, "unterminated template parameter list")
		case TokenLT:
			depth++
		case TokenGT:
			depth--
		case TokenShr:
			depth -= 2
		}
		p.advance()
		if depth > 0 {
			toks = append(toks, tok)
		}
	}

	p.pendingTemplate = "<" + typeText(toks) + ">"
	return nil
}

func (p *Parser) takeTemplate() string {
	t := p.pendingTemplate
	p.pendingTemplate = ""
	return t
}

func (p *Parser) takeLinkage() string {
	if p.oneShotLinkage != "" {
		l := p.oneShotLinkage
		p.oneShotLinkage = ""
		return l
	}
	for s := p.state; s != nil; s = s.Parent() {
		if es, ok := s.(*ExternBlockState); ok {
			return es.Linkage
		}
	}
	return ""
}

func (p *Parser) currentNamespace() string {
	var names []string
	for s := p.state; s != nil; s = s.Parent() {
		if ns, ok := s.(*NamespaceBlockState); ok {
			for i := len(ns.Namespace.Names) - 1; i >= 0; i-- {
				names = append(names, ns.Namespace.Names[i])
			}
		}
	}
	// collected innermost-first; reverse
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, "::")
}

func (p *Parser) classState() *ClassBlockState {
	cs, _ := p.state.(*ClassBlockState)
	return cs
}

func (p *Parser) parseUsing() error {
	p.advance()

	if p.check(TokenNamespace) {
		p.advance()
		var names []string
		for p.check(TokenIdent) {
			names = append(names, p.advance().Literal)
			if p.check(TokenColonColon) {
				p.advance()
				continue
			}
			break
		}
		p.visitor.OnUsingNamespace(names)
		p.skipToSemicolon()
		return nil
	}

	// using Alias = type;
	if p.check(TokenIdent) && p.peekN(1).Kind == TokenAssign {
		name := p.advance()
		p.advance()
		toks := p.collectTypeTokens()
		u := cxx.UsingAlias{Name: name.Literal, Type: typeText(toks)}
		if cs := p.classState(); cs != nil {
			u.Access = cs.Access
		}
		p.visitor.OnUsingAlias(u)
		p.skipToSemicolon()
		return nil
	}

	// using-declaration (using Base::f;): nothing to report
	p.skipToSemicolon()
	return nil
}

// parseSimpleDeclaration handles everything that starts with modifier
// keywords or a type: classes, enums, typedefs, fields, methods,
// variables and functions.
func (p *Parser) parseSimpleDeclaration() error {
	p.skipAttributes()

	var mods ParsedModifiers
	typedef := false

collect:
	for {
		tok := p.peek()
		switch tok.Kind {
		case TokenMutable:
			mods.AddVar(tok)
			p.advance()
		case TokenVirtual, TokenExplicit:
			mods.AddMethod(tok)
			p.advance()
		case TokenStatic, TokenInline, TokenConstexpr, TokenConsteval, TokenExtern:
			mods.AddBoth(tok)
			p.advance()
		case TokenTypedef:
			typedef = true
			p.advance()
		case TokenFriend:
			p.advance()
			p.skipToSemicolon()
			return nil
		case TokenAlignas:
			p.advance()
			if p.check(TokenLParen) {
				p.skipBalanced(TokenLParen, TokenRParen)
			}
		default:
			break collect
		}
	}

	// The class scope keeps the classification as scratch space for the
	// declaration currently in flight.
	if cs := p.classState(); cs != nil {
		cs.Mods = mods
	}

	switch p.peek().Kind {
	case TokenClass, TokenStruct, TokenUnion:
		return p.parseClass(&mods, typedef)
	case TokenEnum:
		return p.parseEnum(&mods, typedef)
	}

	return p.parseDeclarator(&mods, typedef)
}

func classKindOf(kind TokenKind) cxx.ClassKind {
	switch kind {
	case TokenStruct:
		return cxx.ClassKindStruct
	case TokenUnion:
		return cxx.ClassKindUnion
	default:
		return cxx.ClassKindClass
	}
}

func (p *Parser) parseClass(mods *ParsedModifiers, typedef bool) error {
	kw := p.advance()
	kind := classKindOf(kw.Kind)
	p.skipAttributes()

	var name string
	for p.check(TokenIdent) {
		if name != "" {
			name += "::"
		}
		name += p.advance().Literal
		if p.check(TokenColonColon) {
			p.advance()
			continue
		}
		break
	}

	// forward declaration or elaborated type in a declarator
	if p.check(TokenSemicolon) {
		if err := mods.Validate(false, false, "parsing forward declaration"); err != nil {
			return err
		}
		p.visitor.OnForwardDecl(cxx.ForwardDecl{
			Kind:      kind,
			Name:      name,
			Namespace: p.currentNamespace(),
		})
		return nil
	}

	decl := &cxx.ClassDecl{
		Kind:           kind,
		Name:           name,
		TemplateParams: p.takeTemplate(),
	}
	if cs := p.classState(); cs != nil {
		decl.Access = cs.Access
	}

	if p.check(TokenFinal) {
		p.advance()
		decl.Final = true
	}

	if p.check(TokenColon) {
		p.advance()
		if err := p.parseBaseList(decl); err != nil {
			return err
		}
	}

	if !p.check(TokenLBrace) {
		// `struct Foo x;` style elaborated declarator; treat the class
		// keyword and name as part of the type.
		return p.parseElaboratedDeclarator(mods, typedef, string(kind)+" "+name)
	}

	p.advance()
	state := newClassBlockState(p.state, kw.Span.Start, decl, kind.DefaultAccess(), typedef)
	p.state = state
	p.visitor.OnClassStart(state)
	return nil
}

func (p *Parser) parseBaseList(decl *cxx.ClassDecl) error {
	for {
		base := cxx.BaseClass{Access: decl.Kind.DefaultAccess()}
		for {
			switch p.peek().Kind {
			case TokenVirtual:
				base.Virtual = true
				p.advance()
				continue
			case TokenPublic:
				base.Access = cxx.AccessPublic
				p.advance()
				continue
			case TokenProtected:
				base.Access = cxx.AccessProtected
				p.advance()
				continue
			case TokenPrivate:
				base.Access = cxx.AccessPrivate
				p.advance()
				continue
			}
			break
		}

		var toks []Token
		depth := 0
		for {
			tok := p.peek()
			if tok.Kind == TokenEOF {
				return errorAt(tok.Span.Start, "unterminated base class list")
			}
			if depth == 0 && (tok.Kind == TokenComma || tok.Kind == TokenLBrace) {
				break
			}
			switch tok.Kind {
			case TokenLT:
				depth++
			case TokenGT:
				depth--
			case TokenShr:
				depth -= 2
			}
			toks = append(toks, p.advance())
		}
		if len(toks) == 0 {
			return errorAt(p.peek().Span.Start, "expected base class name")
		}
		base.Name = typeText(toks)
		decl.Bases = append(decl.Bases, base)

		if p.check(TokenComma) {
			p.advance()
			continue
		}
		break
	}
	return nil
}

func (p *Parser) parseEnum(mods *ParsedModifiers, typedef bool) error {
	p.advance()
	decl := cxx.EnumDecl{Typedef: typedef}
	p.skipAttributes()

	if p.check(TokenClass) || p.check(TokenStruct) {
		p.advance()
		decl.Scoped = true
	}

	if p.check(TokenIdent) {
		decl.Name = p.advance().Literal
	}

	if p.check(TokenColon) {
		p.advance()
		var toks []Token
		for !p.check(TokenLBrace) && !p.check(TokenSemicolon) && !p.check(TokenEOF) {
			toks = append(toks, p.advance())
		}
		decl.Base = typeText(toks)
	}

	if cs := p.classState(); cs != nil {
		decl.Access = cs.Access
	}

	// opaque enum declaration
	if p.check(TokenSemicolon) {
		if err := mods.Validate(false, false, "parsing enum"); err != nil {
			return err
		}
		p.visitor.OnEnum(decl)
		return nil
	}

	if _, err := p.expect(TokenLBrace); err != nil {
		return err
	}

	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		p.skipAttributes()
		name, err := p.expect(TokenIdent)
		if err != nil {
			return err
		}
		val := cxx.Enumerator{Name: name.Literal}
		if p.check(TokenAssign) {
			p.advance()
			var toks []Token
			depth := 0
			for {
				tok := p.peek()
				if tok.Kind == TokenEOF {
					return errorAt(tok.Span.Start, "unterminated enumerator value")
				}
				if depth == 0 && (tok.Kind == TokenComma || tok.Kind == TokenRBrace) {
					break
				}
				switch tok.Kind {
				case TokenLParen, TokenLBrace, TokenLBracket:
					depth++
				case TokenRParen, TokenRBrace, TokenRBracket:
					depth--
				}
				toks = append(toks, p.advance())
			}
			val.Value = typeText(toks)
		}
		decl.Values = append(decl.Values, val)
		if p.check(TokenComma) {
			p.advance()
		}
	}
	if _, err := p.expect(TokenRBrace); err != nil {
		return err
	}

	// typedef enum { ... } Name;
	if typedef && p.check(TokenIdent) {
		alias := p.advance()
		if decl.Name == "" {
			decl.Name = alias.Literal
		}
		t := cxx.Typedef{Name: alias.Literal, Type: "enum " + decl.Name, Access: decl.Access}
		if err := mods.Validate(false, false, "parsing typedef"); err != nil {
			return err
		}
		p.visitor.OnEnum(decl)
		p.visitor.OnTypedef(t)
		p.skipToSemicolon()
		return nil
	}

	if err := mods.Validate(false, false, "parsing enum"); err != nil {
		return err
	}
	p.visitor.OnEnum(decl)

	// enum E { ... } e; declares a variable of the enum type
	if !p.check(TokenSemicolon) && !p.check(TokenRBrace) && !p.check(TokenEOF) {
		toks := p.collectDeclaratorTokens()
		if len(toks) > 0 && toks[len(toks)-1].Kind == TokenIdent {
			typeName := decl.Name
			if typeName == "" {
				typeName = "enum"
			}
			if cs := p.classState(); cs != nil {
				p.visitor.OnClassField(cs, cxx.Field{
					Name:   toks[len(toks)-1].Literal,
					Type:   typeName,
					Access: cs.Access,
				})
			} else {
				p.visitor.OnVariable(cxx.Variable{
					Name:      toks[len(toks)-1].Literal,
					Type:      typeName,
					Namespace: p.currentNamespace(),
				})
			}
		}
		p.skipToSemicolon()
	}
	return nil
}

// closeScope pops the innermost scope state and fires its end
// notification. Notifications fire in strict LIFO order: an inner scope
// always ends before the scope that contains it.
func (p *Parser) closeScope() error {
	closing := p.advance()
	if p.state == p.root {
		return errorAt(closing.Span.Start, "unexpected '}'")
	}

	st := p.state
	p.state = st.Parent()

	if cs, ok := st.(*ClassBlockState); ok {
		// the end event fires at the closing brace; trailing declarators
		// (typedef names, variables of the closed type) follow it
		cs.finish(p.visitor)
		return p.parseClassTail(cs)
	}

	st.finish(p.visitor)
	return nil
}

// parseClassTail handles declarators between a class body's closing brace
// and the terminating semicolon: typedef alias names or variables of the
// just-closed type.
func (p *Parser) parseClassTail(cs *ClassBlockState) error {
	typeName := cs.ClassDecl.Name
	if typeName == "" {
		typeName = string(cs.ClassDecl.Kind)
	}

	for !p.check(TokenSemicolon) && !p.check(TokenEOF) {
		prefix := ""
		for p.check(TokenStar) || p.check(TokenAmp) {
			prefix += p.advance().Literal
		}
		if !p.check(TokenIdent) {
			break
		}
		name := p.advance()

		if cs.Typedef {
			p.visitor.OnTypedef(cxx.Typedef{
				Name:   name.Literal,
				Type:   typeName + prefix,
				Access: cs.ClassDecl.Access,
			})
		} else if parent := p.classState(); parent != nil {
			p.visitor.OnClassField(parent, cxx.Field{
				Name:   name.Literal,
				Type:   typeName + prefix,
				Access: parent.Access,
			})
		} else {
			p.visitor.OnVariable(cxx.Variable{
				Name:      name.Literal,
				Type:      typeName + prefix,
				Namespace: p.currentNamespace(),
				Linkage:   p.takeLinkage(),
			})
		}

		// array bounds or initializers are not interesting here
		for !p.check(TokenComma) && !p.check(TokenSemicolon) && !p.check(TokenEOF) {
			tok := p.peek()
			if tok.Kind == TokenLBrace || tok.Kind == TokenLParen || tok.Kind == TokenLBracket {
				open := tok.Kind
				close := matching(open)
				p.skipBalanced(open, close)
				continue
			}
			p.advance()
		}
		if p.check(TokenComma) {
			p.advance()
		}
	}
	return nil
}

func matching(open TokenKind) TokenKind {
	switch open {
	case TokenLParen:
		return TokenRParen
	case TokenLBracket:
		return TokenRBracket
	default:
		return TokenRBrace
	}
}

// parseElaboratedDeclarator handles `struct Foo x;` where the class
// keyword names an already-declared type.
func (p *Parser) parseElaboratedDeclarator(mods *ParsedModifiers, typedef bool, typePrefix string) error {
	toks := p.collectDeclaratorTokens()
	if len(toks) == 0 {
		return errorAt(p.peek().Span.Start, "expected declarator")
	}
	return p.emitVariable(mods, typedef, toks, typePrefix)
}

// collectDeclaratorTokens gathers type-and-name tokens up to the first
// structural terminator at nesting depth zero.
func (p *Parser) collectDeclaratorTokens() []Token {
	var toks []Token
	angle := 0
	for {
		tok := p.peek()
		switch tok.Kind {
		case TokenEOF, TokenSemicolon, TokenRBrace:
			return toks
		case TokenAssign, TokenComma, TokenColon, TokenLBrace, TokenLParen:
			if angle == 0 {
				return toks
			}
		case TokenLT:
			angle++
		case TokenGT:
			if angle > 0 {
				angle--
			}
		case TokenShr:
			if angle > 0 {
				angle -= 2
			}
		}
		toks = append(toks, p.advance())
	}
}

func (p *Parser) parseDeclarator(mods *ParsedModifiers, typedef bool) error {
	start := p.peek()

	// destructor: [virtual] ~Name()
	if start.Kind == TokenTilde && p.peekN(1).Kind == TokenIdent && p.peekN(2).Kind == TokenLParen {
		p.advance()
		name := p.advance()
		return p.parseFunctionTail(mods, nil, "~"+name.Literal)
	}

	var toks []Token
	angle := 0

	for {
		tok := p.peek()
		switch tok.Kind {
		case TokenEOF, TokenSemicolon, TokenRBrace:
			if len(toks) == 0 {
				return errorAt(tok.Span.Start, "expected declaration, got '%s'", describe(tok))
			}
			return p.emitVariable(mods, typedef, toks, "")

		case TokenOperator:
			return p.parseOperatorMethod(mods, toks)

		case TokenLParen:
			if angle > 0 {
				break
			}
			if p.peekN(1).Kind == TokenStar || p.peekN(1).Kind == TokenCaret {
				return p.parseFunctionPointer(mods, typedef, toks)
			}
			// function or method: the name is the last collected token
			if len(toks) == 0 {
				return errorAt(tok.Span.Start, "expected declarator before '('")
			}
			name := toks[len(toks)-1]
			if name.Kind != TokenIdent {
				return errorAt(name.Span.Start, "expected function name, got '%s'", name.Literal)
			}
			retToks := toks[:len(toks)-1]
			if len(retToks) > 0 && retToks[len(retToks)-1].Kind == TokenTilde {
				return p.parseFunctionTail(mods, retToks[:len(retToks)-1], "~"+name.Literal)
			}
			return p.parseFunctionTail(mods, retToks, name.Literal)

		case TokenAssign, TokenComma, TokenLBrace:
			if angle == 0 {
				return p.emitVariable(mods, typedef, toks, "")
			}

		case TokenColon:
			if angle == 0 {
				// bitfield
				return p.emitVariable(mods, typedef, toks, "")
			}

		case TokenLT:
			angle++
		case TokenGT:
			if angle == 0 {
				return errorAt(tok.Span.Start, "unexpected '>'")
			}
			angle--
		case TokenShr:
			if angle < 2 {
				return errorAt(tok.Span.Start, "unexpected '>>'")
			}
			angle -= 2
		}
		toks = append(toks, p.advance())
	}
}

// splitDeclarator separates the declared name from its type: the name is
// the last identifier at the top level of the token list.
func splitDeclarator(toks []Token) (name string, typeToks []Token, ok bool) {
	last := -1
	for i, tok := range toks {
		if tok.Kind == TokenIdent {
			last = i
		}
	}
	if last < 0 || last == 0 && len(toks) == 1 {
		// a single token can only be a type
		return "", toks, false
	}
	// a trailing template argument list or :: means the last ident is
	// still part of the type
	if last != len(toks)-1 {
		trailer := toks[last+1].Kind
		if trailer == TokenColonColon || trailer == TokenLT {
			return "", toks, false
		}
	}
	name = toks[last].Literal
	typeToks = append(typeToks, toks[:last]...)
	typeToks = append(typeToks, toks[last+1:]...)
	return name, typeToks, true
}

func (p *Parser) emitVariable(mods *ParsedModifiers, typedef bool, toks []Token, typePrefix string) error {
	first := p.peek()
	name, typeToks, ok := splitDeclarator(toks)
	if !ok && typePrefix != "" && len(toks) == 1 && toks[0].Kind == TokenIdent {
		// `struct Foo x;` carries the whole type in the prefix
		name, typeToks, ok = toks[0].Literal, nil, true
	}
	if !ok {
		return errorAt(first.Span.Start, "expected variable name")
	}

	typeStr := typeText(typeToks)
	if typePrefix != "" {
		typeStr = strings.TrimSpace(typePrefix + " " + typeStr)
	}

	var bits, value string
	if p.check(TokenColon) {
		p.advance()
		bits = typeText(p.collectValueTokens())
	}
	if p.check(TokenAssign) {
		p.advance()
		value = typeText(p.collectValueTokens())
	} else if p.check(TokenLBrace) {
		open := p.pos
		p.skipBalanced(TokenLBrace, TokenRBrace)
		value = typeText(p.tokens[open:p.pos])
	}

	if typedef {
		if err := mods.Validate(false, false, "parsing typedef"); err != nil {
			return err
		}
		t := cxx.Typedef{Name: name, Type: typeStr}
		if cs := p.classState(); cs != nil {
			t.Access = cs.Access
		}
		p.visitor.OnTypedef(t)
	} else if cs := p.classState(); cs != nil {
		if err := cs.Mods.Validate(true, false, "parsing variable"); err != nil {
			return err
		}
		p.visitor.OnClassField(cs, cxx.Field{
			Name:      name,
			Type:      typeStr,
			Access:    cs.Access,
			Static:    mods.Has("static"),
			Mutable:   mods.Has("mutable"),
			Constexpr: mods.Has("constexpr"),
			Bits:      bits,
			Value:     value,
		})
	} else {
		if err := mods.Validate(true, false, "parsing variable"); err != nil {
			return err
		}
		p.visitor.OnVariable(cxx.Variable{
			Name:      name,
			Type:      typeStr,
			Namespace: p.currentNamespace(),
			Linkage:   p.takeLinkage(),
			Static:    mods.Has("static"),
			Extern:    mods.Has("extern"),
			Constexpr: mods.Has("constexpr"),
			Value:     value,
		})
	}

	// additional comma-separated declarators share the base type
	for p.check(TokenComma) {
		p.advance()
		extra := p.collectDeclaratorTokens()
		if len(extra) == 0 {
			break
		}
		nameTok := extra[len(extra)-1]
		prefix := typeText(extra[:len(extra)-1])
		extraType := typeStr
		if prefix != "" {
			extraType += " " + prefix
		}
		var extraValue string
		if p.check(TokenAssign) {
			p.advance()
			extraValue = typeText(p.collectValueTokens())
		}
		if typedef {
			p.visitor.OnTypedef(cxx.Typedef{Name: nameTok.Literal, Type: extraType})
		} else if cs := p.classState(); cs != nil {
			p.visitor.OnClassField(cs, cxx.Field{
				Name:   nameTok.Literal,
				Type:   extraType,
				Access: cs.Access,
				Static: mods.Has("static"),
				Value:  extraValue,
			})
		} else {
			p.visitor.OnVariable(cxx.Variable{
				Name:      nameTok.Literal,
				Type:      extraType,
				Namespace: p.currentNamespace(),
				Linkage:   p.takeLinkage(),
				Static:    mods.Has("static"),
				Extern:    mods.Has("extern"),
				Value:     extraValue,
			})
		}
	}

	p.skipToSemicolon()
	return nil
}

// collectTypeTokens gathers tokens up to the next semicolon at nesting
// depth zero.
func (p *Parser) collectTypeTokens() []Token {
	var toks []Token
	depth := 0
	for {
		tok := p.peek()
		if tok.Kind == TokenEOF {
			return toks
		}
		if depth == 0 && tok.Kind == TokenSemicolon {
			return toks
		}
		switch tok.Kind {
		case TokenLParen, TokenLBrace, TokenLBracket:
			depth++
		case TokenRParen, TokenRBrace, TokenRBracket:
			depth--
		}
		toks = append(toks, p.advance())
	}
}

func (p *Parser) collectValueTokens() []Token {
	var toks []Token
	depth := 0
	for {
		tok := p.peek()
		if tok.Kind == TokenEOF {
			return toks
		}
		if depth == 0 && (tok.Kind == TokenComma || tok.Kind == TokenSemicolon || tok.Kind == TokenRBrace) {
			return toks
		}
		switch tok.Kind {
		case TokenLParen, TokenLBrace, TokenLBracket:
			depth++
		case TokenRParen, TokenRBrace, TokenRBracket:
			depth--
		}
		toks = append(toks, p.advance())
	}
}

func (p *Parser) parseOperatorMethod(mods *ParsedModifiers, retToks []Token) error {
	p.advance()
	name := "operator"

	// operator() and operator[] name their paren/bracket pair
	if p.check(TokenLParen) && p.peekN(1).Kind == TokenRParen {
		p.advance()
		p.advance()
		name += "()"
	} else if p.check(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
		p.advance()
		p.advance()
		name += "[]"
	} else {
		var toks []Token
		for !p.check(TokenLParen) && !p.check(TokenEOF) {
			toks = append(toks, p.advance())
		}
		if len(toks) > 0 && isIdentStart(toks[0].Literal[0]) {
			// conversion operators read better with a space: "operator bool"
			name += " " + typeText(toks)
		} else {
			// symbol operators concatenate their tokens: == lexes as two
			// assignment tokens
			for _, tok := range toks {
				name += tok.Literal
			}
		}
	}

	return p.parseFunctionTail(mods, retToks, name)
}

func (p *Parser) parseFunctionPointer(mods *ParsedModifiers, typedef bool, typeToks []Token) error {
	open := p.pos
	p.skipBalanced(TokenLParen, TokenRParen)
	inner := p.tokens[open:p.pos]

	var name string
	for _, tok := range inner {
		if tok.Kind == TokenIdent {
			name = tok.Literal
		}
	}
	if name == "" {
		return errorAt(p.peek().Span.Start, "expected function pointer name")
	}

	paramsStart := p.pos
	if p.check(TokenLParen) {
		p.skipBalanced(TokenLParen, TokenRParen)
	}
	typeStr := typeText(typeToks) + " (*)" + typeText(p.tokens[paramsStart:p.pos])

	if typedef {
		if err := mods.Validate(false, false, "parsing typedef"); err != nil {
			return err
		}
		t := cxx.Typedef{Name: name, Type: typeStr}
		if cs := p.classState(); cs != nil {
			t.Access = cs.Access
		}
		p.visitor.OnTypedef(t)
	} else if cs := p.classState(); cs != nil {
		if err := cs.Mods.Validate(true, false, "parsing variable"); err != nil {
			return err
		}
		p.visitor.OnClassField(cs, cxx.Field{
			Name:   name,
			Type:   typeStr,
			Access: cs.Access,
			Static: mods.Has("static"),
		})
	} else {
		if err := mods.Validate(true, false, "parsing variable"); err != nil {
			return err
		}
		p.visitor.OnVariable(cxx.Variable{
			Name:      name,
			Type:      typeStr,
			Namespace: p.currentNamespace(),
			Linkage:   p.takeLinkage(),
			Static:    mods.Has("static"),
			Extern:    mods.Has("extern"),
		})
	}

	p.skipToSemicolon()
	return nil
}

func (p *Parser) parseFunctionTail(mods *ParsedModifiers, retToks []Token, name string) error {
	params, err := p.parseParameters()
	if err != nil {
		return err
	}

	cs := p.classState()
	m := cxx.Method{
		Name:         name,
		ReturnType:   typeText(retToks),
		Parameters:   params,
		Static:       mods.Has("static"),
		Inline:       mods.Has("inline"),
		Constexpr:    mods.Has("constexpr"),
		Virtual:      mods.Has("virtual"),
		Explicit:     mods.Has("explicit"),
		TemplateArgs: p.takeTemplate(),
	}

	// trailing qualifiers
qualifiers:
	for {
		tok := p.peek()
		switch tok.Kind {
		case TokenConst:
			m.Const = true
			p.advance()
		case TokenVolatile, TokenAmp, TokenAmpAmp:
			p.advance()
		case TokenNoexcept:
			m.Noexcept = true
			p.advance()
			if p.check(TokenLParen) {
				p.skipBalanced(TokenLParen, TokenRParen)
			}
		case TokenOverride:
			m.Override = true
			p.advance()
		case TokenFinal:
			m.Final = true
			p.advance()
		case TokenArrow:
			p.advance()
			var toks []Token
			angle := 0
			for {
				t := p.peek()
				if t.Kind == TokenEOF {
					break
				}
				if angle == 0 && (t.Kind == TokenLBrace || t.Kind == TokenSemicolon ||
					t.Kind == TokenOverride || t.Kind == TokenFinal || t.Kind == TokenNoexcept) {
					break
				}
				if t.Kind == TokenLT {
					angle++
				} else if t.Kind == TokenGT && angle > 0 {
					angle--
				}
				toks = append(toks, p.advance())
			}
			m.ReturnType = typeText(toks)
		default:
			break qualifiers
		}
	}

	switch p.peek().Kind {
	case TokenAssign:
		p.advance()
		switch p.peek().Kind {
		case TokenIntLiteral:
			p.advance()
			m.Pure = true
		case TokenDefault:
			p.advance()
			m.Default = true
		case TokenDelete:
			p.advance()
			m.Deleted = true
		default:
			return errorAt(p.peek().Span.Start, "expected '0', 'default' or 'delete' after '='")
		}
	case TokenColon:
		// constructor initializer list; skip to the body
		p.advance()
		for !p.check(TokenLBrace) && !p.check(TokenEOF) {
			if p.check(TokenLParen) {
				p.skipBalanced(TokenLParen, TokenRParen)
				continue
			}
			p.advance()
		}
		fallthrough
	case TokenLBrace:
		if p.check(TokenLBrace) {
			p.skipBalanced(TokenLBrace, TokenRBrace)
			m.HasBody = true
		}
	}

	if cs != nil {
		if err := cs.Mods.Validate(false, true, "parsing method"); err != nil {
			return err
		}
		m.Access = cs.Access
		m.Constructor = m.ReturnType == "" && name == cs.ClassDecl.Name
		m.Destructor = strings.HasPrefix(name, "~")
		p.visitor.OnClassMethod(cs, m)
	} else {
		if err := mods.Validate(false, true, "parsing function"); err != nil {
			return err
		}
		p.visitor.OnFunction(cxx.Function{
			Name:       m.Name,
			ReturnType: m.ReturnType,
			Parameters: m.Parameters,
			Namespace:  p.currentNamespace(),
			Linkage:    p.takeLinkage(),
			Static:     m.Static,
			Inline:     m.Inline,
			Constexpr:  m.Constexpr,
			Noexcept:   m.Noexcept,
			HasBody:    m.HasBody,
		})
	}

	// a definition body ends the declaration; the semicolon is optional
	if m.HasBody {
		if p.check(TokenSemicolon) {
			p.advance()
		}
	} else {
		p.skipToSemicolon()
	}
	return nil
}

func (p *Parser) parseParameters() ([]cxx.Parameter, error) {
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}

	var params []cxx.Parameter
	for !p.check(TokenRParen) && !p.check(TokenEOF) {
		var toks []Token
		depth, angle := 0, 0
		skipping := false
	param:
		for {
			tok := p.peek()
			switch tok.Kind {
			case TokenEOF:
				return nil, errorAt(tok.Span.Start, "unterminated parameter list")
			case TokenComma:
				if depth == 0 && angle == 0 {
					break param
				}
			case TokenRParen:
				if depth == 0 {
					break param
				}
				depth--
			case TokenLParen, TokenLBracket, TokenLBrace:
				depth++
			case TokenRBracket, TokenRBrace:
				depth--
			case TokenLT:
				angle++
			case TokenGT:
				if angle > 0 {
					angle--
				}
			case TokenShr:
				if angle > 1 {
					angle -= 2
				}
			case TokenAssign:
				if depth == 0 && angle == 0 {
					// default argument: not part of the type
					skipping = true
				}
			}
			t := p.advance()
			if !skipping {
				toks = append(toks, t)
			}
		}

		if len(toks) == 1 && toks[0].Kind == TokenVoid {
			// f(void) declares no parameters
		} else if len(toks) == 1 && toks[0].Kind == TokenEllipsis {
			params = append(params, cxx.Parameter{Type: "..."})
		} else if len(toks) > 0 {
			param := cxx.Parameter{}
			if name, typeToks, ok := splitDeclarator(toks); ok {
				param.Name = name
				param.Type = typeText(typeToks)
			} else {
				param.Type = typeText(toks)
			}
			params = append(params, param)
		}

		if p.check(TokenComma) {
			p.advance()
		}
	}

	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) skipAttributes() {
	for p.check(TokenLBracket) && p.peekN(1).Kind == TokenLBracket {
		depth := 0
		for !p.check(TokenEOF) {
			switch p.peek().Kind {
			case TokenLBracket:
				depth++
			case TokenRBracket:
				depth--
			}
			p.advance()
			if depth == 0 {
				break
			}
		}
	}
}

func (p *Parser) skipBalanced(open, close TokenKind) {
	depth := 0
	for !p.check(TokenEOF) {
		switch p.peek().Kind {
		case open:
			depth++
		case close:
			depth--
		}
		p.advance()
		if depth == 0 {
			return
		}
	}
}

// skipToSemicolon consumes tokens up to and including the next semicolon
// at brace/paren depth zero. It stops before a closing brace so scope
// tracking stays intact when a semicolon is simply missing.
func (p *Parser) skipToSemicolon() {
	depth := 0
	for !p.check(TokenEOF) {
		tok := p.peek()
		switch tok.Kind {
		case TokenSemicolon:
			if depth == 0 {
				p.advance()
				return
			}
		case TokenLBrace, TokenLParen, TokenLBracket:
			depth++
		case TokenRBrace:
			if depth == 0 {
				return
			}
			depth--
		case TokenRParen, TokenRBracket:
			depth--
		}
		p.advance()
	}
}

// typeText renders a token sequence as compact C++ source text.
func typeText(toks []Token) string {
	var b strings.Builder
	for i, tok := range toks {
		if i > 0 && needSpace(toks[i-1], tok) {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Literal)
	}
	return b.String()
}

func needSpace(prev, cur Token) bool {
	switch prev.Kind {
	case TokenColonColon, TokenLT, TokenTilde, TokenLParen, TokenLBracket:
		return false
	}
	switch cur.Kind {
	case TokenColonColon, TokenLT, TokenGT, TokenShr, TokenStar, TokenAmp, TokenAmpAmp,
		TokenComma, TokenLParen, TokenRParen, TokenLBracket, TokenRBracket:
		return false
	}
	return true
}
