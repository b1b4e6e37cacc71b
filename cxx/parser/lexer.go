package parser

type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		pos:    0,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) NextToken() Token {
	startPos := l.Position()

	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Span: Span{Start: startPos, End: startPos}}
	}

	ch := l.peek()

	switch {
	case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
		for {
			ch := l.peek()
			if ch != ' ' && ch != '\t' && ch != '\r' && ch != '\n' {
				break
			}
			l.advance()
		}
		return l.token(TokenWhitespace, startPos)

	case ch == '#':
		return l.lexPreprocessor(startPos)

	case ch == '/' && l.peekN(1) == '/':
		for l.peek() != '\n' && l.pos < len(l.input) {
			l.advance()
		}
		return l.token(TokenLineComment, startPos)

	case ch == '/' && l.peekN(1) == '*':
		l.advanceN(2)
		for l.pos < len(l.input) {
			if l.peek() == '*' && l.peekN(1) == '/' {
				l.advanceN(2)
				break
			}
			l.advance()
		}
		return l.token(TokenComment, startPos)

	case ch == '"':
		return l.lexString(startPos)

	case ch == '\'':
		return l.lexChar(startPos)

	case isDigit(ch):
		return l.lexNumber(startPos)

	case isIdentStart(ch):
		return l.lexIdentifier(startPos)
	}

	return l.lexOperator(startPos)
}

// lexPreprocessor consumes a whole directive line, honoring backslash
// continuations, and returns it as a single token.
func (l *Lexer) lexPreprocessor(startPos Position) Token {
	for l.pos < len(l.input) {
		ch := l.peek()
		if ch == '\\' && (l.peekN(1) == '\n' || (l.peekN(1) == '\r' && l.peekN(2) == '\n')) {
			l.advance()
			for l.peek() == '\r' {
				l.advance()
			}
			l.advance()
			continue
		}
		if ch == '\n' {
			break
		}
		l.advance()
	}
	return l.token(TokenPreprocessor, startPos)
}

func (l *Lexer) lexString(startPos Position) Token {
	l.advance()
	for l.pos < len(l.input) {
		ch := l.advance()
		if ch == '\\' {
			l.advance()
			continue
		}
		if ch == '"' {
			break
		}
	}
	return l.token(TokenStringLiteral, startPos)
}

func (l *Lexer) lexChar(startPos Position) Token {
	l.advance()
	for l.pos < len(l.input) {
		ch := l.advance()
		if ch == '\\' {
			l.advance()
			continue
		}
		if ch == '\'' {
			break
		}
	}
	return l.token(TokenCharLiteral, startPos)
}

func (l *Lexer) lexNumber(startPos Position) Token {
	kind := TokenIntLiteral
	for {
		ch := l.peek()
		if isDigit(ch) || isIdentStart(ch) || ch == '\'' {
			l.advance()
			continue
		}
		if ch == '.' {
			kind = TokenFloatLiteral
			l.advance()
			continue
		}
		// exponent sign
		if (ch == '+' || ch == '-') && l.pos > 0 {
			prev := l.input[l.pos-1]
			if prev == 'e' || prev == 'E' || prev == 'p' || prev == 'P' {
				kind = TokenFloatLiteral
				l.advance()
				continue
			}
		}
		break
	}
	return l.token(kind, startPos)
}

func (l *Lexer) lexIdentifier(startPos Position) Token {
	for isIdentStart(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}
	literal := string(l.input[startPos.Offset:l.pos])
	// string literal prefixes: L"", u8"", R"..." etc.
	if l.peek() == '"' {
		return l.lexString(startPos)
	}
	if l.peek() == '\'' {
		return l.lexChar(startPos)
	}
	return Token{
		Kind:    LookupKeyword(literal),
		Literal: literal,
		Span:    Span{Start: startPos, End: l.Position()},
	}
}

func (l *Lexer) lexOperator(startPos Position) Token {
	ch := l.advance()
	kind := TokenError

	switch ch {
	case '(':
		kind = TokenLParen
	case ')':
		kind = TokenRParen
	case '{':
		kind = TokenLBrace
	case '}':
		kind = TokenRBrace
	case '[':
		kind = TokenLBracket
	case ']':
		kind = TokenRBracket
	case ';':
		kind = TokenSemicolon
	case ',':
		kind = TokenComma
	case '.':
		kind = TokenDot
		if l.peek() == '.' && l.peekN(1) == '.' {
			l.advanceN(2)
			kind = TokenEllipsis
		}
	case ':':
		kind = TokenColon
		if l.peek() == ':' {
			l.advance()
			kind = TokenColonColon
		}
	case '=':
		kind = TokenAssign
	case '<':
		kind = TokenLT
		if l.peek() == '<' {
			l.advance()
			kind = TokenShl
		}
	case '>':
		kind = TokenGT
		if l.peek() == '>' {
			l.advance()
			kind = TokenShr
		}
	case '*':
		kind = TokenStar
	case '&':
		kind = TokenAmp
		if l.peek() == '&' {
			l.advance()
			kind = TokenAmpAmp
		}
	case '~':
		kind = TokenTilde
	case '+':
		kind = TokenPlus
	case '-':
		kind = TokenMinus
		if l.peek() == '>' {
			l.advance()
			kind = TokenArrow
		}
	case '/':
		kind = TokenSlash
	case '%':
		kind = TokenPercent
	case '|':
		kind = TokenPipe
	case '^':
		kind = TokenCaret
	case '!':
		kind = TokenNot
	case '?':
		kind = TokenQuestion
	}

	return l.token(kind, startPos)
}

func (l *Lexer) token(kind TokenKind, startPos Position) Token {
	return Token{
		Kind:    kind,
		Literal: string(l.input[startPos.Offset:l.pos]),
		Span:    Span{Start: startPos, End: l.Position()},
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch >= 0x80
}
