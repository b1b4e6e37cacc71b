package parser

import (
	"testing"
)

func TestLexer(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenKind
	}{
		{"", []TokenKind{TokenEOF}},
		{"class", []TokenKind{TokenClass, TokenEOF}},
		{"class Widget {};", []TokenKind{TokenClass, TokenIdent, TokenLBrace, TokenRBrace, TokenSemicolon, TokenEOF}},
		{"123", []TokenKind{TokenIntLiteral, TokenEOF}},
		{"0xFF", []TokenKind{TokenIntLiteral, TokenEOF}},
		{"1'000'000", []TokenKind{TokenIntLiteral, TokenEOF}},
		{"3.14", []TokenKind{TokenFloatLiteral, TokenEOF}},
		{"1e-9", []TokenKind{TokenFloatLiteral, TokenEOF}},
		{"\"hello\"", []TokenKind{TokenStringLiteral, TokenEOF}},
		{"L\"wide\"", []TokenKind{TokenStringLiteral, TokenEOF}},
		{"'a'", []TokenKind{TokenCharLiteral, TokenEOF}},
		{"'\\n'", []TokenKind{TokenCharLiteral, TokenEOF}},
		{"// comment\nclass", []TokenKind{TokenClass, TokenEOF}},
		{"/* block */ class", []TokenKind{TokenClass, TokenEOF}},
		{"::", []TokenKind{TokenColonColon, TokenEOF}},
		{":", []TokenKind{TokenColon, TokenEOF}},
		{"...", []TokenKind{TokenEllipsis, TokenEOF}},
		{"->", []TokenKind{TokenArrow, TokenEOF}},
		{"<< >>", []TokenKind{TokenShl, TokenShr, TokenEOF}},
		{"& &&", []TokenKind{TokenAmp, TokenAmpAmp, TokenEOF}},
		{"virtual void f();", []TokenKind{TokenVirtual, TokenVoid, TokenIdent, TokenLParen, TokenRParen, TokenSemicolon, TokenEOF}},
		{"mutable int x;", []TokenKind{TokenMutable, TokenInt, TokenIdent, TokenSemicolon, TokenEOF}},
		{"constexpr static bool b;", []TokenKind{TokenConstexpr, TokenStatic, TokenBool, TokenIdent, TokenSemicolon, TokenEOF}},
		{"#include <vector>", []TokenKind{TokenPreprocessor, TokenEOF}},
		{"#define X \\\n  1\nint", []TokenKind{TokenPreprocessor, TokenInt, TokenEOF}},
		{"~Widget", []TokenKind{TokenTilde, TokenIdent, TokenEOF}},
		{"final override", []TokenKind{TokenFinal, TokenOverride, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.h")
			var got []TokenKind
			for {
				tok := lexer.NextToken()
				if tok.Kind != TokenWhitespace && tok.Kind != TokenComment && tok.Kind != TokenLineComment {
					got = append(got, tok.Kind)
				}
				if tok.Kind == TokenEOF {
					break
				}
			}
			if len(got) != len(tt.expected) {
				t.Errorf("got %d tokens, want %d", len(got), len(tt.expected))
				return
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLexerPositions(t *testing.T) {
	lexer := NewLexer([]byte("int x;\nint y;"), "test.h")

	var idents []Token
	for {
		tok := lexer.NextToken()
		if tok.Kind == TokenIdent {
			idents = append(idents, tok)
		}
		if tok.Kind == TokenEOF {
			break
		}
	}

	if len(idents) != 2 {
		t.Fatalf("got %d identifiers, want 2", len(idents))
	}
	if idents[0].Span.Start.Line != 1 || idents[0].Span.Start.Column != 5 {
		t.Errorf("x at %d:%d, want 1:5", idents[0].Span.Start.Line, idents[0].Span.Start.Column)
	}
	if idents[1].Span.Start.Line != 2 || idents[1].Span.Start.Column != 5 {
		t.Errorf("y at %d:%d, want 2:5", idents[1].Span.Start.Line, idents[1].Span.Start.Column)
	}
	if idents[0].Span.Start.File != "test.h" {
		t.Errorf("got file %q, want test.h", idents[0].Span.Start.File)
	}
}
