package parser

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace
	TokenComment
	TokenLineComment
	TokenPreprocessor

	// Literals
	TokenIdent
	TokenIntLiteral
	TokenFloatLiteral
	TokenCharLiteral
	TokenStringLiteral

	// Keywords
	TokenAlignas
	TokenAuto
	TokenBool
	TokenChar
	TokenClass
	TokenConst
	TokenConsteval
	TokenConstexpr
	TokenDefault
	TokenDelete
	TokenDouble
	TokenEnum
	TokenExplicit
	TokenExtern
	TokenFinal
	TokenFloat
	TokenFriend
	TokenInline
	TokenInt
	TokenLong
	TokenMutable
	TokenNamespace
	TokenNoexcept
	TokenOperator
	TokenOverride
	TokenPrivate
	TokenProtected
	TokenPublic
	TokenShort
	TokenSigned
	TokenStatic
	TokenStruct
	TokenTemplate
	TokenTypedef
	TokenTypename
	TokenUnion
	TokenUnsigned
	TokenUsing
	TokenVirtual
	TokenVoid
	TokenVolatile
	TokenWChar

	// Operators and punctuation
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenComma
	TokenDot
	TokenEllipsis
	TokenColon
	TokenColonColon
	TokenAssign
	TokenLT
	TokenGT
	TokenStar
	TokenAmp
	TokenAmpAmp
	TokenTilde
	TokenPlus
	TokenMinus
	TokenSlash
	TokenPercent
	TokenPipe
	TokenCaret
	TokenNot
	TokenQuestion
	TokenArrow
	TokenShl
	TokenShr
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:           "EOF",
	TokenError:         "Error",
	TokenWhitespace:    "Whitespace",
	TokenComment:       "Comment",
	TokenLineComment:   "LineComment",
	TokenPreprocessor:  "Preprocessor",
	TokenIdent:         "Identifier",
	TokenIntLiteral:    "IntLiteral",
	TokenFloatLiteral:  "FloatLiteral",
	TokenCharLiteral:   "CharLiteral",
	TokenStringLiteral: "StringLiteral",
	TokenAlignas:       "alignas",
	TokenAuto:          "auto",
	TokenBool:          "bool",
	TokenChar:          "char",
	TokenClass:         "class",
	TokenConst:         "const",
	TokenConsteval:     "consteval",
	TokenConstexpr:     "constexpr",
	TokenDefault:       "default",
	TokenDelete:        "delete",
	TokenDouble:        "double",
	TokenEnum:          "enum",
	TokenExplicit:      "explicit",
	TokenExtern:        "extern",
	TokenFinal:         "final",
	TokenFloat:         "float",
	TokenFriend:        "friend",
	TokenInline:        "inline",
	TokenInt:           "int",
	TokenLong:          "long",
	TokenMutable:       "mutable",
	TokenNamespace:     "namespace",
	TokenNoexcept:      "noexcept",
	TokenOperator:      "operator",
	TokenOverride:      "override",
	TokenPrivate:       "private",
	TokenProtected:     "protected",
	TokenPublic:        "public",
	TokenShort:         "short",
	TokenSigned:        "signed",
	TokenStatic:        "static",
	TokenStruct:        "struct",
	TokenTemplate:      "template",
	TokenTypedef:       "typedef",
	TokenTypename:      "typename",
	TokenUnion:         "union",
	TokenUnsigned:      "unsigned",
	TokenUsing:         "using",
	TokenVirtual:       "virtual",
	TokenVoid:          "void",
	TokenVolatile:      "volatile",
	TokenWChar:         "wchar_t",
	TokenLParen:        "(",
	TokenRParen:        ")",
	TokenLBrace:        "{",
	TokenRBrace:        "}",
	TokenLBracket:      "[",
	TokenRBracket:      "]",
	TokenSemicolon:     ";",
	TokenComma:         ",",
	TokenDot:           ".",
	TokenEllipsis:      "...",
	TokenColon:         ":",
	TokenColonColon:    "::",
	TokenAssign:        "=",
	TokenLT:            "<",
	TokenGT:            ">",
	TokenStar:          "*",
	TokenAmp:           "&",
	TokenAmpAmp:        "&&",
	TokenTilde:         "~",
	TokenPlus:          "+",
	TokenMinus:         "-",
	TokenSlash:         "/",
	TokenPercent:       "%",
	TokenPipe:          "|",
	TokenCaret:         "^",
	TokenNot:           "!",
	TokenQuestion:      "?",
	TokenArrow:         "->",
	TokenShl:           "<<",
	TokenShr:           ">>",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
}

var keywords = map[string]TokenKind{
	"alignas":   TokenAlignas,
	"auto":      TokenAuto,
	"bool":      TokenBool,
	"char":      TokenChar,
	"class":     TokenClass,
	"const":     TokenConst,
	"consteval": TokenConsteval,
	"constexpr": TokenConstexpr,
	"default":   TokenDefault,
	"delete":    TokenDelete,
	"double":    TokenDouble,
	"enum":      TokenEnum,
	"explicit":  TokenExplicit,
	"extern":    TokenExtern,
	"final":     TokenFinal,
	"float":     TokenFloat,
	"friend":    TokenFriend,
	"inline":    TokenInline,
	"int":       TokenInt,
	"long":      TokenLong,
	"mutable":   TokenMutable,
	"namespace": TokenNamespace,
	"noexcept":  TokenNoexcept,
	"operator":  TokenOperator,
	"override":  TokenOverride,
	"private":   TokenPrivate,
	"protected": TokenProtected,
	"public":    TokenPublic,
	"short":     TokenShort,
	"signed":    TokenSigned,
	"static":    TokenStatic,
	"struct":    TokenStruct,
	"template":  TokenTemplate,
	"typedef":   TokenTypedef,
	"typename":  TokenTypename,
	"union":     TokenUnion,
	"unsigned":  TokenUnsigned,
	"using":     TokenUsing,
	"virtual":   TokenVirtual,
	"void":      TokenVoid,
	"volatile":  TokenVolatile,
	"wchar_t":   TokenWChar,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}
