package token

type TokenType int

const (
	// Literals
	Illegal TokenType = iota
	EOF
	Identifier
	Number
	String

	// Operators
	Plus
	Minus
	Asterisk
	Slash
	Percent
	Assign
	PlusAssign
	MinusAssign
	AsteriskAssign
	SlashAssign
	Equal
	NotEqual
	LessThan
	GreaterThan
	LessThanOrEqual
	GreaterThanOrEqual
	And
	Or
	Not
	Increment
	Decrement

	// Delimiters
	LeftParen
	RightParen
	LeftBrace
	RightBrace
	LeftBracket
	RightBracket
	Semicolon
	Colon
	Comma
	Dot
	Arrow // =>

	// Keywords
	Const
	Let
	Var
	If
	ElseIf
	Else
	For
	While
	Do
	Break
	Continue
	Switch
	Case
	Default
	Function
	Return
	Print
	In
	Of
	Pub
	Import
	From
	True
	False
	Null
	Undefined
	NaN
	Infinity
)

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

var Keywords = map[string]TokenType{
	"catst":     Const,
	"catlt":     Let,
	"catv":      Var,
	"meow?":     If,
	"meowse?":   ElseIf,
	"hiss":      Else,
	"fur":       For,
	"mewhile":   While,
	"mewdo":     Do,
	"clawt":     Break,
	"meownext":  Continue,
	"catwalk":   Switch,
	"claw":      Case,
	"default":   Default,
	"cat":       Function,
	"return":    Return,
	"purr":      Print,
	"in":        In,
	"of":        Of,
	"pub":       Pub,
	"import":    Import,
	"from":      From,
	"true":      True,
	"false":     False,
	"null":      Null,
	"undefined": Undefined,
	"NaN":       NaN,
	"Infinity":  Infinity,
}

func LookupIdentifier(ident string) TokenType {
	if tok, ok := Keywords[ident]; ok {
		return tok
	}
	return Identifier
}
