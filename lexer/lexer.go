package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/mewlang/mew/token"
)

type Lexer struct {
	input   string
	pos     int // current position in input (points to current char)
	readPos int // current reading position (after current char)
	ch      rune
	line    int
	col     int
}

func New(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.pos = l.readPos
		l.readPos++
		l.col++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.ch = r
	l.pos = l.readPos
	l.readPos += size
	l.col++
}

func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		if l.ch == '\n' {
			l.line++
			l.col = 0
		}
		l.readChar()
	}
}

func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// skipBlockComment consumes a /* */ comment. It reports false when the
// comment runs off the end of the input.
func (l *Lexer) skipBlockComment() bool {
	// skip past /*
	l.readChar()
	l.readChar()
	for {
		if l.ch == 0 {
			return false
		}
		if l.ch == '\n' {
			l.line++
			l.col = 0
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			return true
		}
		l.readChar()
	}
}

func (l *Lexer) skipWhitespaceAndComments() *token.Token {
	for {
		l.skipWhitespace()
		if l.ch == '/' && l.peekChar() == '/' {
			l.skipLineComment()
			continue
		}
		if l.ch == '/' && l.peekChar() == '*' {
			line, col := l.line, l.col
			if !l.skipBlockComment() {
				return &token.Token{Type: token.Illegal, Literal: "Unterminated block comment", Line: line, Column: col}
			}
			continue
		}
		return nil
	}
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return ch == '_' || ch == '?' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

// NextToken scans and returns the next token. Lexical errors are reported
// as Illegal tokens whose Literal carries the message.
func (l *Lexer) NextToken() token.Token {
	if bad := l.skipWhitespaceAndComments(); bad != nil {
		return *bad
	}

	line, col := l.line, l.col

	newToken := func(t token.TokenType, literal string) token.Token {
		return token.Token{Type: t, Literal: literal, Line: line, Column: col}
	}
	twoChar := func(t token.TokenType) token.Token {
		lit := string(l.ch) + string(l.peekChar())
		l.readChar()
		l.readChar()
		return token.Token{Type: t, Literal: lit, Line: line, Column: col}
	}

	switch l.ch {
	case 0:
		return newToken(token.EOF, "")
	case '+':
		if l.peekChar() == '+' {
			return twoChar(token.Increment)
		}
		if l.peekChar() == '=' {
			return twoChar(token.PlusAssign)
		}
		l.readChar()
		return newToken(token.Plus, "+")
	case '-':
		if l.peekChar() == '-' {
			return twoChar(token.Decrement)
		}
		if l.peekChar() == '=' {
			return twoChar(token.MinusAssign)
		}
		l.readChar()
		return newToken(token.Minus, "-")
	case '*':
		if l.peekChar() == '=' {
			return twoChar(token.AsteriskAssign)
		}
		l.readChar()
		return newToken(token.Asterisk, "*")
	case '/':
		if l.peekChar() == '=' {
			return twoChar(token.SlashAssign)
		}
		l.readChar()
		return newToken(token.Slash, "/")
	case '%':
		l.readChar()
		return newToken(token.Percent, "%")
	case '=':
		if l.peekChar() == '=' {
			return twoChar(token.Equal)
		}
		if l.peekChar() == '>' {
			return twoChar(token.Arrow)
		}
		l.readChar()
		return newToken(token.Assign, "=")
	case '!':
		if l.peekChar() == '=' {
			return twoChar(token.NotEqual)
		}
		l.readChar()
		return newToken(token.Not, "!")
	case '<':
		if l.peekChar() == '=' {
			return twoChar(token.LessThanOrEqual)
		}
		l.readChar()
		return newToken(token.LessThan, "<")
	case '>':
		if l.peekChar() == '=' {
			return twoChar(token.GreaterThanOrEqual)
		}
		l.readChar()
		return newToken(token.GreaterThan, ">")
	case '&':
		if l.peekChar() == '&' {
			return twoChar(token.And)
		}
		l.readChar()
		return newToken(token.Illegal, "Unexpected character '&'")
	case '|':
		if l.peekChar() == '|' {
			return twoChar(token.Or)
		}
		l.readChar()
		return newToken(token.Illegal, "Unexpected character '|'")
	case '(':
		l.readChar()
		return newToken(token.LeftParen, "(")
	case ')':
		l.readChar()
		return newToken(token.RightParen, ")")
	case '{':
		l.readChar()
		return newToken(token.LeftBrace, "{")
	case '}':
		l.readChar()
		return newToken(token.RightBrace, "}")
	case '[':
		l.readChar()
		return newToken(token.LeftBracket, "[")
	case ']':
		l.readChar()
		return newToken(token.RightBracket, "]")
	case ';':
		l.readChar()
		return newToken(token.Semicolon, ";")
	case ':':
		l.readChar()
		return newToken(token.Colon, ":")
	case ',':
		l.readChar()
		return newToken(token.Comma, ",")
	case '.':
		l.readChar()
		return newToken(token.Dot, ".")
	case '"', '\'':
		return l.readString()
	}

	if isDigit(l.ch) {
		return l.readNumber()
	}
	if isIdentStart(l.ch) {
		return l.readIdentifier()
	}

	ch := l.ch
	l.readChar()
	return newToken(token.Illegal, fmt.Sprintf("Unexpected character '%c'", ch))
}

func (l *Lexer) readString() token.Token {
	line, col := l.line, l.col
	quote := l.ch
	l.readChar()

	var out []rune
	for {
		switch l.ch {
		case 0, '\n':
			return token.Token{Type: token.Illegal, Literal: "Unterminated string", Line: line, Column: col}
		case quote:
			l.readChar()
			return token.Token{Type: token.String, Literal: string(out), Line: line, Column: col}
		case '\\':
			l.readChar()
			switch l.ch {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case 'r':
				out = append(out, '\r')
			case '\\':
				out = append(out, '\\')
			case '\'':
				out = append(out, '\'')
			case '"':
				out = append(out, '"')
			default:
				return token.Token{
					Type:    token.Illegal,
					Literal: fmt.Sprintf("Invalid escape sequence '\\%c'", l.ch),
					Line:    line,
					Column:  col,
				}
			}
			l.readChar()
		default:
			out = append(out, l.ch)
			l.readChar()
		}
	}
}

func (l *Lexer) readNumber() token.Token {
	line, col := l.line, l.col
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return token.Token{Type: token.Number, Literal: l.input[start:l.pos], Line: line, Column: col}
}

func (l *Lexer) readIdentifier() token.Token {
	line, col := l.line, l.col
	start := l.pos
	for isIdentPart(l.ch) {
		l.readChar()
	}
	literal := l.input[start:l.pos]
	return token.Token{Type: token.LookupIdentifier(literal), Literal: literal, Line: line, Column: col}
}
