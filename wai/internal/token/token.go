package token

import "unicode"

type Type int

const (
	LBrace Type = iota
	RBrace
	LParen
	RParen
	Lt
	Gt
	Comma
	Colon
	Equals
	Arrow
	Ident
	Invalid
)

func (t Type) String() string {
	switch t {
	case LBrace:
		return "'{'"
	case RBrace:
		return "'}'"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case Lt:
		return "'<'"
	case Gt:
		return "'>'"
	case Comma:
		return "','"
	case Colon:
		return "':'"
	case Equals:
		return "'='"
	case Arrow:
		return "'->'"
	case Ident:
		return "identifier"
	}
	return "invalid token"
}

type Token struct {
	Value string
	Type  Type
	Line  int
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-'
}

func Tokenize(input string) []Token {
	var tokens []Token
	line := 1
	runes := []rune(input)

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '\n' {
			line++
			continue
		}
		if unicode.IsSpace(r) {
			continue
		}

		// Line comment
		if r == '/' && i+1 < len(runes) && runes[i+1] == '/' {
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
			line++
			continue
		}

		// Block comment, nesting allowed
		if r == '/' && i+1 < len(runes) && runes[i+1] == '*' {
			depth := 1
			i += 2
			for i < len(runes) && depth > 0 {
				if runes[i] == '/' && i+1 < len(runes) && runes[i+1] == '*' {
					depth++
					i++
				} else if runes[i] == '*' && i+1 < len(runes) && runes[i+1] == '/' {
					depth--
					i++
				} else if runes[i] == '\n' {
					line++
				}
				i++
			}
			i--
			continue
		}

		switch r {
		case '{':
			tokens = append(tokens, Token{"{", LBrace, line})
			continue
		case '}':
			tokens = append(tokens, Token{"}", RBrace, line})
			continue
		case '(':
			tokens = append(tokens, Token{"(", LParen, line})
			continue
		case ')':
			tokens = append(tokens, Token{")", RParen, line})
			continue
		case '<':
			tokens = append(tokens, Token{"<", Lt, line})
			continue
		case '>':
			tokens = append(tokens, Token{">", Gt, line})
			continue
		case ',':
			tokens = append(tokens, Token{",", Comma, line})
			continue
		case ':':
			tokens = append(tokens, Token{":", Colon, line})
			continue
		case '=':
			tokens = append(tokens, Token{"=", Equals, line})
			continue
		}

		if r == '-' && i+1 < len(runes) && runes[i+1] == '>' {
			tokens = append(tokens, Token{"->", Arrow, line})
			i++
			continue
		}

		// Identifier or keyword; '-' is legal inside WIT names (kebab-case)
		if unicode.IsLetter(r) || r == '_' {
			start := i
			for i < len(runes) && isIdentRune(runes[i]) {
				// '-' starts an arrow only when followed by '>'
				if runes[i] == '-' && i+1 < len(runes) && runes[i+1] == '>' {
					break
				}
				i++
			}
			tokens = append(tokens, Token{string(runes[start:i]), Ident, line})
			i--
			continue
		}

		tokens = append(tokens, Token{string(r), Invalid, line})
	}

	return tokens
}
