package directive

import "strings"

// lexer is a minimal cursor over a directive tag body. It understands
// identifiers, '=', and quoted values (single or double quotes, no
// escaping of the delimiting quote inside the value).
type lexer struct {
	input string
	pos   int
}

func (l *lexer) eof() bool {
	return l.pos >= len(l.input)
}

func (l *lexer) skipSpace() {
	for !l.eof() {
		switch l.input[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

// consume advances past tok if the input starts with it at the cursor.
func (l *lexer) consume(tok string) bool {
	if strings.HasPrefix(l.input[l.pos:], tok) {
		l.pos += len(tok)
		return true
	}
	return false
}

// ident reads an attribute key: a letter or underscore followed by
// letters, digits, underscores, or hyphens.
func (l *lexer) ident() (string, bool) {
	start := l.pos
	for !l.eof() {
		c := l.input[l.pos]
		isFirst := l.pos == start
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
			l.pos++
		case !isFirst && (c >= '0' && c <= '9' || c == '-'):
			l.pos++
		default:
			if l.pos == start {
				return "", false
			}
			return l.input[start:l.pos], true
		}
	}
	if l.pos == start {
		return "", false
	}
	return l.input[start:l.pos], true
}

// quoted reads a quoted value. The value runs to the next occurrence of
// the opening quote character; there is no escape mechanism. An
// unterminated quote fails the tag.
func (l *lexer) quoted() (string, bool) {
	if l.eof() {
		return "", false
	}
	q := l.input[l.pos]
	if q != '"' && q != '\'' {
		return "", false
	}
	l.pos++
	end := strings.IndexByte(l.input[l.pos:], q)
	if end < 0 {
		return "", false
	}
	val := l.input[l.pos : l.pos+end]
	l.pos += end + 1
	return val, true
}
