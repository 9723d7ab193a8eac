package token

import "fmt"

// Token marks where an AST node came from. The external front end fills it in;
// Line and Column are 1-based, zero means unknown.
type Token struct {
	Lexeme string
	Line   int
	Column int
}

func (t Token) String() string {
	if t.Line == 0 {
		return "?"
	}
	return fmt.Sprintf("%d:%d", t.Line, t.Column)
}

// Before reports whether t sorts strictly before u by line, then column.
func (t Token) Before(u Token) bool {
	if t.Line != u.Line {
		return t.Line < u.Line
	}
	return t.Column < u.Column
}
