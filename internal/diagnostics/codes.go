package diagnostics

// ErrorCode identifies a class of semantic error.
type ErrorCode string

const (
	ErrS001 ErrorCode = "S001" // undeclared variable
	ErrS002 ErrorCode = "S002" // undeclared function
	ErrS003 ErrorCode = "S003" // undeclared type
	ErrS004 ErrorCode = "S004" // type mismatch
	ErrS005 ErrorCode = "S005" // arity mismatch
	ErrS006 ErrorCode = "S006" // structural kind mismatch
	ErrS007 ErrorCode = "S007" // unresolved or cyclic type
	ErrS008 ErrorCode = "S008" // duplicate declaration
	ErrS009 ErrorCode = "S009" // break outside loop
	ErrS010 ErrorCode = "S010" // assignment to loop variable
	ErrS011 ErrorCode = "S011" // nil initializer without record annotation
	ErrS012 ErrorCode = "S012" // unknown record field

	ErrD001 ErrorCode = "D001" // malformed syntax tree document
)

var summaries = map[ErrorCode]string{
	ErrS001: "undeclared variable",
	ErrS002: "undeclared function",
	ErrS003: "undeclared type",
	ErrS004: "type mismatch",
	ErrS005: "wrong number of arguments",
	ErrS006: "wrong kind of type",
	ErrS007: "unresolved type",
	ErrS008: "duplicate declaration",
	ErrS009: "break outside loop",
	ErrS010: "assignment to loop variable",
	ErrS011: "cannot infer type of nil",
	ErrS012: "unknown record field",
	ErrD001: "malformed syntax tree",
}

// Summary returns the short human description of the code.
func (c ErrorCode) Summary() string {
	if s, ok := summaries[c]; ok {
		return s
	}
	return "semantic error"
}
