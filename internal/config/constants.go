package config

// SourceFileExt is the extension of syntax tree documents.
const SourceFileExt = ".yaml"

// SourceFileExtensions are all recognized syntax tree document extensions.
var SourceFileExtensions = []string{".yaml", ".yml", ".tig.yaml"}

// DefaultConfigFile is looked up in the working directory when -config is not given.
const DefaultConfigFile = "tigersem.yaml"

// DiagnosticSource names this tool in editor and RPC diagnostics.
const DiagnosticSource = "tigersem"

// DefaultServeAddr is where the checker service listens when no address is configured.
const DefaultServeAddr = "127.0.0.1:7433"

// Built-in type names
const (
	IntTypeName    = "int"
	StringTypeName = "string"
)

// Built-in function names
const (
	PrintFuncName     = "print"
	FlushFuncName     = "flush"
	GetcharFuncName   = "getchar"
	OrdFuncName       = "ord"
	ChrFuncName       = "chr"
	SizeFuncName      = "size"
	SubstringFuncName = "substring"
	ConcatFuncName    = "concat"
	NotFuncName       = "not"
	ExitFuncName      = "exit"
)
