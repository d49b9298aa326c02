package syntax

// LexerConfig parameterizes the lexer. Configurations compose as plain
// values, so a caller can start from a preset and tweak a single field.
type LexerConfig struct {
	UnicodeIdentifiers bool // not read by the lexer: $NAME and function names are ASCII only
	UnicodeWhitespace  bool // not read by the lexer: Unicode space separators never break words
	POSIX              bool // disables brace expansion, process substitution, extglob
	TrackBracketDepth  bool // not read by the lexer: no bracket-nesting counter is kept
	CaseSensitive       bool // not read by the lexer: keyword matching is always case sensitive
	Strict             bool // first error aborts tokenize; false = recoverable/best-effort
	ExtGlob            bool // recognize ?(...) *(...) +(...) @(...) !(...)
	MaxExpansionDepth  int  // nested $(...) / ${...} depth before erroring; 0 = default(64)
}

// BatchLexerConfig is used for non-interactive, whole-file parsing: strict,
// full bash feature set.
func BatchLexerConfig() LexerConfig {
	return LexerConfig{
		CaseSensitive:     true,
		Strict:            true,
		ExtGlob:           true,
		MaxExpansionDepth: 64,
	}
}

// InteractiveLexerConfig is used by line-at-a-time front ends: recoverable,
// so a half-typed line can still be tokenized for the completeness probe.
func InteractiveLexerConfig() LexerConfig {
	c := BatchLexerConfig()
	c.Strict = false
	return c
}

// POSIXLexerConfig disables every bash extension the spec allows to be
// turned off: brace expansion, process substitution and extglob.
func POSIXLexerConfig() LexerConfig {
	c := BatchLexerConfig()
	c.POSIX = true
	c.ExtGlob = false
	return c
}

func (c LexerConfig) maxDepth() int {
	if c.MaxExpansionDepth <= 0 {
		return 64
	}
	return c.MaxExpansionDepth
}

// ParserMode selects how the parser reacts to grammar errors.
type ParserMode int

const (
	// ModeStrictPOSIX disables every bash extension and stops at the
	// first error.
	ModeStrictPOSIX ParserMode = iota
	// ModeBashCompat is the default: full bash grammar, stops at the
	// first error.
	ModeBashCompat
	// ModePermissive collects errors up to MaxErrors, resyncing to the
	// next statement boundary after each.
	ModePermissive
)

// ParserConfig parameterizes the parser.
type ParserConfig struct {
	Mode ParserMode

	CollectErrors bool
	MaxErrors     int // default 10 when <= 0

	// Feature flags; all default true except where POSIX forbids them.
	Arrays             bool
	ProcessSubstitution bool
	EnhancedTest       bool // [[ ]]
	ArithmEval         bool // (( ))
	Functions          bool
	HereStrings        bool // <<<

	Lexer LexerConfig
}

func (c ParserConfig) maxErrors() int {
	if c.MaxErrors <= 0 {
		return 10
	}
	return c.MaxErrors
}

// BashCompatConfig is the default configuration: full bash grammar, first
// error aborts.
func BashCompatConfig() ParserConfig {
	return ParserConfig{
		Mode:                ModeBashCompat,
		Arrays:              true,
		ProcessSubstitution: true,
		EnhancedTest:        true,
		ArithmEval:          true,
		Functions:           true,
		HereStrings:         true,
		Lexer:               BatchLexerConfig(),
	}
}

// StrictPOSIXConfig matches the POSIX shell grammar, rejecting every bash
// extension.
func StrictPOSIXConfig() ParserConfig {
	return ParserConfig{
		Mode:                ModeStrictPOSIX,
		Arrays:              false,
		ProcessSubstitution: false,
		EnhancedTest:        false,
		ArithmEval:          false,
		Functions:           true,
		HereStrings:         false,
		Lexer:               POSIXLexerConfig(),
	}
}

// PermissiveConfig collects as many errors as possible and produces a
// partial AST; used by diagnostic tooling and the completeness probe.
func PermissiveConfig() ParserConfig {
	c := BashCompatConfig()
	c.Mode = ModePermissive
	c.CollectErrors = true
	c.Lexer = InteractiveLexerConfig()
	return c
}

// ShellOptions is the narrow, read-only view of shell state the front end
// consumes (spec §1: "shell state... only its read-only queries are
// consumed"). Unknown keys passed to ConfigFromOptions are ignored.
type ShellOptions struct {
	POSIX       bool
	ExtGlob     bool
	DotGlob     bool
	ParserMode  string // "strict_posix" | "bash_compat" | "permissive"
	CollectErrs bool
	MaxErrors   int
}

// ConfigFromOptions maps a shell's option flags to a ParserConfig, the
// factory described in spec §4.5.8.
func ConfigFromOptions(opts ShellOptions) ParserConfig {
	var cfg ParserConfig
	switch opts.ParserMode {
	case "strict_posix":
		cfg = StrictPOSIXConfig()
	case "permissive":
		cfg = PermissiveConfig()
	default:
		cfg = BashCompatConfig()
	}
	if opts.POSIX {
		cfg.Lexer.POSIX = true
		cfg.Arrays = false
		cfg.ProcessSubstitution = false
		cfg.EnhancedTest = false
		cfg.ArithmEval = false
		cfg.HereStrings = false
	}
	cfg.Lexer.ExtGlob = opts.ExtGlob && !cfg.Lexer.POSIX
	if opts.CollectErrs {
		cfg.CollectErrors = true
		cfg.Mode = ModePermissive
	}
	if opts.MaxErrors > 0 {
		cfg.MaxErrors = opts.MaxErrors
	}
	return cfg
}
