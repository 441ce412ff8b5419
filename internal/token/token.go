package token

// Type identifies the kind of a lexical token.
type Type string

const (
	ILLEGAL Type = "ILLEGAL"
	EOF     Type = "EOF"

	NUMBER Type = "NUMBER" // 42
	IDENT  Type = "IDENT"  // x, true, add1

	LAMBDA Type = "LAMBDA" // the 'lambda' keyword

	LPAREN Type = "("
	RPAREN Type = ")"
	DOT    Type = "."
	COLON  Type = ":"
	PLUS   Type = "+"
	STAR   Type = "*"
	ARROW  Type = "->" // only inside type annotations
)

// Token is a single lexical token with its source position.
type Token struct {
	Type    Type
	Lexeme  string
	Line    int
	Column  int
}

var keywords = map[string]Type{
	"lambda": LAMBDA,
}

// LookupIdent returns the keyword type for an identifier, or IDENT.
func LookupIdent(ident string) Type {
	if t, ok := keywords[ident]; ok {
		return t
	}
	return IDENT
}
