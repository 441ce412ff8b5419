// Package prettyprinter renders resolved terms in de Bruijn form:
// binders lose their names and every variable shows as #index. Two
// terms are alpha-equivalent exactly when their indexed renderings are
// equal, which is what the determinism tests compare.
package prettyprinter

import (
	"fmt"
	"strings"

	"github.com/funvibe/cam/internal/ast"
)

// Indexed renders a resolved term with de Bruijn indices.
func Indexed(term ast.Term) string {
	var sb strings.Builder
	writeIndexed(&sb, term)
	return sb.String()
}

func writeIndexed(sb *strings.Builder, term ast.Term) {
	switch term := term.(type) {
	case *ast.Variable:
		if term.Index >= 0 {
			fmt.Fprintf(sb, "#%d", term.Index)
		} else {
			sb.WriteString(term.Name)
		}

	case *ast.IntegerLiteral:
		fmt.Fprintf(sb, "%d", term.Value)

	case *ast.Lambda:
		sb.WriteString("(\\. ")
		writeIndexed(sb, term.Body)
		sb.WriteString(")")

	case *ast.Application:
		sb.WriteString("(")
		writeIndexed(sb, term.Fn)
		sb.WriteString(" ")
		writeIndexed(sb, term.Arg)
		sb.WriteString(")")

	case *ast.BinaryOp:
		sb.WriteString("(")
		writeIndexed(sb, term.Left)
		sb.WriteString(" " + term.Op + " ")
		writeIndexed(sb, term.Right)
		sb.WriteString(")")
	}
}
