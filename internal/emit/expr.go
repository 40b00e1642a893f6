package emit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"structura/internal/ir"
)

// JavaScript binding strength of the operators the language has.
var precedence = map[string]int{
	"||": 1,
	"&&": 2,
	"==": 3, "!=": 3,
	"<": 4, ">": 4, "<=": 4, ">=": 4,
	"+": 5, "-": 5,
	"*": 6, "/": 6,
}

const precPostfix = 10

func exprPrec(x ir.Expr) int {
	switch x := x.(type) {
	case *ir.Binary:
		return precedence[x.Op]
	case *ir.Literal:
		// `5.x` does not lex and `-1.x` binds as -(1.x)
		if x.Kind == ir.LitNumber {
			return precPostfix - 1
		}
	}
	return precPostfix
}

func expr(x ir.Expr) string {
	switch x := x.(type) {
	case *ir.Literal:
		if x.Kind == ir.LitString {
			return quote(x.Str)
		}
		return ir.FormatNumber(x.Num)
	case *ir.Variable:
		return x.Name
	case *ir.Binary:
		p := precedence[x.Op]
		left := expr(x.Left)
		if exprPrec(x.Left) < p {
			left = "(" + left + ")"
		}
		// operators are left associative, so an equal-strength right
		// operand keeps its parentheses
		right := expr(x.Right)
		if exprPrec(x.Right) <= p {
			right = "(" + right + ")"
		}
		return left + " " + x.Op + " " + right
	case *ir.Call:
		args := make([]string, len(x.Args))
		for i, a := range x.Args {
			args[i] = expr(a)
		}
		return operand(x.Callee) + "(" + strings.Join(args, ", ") + ")"
	case *ir.Member:
		return operand(x.X) + "." + x.Prop
	}
	panic(fmt.Sprintf("emit: unexpected expression %T", x))
}

// operand renders x in callee or member-object position.
func operand(x ir.Expr) string {
	s := expr(x)
	if exprPrec(x) < precPostfix {
		return "(" + s + ")"
	}
	return s
}

// quote renders s as a JSON string literal, which JavaScript accepts as is.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Sprintf("%q", s)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
