// Package token defines lexical token kinds for the Structura compiler.
// Invariants:
//   - Token.Text is the exact source slice (quotes of string literals kept).
//   - Token.Span matches Text exactly, except for ReturnType tokens whose span
//     covers the ':' and the type that were merged.
//   - Line is 1-based and refers to the line on which the token starts.
//   - Builtin function names (print, abs, ...) are Keyword tokens; the parser
//     decides whether they are callees or reserved declarations.
package token
