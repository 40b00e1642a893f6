// Package diag defines the diagnostic model shared by all pipeline stages.
//
// Every stage reports failures through its own error type (lexer.Error,
// parser.Error, sema.Error, irgen.Error). Each of them can be turned into a
// Diagnostic, which is the only shape renderers in internal/diagfmt, the HTTP
// API and the conformance corpus look at.
//
// # Data model
//
//   - Severity – Info, Warning or Error.
//   - Code – compact numeric identifier with a stable string form (LEX1001,
//     SEM3003, ...).
//   - Message – short human text, no trailing punctuation.
//   - Primary – the source.Span the diagnostic points at; Line is kept
//     alongside because token-only inputs (REPL, HTTP) still know the line.
//   - Notes – optional secondary spans.
//
// Package diag does no formatting or IO beyond the golden one-line form.
package diag
