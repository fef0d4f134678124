// Package diagnostics defines scheme0 diagnostic types for lex/parse/eval errors.
package diagnostics

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Diagnostic code constants.
const (
	ELex     = "E_LEX"
	EParse   = "E_PARSE"
	EName    = "E_NAME"
	EType    = "E_TYPE"
	EArity   = "E_ARITY"
	EIndex   = "E_INDEX"
	EDivZero = "E_DIV_ZERO"
	EApply   = "E_APPLY"
	EDepth   = "E_DEPTH"
)

// Span marks a source region, 1-indexed.
type Span struct {
	File      string `json:"file,omitempty"`
	StartLine int    `json:"startLine"`
	StartCol  int    `json:"startCol"`
	EndLine   int    `json:"endLine"`
	EndCol    int    `json:"endCol"`
}

// Diagnostic represents a lex, parse, or evaluation diagnostic.
type Diagnostic struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Span    *Span  `json:"span,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

// MakeDiag creates a new Diagnostic.
func MakeDiag(code, message string, span *Span, hint string) Diagnostic {
	return Diagnostic{
		Code:    code,
		Message: message,
		Span:    span,
		Hint:    hint,
	}
}

// SyntaxError is raised by the tokenizer and the reader: illegal characters,
// unterminated lists, bad dotted-list shape, read-time arity violations.
type SyntaxError struct {
	Diag Diagnostic
}

func (e *SyntaxError) Error() string {
	return e.Diag.Message
}

// NameError is raised when a symbol is unbound in the environment chain and
// is not a primitive name.
type NameError struct {
	Diag Diagnostic
}

func (e *NameError) Error() string {
	return e.Diag.Message
}

// RuntimeError covers all other evaluation failures: type mismatches, arity
// mismatches, index out of range, division by zero, applying a non-callable.
type RuntimeError struct {
	Diag Diagnostic
}

func (e *RuntimeError) Error() string {
	return e.Diag.Message
}

// NewSyntaxError builds a SyntaxError with the given code, message, and span.
func NewSyntaxError(code, message string, span *Span) *SyntaxError {
	return &SyntaxError{Diag: MakeDiag(code, message, span, "")}
}

// NewNameError builds a NameError for an unbound symbol.
func NewNameError(message string) *NameError {
	return &NameError{Diag: MakeDiag(EName, message, nil, "")}
}

// NewRuntimeError builds a RuntimeError with the given code and message.
func NewRuntimeError(code, message string) *RuntimeError {
	return &RuntimeError{Diag: MakeDiag(code, message, nil, "")}
}

// DiagOf extracts the Diagnostic carried by a scheme0 error, if present.
func DiagOf(err error) (Diagnostic, bool) {
	switch e := err.(type) {
	case *SyntaxError:
		return e.Diag, true
	case *NameError:
		return e.Diag, true
	case *RuntimeError:
		return e.Diag, true
	}
	return Diagnostic{}, false
}

// FormatDiagnostic formats a single diagnostic for display.
func FormatDiagnostic(d Diagnostic, pretty bool) string {
	if !pretty {
		b, _ := json.Marshal(d)
		return string(b)
	}
	out := fmt.Sprintf("error[%s]: %s", d.Code, d.Message)
	if d.Span != nil {
		loc := fmt.Sprintf("%d:%d", d.Span.StartLine, d.Span.StartCol)
		if d.Span.File != "" {
			loc = fmt.Sprintf("%s:%s", d.Span.File, loc)
		}
		out += fmt.Sprintf("\n  --> %s", loc)
	}
	if d.Hint != "" {
		out += fmt.Sprintf("\n  hint: %s", d.Hint)
	}
	return out
}

// FormatDiagnostics formats a slice of diagnostics for display.
func FormatDiagnostics(diags []Diagnostic, pretty bool) string {
	if !pretty {
		b, _ := json.Marshal(diags)
		return string(b)
	}
	parts := make([]string, len(diags))
	for i, d := range diags {
		parts[i] = FormatDiagnostic(d, true)
	}
	return strings.Join(parts, "\n\n")
}
