// File: error_test.go
// Title: Error Module Tests
// Description: Tests for error creation, wrapping, codes, severities and
//              JSON output.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with comprehensive test coverage
// - 2026-10-19 v0.2.0: Calculator codes

package error

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	msg := "test error message"
	err := New(msg)

	if err == nil {
		t.Fatal("New() returned nil")
	}

	if err.Error() != msg {
		t.Errorf("Error() = %q, want %q", err.Error(), msg)
	}

	if err.Code() != CodeUnknown {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeUnknown)
	}

	if err.Severity() != SeverityMedium {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityMedium)
	}

	if err.Timestamp().IsZero() {
		t.Error("Timestamp() should not be zero")
	}

	if len(err.StackTrace()) == 0 {
		t.Error("StackTrace() should not be empty")
	}
}

func TestNew_StackTraceStartsAtCaller(t *testing.T) {
	err := New("here")
	frames := err.StackTrace()
	if len(frames) == 0 {
		t.Fatal("StackTrace() is empty")
	}
	if !strings.Contains(frames[0].Function, "TestNew_StackTraceStartsAtCaller") {
		t.Errorf("first frame = %q, want the calling test", frames[0].Function)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		message  string
		wantNil  bool
		wantMsg  string
		wantCode Code
	}{
		{
			name:    "wrap nil error",
			err:     nil,
			message: "wrapper message",
			wantNil: true,
		},
		{
			name:     "wrap standard error",
			err:      errors.New("original error"),
			message:  "wrapper message",
			wantMsg:  "wrapper message: original error",
			wantCode: CodeUnknown,
		},
		{
			name:     "wrap mcalc error",
			err:      New("bad character").WithCode(CodeInvalidCharacter),
			message:  "lexing failed",
			wantMsg:  "lexing failed: bad character",
			wantCode: CodeInvalidCharacter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := Wrap(tt.err, tt.message)

			if tt.wantNil {
				if wrapped != nil {
					t.Errorf("Wrap() = %v, want nil", wrapped)
				}
				return
			}

			if wrapped == nil {
				t.Fatal("Wrap() returned nil")
			}

			if wrapped.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", wrapped.Error(), tt.wantMsg)
			}

			if wrapped.Code() != tt.wantCode {
				t.Errorf("Code() = %v, want %v", wrapped.Code(), tt.wantCode)
			}
		})
	}
}

type positionError struct{ pos int }

func (e *positionError) Error() string { return "bad position" }

func TestWrap_KeepsTypedCause(t *testing.T) {
	cause := &positionError{pos: 9}
	err := Wrap(cause, "lexing failed").WithCode(CodeInvalidCharacter)

	var target *positionError
	if !errors.As(err, &target) {
		t.Fatal("errors.As() did not find the wrapped cause")
	}
	if target.pos != 9 {
		t.Errorf("pos = %d, want 9", target.pos)
	}
	if err.RootCause() != cause {
		t.Errorf("RootCause() = %v, want %v", err.RootCause(), cause)
	}
}

func TestWrap_InheritsDetails(t *testing.T) {
	inner := New("inner").WithCode(CodeDivisionByZero).WithDetail("position", 2)
	outer := Wrap(inner, "outer")

	if v, ok := outer.Detail("position"); !ok || v != 2 {
		t.Errorf("Detail(position) = %v, %v; want 2, true", v, ok)
	}
	if outer.Severity() != SeverityLow {
		t.Errorf("Severity() = %v, want %v", outer.Severity(), SeverityLow)
	}
}

func TestWithCode_SetsSeverity(t *testing.T) {
	tests := []struct {
		code Code
		want Severity
	}{
		{CodeInvalidCharacter, SeverityLow},
		{CodeUnexpectedEnd, SeverityLow},
		{CodeInvalidToken, SeverityLow},
		{CodeDivisionByZero, SeverityLow},
		{CodeDatabaseError, SeverityHigh},
		{CodeConfigError, SeverityMedium},
		{CodeInternal, SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := New("x").WithCode(tt.code)
			if err.Severity() != tt.want {
				t.Errorf("Severity() = %v, want %v", err.Severity(), tt.want)
			}
		})
	}
}

func TestWithCode_ExplicitSeverityWins(t *testing.T) {
	err := New("x").WithSeverity(SeverityCritical).WithCode(CodeInvalidToken)
	if err.Severity() != SeverityCritical {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityCritical)
	}
}

func TestCodeHelpers(t *testing.T) {
	err := Wrap(New("x").WithCode(CodeInvalidToken), "outer")
	plain := errors.New("plain")

	if !HasCode(err, CodeInvalidToken) {
		t.Error("HasCode() = false, want true")
	}
	if HasCode(plain, CodeInvalidToken) {
		t.Error("HasCode(plain) = true, want false")
	}
	if GetCode(plain) != CodeUnknown {
		t.Errorf("GetCode(plain) = %v, want %v", GetCode(plain), CodeUnknown)
	}
	if GetSeverity(plain) != SeverityMedium {
		t.Errorf("GetSeverity(plain) = %v, want %v", GetSeverity(plain), SeverityMedium)
	}
}

func TestCode_Category(t *testing.T) {
	tests := []struct {
		code       Code
		category   string
		inputError bool
	}{
		{CodeInvalidCharacter, "lex", true},
		{CodeUnexpectedEnd, "parse", true},
		{CodeInvalidToken, "parse", true},
		{CodeDivisionByZero, "evaluation", true},
		{CodeInvalidInput, "generic", true},
		{CodeDatabaseError, "database", false},
		{CodeInvalidConfig, "configuration", false},
		{Code("SOMETHING_ELSE"), "generic", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.Category(); got != tt.category {
				t.Errorf("Category() = %q, want %q", got, tt.category)
			}
			if got := tt.code.IsInputError(); got != tt.inputError {
				t.Errorf("IsInputError() = %v, want %v", got, tt.inputError)
			}
		})
	}

	if Code("SOMETHING_ELSE").IsValid() {
		t.Error("IsValid() = true for unknown code")
	}
}

func TestMarshalJSON(t *testing.T) {
	err := Wrap(errors.New("cause"), "evaluation failed").
		WithCode(CodeDivisionByZero).
		WithOperation("calc.Evaluate").
		WithDetail("position", 2)

	data, marshalErr := json.Marshal(err)
	if marshalErr != nil {
		t.Fatalf("json.Marshal() error = %v", marshalErr)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}

	if decoded["code"] != string(CodeDivisionByZero) {
		t.Errorf("code = %v, want %v", decoded["code"], CodeDivisionByZero)
	}
	if decoded["operation"] != "calc.Evaluate" {
		t.Errorf("operation = %v, want calc.Evaluate", decoded["operation"])
	}
	if decoded["cause"] != "cause" {
		t.Errorf("cause = %v, want cause", decoded["cause"])
	}
	if decoded["severity"] != "low" {
		t.Errorf("severity = %v, want low", decoded["severity"])
	}
}

func TestString(t *testing.T) {
	err := New("boom").WithCode(CodeInvalidToken).WithDetail("b", 2).WithDetail("a", 1)
	s := err.String()

	for _, want := range []string{"Error: boom", "Code: CALC_INVALID_TOKEN", "Details: {a=1, b=2}"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q in %q", want, s)
		}
	}
}
