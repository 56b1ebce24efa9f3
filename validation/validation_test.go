package validation

import (
	"math"
	"strings"
	"testing"

	"github.com/kbukum/convokit/errors"
)

func TestValidatorRequired(t *testing.T) {
	v := New()
	v.Required("speaker", "A")
	if v.HasErrors() {
		t.Error("expected no errors for valid input")
	}

	v2 := New()
	v2.Required("speaker", "   ")
	if !v2.HasErrors() {
		t.Error("expected error for whitespace-only required field")
	}
}

func TestValidatorFinite(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"positive", 12.5, false},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
		{"neg inf", math.Inf(-1), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := New().Finite("start", tc.value)
			if v.HasErrors() != tc.wantErr {
				t.Errorf("expected error=%v, got %v", tc.wantErr, v.Errors())
			}
		})
	}
}

func TestValidatorNotBeforeAndPositive(t *testing.T) {
	if New().NotBefore("end", 2, 1).HasErrors() {
		t.Error("end after start is valid")
	}
	if New().NotBefore("end", 1, 1).HasErrors() {
		t.Error("end equal to start is valid")
	}
	if !New().NotBefore("end", 0.5, 1).HasErrors() {
		t.Error("end before start must fail")
	}
	if !New().Positive("threshold", 0).HasErrors() {
		t.Error("zero is not positive")
	}
	if !New().Positive("threshold", math.NaN()).HasErrors() {
		t.Error("NaN is not positive")
	}
}

func TestValidatorOneOf(t *testing.T) {
	allowed := []string{"chat", "txt"}
	if New().OneOf("format", "chat", allowed).HasErrors() {
		t.Error("expected chat to be allowed")
	}
	if !New().OneOf("format", "pdf", allowed).HasErrors() {
		t.Error("expected pdf to be rejected")
	}
	if New().OneOf("format", "", allowed).HasErrors() {
		t.Error("empty value is skipped")
	}
}

func TestValidatorValidate(t *testing.T) {
	v := New()
	if v.Validate() != nil {
		t.Error("expected nil for no errors")
	}

	v.Required("speaker", "").Finite("start", math.NaN()).Custom(false, "text", "bad text")
	appErr := v.Validate()
	if appErr == nil {
		t.Fatal("expected an AppError")
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 3 {
		t.Fatalf("expected 3 field errors, got %v", appErr.Details["fields"])
	}
	if !strings.Contains(appErr.Message, "start: must be a finite number") {
		t.Errorf("unexpected message %q", appErr.Message)
	}
}

type sample struct {
	Start   float64 `json:"start" validate:"finite,gte=0"`
	End     float64 `json:"end" validate:"finite,gtefield=Start"`
	Speaker string  `json:"speaker" validate:"required"`
}

func TestStructValidateValid(t *testing.T) {
	if err := Validate(sample{Start: 0, End: 1, Speaker: "A"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStructValidateInvalid(t *testing.T) {
	tests := []struct {
		name  string
		in    sample
		field string
	}{
		{"missing speaker", sample{Start: 0, End: 1}, "speaker"},
		{"nan start", sample{Start: math.NaN(), End: 1, Speaker: "A"}, "start"},
		{"end before start", sample{Start: 2, End: 1, Speaker: "A"}, "end"},
		{"negative start", sample{Start: -1, End: 1, Speaker: "A"}, "start"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.in)
			if err == nil {
				t.Fatal("expected error")
			}
			appErr, ok := errors.AsAppError(err)
			if !ok {
				t.Fatalf("expected AppError, got %T", err)
			}
			if !strings.Contains(appErr.Message, tc.field+":") {
				t.Errorf("expected field %q in message, got %q", tc.field, appErr.Message)
			}
		})
	}
}

func TestRequiredFunc(t *testing.T) {
	if err := Required("key", "a.wav"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := Required("key", ""); err == nil {
		t.Error("expected error for empty key")
	}
}
