package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeNotFound, "not found", http.StatusNotFound)
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "not found" {
		t.Errorf("expected message 'not found', got %q", err.Message)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, err.HTTPStatus)
	}
	if err.Retryable {
		t.Error("NOT_FOUND should not be retryable")
	}
}

func TestAppError_New_Retryable(t *testing.T) {
	err := New(ErrCodeTimeout, "timed out", http.StatusGatewayTimeout)
	if !err.Retryable {
		t.Error("TIMEOUT should be retryable")
	}
}

func TestAppError_MalformedMarker(t *testing.T) {
	err := MalformedMarker("(oops)", "missing markerType")
	if err.Code != ErrCodeMalformedMarker {
		t.Errorf("expected MALFORMED_MARKER, got %s", err.Code)
	}
	if err.Details["text"] != "(oops)" {
		t.Errorf("expected text detail, got %v", err.Details["text"])
	}
	if !strings.Contains(err.Message, "missing markerType") {
		t.Errorf("expected reason in message, got %q", err.Message)
	}
}

func TestAppError_DetectorFailed_Chain(t *testing.T) {
	cause := fmt.Errorf("estimator exploded")
	err := DetectorFailed("speechrate", cause)
	if err.Details["detector"] != "speechrate" {
		t.Errorf("expected detector=speechrate, got %v", err.Details["detector"])
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if !strings.Contains(err.Error(), "estimator exploded") {
		t.Errorf("expected cause in Error(), got %q", err.Error())
	}
}

func TestAppError_WithDetails_Merge(t *testing.T) {
	err := InvalidInput("start", "must be finite")
	err.WithDetails(map[string]any{"index": 3, "source": "a.json"})
	if err.Details["field"] != "start" {
		t.Errorf("expected field=start to be kept, got %v", err.Details["field"])
	}
	if err.Details["index"] != 3 {
		t.Errorf("expected index=3, got %v", err.Details["index"])
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := &AppError{Code: ErrCodeInternal}
	err.WithDetail("k", "v")
	if err.Details["k"] != "v" {
		t.Errorf("expected k=v, got %v", err.Details["k"])
	}
}

func TestAppError_Constructors_Table(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   ErrorCode
		status int
	}{
		{"invalid input", InvalidInput("f", "bad"), ErrCodeInvalidInput, http.StatusBadRequest},
		{"validation", Validation("bad"), ErrCodeInvalidInput, http.StatusBadRequest},
		{"missing field", MissingField("speaker"), ErrCodeMissingField, http.StatusBadRequest},
		{"invalid format", InvalidFormat("start", "seconds"), ErrCodeInvalidFormat, http.StatusBadRequest},
		{"malformed marker", MalformedMarker("x", "y"), ErrCodeMalformedMarker, http.StatusUnprocessableEntity},
		{"unknown kind", UnknownMarkerKind("CHAT", "gaps"), ErrCodeUnknownMarkerKind, http.StatusUnprocessableEntity},
		{"detector failed", DetectorFailed("gap", nil), ErrCodeDetectorFailed, http.StatusInternalServerError},
		{"pipeline invalid", PipelineInvalid("cycle"), ErrCodePipelineInvalid, http.StatusBadRequest},
		{"not found", NotFound("vocabulary", "chat"), ErrCodeNotFound, http.StatusNotFound},
		{"timeout", Timeout("annotate"), ErrCodeTimeout, http.StatusGatewayTimeout},
		{"internal", Internal(nil), ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.HTTPStatus != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, tc.err.HTTPStatus)
			}
		})
	}
}

func TestAppError_ToResponse_Success(t *testing.T) {
	err := UnknownMarkerKind("XML", "pauses")
	resp := err.ToResponse()
	if resp.Error.Code != ErrCodeUnknownMarkerKind {
		t.Errorf("expected code in response, got %s", resp.Error.Code)
	}
	if resp.Error.Details["kind"] != "pauses" {
		t.Errorf("expected kind detail, got %v", resp.Error.Details["kind"])
	}
}

func TestAsAppError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", PipelineInvalid("cycle"))
	got, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to succeed for wrapped AppError")
	}
	if got.Code != ErrCodePipelineInvalid {
		t.Errorf("expected PIPELINE_INVALID, got %s", got.Code)
	}
	if !HasCode(wrapped, ErrCodePipelineInvalid) {
		t.Error("expected HasCode to match")
	}
	if HasCode(fmt.Errorf("plain"), ErrCodePipelineInvalid) {
		t.Error("expected HasCode to be false for plain errors")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil) != nil {
		t.Error("Wrap(nil) should return nil")
	}

	orig := NotFound("item", "1")
	if Wrap(orig) != orig {
		t.Error("Wrap should return the original AppError unchanged")
	}

	plain := fmt.Errorf("something broke")
	got := Wrap(plain)
	if got.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", got.Code)
	}
	if got.Cause != plain {
		t.Error("expected cause to be the original error")
	}
}
