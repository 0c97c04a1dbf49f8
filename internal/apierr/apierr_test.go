package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorUnwrapsThroughWrapping(t *testing.T) {
	apiErr := NotFound("field_not_found", errors.New("no such field"))
	wrapped := fmt.Errorf("load field: %w", apiErr)

	var out *Error
	if !errors.As(wrapped, &out) {
		t.Fatalf("expected errors.As to find *Error")
	}
	if out.Status != http.StatusNotFound {
		t.Fatalf("expected status 404 got %d", out.Status)
	}
	if out.Code != "field_not_found" {
		t.Fatalf("unexpected code %q", out.Code)
	}
}

func TestErrorMessageFallbacks(t *testing.T) {
	if got := (&Error{Err: errors.New("boom")}).Error(); got != "boom" {
		t.Fatalf("expected wrapped message, got %q", got)
	}
	if got := (&Error{Code: "oops"}).Error(); got != "oops" {
		t.Fatalf("expected code fallback, got %q", got)
	}
	if got := (&Error{Status: 500}).Error(); got != "api error (500)" {
		t.Fatalf("expected status fallback, got %q", got)
	}
}

func TestConstructorsAssignStatuses(t *testing.T) {
	cases := []struct {
		err    *Error
		status int
	}{
		{Validation("bad_input", errors.New("x")), http.StatusBadRequest},
		{NotFound("missing", errors.New("x")), http.StatusNotFound},
		{Inconsistency("broken_ref", errors.New("x")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if tc.err.Status != tc.status {
			t.Fatalf("code %q: expected status %d got %d", tc.err.Code, tc.status, tc.err.Status)
		}
	}
}
