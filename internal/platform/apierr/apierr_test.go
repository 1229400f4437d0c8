package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFrom(t *testing.T) {
	notFound := New(http.StatusNotFound, "journal_not_found", errors.New("journal not found"))

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"direct", notFound, http.StatusNotFound, "journal_not_found"},
		{"wrapped", fmt.Errorf("load: %w", notFound), http.StatusNotFound, "journal_not_found"},
		{"plain", errors.New("boom"), http.StatusInternalServerError, "internal"},
		{"zero status", New(0, "odd", nil), http.StatusInternalServerError, "odd"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := From(tc.err)
			if got.Status != tc.wantStatus || got.Code != tc.wantCode {
				t.Fatalf("From(%v)=(%d,%q), want (%d,%q)", tc.err, got.Status, got.Code, tc.wantStatus, tc.wantCode)
			}
		})
	}
	if From(nil) != nil {
		t.Fatalf("From(nil) should be nil")
	}
}

func TestHasStatusAndCode(t *testing.T) {
	err := fmt.Errorf("ctx: %w", New(http.StatusConflict, "duplicate_submission", nil))
	if !HasStatus(err, http.StatusConflict) {
		t.Fatalf("HasStatus: expected true")
	}
	if HasStatus(err, http.StatusBadRequest) {
		t.Fatalf("HasStatus: expected false")
	}
	if !HasCode(err, "duplicate_submission") {
		t.Fatalf("HasCode: expected true")
	}
	if got := err.Error(); got != "ctx: duplicate_submission" {
		t.Fatalf("Error()=%q", got)
	}
}
