package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"validation sentinel", ErrValidation, KindValidation},
		{"validation typed", NewValidationError("postalCode", "is required"), KindValidation},
		{"wrapped validation", fmt.Errorf("search: %w", NewValidationError("limit", "too big")), KindValidation},
		{"not found typed", NewNotFound("postal code", "99999"), KindNotFound},
		{"store", StoreError("get postal code", errors.New("dial tcp: refused")), KindStore},
		{"other", errors.New("boom"), KindInternal},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := KindOf(tc.err); got != tc.want {
				t.Errorf("KindOf(%v) = %q, want %q", tc.err, got, tc.want)
			}
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	err := NewValidationError("postalCode", "must be 5 digits or ZIP+4")
	if err.Error() != "postalCode: must be 5 digits or ZIP+4" {
		t.Errorf("unexpected message: %q", err.Error())
	}

	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "postalCode" {
		t.Fatalf("expected *ValidationError with field, got %#v", err)
	}

	bare := &ValidationError{Reason: "empty request"}
	if bare.Error() != "empty request" {
		t.Errorf("unexpected bare message: %q", bare.Error())
	}
}

func TestNotFoundError_Message(t *testing.T) {
	err := NewNotFound("postal code", "00000")
	if err.Error() != `postal code "00000" not found` {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("expected errors.Is(err, ErrNotFound)")
	}
}

func TestStoreError_KeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := StoreError("list locations", cause)
	if !errors.Is(err, ErrStore) || !errors.Is(err, cause) {
		t.Errorf("expected both ErrStore and cause in chain: %v", err)
	}
}
