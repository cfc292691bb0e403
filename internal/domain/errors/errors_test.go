package errors

import (
	stdErrors "errors"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"already exists", ErrAlreadyExists},
		{"not found", ErrNotFound},
		{"unauthorized", ErrUnauthorized},
		{"invalid credentials", ErrInvalidCredentials},
		{"already verified", ErrAlreadyVerified},
		{"empty order", ErrEmptyOrder},
		{"product unavailable", ErrProductUnavailable},
		{"invalid invoice", ErrInvalidInvoice},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.err) {
				t.Fatalf("expected error to match itself: %v", tc.err)
			}
		})
	}
}
