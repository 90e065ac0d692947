package goerror

import (
	"errors"
	"net/http"
	"testing"
)

func TestStatusCodeMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"server", NewServer(errors.New("boom")), http.StatusInternalServerError},
		{"invalid format", NewInvalidFormat(), http.StatusBadRequest},
		{"invalid input", NewInvalidInput(nil, "email", "The provided credentials are incorrect."), http.StatusUnprocessableEntity},
		{"throttled", NewBusiness("Too many OTP requests.", CodeTooManyRequest), http.StatusTooManyRequests},
		{"forbidden", NewBusiness("Your account is inactive.", CodeForbidden), http.StatusForbidden},
		{"unauthorized", NewBusiness("Authentication required", CodeUnauthorized), http.StatusUnauthorized},
		{"conflict", NewBusiness("Email already registered.", CodeConflict), http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gerr *Error
			if !errors.As(tc.err, &gerr) {
				t.Fatalf("error type = %T, want *Error", tc.err)
			}

			if got := gerr.StatusCode(); got != tc.want {
				t.Errorf("StatusCode() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestNewInvalidInputFields(t *testing.T) {
	err := NewInvalidInput(nil, "code", "The provided code is invalid or has expired.")

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("error type = %T, want *Error", err)
	}

	if got := gerr.Fields()["code"]; got != "The provided code is invalid or has expired." {
		t.Errorf("Fields()[code] = %q", got)
	}

	if gerr.Type() != TypeValidation {
		t.Errorf("Type() = %v, want TypeValidation", gerr.Type())
	}
}

func TestNewInvalidInputOddKV(t *testing.T) {
	err := NewInvalidInput(nil, "only-a-key")

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("error type = %T, want *Error", err)
	}

	if gerr.Code() != CodeInvalidFormat {
		t.Errorf("Code() = %v, want CodeInvalidFormat", gerr.Code())
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("connection reset")
	err := NewServer(inner)

	if !errors.Is(err, inner) {
		t.Error("errors.Is() = false, want wrapped error to match")
	}
}
