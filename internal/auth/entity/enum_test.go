package entity

import "testing"

func TestOTPPurposeIsValid(t *testing.T) {
	if !OTPPurposeLogin.IsValid() {
		t.Error("OTPPurposeLogin.IsValid() = false")
	}

	for _, p := range []OTPPurpose{"", "LOGIN", "reset", "login "} {
		if p.IsValid() {
			t.Errorf("OTPPurpose(%q).IsValid() = true, want false", p)
		}
	}
}

func TestOTPPurposeString(t *testing.T) {
	if got := OTPPurposeLogin.String(); got != "login" {
		t.Errorf("String() = %q, want %q", got, "login")
	}
}
