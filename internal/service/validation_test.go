package service

import (
	"errors"
	"strings"
	"testing"

	"webapp/internal/domain"
)

func TestCheckPasswordPolicy(t *testing.T) {
	cases := []struct {
		password string
		ok       bool
	}{
		{"Password@456", true},
		{"Aa1!aaaa", true},
		{"Aa1!aaa", false},
		{"password@456", false},
		{"PASSWORD@456", false},
		{"Password@abc", false},
		{"Password4567", false},
		{"Pass word456", false},
		{"Aa1!" + strings.Repeat("a", 68), true},
		{"Aa1!" + strings.Repeat("a", 69), false},
	}
	for _, tc := range cases {
		err := CheckPasswordPolicy(tc.password)
		if tc.ok && err != nil {
			t.Fatalf("expected %q to pass, got %v", tc.password, err)
		}
		if !tc.ok && !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("expected %q to fail, got %v", tc.password, err)
		}
	}
}

func TestInvalidInputMessageUsesJSONNames(t *testing.T) {
	v := newValidator()
	err := invalidInput(v.Struct(RegisterInput{Email: "a@x.com", LastName: "b", Password: "Password@456"}))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "first_name is required") {
		t.Fatalf("expected json field name in message, got %q", err.Error())
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := normalizeEmail("  User@Example.COM "); got != "user@example.com" {
		t.Fatalf("expected user@example.com, got %s", got)
	}
}

func TestInvalidInputRejectsNULInNames(t *testing.T) {
	v := newValidator()
	err := invalidInput(v.Struct(RegisterInput{Email: "a@x.com", FirstName: "a\x00b", LastName: "b", Password: "Password@456"}))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "first_name must not contain NUL characters") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
