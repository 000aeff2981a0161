package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhoneNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"07700 900000", "07700900000"},
		{"(0770) 090-0000", "07700900000"},
		{"7700900000", "07700900000"},
		{"+44 7700 900000", "447700900000"},
		{"447700900000", "447700900000"},
		{"", ""},
		{"abc", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, normalizePhoneNumber(tc.in), "input %q", tc.in)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	verr := &ValidationError{Fields: map[string]string{"email": "invalid email address"}}
	assert.Contains(t, verr.Error(), "email")
	assert.Contains(t, verr.Error(), "invalid email address")
}
