package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name        string
		email       string
		expectError bool
	}{
		{"Valid email", "dev@example.com", false},
		{"Valid with plus", "dev+tag@example.com", false},
		{"Valid with dots", "first.last@sub.example.co.uk", false},
		{"Empty", "", true},
		{"Missing at", "devexample.com", true},
		{"Missing domain", "dev@", true},
		{"Missing TLD", "dev@example", true},
		{"Too long", strings.Repeat("a", 250) + "@x.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name        string
		password    string
		expectError bool
	}{
		{"Valid", "secret1", false},
		{"Exactly six chars", "sixsix", false},
		{"Empty", "", true},
		{"Too short", "five5", true},
		{"Too long", strings.Repeat("x", 129), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Ada Lovelace"))
	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName("   "))
	assert.Error(t, ValidateName(strings.Repeat("n", 101)))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "dev@example.com", NormalizeEmail("  Dev@Example.COM "))
	assert.Equal(t, "dev@example.com", NormalizeEmail("dev@example.com"))
}
