// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/authgate/internal/platform/apperr"
	"github.com/taibuivan/authgate/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "email", "a@b.co", false},
		{"empty_string", "email", "", true},
		{"whitespace_only", "email", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validate.New("en")
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
				assert.Equal(t, "This field is required", ae.Details[0].Message)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestIsEmail checks the email shape rule.
*/
func TestIsEmail(t *testing.T) {
	tests := []struct {
		email   string
		isValid bool
	}{
		{"test@example.com", true},
		{"a@b.co", true},
		{"invalid-email", false},
		{"test@", false},
		{"test@example", false},
		{"te st@example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.isValid, validate.IsEmail(tt.email))
		})
	}
}

/*
TestIsUsername checks the allowed username alphabet.
*/
func TestIsUsername(t *testing.T) {
	tests := []struct {
		username string
		isValid  bool
	}{
		{"alice", true},
		{"alice_01", true},
		{"a.b-c", true},
		{"张三", true},
		{"张三_dev", true},
		{"   ", false},
		{"", false},
		{"alice bob", false},
		{"alice!", false},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			assert.Equal(t, tt.isValid, validate.IsUsername(tt.username))
		})
	}
}

/*
TestIsPassword counts characters rather than bytes.
*/
func TestIsPassword(t *testing.T) {
	assert.False(t, validate.IsPassword("1234567"))
	assert.True(t, validate.IsPassword("12345678"))
	assert.True(t, validate.IsPassword("密码密码密码密码"))
	assert.False(t, validate.IsPassword("密码密码密码密"))
}

/*
TestValidator_LocalizedMessages verifies messages follow the validator locale.
*/
func TestValidator_LocalizedMessages(t *testing.T) {
	err := validate.New("zh").Password("password", "short").Err()
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "密码至少需要8个字符", ae.Details[0].Message)

	err = validate.New("en").Matches("confirm_password", "abcdefgh", "abcdefgi").Err()
	ae = apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "Passwords do not match", ae.Details[0].Message)
}

/*
TestValidator_FirstErrorPerField keeps one message per field.
*/
func TestValidator_FirstErrorPerField(t *testing.T) {
	v := validate.New("en")
	v.Required("email", "").Email("email", "").Email("email", "bad")

	ae := apperr.As(v.Err())
	require.NotNil(t, ae)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, "This field is required", ae.Details[0].Message)
}
