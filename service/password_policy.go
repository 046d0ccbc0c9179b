package service

import (
	"strings"
	"unicode/utf8"

	"github.com/BerniceZTT/sales_tracker/models"
)

// 密码强度规则
const (
	MinPasswordLength = 8
	passwordSpecials  = "!@#$%^&*()_+-=[]{};':\"\\|,.<>/?`~"
)

// 规则未通过时的提示，顺序固定
const (
	PasswordErrMinLength = "minimum length"
	PasswordErrUpper     = "missing uppercase"
	PasswordErrLower     = "missing lowercase"
	PasswordErrDigit     = "missing digit"
	PasswordErrSpecial   = "missing special character"
)

// ValidateStrongPassword 校验密码强度，返回所有未满足的规则
func ValidateStrongPassword(password string) models.PasswordValidation {
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		}
	}

	errs := make([]string, 0, 5)
	if utf8.RuneCountInString(password) < MinPasswordLength {
		errs = append(errs, PasswordErrMinLength)
	}
	if !hasUpper {
		errs = append(errs, PasswordErrUpper)
	}
	if !hasLower {
		errs = append(errs, PasswordErrLower)
	}
	if !hasDigit {
		errs = append(errs, PasswordErrDigit)
	}
	if !hasSpecial {
		errs = append(errs, PasswordErrSpecial)
	}

	return models.PasswordValidation{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}
