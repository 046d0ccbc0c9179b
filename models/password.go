package models

import "strings"

// PasswordValidation 密码强度校验结果，Errors 按规则顺序排列
type PasswordValidation struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Message 拼接成可直接展示给用户的提示
func (v PasswordValidation) Message() string {
	if v.Valid {
		return ""
	}
	return "weak password: " + strings.Join(v.Errors, ", ")
}
