// Package models はユーザーとレシピのエンティティ、パスワード資格情報、
// 生成時のバリデーションを提供します。
package models

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationErrors はフィールド名からエラーメッセージ一覧への対応です。
// 複数フィールドの違反を一度に返せるよう map で保持します。
type ValidationErrors map[string][]string

// Add は field にメッセージを追加します。
func (v ValidationErrors) Add(field, message string) {
	v[field] = append(v[field], message)
}

// Error は error インターフェースを実装します。
func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(v[field], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// fieldMessages は "<json名>.<タグ>" ごとの利用者向けメッセージです。
var fieldMessages = map[string]string{
	"username.required":     "Username is required.",
	"title.required":        "Title is required.",
	"instructions.required": msgInstructionsLength,
	"instructions.min":      msgInstructionsLength,
}

const msgInstructionsLength = "Instructions must be at least 50 characters long."

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct は struct タグのルールを評価し、違反を ValidationErrors にまとめます。
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := ValidationErrors{}
	for _, fe := range fieldErrs {
		msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("%s is invalid.", fe.Field())
		}
		out.Add(fe.Field(), msg)
	}
	return out
}
