package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"alfatrade/internal/api"
)

var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// в ошибках используем имена полей из JSON
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldErrors переводит ошибки валидатора в ошибки полей ответа.
// Для ошибок другого вида возвращает nil.
func FieldErrors(err error) []api.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]api.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, api.FieldError{Field: fe.Field(), Message: describe(fe)})
	}
	return out
}

// MissingRequired сообщает, что хотя бы одно обязательное поле отсутствует.
func MissingRequired(err error) bool {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return true
		}
	}
	return false
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "must be a valid email address"
	case "numeric":
		return "must be a number"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// FlexNumber принимает JSON число или строку с числом, как шлют HTML формы.
// Пустая строка и null дают пустое значение.
type FlexNumber string

func (n *FlexNumber) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	switch {
	case raw == "null":
		*n = ""
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = FlexNumber(strings.TrimSpace(s))
	default:
		*n = FlexNumber(raw)
	}
	return nil
}

func (n FlexNumber) IsZero() bool {
	return n == ""
}
