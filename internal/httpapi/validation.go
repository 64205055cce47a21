package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	checkoutapp "github.com/dwikikusuma/techhub-store/internal/checkout/app"
)

var registerOnce sync.Once

// registerValidators teaches gin's validator the storefront rules and makes
// it report fields by their JSON names.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("mmyy", func(fl validator.FieldLevel) bool {
			return checkoutapp.ValidExpiry(strings.TrimSpace(fl.Field().String()))
		})
		_ = v.RegisterValidation("cardnumber", func(fl validator.FieldLevel) bool {
			n := len(checkoutapp.CardDigits(fl.Field().String()))
			return n >= checkoutapp.MinCardDigits && n <= checkoutapp.MaxCardDigits
		})
	})
}

// bindingDetails turns a bind error into a message and per-field details.
func bindingDetails(err error) (string, map[string]string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			details[fe.Field()] = fieldMessage(fe)
		}
		return "request validation failed", details
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return "request validation failed", map[string]string{typeErr.Field: "must be " + kindWord(typeErr.Type.Kind())}
	}

	if errors.Is(err, io.EOF) {
		return "request body is required", nil
	}
	return "malformed JSON body", nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	case "mmyy":
		return "must be MM/YY"
	case "cardnumber":
		return fmt.Sprintf("must have %d to %d digits", checkoutapp.MinCardDigits, checkoutapp.MaxCardDigits)
	default:
		return "is invalid"
	}
}

func kindWord(k reflect.Kind) string {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Map, reflect.Struct:
		return "an object"
	default:
		return "a valid value"
	}
}
