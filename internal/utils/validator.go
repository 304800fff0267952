package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"gcore-rewards-backend/internal/chain"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ValidationErrorDetail represents the structure of a single validation error.
type ValidationErrorDetail struct {
	Field    string      `json:"field"`
	Message  string      `json:"message"`
	Expected string      `json:"expected"`
	Received interface{} `json:"received"`
}

type ValidationErrorData struct {
	Errors        []ValidationErrorDetail `json:"errors"`
	Documentation string                  `json:"documentation"`
}

const DocumentationLink = "/swagger/index.html"

var registerOnce sync.Once

// RegisterValidators installs the custom tags and json field naming on gin's validator.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("wallet", func(fl validator.FieldLevel) bool {
			return chain.IsAddress(strings.TrimSpace(fl.Field().String()))
		})
	})
}

// BindAndValidate binds the JSON body into obj. On failure it writes a 400
// with per-field details and returns false.
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	RegisterValidators()
	if err := c.ShouldBindJSON(obj); err != nil {
		writeValidationError(c, err)
		return false
	}
	return true
}

// BindQuery is BindAndValidate for query strings.
func BindQuery(c *gin.Context, obj interface{}) bool {
	RegisterValidators()
	if err := c.ShouldBindQuery(obj); err != nil {
		writeValidationError(c, err)
		return false
	}
	return true
}

func writeValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, NewErrorResponse("Invalid request parameters", ValidationErrorData{
		Errors:        describeBindError(err),
		Documentation: DocumentationLink,
	}))
}

func describeBindError(err error) []ValidationErrorDetail {
	var details []ValidationErrorDetail

	var fieldErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &fieldErrs):
		for _, e := range fieldErrs {
			details = append(details, describeFieldError(e))
		}
	case errors.As(err, &typeErr):
		details = append(details, ValidationErrorDetail{
			Field:    typeErr.Field,
			Message:  fmt.Sprintf("Field '%s' has invalid type", typeErr.Field),
			Expected: typeErr.Type.String(),
			Received: typeErr.Value,
		})
	default:
		details = append(details, ValidationErrorDetail{
			Field:    "body",
			Message:  "Malformed JSON or invalid request body",
			Expected: "valid JSON",
			Received: "invalid",
		})
	}
	return details
}

func describeFieldError(e validator.FieldError) ValidationErrorDetail {
	detail := ValidationErrorDetail{
		Field:    e.Field(),
		Message:  fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", e.Field(), e.Tag()),
		Expected: e.Param(),
		Received: e.Value(),
	}
	if detail.Expected == "" {
		detail.Expected = e.Tag()
	}

	switch e.Tag() {
	case "required":
		detail.Message = fmt.Sprintf("Field '%s' is required", e.Field())
		detail.Expected = "not null"
	case "email":
		detail.Message = fmt.Sprintf("Field '%s' must be a valid email address", e.Field())
		detail.Expected = "email format"
	case "wallet":
		detail.Message = fmt.Sprintf("Field '%s' must be a 0x-prefixed 40 hex character address", e.Field())
		detail.Expected = "0x[0-9a-fA-F]{40}"
	case "oneof":
		detail.Message = fmt.Sprintf("Field '%s' must be one of [%s]", e.Field(), e.Param())
	case "gt", "gte", "min":
		detail.Message = fmt.Sprintf("Field '%s' must be at least %s", e.Field(), minimumOf(e))
	case "max", "lte":
		detail.Message = fmt.Sprintf("Field '%s' must be at most %s", e.Field(), e.Param())
	case "dive":
		detail.Message = fmt.Sprintf("Field '%s' contains an invalid item", e.Field())
	}
	return detail
}

func minimumOf(e validator.FieldError) string {
	if e.Tag() == "gt" {
		return "greater than " + e.Param()
	}
	return e.Param()
}
