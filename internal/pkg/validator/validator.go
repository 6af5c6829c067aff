package validator

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator wraps go-playground validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, TranslateValidationError(err))
	}
	return nil
}

// ValidateFields 只校验指定字段，按传入顺序逐个校验，遇到第一个失败即返回
func (cv *CustomValidator) ValidateFields(i interface{}, fields ...string) error {
	for _, field := range fields {
		if err := cv.validator.StructPartial(i, field); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new custom validator instance
func New() *CustomValidator {
	return &CustomValidator{
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}
