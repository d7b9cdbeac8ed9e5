package utils

import (
	"net/http"

	apperrors "asset-system/pkg/errors"

	"github.com/go-playground/validator/v10"
)

type RequestValidator struct {
	validator *validator.Validate
}

func NewValidator(v *validator.Validate) *RequestValidator {
	return &RequestValidator{validator: v}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	if err := rv.validator.Struct(i); err != nil {
		return apperrors.NewHttpError(http.StatusBadRequest, "Validation failed", err)
	}
	return nil
}
