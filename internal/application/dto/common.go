package dto

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate aplica las etiquetas `validate` del DTO.
func Validate(v any) error {
	return validate.Struct(v)
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

// SimpleErrorResponse cuerpo de error del endpoint de ficha técnica: {"error": "..."}.
type SimpleErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse envoltorio {"data": ...}.
type DataResponse[T any] struct {
	Data T `json:"data"`
}
