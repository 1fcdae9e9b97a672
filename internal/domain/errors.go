package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrSlugExhausted    = errors.New("no se encontró un slug libre para la ficha técnica")
	ErrUnexpectedInsert = errors.New("fallo inesperado al insertar la ficha técnica")
	ErrAccessLookup     = errors.New("no se pudo consultar la cuenta")
	ErrSchemaDrift      = errors.New("columna inexistente en el esquema")
)
