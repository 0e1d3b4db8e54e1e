package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrDependency         = errors.New("servicio externo no disponible")
)

// FieldError mensaje de validación asociado a un campo concreto.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError agrupa errores de validación por campo. Envuelve ErrInvalidInput
// para que errors.Is(err, ErrInvalidInput) siga funcionando en los handlers.
type ValidationError struct {
	Fields []FieldError
}

// Error implementa error.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidInput.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validación: " + strings.Join(parts, "; ")
}

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Add agrega un error de campo y devuelve el mismo puntero (encadenable).
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
	return e
}

// HasErrors indica si hay al menos un campo inválido.
func (e *ValidationError) HasErrors() bool { return len(e.Fields) > 0 }

// NewValidation construye un ValidationError vacío listo para acumular campos.
func NewValidation() *ValidationError { return &ValidationError{} }
