package domain

import "errors"

// Errores de dominio (sin dependencias externas). Se envuelven con fmt.Errorf("%w: ...")
// y se comparan con errors.Is.
var (
	ErrValidation        = errors.New("entrada inválida")
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrEstimateConflict  = errors.New("la orden ya tiene un presupuesto activo")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
)
