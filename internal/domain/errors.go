package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// ErrInvalidInput cubre la entrada malformada o contradictoria del usuario
// (id de paciente no numérico, rango de fechas incompleto o invertido).
// ErrConflict cubre el choque de concurrencia al borrar el último movimiento.
// Cualquier otro fallo del puerto de persistencia se envuelve con %w y se
// trata como error de servicio, recuperable a nivel de pantalla.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)
