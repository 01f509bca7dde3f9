package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Taxonomía: validación (input inválido, re-confirmar un lote confirmado),
// no encontrado (lote/ítem borrado por otra sesión) y errores de persistencia,
// que se envuelven con fmt.Errorf("...: %w") en los adaptadores.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrBatchConfirmed     = errors.New("el lote de venta ya está confirmado")
	ErrItemSold           = errors.New("el ítem ya está vendido")
)
