package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	// Analítica
	ErrCompanyNotFound   = errors.New("empresa no encontrada")
	ErrInvalidMetric     = errors.New("métrica inválida")
	ErrInvalidTimePeriod = errors.New("periodo de tiempo inválido")
)
