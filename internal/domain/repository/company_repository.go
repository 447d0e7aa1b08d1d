package repository

import (
	"context"

	"github.com/jhoicas/invorya-insights/internal/domain/entity"
)

// CompanyRepository puerto de lectura de empresas (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	// GetByID devuelve (nil, nil) si la empresa no existe.
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// ListActiveIDs empresas activas, para el rebuild del rollup.
	ListActiveIDs(ctx context.Context) ([]string, error)
}
