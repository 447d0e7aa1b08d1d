package repository

import (
	"context"

	"github.com/jhoicas/invorya-insights/internal/domain/entity"
)

// UserRepository puerto de lectura de perfiles (DIP).
// Los métodos Get/Find devuelven (nil, nil) cuando no existe el registro.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.UserProfile, error)
	FindByEmail(ctx context.Context, email string) (*entity.UserProfile, error)
	// IsEmployee informa si el usuario pertenece a la empresa (relación de empleados o empresa propia).
	IsEmployee(ctx context.Context, companyID, userID string) (bool, error)
}
