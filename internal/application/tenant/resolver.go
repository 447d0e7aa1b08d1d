// Package tenant resuelve la empresa activa del usuario autenticado.
package tenant

import (
	"context"
	"fmt"

	"github.com/jhoicas/invorya-insights/internal/domain/entity"
	"github.com/jhoicas/invorya-insights/internal/domain/repository"
)

// Resolution resultado de resolver el tenant de una request.
// HasCompany es false cuando falta el perfil, el perfil no tiene empresa o la empresa no existe.
type Resolution struct {
	Company    *entity.Company
	Profile    *entity.UserProfile
	HasCompany bool
}

// CompanyID ID de la empresa resuelta; vacío si no hay.
func (r Resolution) CompanyID() string {
	if !r.HasCompany || r.Company == nil {
		return ""
	}
	return r.Company.ID
}

// Resolver obtiene perfil y empresa a partir del userID del token.
type Resolver struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
}

// NewResolver construye el resolver.
func NewResolver(userRepo repository.UserRepository, companyRepo repository.CompanyRepository) *Resolver {
	return &Resolver{userRepo: userRepo, companyRepo: companyRepo}
}

// Resolve nunca devuelve HasCompany=true con una empresa vacía.
// Los errores son solo de infraestructura; "no encontrado" se expresa en la Resolution.
func (r *Resolver) Resolve(ctx context.Context, userID string) (Resolution, error) {
	if userID == "" {
		return Resolution{}, nil
	}
	profile, err := r.userRepo.GetByID(ctx, userID)
	if err != nil {
		return Resolution{}, fmt.Errorf("tenant: perfil: %w", err)
	}
	if profile == nil {
		return Resolution{}, nil
	}
	if !profile.HasCompany() {
		return Resolution{Profile: profile}, nil
	}
	company, err := r.companyRepo.GetByID(ctx, profile.CompanyID)
	if err != nil {
		return Resolution{}, fmt.Errorf("tenant: empresa: %w", err)
	}
	if company == nil {
		return Resolution{Profile: profile}, nil
	}
	return Resolution{Company: company, Profile: profile, HasCompany: true}, nil
}
