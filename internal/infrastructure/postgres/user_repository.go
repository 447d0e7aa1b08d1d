package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/invorya-insights/internal/domain/entity"
	"github.com/jhoicas/invorya-insights/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, email, password_hash, name, COALESCE(company_id::TEXT, ''), status, created_at`

// GetByID obtiene un perfil por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := r.scanOne(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// FindByEmail obtiene un perfil por email.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.UserProfile, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1) LIMIT 1`
	u, err := r.scanOne(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// IsEmployee true si el usuario está en company_employees o es el dueño del perfil de la empresa.
func (r *UserRepo) IsEmployee(ctx context.Context, companyID, userID string) (bool, error) {
	const query = `
	SELECT EXISTS (
	    SELECT 1 FROM company_employees WHERE company_id = $1 AND user_id = $2
	) OR EXISTS (
	    SELECT 1 FROM users WHERE id = $2 AND company_id = $1
	)`
	var ok bool
	if err := r.q.QueryRow(ctx, query, companyID, userID).Scan(&ok); err != nil {
		return false, fmt.Errorf("check employee: %w", err)
	}
	return ok, nil
}

func (r *UserRepo) scanOne(ctx context.Context, query string, arg any) (*entity.UserProfile, error) {
	var u entity.UserProfile
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CompanyID, &u.Status, &u.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
