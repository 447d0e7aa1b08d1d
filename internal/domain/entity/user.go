package entity

import "time"

// UserProfile vincula un usuario autenticado con, como máximo, una empresa.
// CompanyID vacío significa que el usuario aún no configuró su empresa.
type UserProfile struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt
	Name         string
	CompanyID    string
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
}

// HasCompany informa si el perfil tiene empresa vinculada.
func (u *UserProfile) HasCompany() bool {
	return u != nil && u.CompanyID != ""
}
