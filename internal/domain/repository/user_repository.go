package repository

import "github.com/jhoicas/crm-dashboard-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(u *entity.User) error
	// FindByEmail devuelve nil, nil si no existe.
	FindByEmail(email string) (*entity.User, error)
}
