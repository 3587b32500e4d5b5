package memory

import (
	"strings"
	"sync"

	"github.com/jhoicas/crm-dashboard-api/internal/domain"
	"github.com/jhoicas/crm-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/crm-dashboard-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo repositorio de usuarios en memoria, indexado por email.
type UserRepo struct {
	mu      sync.RWMutex
	byEmail map[string]*entity.User
}

// NewUserRepository construye el repositorio vacío.
func NewUserRepository() *UserRepo {
	return &UserRepo{byEmail: make(map[string]*entity.User)}
}

// Create persiste un usuario. ErrEmailAlreadyExists si el email ya existe.
func (r *UserRepo) Create(u *entity.User) error {
	key := strings.ToLower(u.Email)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[key]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *u
	r.byEmail[key] = &cp
	return nil
}

// FindByEmail devuelve nil, nil si no existe.
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}
