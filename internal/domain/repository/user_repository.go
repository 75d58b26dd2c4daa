package repository

import "github.com/cstanesvoda/facturitrendy/internal/domain/entity"

// UserRepository definește portul de persistență pentru User.
// Implementarea sigilează credențialele la scriere și le deschide la citire.
type UserRepository interface {
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	List() ([]*entity.User, error)
	// Create inserează utilizatorul; ErrUsernameTaken dacă username-ul există.
	Create(u *entity.User) error
	Update(u *entity.User) error
	Delete(id string) error
}
