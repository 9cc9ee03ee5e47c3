package repositories

import (
	"github.com/fstr/pereval/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository    *UserRepository
	ImageRepository   *ImageRepository
	PerevalRepository *PerevalRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database db.DB) *Repositories {
	users := NewUserRepository(database)
	images := NewImageRepository(database)
	return &Repositories{
		UserRepository:    users,
		ImageRepository:   images,
		PerevalRepository: NewPerevalRepository(database, users, images),
	}
}
