package userRepo

import "medivault/models"

// UserRepository is the read-only directory view this engine consumes.
// Registration, authentication and profile editing live elsewhere.
type UserRepository interface {
	GetByID(id string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
}
