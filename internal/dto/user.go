package dto

import "github.com/yukikurage/gig-marketplace-api/internal/models"

// UserDTO represents a user in API responses
type UserDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

// toUserRef returns nil when the relation was not loaded
func toUserRef(user models.User) *UserDTO {
	if user.ID == 0 {
		return nil
	}
	u := ToUserDTO(user)
	return &u
}
