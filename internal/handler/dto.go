package handler

import (
	"time"

	"github.com/msomdec/inkwell/internal/domain"
)

// UserDTO is the public view of an account. It never carries the password hash.
type UserDTO struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{ID: u.ID, Email: u.Email}
}

func identityDTO(id *domain.Identity) *UserDTO {
	if id == nil {
		return nil
	}
	return &UserDTO{ID: id.ID, Email: id.Email}
}

// PostDTO is the JSON representation of a post with its owner.
type PostDTO struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
	Owner     *UserDTO `json:"owner"`
}

func toPostDTO(p *domain.Post) PostDTO {
	dto := PostDTO{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
		Owner:     identityDTO(p.Owner),
	}
	if dto.Owner == nil {
		dto.Owner = &UserDTO{ID: p.OwnerID}
	}
	return dto
}

func toPostDTOs(posts []domain.Post) []PostDTO {
	dtos := make([]PostDTO, len(posts))
	for i := range posts {
		dtos[i] = toPostDTO(&posts[i])
	}
	return dtos
}

// TokenDTO is the body returned by a successful login.
type TokenDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   string `json:"expires_at"`
}

// MessageDTO carries a human-readable confirmation.
type MessageDTO struct {
	Message string `json:"message"`
}
