package types

import (
	"time"

	"github.com/google/uuid"
)

// SaveFavoriteRequest stores a generated name the user liked.
type SaveFavoriteRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Tagline  string `json:"tagline,omitempty" validate:"max=200"`
	ClientID string `json:"client_id,omitempty" validate:"max=64"`
}

// Validate validates the SaveFavoriteRequest using the validator.
func (r *SaveFavoriteRequest) Validate() error {
	return validatorInstance().Struct(r)
}

// Favorite is a stored favorite name.
type Favorite struct {
	ID        uuid.UUID `json:"id"`
	ClientID  string    `json:"client_id,omitempty"`
	Name      string    `json:"name"`
	Tagline   string    `json:"tagline,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SaveFavoriteResponse acknowledges a favorite. Favorite is set when it was persisted.
type SaveFavoriteResponse struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message"`
	Favorite *Favorite `json:"favorite,omitempty"`
}

// FavoritesResponse lists stored favorites.
type FavoritesResponse struct {
	Favorites []Favorite `json:"favorites"`
	Count     int        `json:"count"`
}
