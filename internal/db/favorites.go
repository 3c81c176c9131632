package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/namesmith/internal/types"
)

// DefaultFavoritesLimit caps ListFavorites when no limit is given.
const DefaultFavoritesLimit = 100

// SaveFavorite stores a favorite name for clientID. Saving a name the client
// already has (ignoring case) updates its tagline and returns the stored row.
func (db *DB) SaveFavorite(ctx context.Context, clientID, name, tagline string) (*types.Favorite, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("favorite name is empty")
	}

	var f types.Favorite
	err := db.pool.QueryRow(ctx,
		`INSERT INTO favorites (client_id, name, tagline)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (client_id, (lower(name))) DO UPDATE SET tagline = EXCLUDED.tagline
		 RETURNING id, client_id, name, tagline, created_at`,
		clientID, name, tagline,
	).Scan(&f.ID, &f.ClientID, &f.Name, &f.Tagline, &f.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save favorite: %w", err)
	}
	return &f, nil
}

// ListFavorites returns clientID's favorites, newest first.
func (db *DB) ListFavorites(ctx context.Context, clientID string, limit int) ([]types.Favorite, error) {
	if limit <= 0 {
		limit = DefaultFavoritesLimit
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, client_id, name, tagline, created_at
		 FROM favorites WHERE client_id = $1
		 ORDER BY created_at DESC, name LIMIT $2`,
		clientID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	favorites := []types.Favorite{}
	for rows.Next() {
		var f types.Favorite
		if err := rows.Scan(&f.ID, &f.ClientID, &f.Name, &f.Tagline, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favorites, nil
}

// GetFavorite returns a favorite by ID, or nil when it does not exist.
func (db *DB) GetFavorite(ctx context.Context, id uuid.UUID) (*types.Favorite, error) {
	var f types.Favorite
	err := db.pool.QueryRow(ctx,
		`SELECT id, client_id, name, tagline, created_at FROM favorites WHERE id = $1`,
		id,
	).Scan(&f.ID, &f.ClientID, &f.Name, &f.Tagline, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get favorite: %w", err)
	}
	return &f, nil
}

// DeleteFavorite removes a favorite. It reports whether a row was deleted.
func (db *DB) DeleteFavorite(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM favorites WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete favorite: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
