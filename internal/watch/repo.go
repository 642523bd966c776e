package watch

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"aniflux/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// UpsertProgress is last-writer-wins per (user, anime).
func (r *Repo) UpsertProgress(ctx context.Context, p models.WatchProgress) error {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO watch_history (user_id, anime_id, episode, position_seconds, title, image_url, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, anime_id) DO UPDATE SET
		  episode = excluded.episode,
		  position_seconds = excluded.position_seconds,
		  title = excluded.title,
		  image_url = excluded.image_url,
		  updated_at = excluded.updated_at
	`, p.UserID, p.AnimeID, p.Episode, p.Position, p.Title, p.ImageURL, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}

func (r *Repo) ListProgress(ctx context.Context, userID string) ([]models.WatchProgress, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT user_id, anime_id, episode, position_seconds, title, image_url, updated_at
		FROM watch_history
		WHERE user_id = ?
		ORDER BY updated_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	var out []models.WatchProgress
	for rows.Next() {
		var (
			p        models.WatchProgress
			title    sql.NullString
			imageURL sql.NullString
		)
		if err := rows.Scan(&p.UserID, &p.AnimeID, &p.Episode, &p.Position, &title, &imageURL, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		p.Title = title.String
		p.ImageURL = imageURL.String
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *Repo) DeleteProgress(ctx context.Context, userID, animeID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM watch_history WHERE user_id = ? AND anime_id = ?
	`, userID, animeID)
	if err != nil {
		return false, fmt.Errorf("delete progress: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// UpsertListItem adds or refreshes a watchlist/favorites entry.
func (r *Repo) UpsertListItem(ctx context.Context, item models.ListItem) error {
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now().UTC()
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO user_lists (user_id, anime_id, kind, title, image_url, type, rating, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, anime_id, kind) DO UPDATE SET
		  title = excluded.title,
		  image_url = excluded.image_url,
		  type = excluded.type,
		  rating = excluded.rating
	`, item.UserID, item.AnimeID, item.Kind, item.Title, item.ImageURL, item.Type, item.Rating, item.AddedAt)
	if err != nil {
		return fmt.Errorf("upsert list item: %w", err)
	}
	return nil
}

func (r *Repo) ListItems(ctx context.Context, userID, kind string) ([]models.ListItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT user_id, anime_id, kind, title, image_url, type, rating, added_at
		FROM user_lists
		WHERE user_id = ? AND kind = ?
		ORDER BY added_at DESC
	`, userID, kind)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var out []models.ListItem
	for rows.Next() {
		var (
			it        models.ListItem
			title     sql.NullString
			imageURL  sql.NullString
			mediaType sql.NullString
		)
		if err := rows.Scan(&it.UserID, &it.AnimeID, &it.Kind, &title, &imageURL, &mediaType, &it.Rating, &it.AddedAt); err != nil {
			return nil, fmt.Errorf("scan list item: %w", err)
		}
		it.Title = title.String
		it.ImageURL = imageURL.String
		it.Type = mediaType.String
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *Repo) DeleteListItem(ctx context.Context, userID, animeID, kind string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM user_lists WHERE user_id = ? AND anime_id = ? AND kind = ?
	`, userID, animeID, kind)
	if err != nil {
		return false, fmt.Errorf("delete list item: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
