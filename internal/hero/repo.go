package hero

import (
	"context"
	"database/sql"
	"fmt"

	"aniflux/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

const slideColumns = `id, anime_id, video_url, poster_url, title, description, is_active, position`

// ListActive returns enabled slides in display order. Position is a plain
// integer: duplicates are allowed and sort unstably among themselves.
func (r *Repo) ListActive(ctx context.Context) ([]models.HeroSlide, error) {
	return r.list(ctx, `WHERE is_active = 1`)
}

func (r *Repo) ListAll(ctx context.Context) ([]models.HeroSlide, error) {
	return r.list(ctx, ``)
}

func (r *Repo) list(ctx context.Context, where string) ([]models.HeroSlide, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+slideColumns+`
		FROM hero_slides `+where+`
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list slides: %w", err)
	}
	defer rows.Close()

	var out []models.HeroSlide
	for rows.Next() {
		var (
			s         models.HeroSlide
			videoURL  sql.NullString
			posterURL sql.NullString
			title     sql.NullString
			desc      sql.NullString
			active    int
		)
		if err := rows.Scan(&s.ID, &s.AnimeID, &videoURL, &posterURL, &title, &desc, &active, &s.Order); err != nil {
			return nil, fmt.Errorf("scan slide: %w", err)
		}
		s.VideoURL = videoURL.String
		s.PosterURL = posterURL.String
		s.Title = title.String
		s.Description = desc.String
		s.IsActive = active != 0
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *Repo) Upsert(ctx context.Context, s models.HeroSlide) error {
	active := 0
	if s.IsActive {
		active = 1
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO hero_slides (`+slideColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  anime_id = excluded.anime_id,
		  video_url = excluded.video_url,
		  poster_url = excluded.poster_url,
		  title = excluded.title,
		  description = excluded.description,
		  is_active = excluded.is_active,
		  position = excluded.position
	`, s.ID, s.AnimeID, s.VideoURL, s.PosterURL, s.Title, s.Description, active, s.Order)
	if err != nil {
		return fmt.Errorf("upsert slide %s: %w", s.ID, err)
	}
	return nil
}

func (r *Repo) SetActive(ctx context.Context, id string, active bool) (bool, error) {
	v := 0
	if active {
		v = 1
	}
	res, err := r.DB.ExecContext(ctx, `UPDATE hero_slides SET is_active = ? WHERE id = ?`, v, id)
	if err != nil {
		return false, fmt.Errorf("toggle slide %s: %w", id, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *Repo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM hero_slides WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete slide %s: %w", id, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
