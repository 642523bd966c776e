package anime

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"aniflux/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

type ListQuery struct {
	Q      string   // keyword search in title/studio
	Genres []string // any-match
	Status string
	Type   string
	Limit  int
	Offset int
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

const animeColumns = `id, title, description, image_url, cover_url, tags, rating,
	episodes, type, status, sub, dub, duration, year, studio, featured`

func (r *Repo) GetByID(ctx context.Context, id string) (*models.Anime, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+animeColumns+`
		FROM anime
		WHERE id = ?
	`, id)

	a, err := scanAnime(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan getByID: %w", err)
	}
	return a, nil
}

func (r *Repo) Count(ctx context.Context, q ListQuery) (int, error) {
	sqlStr, args := buildListSQL(q, true)
	row := r.DB.QueryRowContext(ctx, sqlStr, args...)
	var total int
	if err := row.Scan(&total); err != nil {
		return 0, fmt.Errorf("count scan: %w", err)
	}
	return total, nil
}

func (r *Repo) List(ctx context.Context, q ListQuery) ([]models.Anime, error) {
	sqlStr, args := buildListSQL(q, false)

	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	out := make([]models.Anime, 0, q.Limit)
	for rows.Next() {
		a, err := scanAnime(rows)
		if err != nil {
			return nil, fmt.Errorf("list scan: %w", err)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// ListAiring feeds the scheduled re-check batch.
func (r *Repo) ListAiring(ctx context.Context) ([]models.Anime, error) {
	return r.List(ctx, ListQuery{Status: models.StatusAiring, Limit: 100})
}

func (r *Repo) Upsert(ctx context.Context, a models.Anime) error {
	tagsJSON, err := json.Marshal(a.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags for %s: %w", a.ID, err)
	}

	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO anime (`+animeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  title = excluded.title,
		  description = excluded.description,
		  image_url = excluded.image_url,
		  cover_url = excluded.cover_url,
		  tags = excluded.tags,
		  rating = excluded.rating,
		  episodes = excluded.episodes,
		  type = excluded.type,
		  status = excluded.status,
		  sub = excluded.sub,
		  dub = excluded.dub,
		  duration = excluded.duration,
		  year = excluded.year,
		  studio = excluded.studio,
		  featured = excluded.featured
	`, a.ID, a.Title, a.Description, a.ImageURL, a.CoverURL, string(tagsJSON), a.Rating,
		a.Episodes, a.Type, a.Status, a.Sub, a.Dub, a.Duration, a.Year, a.Studio, boolToInt(a.Featured))

	if err != nil {
		return fmt.Errorf("upsert anime %s: %w", a.ID, err)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM anime WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete anime %s: %w", id, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// UpdateEpisodeCount is the re-check write path: it touches only the stored
// episode count.
func (r *Repo) UpdateEpisodeCount(ctx context.Context, id string, episodes int) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE anime SET episodes = ? WHERE id = ?`, episodes, id)
	if err != nil {
		return fmt.Errorf("update episode count %s: %w", id, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnime(row rowScanner) (*models.Anime, error) {
	var (
		a           models.Anime
		description sql.NullString
		imageURL    sql.NullString
		coverURL    sql.NullString
		tagsJSON    sql.NullString
		mediaType   sql.NullString
		status      sql.NullString
		duration    sql.NullString
		year        sql.NullInt64
		studio      sql.NullString
		featured    int
	)

	if err := row.Scan(
		&a.ID, &a.Title, &description, &imageURL, &coverURL, &tagsJSON, &a.Rating,
		&a.Episodes, &mediaType, &status, &a.Sub, &a.Dub, &duration, &year, &studio, &featured,
	); err != nil {
		return nil, err
	}

	a.Description = description.String
	a.ImageURL = imageURL.String
	a.CoverURL = coverURL.String
	a.Type = mediaType.String
	a.Status = status.String
	a.Duration = duration.String
	if year.Valid {
		a.Year = int(year.Int64)
	}
	a.Studio = studio.String
	a.Featured = featured != 0

	if tagsJSON.String != "" {
		_ = json.Unmarshal([]byte(tagsJSON.String), &a.Tags)
	}
	if a.Tags == nil {
		a.Tags = []string{}
	}
	return &a, nil
}

// buildListSQL builds either COUNT(*) or SELECT list.
// genres filter is "any-match" by doing LIKE searches inside stored JSON text.
func buildListSQL(q ListQuery, countOnly bool) (string, []any) {
	baseSelect := `SELECT ` + animeColumns + ` FROM anime`
	if countOnly {
		baseSelect = `SELECT COUNT(*) FROM anime`
	}

	var where []string
	var args []any

	if strings.TrimSpace(q.Q) != "" {
		where = append(where, "(LOWER(title) LIKE ? OR LOWER(studio) LIKE ?)")
		kw := "%" + strings.ToLower(strings.TrimSpace(q.Q)) + "%"
		args = append(args, kw, kw)
	}

	if strings.TrimSpace(q.Status) != "" {
		where = append(where, "LOWER(status) = ?")
		args = append(args, strings.ToLower(strings.TrimSpace(q.Status)))
	}

	if strings.TrimSpace(q.Type) != "" {
		where = append(where, "LOWER(type) = ?")
		args = append(args, strings.ToLower(strings.TrimSpace(q.Type)))
	}

	if len(q.Genres) > 0 {
		var genreOr []string
		for _, g := range q.Genres {
			g = strings.TrimSpace(g)
			if g == "" {
				continue
			}
			genreOr = append(genreOr, "LOWER(tags) LIKE ?")
			args = append(args, `%`+strings.ToLower(g)+`%`)
		}
		if len(genreOr) > 0 {
			where = append(where, "("+strings.Join(genreOr, " OR ")+")")
		}
	}

	sqlStr := baseSelect
	if len(where) > 0 {
		sqlStr += " WHERE " + strings.Join(where, " AND ")
	}

	if !countOnly {
		sqlStr += " ORDER BY title ASC"
		sqlStr += " LIMIT ? OFFSET ?"
		limit := q.Limit
		if limit <= 0 || limit > 100 {
			limit = 20
		}
		offset := q.Offset
		if offset < 0 {
			offset = 0
		}
		args = append(args, limit, offset)
	}

	return sqlStr, args
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
