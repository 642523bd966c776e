package episode

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

const episodeColumns = `id, anime_id, number, season_number, title, image,
	is_filler, provider_id, manual_source_url, source_type, use_manual_source`

func (r *Repo) ListByAnime(ctx context.Context, animeID string) ([]models.Episode, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+episodeColumns+`
		FROM episodes
		WHERE anime_id = ?
		ORDER BY season_number ASC, number ASC
	`, animeID)
	if err != nil {
		return nil, fmt.Errorf("list episodes: %w", err)
	}
	defer rows.Close()

	var out []models.Episode
	for rows.Next() {
		ep, err := scanEpisode(rows)
		if err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		out = append(out, *ep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*models.Episode, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+episodeColumns+` FROM episodes WHERE id = ?
	`, id)
	ep, err := scanEpisode(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get episode: %w", err)
	}
	return ep, nil
}

func (r *Repo) GetByProviderID(ctx context.Context, providerID string) (*models.Episode, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+episodeColumns+` FROM episodes WHERE provider_id = ?
	`, providerID)
	ep, err := scanEpisode(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get episode by provider id: %w", err)
	}
	return ep, nil
}

// ReplaceForAnime swaps the stored episode list for one anime with a freshly
// synced set, in a single transaction.
func (r *Repo) ReplaceForAnime(ctx context.Context, animeID string, eps []models.Episode) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM episodes WHERE anime_id = ?`, animeID); err != nil {
		return fmt.Errorf("clear episodes: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO episodes (`+episodeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, ep := range eps {
		if _, err := stmt.ExecContext(ctx,
			ep.ID, animeID, ep.Number, ep.SeasonNumber, ep.Title, ep.Image,
			boolToInt(ep.IsFiller), ep.ProviderID, ep.ManualSourceURL, ep.SourceType,
			boolToInt(ep.UseManualSource),
		); err != nil {
			return fmt.Errorf("insert episode %s: %w", ep.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *Repo) Upsert(ctx context.Context, ep models.Episode) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO episodes (`+episodeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  anime_id = excluded.anime_id,
		  number = excluded.number,
		  season_number = excluded.season_number,
		  title = excluded.title,
		  image = excluded.image,
		  is_filler = excluded.is_filler,
		  provider_id = excluded.provider_id,
		  manual_source_url = excluded.manual_source_url,
		  source_type = excluded.source_type,
		  use_manual_source = excluded.use_manual_source
	`, ep.ID, ep.AnimeID, ep.Number, ep.SeasonNumber, ep.Title, ep.Image,
		boolToInt(ep.IsFiller), ep.ProviderID, ep.ManualSourceURL, ep.SourceType,
		boolToInt(ep.UseManualSource))
	if err != nil {
		return fmt.Errorf("upsert episode %s: %w", ep.ID, err)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM episodes WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete episode %s: %w", id, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// ReassignSeason moves episodes numbered [fromNumber, toNumber] of one anime
// to another season. Only season_number changes; episode numbers are left
// untouched. Nothing prevents the move from creating duplicate
// (season, number) pairs — that invariant is not enforced anywhere yet.
func (r *Repo) ReassignSeason(ctx context.Context, animeID string, fromNumber, toNumber, season int) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE episodes
		SET season_number = ?
		WHERE anime_id = ? AND number >= ? AND number <= ?
	`, season, animeID, fromNumber, toNumber)
	if err != nil {
		return 0, fmt.Errorf("reassign season: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func scanEpisode(row interface{ Scan(...any) error }) (*models.Episode, error) {
	var (
		ep        models.Episode
		title     sql.NullString
		image     sql.NullString
		provider  sql.NullString
		manualURL sql.NullString
		srcType   sql.NullString
		filler    int
		manual    int
	)

	if err := row.Scan(
		&ep.ID, &ep.AnimeID, &ep.Number, &ep.SeasonNumber, &title, &image,
		&filler, &provider, &manualURL, &srcType, &manual,
	); err != nil {
		return nil, err
	}

	ep.Title = title.String
	ep.Image = image.String
	ep.ProviderID = provider.String
	ep.ManualSourceURL = manualURL.String
	ep.SourceType = srcType.String
	ep.IsFiller = filler != 0
	ep.UseManualSource = manual != 0
	return &ep, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
