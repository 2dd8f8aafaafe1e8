package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sglre6355/sgrplayer/internal/modules/music_player/domain"
)

// Ensure SQLCatalogRepository implements TrackRepository.
var _ domain.TrackRepository = (*SQLCatalogRepository)(nil)

const trackColumns = `id, title, artist, category, url, cover_url, duration, liked, lyrics, created_at`

// trackRow is the database shape of a track. Rows are mapped to
// domain.Track right after every fetch.
type trackRow struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	Artist    string    `db:"artist"`
	Category  string    `db:"category"`
	URL       string    `db:"url"`
	CoverURL  string    `db:"cover_url"`
	Duration  float64   `db:"duration"` // seconds
	Liked     bool      `db:"liked"`
	Lyrics    string    `db:"lyrics"`
	CreatedAt time.Time `db:"created_at"`
}

func (r trackRow) toDomain() domain.Track {
	return domain.Track{
		ID:        domain.TrackID(r.ID),
		Title:     r.Title,
		Artist:    r.Artist,
		Category:  r.Category,
		AudioURL:  r.URL,
		CoverURL:  r.CoverURL,
		Duration:  time.Duration(r.Duration * float64(time.Second)),
		Liked:     r.Liked,
		Lyrics:    r.Lyrics,
		CreatedAt: r.CreatedAt,
	}
}

func toDomainTracks(rows []trackRow) []domain.Track {
	tracks := make([]domain.Track, len(rows))
	for i, r := range rows {
		tracks[i] = r.toDomain()
	}
	return tracks
}

// SQLCatalogRepository stores the song catalog in the songs table of a
// sqlite or postgres database.
type SQLCatalogRepository struct {
	db *sqlx.DB
}

// NewSQLCatalogRepository creates the songs table if needed and returns a
// repository over db.
func NewSQLCatalogRepository(ctx context.Context, db *sqlx.DB) (*SQLCatalogRepository, error) {
	r := &SQLCatalogRepository{db: db}
	if err := r.migrate(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *SQLCatalogRepository) isPostgres() bool {
	return r.db.DriverName() == "postgres"
}

func (r *SQLCatalogRepository) migrate(ctx context.Context) error {
	idColumn := "id integer primary key autoincrement"
	durationType := "real"
	if r.isPostgres() {
		idColumn = "id bigserial primary key"
		durationType = "double precision"
	}

	songsTable := `
	  create table if not exists songs (
		` + idColumn + `,
		title text not null,
		artist text not null default '',
		category text not null default '',
		url text not null,
		cover_url text not null default '',
		duration ` + durationType + ` not null default 0,
		liked boolean not null default false,
		lyrics text not null default '',
		created_at timestamp not null
	  );`

	if _, err := r.db.ExecContext(ctx, songsTable); err != nil {
		return fmt.Errorf("failed to create songs table: %w", err)
	}
	return nil
}

// List returns every track, newest first.
func (r *SQLCatalogRepository) List(ctx context.Context) ([]domain.Track, error) {
	query := `select ` + trackColumns + ` from songs order by created_at desc, id desc;`

	var rows []trackRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	return toDomainTracks(rows), nil
}

// Search returns up to limit tracks whose title or artist contains query.
// LOWER/LIKE is used instead of ILIKE so both drivers behave alike.
func (r *SQLCatalogRepository) Search(ctx context.Context, query string, limit int) ([]domain.Track, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	q := r.db.Rebind(`
	  select ` + trackColumns + `
	  from songs
	  where lower(title) like ? or lower(artist) like ?
	  order by created_at desc, id desc
	  limit ?;`)

	var rows []trackRow
	if err := r.db.SelectContext(ctx, &rows, q, pattern, pattern, limit); err != nil {
		return nil, fmt.Errorf("failed to search songs: %w", err)
	}
	return toDomainTracks(rows), nil
}

// GetByIDs returns the tracks with the given IDs, in no particular order.
func (r *SQLCatalogRepository) GetByIDs(ctx context.Context, ids []domain.TrackID) ([]domain.Track, error) {
	if len(ids) == 0 {
		return []domain.Track{}, nil
	}

	raw := make([]int64, len(ids))
	for i, id := range ids {
		raw[i] = int64(id)
	}

	query, args, err := sqlx.In(`select `+trackColumns+` from songs where id in (?);`, raw)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)

	var rows []trackRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch songs by id: %w", err)
	}
	return toDomainTracks(rows), nil
}

// Get returns a single track, or domain.ErrTrackNotFound.
func (r *SQLCatalogRepository) Get(ctx context.Context, id domain.TrackID) (domain.Track, error) {
	query := r.db.Rebind(`select ` + trackColumns + ` from songs where id=?;`)

	var row trackRow
	err := r.db.GetContext(ctx, &row, query, int64(id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Track{}, domain.ErrTrackNotFound
	}
	if err != nil {
		return domain.Track{}, fmt.Errorf("failed to fetch song %d: %w", id, err)
	}
	return row.toDomain(), nil
}

// Insert stores a new track. CreatedAt defaults to now when unset.
func (r *SQLCatalogRepository) Insert(ctx context.Context, track domain.Track) (domain.Track, error) {
	if track.CreatedAt.IsZero() {
		track.CreatedAt = time.Now().UTC()
	}

	args := []any{
		track.Title, track.Artist, track.Category, track.AudioURL, track.CoverURL,
		track.Duration.Seconds(), track.Liked, track.Lyrics, track.CreatedAt,
	}
	insert := `
	  insert into songs (title, artist, category, url, cover_url, duration, liked, lyrics, created_at)
	  values (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	var id int64
	if r.isPostgres() {
		query := r.db.Rebind(insert + ` returning id;`)
		if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			return domain.Track{}, fmt.Errorf("failed to insert song: %w", err)
		}
	} else {
		res, err := r.db.ExecContext(ctx, insert+`;`, args...)
		if err != nil {
			return domain.Track{}, fmt.Errorf("failed to insert song: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return domain.Track{}, err
		}
	}

	return r.Get(ctx, domain.TrackID(id))
}

// Update applies the non-nil fields of patch and returns the stored track.
func (r *SQLCatalogRepository) Update(
	ctx context.Context,
	id domain.TrackID,
	patch domain.TrackPatch,
) (domain.Track, error) {
	var sets []string
	var args []any

	add := func(column string, value any) {
		sets = append(sets, column+"=?")
		args = append(args, value)
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Artist != nil {
		add("artist", *patch.Artist)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Liked != nil {
		add("liked", *patch.Liked)
	}
	if patch.Lyrics != nil {
		add("lyrics", *patch.Lyrics)
	}
	if patch.CoverURL != nil {
		add("cover_url", *patch.CoverURL)
	}

	if len(sets) == 0 {
		return r.Get(ctx, id)
	}

	args = append(args, int64(id))
	query := r.db.Rebind(`update songs set ` + strings.Join(sets, ", ") + ` where id=?;`)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return domain.Track{}, fmt.Errorf("failed to update song %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.Track{}, domain.ErrTrackNotFound
	}

	return r.Get(ctx, id)
}

// Delete removes the track, or returns domain.ErrTrackNotFound.
func (r *SQLCatalogRepository) Delete(ctx context.Context, id domain.TrackID) error {
	query := r.db.Rebind(`delete from songs where id=?;`)

	res, err := r.db.ExecContext(ctx, query, int64(id))
	if err != nil {
		return fmt.Errorf("failed to delete song %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrTrackNotFound
	}
	return nil
}

// Close closes the database.
func (r *SQLCatalogRepository) Close() error {
	return r.db.Close()
}
