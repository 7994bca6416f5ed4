package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/fyyur-trivia/internal/model"
)

// ShowRepo manages persistence for shows.
// NOTE: start_time is stored as text in the layout "2006-01-02 15:04:05".
// Rows are returned as stored; classification into past and upcoming
// happens in package showtime.
type ShowRepo struct {
    db *sql.DB
    q  DBTX
}

// NewShowRepo returns a ShowRepo backed by db.
func NewShowRepo(db *sql.DB) *ShowRepo {
    return &ShowRepo{db: db, q: db}
}

// DB exposes the underlying sql.DB.
func (r *ShowRepo) DB() *sql.DB { return r.db }

// WithTx returns a copy of the repository whose queries run on tx.
func (r *ShowRepo) WithTx(tx *sql.Tx) *ShowRepo {
    return &ShowRepo{db: r.db, q: tx}
}

const showListingSQL = `SELECT
        s.id, s.venue_id, s.artist_id, s.start_time,
        v.name, v.image_link,
        a.name, a.image_link
    FROM shows s
    JOIN venues v  ON v.id = s.venue_id
    JOIN artists a ON a.id = s.artist_id`

func (r *ShowRepo) listings(ctx context.Context, query string, args ...any) ([]model.ShowListing, error) {
    rows, err := r.q.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := []model.ShowListing{}
    for rows.Next() {
        var l model.ShowListing
        if err := rows.Scan(
            &l.ID,
            &l.VenueID,
            &l.ArtistID,
            &l.StartTime,
            &l.VenueName,
            &l.VenueImageLink,
            &l.ArtistName,
            &l.ArtistImageLink,
        ); err != nil {
            return nil, err
        }
        out = append(out, l)
    }
    return out, rows.Err()
}

// ListAll returns every show joined with its venue and artist, ordered by
// start time.
func (r *ShowRepo) ListAll(ctx context.Context) ([]model.ShowListing, error) {
    return r.listings(ctx, showListingSQL+` ORDER BY s.start_time, s.id`)
}

// ListByVenue returns the shows held at one venue.
func (r *ShowRepo) ListByVenue(ctx context.Context, venueID int64) ([]model.ShowListing, error) {
    return r.listings(ctx, showListingSQL+` WHERE s.venue_id = ? ORDER BY s.start_time, s.id`, venueID)
}

// ListByArtist returns the shows played by one artist.
func (r *ShowRepo) ListByArtist(ctx context.Context, artistID int64) ([]model.ShowListing, error) {
    return r.listings(ctx, showListingSQL+` WHERE s.artist_id = ? ORDER BY s.start_time, s.id`, artistID)
}

// StartTimesByVenue maps each venue id to the start times of its shows.
// Venues without shows are absent from the map.
func (r *ShowRepo) StartTimesByVenue(ctx context.Context) (map[int64][]string, error) {
    return r.startTimes(ctx, `SELECT venue_id, start_time FROM shows ORDER BY id`)
}

// StartTimesByArtist maps each artist id to the start times of its shows.
func (r *ShowRepo) StartTimesByArtist(ctx context.Context) (map[int64][]string, error) {
    return r.startTimes(ctx, `SELECT artist_id, start_time FROM shows ORDER BY id`)
}

func (r *ShowRepo) startTimes(ctx context.Context, query string) (map[int64][]string, error) {
    rows, err := r.q.QueryContext(ctx, query)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := map[int64][]string{}
    for rows.Next() {
        var (
            id int64
            st string
        )
        if err := rows.Scan(&id, &st); err != nil {
            return nil, err
        }
        out[id] = append(out[id], st)
    }
    return out, rows.Err()
}

// Create inserts s after checking that both the venue and the artist exist.
// A missing parent yields ErrInvalidReference.  s.ID is set on success.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
    var n int
    const check = `SELECT
        (SELECT COUNT(*) FROM venues WHERE id = ?) +
        (SELECT COUNT(*) FROM artists WHERE id = ?)`
    if err := r.q.QueryRowContext(ctx, check, s.VenueID, s.ArtistID).Scan(&n); err != nil {
        return err
    }
    if n != 2 {
        return ErrInvalidReference
    }
    res, err := r.q.ExecContext(ctx,
        `INSERT INTO shows (venue_id, artist_id, start_time) VALUES (?, ?, ?)`,
        s.VenueID, s.ArtistID, s.StartTime)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    s.ID = id
    return nil
}
