package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/fyyur-trivia/internal/model"
)

// VenueRepo manages persistence for venues and their genres.
type VenueRepo struct {
    db *sql.DB
    q  DBTX
}

// NewVenueRepo returns a VenueRepo backed by db.
func NewVenueRepo(db *sql.DB) *VenueRepo {
    return &VenueRepo{db: db, q: db}
}

// DB exposes the underlying sql.DB so callers can open a transaction that
// spans several repositories.
func (r *VenueRepo) DB() *sql.DB { return r.db }

// WithTx returns a copy of the repository whose queries run on tx.
func (r *VenueRepo) WithTx(tx *sql.Tx) *VenueRepo {
    return &VenueRepo{db: r.db, q: tx}
}

const venueColumns = `id, name, city, state, address, phone, image_link, facebook_link`

func scanVenue(s interface{ Scan(...any) error }, v *model.Venue) error {
    return s.Scan(&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone, &v.ImageLink, &v.FacebookLink)
}

func (r *VenueRepo) list(ctx context.Context, query string, args ...any) ([]model.Venue, error) {
    rows, err := r.q.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := []model.Venue{}
    for rows.Next() {
        var v model.Venue
        if err := scanVenue(rows, &v); err != nil {
            return nil, err
        }
        out = append(out, v)
    }
    return out, rows.Err()
}

// ListAll returns every venue ordered by state, city and id so callers can
// group consecutive rows into areas.  Genres are not loaded.
func (r *VenueRepo) ListAll(ctx context.Context) ([]model.Venue, error) {
    return r.list(ctx, `SELECT `+venueColumns+` FROM venues ORDER BY state, city, id`)
}

// Search returns venues whose name contains term, ignoring case.  An empty
// term matches every venue.
func (r *VenueRepo) Search(ctx context.Context, term string) ([]model.Venue, error) {
    return r.list(ctx,
        `SELECT `+venueColumns+` FROM venues WHERE LOWER(name) LIKE ? ESCAPE '`+likeEscape+`' ORDER BY id`,
        containsPattern(term))
}

// GetByID loads one venue with its genres.  It returns ErrVenueNotFound when
// the id has no row.
func (r *VenueRepo) GetByID(ctx context.Context, id int64) (*model.Venue, error) {
    var v model.Venue
    err := scanVenue(r.q.QueryRowContext(ctx, `SELECT `+venueColumns+` FROM venues WHERE id = ?`, id), &v)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrVenueNotFound
    }
    if err != nil {
        return nil, err
    }
    if v.Genres, err = genreNames(ctx, r.q, genreOfVenue, v.ID); err != nil {
        return nil, err
    }
    return &v, nil
}

// Create inserts v and one genres row per entry of v.Genres.  Run it on a
// transaction-bound repository so a failing genre insert leaves no venue
// behind.  v.ID is set on success.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
    const q = `INSERT INTO venues (name, city, state, address, phone, image_link, facebook_link)
               VALUES (?, ?, ?, ?, ?, ?, ?)`
    res, err := r.q.ExecContext(ctx, q, v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink, v.FacebookLink)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    v.ID = id
    return insertGenres(ctx, r.q, genreOfVenue, id, v.Genres)
}

// Delete removes the venue together with its genres and shows.  Deleting an
// id that has no row is not an error.
func (r *VenueRepo) Delete(ctx context.Context, id int64) error {
    for _, q := range []string{
        `DELETE FROM genres WHERE venue_id = ?`,
        `DELETE FROM shows WHERE venue_id = ?`,
        `DELETE FROM venues WHERE id = ?`,
    } {
        if _, err := r.q.ExecContext(ctx, q, id); err != nil {
            return err
        }
    }
    return nil
}
