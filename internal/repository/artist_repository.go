package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/fyyur-trivia/internal/model"
)

// ArtistRepo manages persistence for artists and their genres.
type ArtistRepo struct {
    db *sql.DB
    q  DBTX
}

// NewArtistRepo returns an ArtistRepo backed by db.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
    return &ArtistRepo{db: db, q: db}
}

// DB exposes the underlying sql.DB.
func (r *ArtistRepo) DB() *sql.DB { return r.db }

// WithTx returns a copy of the repository whose queries run on tx.
func (r *ArtistRepo) WithTx(tx *sql.Tx) *ArtistRepo {
    return &ArtistRepo{db: r.db, q: tx}
}

const artistColumns = `id, name, city, state, phone, image_link, facebook_link`

func scanArtist(s interface{ Scan(...any) error }, a *model.Artist) error {
    return s.Scan(&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &a.ImageLink, &a.FacebookLink)
}

func (r *ArtistRepo) list(ctx context.Context, query string, args ...any) ([]model.Artist, error) {
    rows, err := r.q.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := []model.Artist{}
    for rows.Next() {
        var a model.Artist
        if err := scanArtist(rows, &a); err != nil {
            return nil, err
        }
        out = append(out, a)
    }
    return out, rows.Err()
}

// ListAll returns every artist ordered by id.
func (r *ArtistRepo) ListAll(ctx context.Context) ([]model.Artist, error) {
    return r.list(ctx, `SELECT `+artistColumns+` FROM artists ORDER BY id`)
}

// Search returns artists whose name contains term, ignoring case.
func (r *ArtistRepo) Search(ctx context.Context, term string) ([]model.Artist, error) {
    return r.list(ctx,
        `SELECT `+artistColumns+` FROM artists WHERE LOWER(name) LIKE ? ESCAPE '`+likeEscape+`' ORDER BY id`,
        containsPattern(term))
}

// GetByID loads one artist with its genres or returns ErrArtistNotFound.
func (r *ArtistRepo) GetByID(ctx context.Context, id int64) (*model.Artist, error) {
    var a model.Artist
    err := scanArtist(r.q.QueryRowContext(ctx, `SELECT `+artistColumns+` FROM artists WHERE id = ?`, id), &a)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrArtistNotFound
    }
    if err != nil {
        return nil, err
    }
    if a.Genres, err = genreNames(ctx, r.q, genreOfArtist, a.ID); err != nil {
        return nil, err
    }
    return &a, nil
}

// Create inserts a and its genres.  a.ID is set on success.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
    const q = `INSERT INTO artists (name, city, state, phone, image_link, facebook_link)
               VALUES (?, ?, ?, ?, ?, ?)`
    res, err := r.q.ExecContext(ctx, q, a.Name, a.City, a.State, a.Phone, a.ImageLink, a.FacebookLink)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    a.ID = id
    return insertGenres(ctx, r.q, genreOfArtist, id, a.Genres)
}
