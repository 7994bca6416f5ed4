package repository

import (
    "context"
    "database/sql"
    "fmt"

    "github.com/iliyamo/fyyur-trivia/internal/model"
)

// genreParent names the genres column that points at the owning row.  Only
// the two constants below are ever interpolated into SQL.
type genreParent string

const (
    genreOfVenue  genreParent = "venue_id"
    genreOfArtist genreParent = "artist_id"
)

// newGenre builds a genre owned by exactly one parent.
func newGenre(parent genreParent, parentID int64, name string) model.Genre {
    g := model.Genre{Name: name}
    if parent == genreOfVenue {
        g.VenueID = &parentID
    } else {
        g.ArtistID = &parentID
    }
    return g
}

// insertGenres stores one genres row per name for the given parent.  Empty
// names are skipped.
func insertGenres(ctx context.Context, q DBTX, parent genreParent, parentID int64, names []string) error {
    for _, name := range names {
        if name == "" {
            continue
        }
        g := newGenre(parent, parentID, name)
        if _, err := q.ExecContext(ctx,
            `INSERT INTO genres (name, venue_id, artist_id) VALUES (?, ?, ?)`,
            g.Name, g.VenueID, g.ArtistID); err != nil {
            return err
        }
    }
    return nil
}

// genresOf returns the genres of one parent in insertion order.
func genresOf(ctx context.Context, q DBTX, parent genreParent, parentID int64) ([]model.Genre, error) {
    stmt := fmt.Sprintf(`SELECT id, name, venue_id, artist_id FROM genres WHERE %s = ? ORDER BY id`, parent)
    rows, err := q.QueryContext(ctx, stmt, parentID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.Genre
    for rows.Next() {
        var (
            g                 model.Genre
            venueID, artistID sql.NullInt64
        )
        if err := rows.Scan(&g.ID, &g.Name, &venueID, &artistID); err != nil {
            return nil, err
        }
        if venueID.Valid {
            g.VenueID = &venueID.Int64
        }
        if artistID.Valid {
            g.ArtistID = &artistID.Int64
        }
        out = append(out, g)
    }
    return out, rows.Err()
}

// genreNames returns the genre names of one parent in insertion order.  The
// result is never nil so it encodes as [] rather than null.
func genreNames(ctx context.Context, q DBTX, parent genreParent, parentID int64) ([]string, error) {
    genres, err := genresOf(ctx, q, parent, parentID)
    if err != nil {
        return nil, err
    }
    names := make([]string, 0, len(genres))
    for _, g := range genres {
        names = append(names, g.Name)
    }
    return names, nil
}
