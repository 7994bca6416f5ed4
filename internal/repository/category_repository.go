package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/fyyur-trivia/internal/model"
)

// CategoryRepo reads and writes trivia categories.
type CategoryRepo struct {
    q DBTX
}

// NewCategoryRepo returns a CategoryRepo running on q.
func NewCategoryRepo(q DBTX) *CategoryRepo {
    return &CategoryRepo{q: q}
}

// ListAll returns every category ordered by id.
func (r *CategoryRepo) ListAll(ctx context.Context) ([]model.Category, error) {
    rows, err := r.q.QueryContext(ctx, `SELECT id, type FROM categories ORDER BY id`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := []model.Category{}
    for rows.Next() {
        var c model.Category
        if err := rows.Scan(&c.ID, &c.Type); err != nil {
            return nil, err
        }
        out = append(out, c)
    }
    return out, rows.Err()
}

// GetByID returns one category or ErrCategoryNotFound.
func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*model.Category, error) {
    var c model.Category
    err := r.q.QueryRowContext(ctx, `SELECT id, type FROM categories WHERE id = ?`, id).Scan(&c.ID, &c.Type)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrCategoryNotFound
    }
    if err != nil {
        return nil, err
    }
    return &c, nil
}

// Create inserts c and sets c.ID.
func (r *CategoryRepo) Create(ctx context.Context, c *model.Category) error {
    res, err := r.q.ExecContext(ctx, `INSERT INTO categories (type) VALUES (?)`, c.Type)
    if err != nil {
        return err
    }
    c.ID, err = res.LastInsertId()
    return err
}
