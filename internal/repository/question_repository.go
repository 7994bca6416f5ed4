package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/fyyur-trivia/internal/model"
)

// QuestionRepo manages persistence for trivia questions.
type QuestionRepo struct {
    db *sql.DB
    q  DBTX
}

// NewQuestionRepo returns a QuestionRepo backed by db.
func NewQuestionRepo(db *sql.DB) *QuestionRepo {
    return &QuestionRepo{db: db, q: db}
}

// DB exposes the underlying sql.DB.
func (r *QuestionRepo) DB() *sql.DB { return r.db }

// WithTx returns a copy of the repository whose queries run on tx.
func (r *QuestionRepo) WithTx(tx *sql.Tx) *QuestionRepo {
    return &QuestionRepo{db: r.db, q: tx}
}

const questionColumns = `id, question, answer, category, difficulty`

func scanQuestion(s interface{ Scan(...any) error }, q *model.Question) error {
    return s.Scan(&q.ID, &q.Question, &q.Answer, &q.Category, &q.Difficulty)
}

func (r *QuestionRepo) list(ctx context.Context, query string, args ...any) ([]model.Question, error) {
    rows, err := r.q.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := []model.Question{}
    for rows.Next() {
        var q model.Question
        if err := scanQuestion(rows, &q); err != nil {
            return nil, err
        }
        out = append(out, q)
    }
    return out, rows.Err()
}

// ListByCategory returns every question of one category ordered by id.
func (r *QuestionRepo) ListByCategory(ctx context.Context, categoryID int64) ([]model.Question, error) {
    return r.list(ctx, `SELECT `+questionColumns+` FROM questions WHERE category = ? ORDER BY id`, categoryID)
}

// GetByID returns one question or ErrQuestionNotFound.
func (r *QuestionRepo) GetByID(ctx context.Context, id int64) (*model.Question, error) {
    var q model.Question
    err := scanQuestion(r.q.QueryRowContext(ctx, `SELECT `+questionColumns+` FROM questions WHERE id = ?`, id), &q)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrQuestionNotFound
    }
    if err != nil {
        return nil, err
    }
    return &q, nil
}

// EligibleIDs returns the ids of questions that are not in exclude,
// restricted to categoryID unless it is 0.  Ids are ordered ascending so
// a seeded random pick is reproducible.
func (r *QuestionRepo) EligibleIDs(ctx context.Context, exclude []int64, categoryID int64) ([]int64, error) {
    query := `SELECT id FROM questions WHERE 1=1`
    args := make([]any, 0, len(exclude)+1)
    if categoryID != 0 {
        query += ` AND category = ?`
        args = append(args, categoryID)
    }
    if len(exclude) > 0 {
        query += ` AND id NOT IN (` + placeholders(len(exclude)) + `)`
        for _, id := range exclude {
            args = append(args, id)
        }
    }
    query += ` ORDER BY id`

    rows, err := r.q.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    ids := []int64{}
    for rows.Next() {
        var id int64
        if err := rows.Scan(&id); err != nil {
            return nil, err
        }
        ids = append(ids, id)
    }
    return ids, rows.Err()
}

// Create inserts q after checking that its category exists.  An unknown
// category yields ErrInvalidReference.  q.ID is set on success.
func (r *QuestionRepo) Create(ctx context.Context, q *model.Question) error {
    var one int
    err := r.q.QueryRowContext(ctx, `SELECT 1 FROM categories WHERE id = ?`, q.Category).Scan(&one)
    if errors.Is(err, sql.ErrNoRows) {
        return ErrInvalidReference
    }
    if err != nil {
        return err
    }
    res, err := r.q.ExecContext(ctx,
        `INSERT INTO questions (question, answer, category, difficulty) VALUES (?, ?, ?, ?)`,
        q.Question, q.Answer, q.Category, q.Difficulty)
    if err != nil {
        return err
    }
    q.ID, err = res.LastInsertId()
    return err
}

// Delete removes the question with id.  It returns ErrQuestionNotFound when
// nothing was deleted.
func (r *QuestionRepo) Delete(ctx context.Context, id int64) error {
    res, err := r.q.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrQuestionNotFound
    }
    return nil
}
