package repository

import (
	"context"

	"github.com/iliyamo/fyyur-trivia/internal/model"
)

// QuestionSearchQuery defines the filter and pagination for listing
// questions.  An empty Term lists every question.  Page starts at 1.
type QuestionSearchQuery struct {
	Term     string
	Page     int
	PageSize int
}

// Search returns one page of questions ordered by id together with the
// number of questions matching the filter across all pages.
func (r *QuestionRepo) Search(ctx context.Context, q QuestionSearchQuery) ([]model.Question, int64, error) {
	cond := "1=1"
	args := []any{}
	if q.Term != "" {
		cond = "LOWER(question) LIKE ? ESCAPE '" + likeEscape + "'"
		args = append(args, containsPattern(q.Term))
	}

	var total int64
	countSQL := `SELECT COUNT(*) FROM questions WHERE ` + cond
	if err := r.q.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize
	if offset < 0 {
		offset = 0
	}

	dataSQL := `SELECT ` + questionColumns + `
		FROM questions
		WHERE ` + cond + `
		ORDER BY id ASC
		LIMIT ? OFFSET ?`

	argsData := append(append([]any{}, args...), limit, offset)
	out, err := r.list(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
