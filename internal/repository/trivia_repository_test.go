package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur-trivia/internal/database/dbtest"
	"github.com/iliyamo/fyyur-trivia/internal/model"
)

// seedTrivia stores two categories and n questions alternating between them.
func seedTrivia(t *testing.T, db *sql.DB, n int) (science, art model.Category) {
	t.Helper()
	ctx := context.Background()
	cats := NewCategoryRepo(db)
	science = model.Category{Type: "Science"}
	art = model.Category{Type: "Art"}
	require.NoError(t, cats.Create(ctx, &science))
	require.NoError(t, cats.Create(ctx, &art))

	qs := NewQuestionRepo(db)
	for i := 1; i <= n; i++ {
		cat := science.ID
		if i%2 == 0 {
			cat = art.ID
		}
		q := model.Question{
			Question:   fmt.Sprintf("Question number %d?", i),
			Answer:     fmt.Sprintf("answer %d", i),
			Category:   cat,
			Difficulty: 1 + i%5,
		}
		require.NoError(t, qs.Create(ctx, &q))
	}
	return science, art
}

func TestCategoryRepo(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	science, art := seedTrivia(t, db, 0)

	repo := NewCategoryRepo(db)
	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Category{science, art}, all)

	got, err := repo.GetByID(ctx, art.ID)
	require.NoError(t, err)
	assert.Equal(t, "Art", got.Type)

	_, err = repo.GetByID(ctx, 1000)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestQuestionSearchPages(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	seedTrivia(t, db, 19)
	repo := NewQuestionRepo(db)

	page1, total, err := repo.Search(ctx, QuestionSearchQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 19, total)
	assert.Len(t, page1, 10)

	page2, total, err := repo.Search(ctx, QuestionSearchQuery{Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 19, total)
	require.Len(t, page2, 9)
	assert.Greater(t, page2[0].ID, page1[9].ID)

	page3, _, err := repo.Search(ctx, QuestionSearchQuery{Page: 3, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, page3)

	hits, total, err := repo.Search(ctx, QuestionSearchQuery{Term: "NUMBER 1", Page: 1, PageSize: 10})
	require.NoError(t, err)
	// 1 and 10..19
	assert.EqualValues(t, 11, total)
	assert.Len(t, hits, 10)
}

func TestQuestionEligibleIDs(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	science, _ := seedTrivia(t, db, 6)
	repo := NewQuestionRepo(db)

	ids, err := repo.EligibleIDs(ctx, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6}, ids)

	ids, err = repo.EligibleIDs(ctx, []int64{1, 2, 6}, 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4, 5}, ids)

	ids, err = repo.EligibleIDs(ctx, []int64{1}, science.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 5}, ids)

	ids, err = repo.EligibleIDs(ctx, []int64{1, 3, 5}, science.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestQuestionCreateAndDelete(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	_, art := seedTrivia(t, db, 0)
	repo := NewQuestionRepo(db)

	bad := model.Question{Question: "q", Answer: "a", Category: 99, Difficulty: 1}
	assert.ErrorIs(t, repo.Create(ctx, &bad), ErrInvalidReference)

	q := model.Question{Question: "Who painted the Mona Lisa?", Answer: "Da Vinci", Category: art.ID, Difficulty: 3}
	require.NoError(t, repo.Create(ctx, &q))

	got, err := repo.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, q, *got)

	list, err := repo.ListByCategory(ctx, art.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, q.ID))
	assert.ErrorIs(t, repo.Delete(ctx, q.ID), ErrQuestionNotFound)
	_, err = repo.GetByID(ctx, q.ID)
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestQuestionSearchPropagatesCountError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("connection reset")
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM questions`).WillReturnError(boom)

	_, _, err = NewQuestionRepo(db).Search(context.Background(), QuestionSearchQuery{Page: 1, PageSize: 10})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionSearchEscapesWildcards(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM questions WHERE LOWER\(question\) LIKE \?`).
		WithArgs("%100!%!_done%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT id, question, answer, category, difficulty`).
		WithArgs("%100!%!_done%", 10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "question", "answer", "category", "difficulty"}))

	out, total, err := NewQuestionRepo(db).Search(context.Background(), QuestionSearchQuery{Term: "100%_DONE", Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionDeleteRowsAffectedError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM questions WHERE id = \?`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewErrorResult(errors.New("no rows info")))

	err = NewQuestionRepo(db).Delete(context.Background(), 7)
	assert.EqualError(t, err, "no rows info")
	assert.NoError(t, mock.ExpectationsWereMet())
}
