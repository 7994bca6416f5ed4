package quiz

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/iliyamo/fyyur-trivia/internal/model"
)

// QuestionStore is the part of the question repository the selector reads.
type QuestionStore interface {
	EligibleIDs(ctx context.Context, exclude []int64, categoryID int64) ([]int64, error)
	GetByID(ctx context.Context, id int64) (*model.Question, error)
}

// CategoryStore looks categories up by id.
type CategoryStore interface {
	GetByID(ctx context.Context, id int64) (*model.Category, error)
}

// Selector picks the next quiz question.
type Selector struct {
	questions  QuestionStore
	categories CategoryStore
	intN       func(n int) int
}

// Option customises a Selector.
type Option func(*Selector)

// WithRand makes the selector draw from r instead of the global source.
func WithRand(r *rand.Rand) Option {
	return func(s *Selector) { s.intN = r.IntN }
}

// NewSelector returns a Selector reading from the given stores.
func NewSelector(questions QuestionStore, categories CategoryStore, opts ...Option) *Selector {
	s := &Selector{questions: questions, categories: categories, intN: rand.IntN}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Next returns a random question whose id is not in previous.  A non-zero
// categoryID restricts the pick to that category and must name an existing
// category; the store's not-found error is returned otherwise.  ok is false
// when every eligible question has already been asked.
func (s *Selector) Next(ctx context.Context, previous []int64, categoryID int64) (q model.Question, ok bool, err error) {
	if categoryID != 0 {
		if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
			return model.Question{}, false, err
		}
	}
	ids, err := s.questions.EligibleIDs(ctx, previous, categoryID)
	if err != nil {
		return model.Question{}, false, fmt.Errorf("eligible questions: %w", err)
	}
	if len(ids) == 0 {
		return model.Question{}, false, nil
	}
	picked, err := s.questions.GetByID(ctx, ids[s.intN(len(ids))])
	if err != nil {
		return model.Question{}, false, fmt.Errorf("load question: %w", err)
	}
	return *picked, true, nil
}
