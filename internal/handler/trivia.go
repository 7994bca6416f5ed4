package handler

import (
    "database/sql"
    "errors"
    "log/slog"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/fyyur-trivia/internal/database"
    "github.com/iliyamo/fyyur-trivia/internal/middleware"
    "github.com/iliyamo/fyyur-trivia/internal/model"
    "github.com/iliyamo/fyyur-trivia/internal/queue"
    "github.com/iliyamo/fyyur-trivia/internal/quiz"
    "github.com/iliyamo/fyyur-trivia/internal/repository"
    "github.com/iliyamo/fyyur-trivia/internal/service"
)

// TriviaHandler serves the trivia JSON API.
type TriviaHandler struct {
    Categories *repository.CategoryRepo
    Questions  *repository.QuestionRepo
    Selector   *quiz.Selector
    Publisher  service.Publisher // optional; receives question changed events
    Logger     *slog.Logger
}

// NewTriviaHandler wires a TriviaHandler around the two repositories.
func NewTriviaHandler(categories *repository.CategoryRepo, questions *repository.QuestionRepo, selector *quiz.Selector, pub service.Publisher, logger *slog.Logger) *TriviaHandler {
    if categories == nil || questions == nil || selector == nil {
        panic("nil dependency passed to NewTriviaHandler")
    }
    if logger == nil {
        logger = slog.Default()
    }
    return &TriviaHandler{Categories: categories, Questions: questions, Selector: selector, Publisher: pub, Logger: logger}
}

// questionPostReq is the body of POST /questions.  A present searchTerm key
// (even empty or null) makes it a search; otherwise it creates a question.
type questionPostReq struct {
    SearchTerm OptionalString `json:"searchTerm"`
    Question   string         `json:"question" validate:"required"`
    Answer     string         `json:"answer" validate:"required"`
    Difficulty FlexInt        `json:"difficulty" validate:"required"`
    Category   FlexInt        `json:"category" validate:"required"`
}

type quizReq struct {
    PreviousQuestions []FlexInt `json:"previous_questions"`
    QuizCategory      struct {
        ID   FlexInt `json:"id"`
        Type string  `json:"type"`
    } `json:"quiz_category"`
}

// ListCategories handles GET /categories.
func (h *TriviaHandler) ListCategories(c echo.Context) error {
    cats, err := h.Categories.ListAll(c.Request().Context())
    if err != nil {
        return err
    }
    types := make([]string, 0, len(cats))
    for _, cat := range cats {
        types = append(types, cat.Type)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "success":          true,
        "categories":       types,
        "total_categories": len(cats),
    })
}

// ListQuestions handles GET /questions?page=N.
func (h *TriviaHandler) ListQuestions(c echo.Context) error {
    return h.questionPage(c, "", quiz.ParsePage(c.QueryParam("page")))
}

// PostQuestions handles POST /questions: search when the body carries
// searchTerm, create otherwise.  The body is read as JSON whatever the
// Content-Type says.
func (h *TriviaHandler) PostQuestions(c echo.Context) error {
    var req questionPostReq
    if err := c.Echo().JSONSerializer.Deserialize(c, &req); err != nil {
        return echo.ErrBadRequest
    }
    if req.SearchTerm.Present {
        middleware.MarkReadOnly(c)
        return h.questionPage(c, req.SearchTerm.Value, quiz.ParsePage(c.QueryParam("page")))
    }
    if err := c.Validate(&req); err != nil {
        return echo.ErrBadRequest
    }

    q := model.Question{
        Question:   req.Question,
        Answer:     req.Answer,
        Category:   int64(req.Category),
        Difficulty: int(req.Difficulty),
    }
    ctx := c.Request().Context()
    err := database.WithTx(ctx, h.Questions.DB(), func(tx *sql.Tx) error {
        return h.Questions.WithTx(tx).Create(ctx, &q)
    })
    if err != nil {
        h.Logger.WarnContext(ctx, "create question failed", "category", q.Category, "err", err)
        return echo.ErrBadRequest
    }
    h.publish(queue.QuestionCreated, q.ID, q.Category)
    return c.JSON(http.StatusOK, echo.Map{"success": true, "created": q.ID})
}

// questionPage renders one page of questions matching term.  An empty page
// is 404, whether the page is out of range or nothing matched.
func (h *TriviaHandler) questionPage(c echo.Context, term string, page int) error {
    if page < 1 {
        return echo.ErrNotFound
    }
    ctx := c.Request().Context()
    questions, total, err := h.Questions.Search(ctx, repository.QuestionSearchQuery{
        Term:     term,
        Page:     page,
        PageSize: quiz.PageSize,
    })
    if err != nil {
        return err
    }
    if len(questions) == 0 {
        return echo.ErrNotFound
    }
    cats, err := h.Categories.ListAll(ctx)
    if err != nil {
        return err
    }
    types := make([]string, 0, len(cats))
    for _, cat := range cats {
        types = append(types, strings.ToLower(cat.Type))
    }
    return c.JSON(http.StatusOK, echo.Map{
        "success":          true,
        "questions":        questions,
        "total_questions":  total,
        "categories":       types,
        "current_category": nil,
    })
}

// DeleteQuestion handles DELETE /questions/:id.  A missing question is 422.
func (h *TriviaHandler) DeleteQuestion(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return err
    }
    ctx := c.Request().Context()
    err = database.WithTx(ctx, h.Questions.DB(), func(tx *sql.Tx) error {
        return h.Questions.WithTx(tx).Delete(ctx, id)
    })
    if errors.Is(err, repository.ErrQuestionNotFound) {
        return echo.ErrUnprocessableEntity
    }
    if err != nil {
        return err
    }
    h.publish(queue.QuestionDeleted, id, 0)
    return c.JSON(http.StatusOK, echo.Map{"success": true, "id": id})
}

// CategoryQuestions handles GET /categories/:id/questions.
func (h *TriviaHandler) CategoryQuestions(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return err
    }
    ctx := c.Request().Context()
    cat, err := h.Categories.GetByID(ctx, id)
    if errors.Is(err, repository.ErrCategoryNotFound) {
        return echo.ErrNotFound
    }
    if err != nil {
        return err
    }
    questions, err := h.Questions.ListByCategory(ctx, id)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, echo.Map{
        "success":          true,
        "questions":        questions,
        "total_questions":  len(questions),
        "current_category": cat.Type,
    })
}

// PlayQuiz handles POST /quizzes.  When every eligible question has been
// asked the answer is {"success": false} with status 200.
func (h *TriviaHandler) PlayQuiz(c echo.Context) error {
    middleware.MarkReadOnly(c)
    var req quizReq
    if err := c.Echo().JSONSerializer.Deserialize(c, &req); err != nil {
        return echo.ErrBadRequest
    }
    previous := make([]int64, 0, len(req.PreviousQuestions))
    for _, id := range req.PreviousQuestions {
        previous = append(previous, int64(id))
    }

    q, ok, err := h.Selector.Next(c.Request().Context(), previous, int64(req.QuizCategory.ID))
    if errors.Is(err, repository.ErrCategoryNotFound) {
        return echo.ErrNotFound
    }
    if err != nil {
        return err
    }
    if !ok {
        return c.JSON(http.StatusOK, echo.Map{"success": false})
    }
    return c.JSON(http.StatusOK, echo.Map{"success": true, "question": q})
}

func (h *TriviaHandler) publish(action string, id, category int64) {
    service.PublishAsync(h.Publisher, h.Logger, queue.QuestionChangedQueue, queue.QuestionChangedEvent{
        Action:     action,
        QuestionID: id,
        Category:   category,
        At:         time.Now().UTC().Format(time.RFC3339),
    })
}
