package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur-trivia/internal/handler"
)

// RegisterTrivia registers the trivia API.  admin guards question deletion.
func RegisterTrivia(e *echo.Echo, t *handler.TriviaHandler, admin echo.MiddlewareFunc) {
	e.GET("/categories", t.ListCategories)
	e.GET("/categories/:id/questions", t.CategoryQuestions)

	e.GET("/questions", t.ListQuestions)
	e.POST("/questions", t.PostQuestions)
	e.DELETE("/questions/:id", t.DeleteQuestion, admin)

	e.POST("/quizzes", t.PlayQuiz)
}
