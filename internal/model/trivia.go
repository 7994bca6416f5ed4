package model

// Category groups trivia questions.  Type is the display name
// ("Science", "Art", ...).
type Category struct {
    ID   int64  `json:"id"`   // categories.id
    Type string `json:"type"` // categories.type
}

// Question is a trivia question.  Category holds the id of a Category row
// and Difficulty is a small positive integer.
type Question struct {
    ID         int64  `json:"id"`         // questions.id
    Question   string `json:"question"`   // questions.question
    Answer     string `json:"answer"`     // questions.answer
    Category   int64  `json:"category"`   // questions.category
    Difficulty int    `json:"difficulty"` // questions.difficulty
}
