// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

// Queue names.  Each event type has its own durable queue; publishers use
// the default exchange with the queue name as routing key.
const (
    ShowListedQueue      = "booking.show_listed"
    QuestionChangedQueue = "trivia.question_changed"
)

// ShowListedEvent is published after a show has been committed.  It carries
// the names of both parties so consumers can log it without reading the
// booking database.
type ShowListedEvent struct {
    ShowID     int64  `json:"show_id"`
    VenueID    int64  `json:"venue_id"`
    VenueName  string `json:"venue_name"`
    ArtistID   int64  `json:"artist_id"`
    ArtistName string `json:"artist_name"`
    StartTime  string `json:"start_time"`
    ListedAt   string `json:"listed_at"`
}

// Question change actions.
const (
    QuestionCreated = "created"
    QuestionDeleted = "deleted"
)

// QuestionChangedEvent is published when a trivia question is created or
// deleted.
type QuestionChangedEvent struct {
    Action     string `json:"action"`
    QuestionID int64  `json:"question_id"`
    Category   int64  `json:"category,omitempty"`
    At         string `json:"at"`
}
