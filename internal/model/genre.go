package model

// Genre tags exactly one venue or one artist; the other parent id is nil.
type Genre struct {
    ID       int64  // genres.id
    Name     string // genres.name
    VenueID  *int64 // genres.venue_id
    ArtistID *int64 // genres.artist_id
}
