package model

// Show links one venue and one artist at a start time.  StartTime is kept
// as the stored string ("YYYY-MM-DD HH:MM:SS"); callers parse it with
// package showtime when they need to compare it against the clock.
type Show struct {
    ID        int64  `json:"id"`         // shows.id
    VenueID   int64  `json:"venue_id"`   // shows.venue_id
    ArtistID  int64  `json:"artist_id"`  // shows.artist_id
    StartTime string `json:"start_time"` // shows.start_time
}

// ShowListing is a show joined with the names and pictures of both parties.
// It feeds the /shows page as well as the past/upcoming sections of venue
// and artist pages.
type ShowListing struct {
    Show
    VenueName       string `json:"venue_name"`
    VenueImageLink  string `json:"venue_image_link"`
    ArtistName      string `json:"artist_name"`
    ArtistImageLink string `json:"artist_image_link"`
}
