package model

// Artist is a performer that can be booked at venues.  It mirrors Venue
// without an address.
type Artist struct {
    ID           int64    `json:"id"`            // artists.id
    Name         string   `json:"name"`          // artists.name
    City         string   `json:"city"`          // artists.city
    State        string   `json:"state"`         // artists.state
    Phone        string   `json:"phone"`         // artists.phone
    ImageLink    string   `json:"image_link"`    // artists.image_link
    FacebookLink string   `json:"facebook_link"` // artists.facebook_link
    Genres       []string `json:"genres"`        // genres.name where artist_id = id
}
