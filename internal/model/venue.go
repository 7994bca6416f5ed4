package model

// Venue is a location that hosts shows.  Genres are stored in their own
// table and attached when a venue is loaded for display.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – display name, searched case-insensitively.
//  City, State  – used to group venues in listings.
//  Address      – street address.
//  Phone        – free-form phone number.
//  ImageLink    – URL of the venue picture.
//  FacebookLink – URL of the venue's page.
type Venue struct {
    ID           int64    `json:"id"`            // venues.id
    Name         string   `json:"name"`          // venues.name
    City         string   `json:"city"`          // venues.city
    State        string   `json:"state"`         // venues.state
    Address      string   `json:"address"`       // venues.address
    Phone        string   `json:"phone"`         // venues.phone
    ImageLink    string   `json:"image_link"`    // venues.image_link
    FacebookLink string   `json:"facebook_link"` // venues.facebook_link
    Genres       []string `json:"genres"`        // genres.name where venue_id = id
}
