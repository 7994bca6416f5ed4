package handler

// genreChoices are the genres offered by the venue and artist forms.
var genreChoices = []string{
    "Alternative", "Blues", "Classical", "Country", "Electronic", "Folk",
    "Funk", "Hip-Hop", "Heavy Metal", "Instrumental", "Jazz",
    "Musical Theatre", "Pop", "Punk", "R&B", "Reggae", "Rock n Roll",
    "Soul", "Other",
}

// stateChoices are the US state codes offered by the forms.
var stateChoices = []string{
    "AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL", "GA", "HI",
    "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MT", "NE", "NV", "NH",
    "NJ", "NM", "NY", "NC", "ND", "OH", "OK", "OR", "MD", "MA", "MI", "MN",
    "MS", "MO", "PA", "RI", "SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA",
    "WV", "WI", "WY",
}

type formField struct {
    Name     string   `json:"name"`
    Required bool     `json:"required"`
    Multiple bool     `json:"multiple,omitempty"`
    Choices  []string `json:"choices,omitempty"`
}

type formSpec struct {
    Fields []formField `json:"fields"`
}

func venueForm() formSpec {
    return formSpec{Fields: []formField{
        {Name: "name", Required: true},
        {Name: "city", Required: true},
        {Name: "state", Required: true, Choices: stateChoices},
        {Name: "address"},
        {Name: "phone"},
        {Name: "image_link"},
        {Name: "genres", Multiple: true, Choices: genreChoices},
        {Name: "facebook_link"},
    }}
}

func artistForm() formSpec {
    return formSpec{Fields: []formField{
        {Name: "name", Required: true},
        {Name: "city", Required: true},
        {Name: "state", Required: true, Choices: stateChoices},
        {Name: "phone"},
        {Name: "image_link"},
        {Name: "genres", Multiple: true, Choices: genreChoices},
        {Name: "facebook_link"},
    }}
}

var showFormFields = []formField{
    {Name: "artist_id", Required: true},
    {Name: "venue_id", Required: true},
    {Name: "start_time", Required: true},
}
