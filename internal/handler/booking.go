package handler

import (
    "log/slog"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/fyyur-trivia/internal/repository"
    "github.com/iliyamo/fyyur-trivia/internal/service"
)

// Clock supplies the wall clock and the zone that stored show times are
// written in.
type Clock struct {
    Now      func() time.Time
    Location *time.Location
}

func (c Clock) now() time.Time {
    if c.Now == nil {
        return time.Now()
    }
    return c.Now()
}

func (c Clock) loc() *time.Location {
    if c.Location == nil {
        return time.Local
    }
    return c.Location
}

// BookingHandler bundles the repositories behind the venue, artist and show
// pages.
type BookingHandler struct {
    Venues    *repository.VenueRepo   // venues and their genres
    Artists   *repository.ArtistRepo  // artists and their genres
    Shows     *repository.ShowRepo    // shows joined with both parties
    Clock     Clock                   // splits shows into past and upcoming
    Publisher service.Publisher       // optional; receives show listed events
    Logger    *slog.Logger
}

// NewBookingHandler constructs a BookingHandler and panics if a repository
// is nil.
func NewBookingHandler(venues *repository.VenueRepo, artists *repository.ArtistRepo, shows *repository.ShowRepo, clock Clock, pub service.Publisher, logger *slog.Logger) *BookingHandler {
    if venues == nil || artists == nil || shows == nil {
        panic("nil repository passed to NewBookingHandler")
    }
    if logger == nil {
        logger = slog.Default()
    }
    return &BookingHandler{Venues: venues, Artists: artists, Shows: shows, Clock: clock, Publisher: pub, Logger: logger}
}

// Home handles GET /.
func (h *BookingHandler) Home(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{
        "app": "fyyur",
        "links": echo.Map{
            "venues":  "/venues",
            "artists": "/artists",
            "shows":   "/shows",
        },
    })
}

// pathID parses the :id route parameter.  A non-numeric id cannot name a row
// and is reported as 404.
func pathID(c echo.Context) (int64, error) {
    id, err := strconv.ParseInt(c.Param("id"), 10, 64)
    if err != nil || id < 1 {
        return 0, echo.ErrNotFound
    }
    return id, nil
}

// searchResult is one row of a venue or artist search response.
type searchResult struct {
    ID               int64  `json:"id"`
    Name             string `json:"name"`
    NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// searchReq is the search form; JSON bodies use the same key.
type searchReq struct {
    SearchTerm string `json:"search_term" form:"search_term"`
}
