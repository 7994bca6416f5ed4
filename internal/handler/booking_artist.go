package handler

import (
    "database/sql"
    "errors"
    "fmt"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/fyyur-trivia/internal/database"
    "github.com/iliyamo/fyyur-trivia/internal/middleware"
    "github.com/iliyamo/fyyur-trivia/internal/model"
    "github.com/iliyamo/fyyur-trivia/internal/repository"
    "github.com/iliyamo/fyyur-trivia/internal/showtime"
)

// Fixed artist page fields.
const (
    artistWebsite            = "https://www.gunsnpetalsband.com"
    artistSeekingVenue       = true
    artistSeekingDescription = "Looking for shows to perform at in the San Francisco Bay Area!"
)

type artistSummary struct {
    ID   int64  `json:"id"`
    Name string `json:"name"`
}

// venueAppearance is a show as listed on an artist page.
type venueAppearance struct {
    VenueID        int64  `json:"venue_id"`
    VenueName      string `json:"venue_name"`
    VenueImageLink string `json:"venue_image_link"`
    StartTime      string `json:"start_time"`
}

type artistDetail struct {
    model.Artist
    Website            string            `json:"website"`
    SeekingVenue       bool              `json:"seeking_venue"`
    SeekingDescription string            `json:"seeking_description"`
    PastShows          []venueAppearance `json:"past_shows"`
    UpcomingShows      []venueAppearance `json:"upcoming_shows"`
    PastShowsCount     int               `json:"past_shows_count"`
    UpcomingShowsCount int               `json:"upcoming_shows_count"`
}

type artistCreateReq struct {
    Name         string   `json:"name" form:"name" validate:"required"`
    City         string   `json:"city" form:"city" validate:"required"`
    State        string   `json:"state" form:"state" validate:"required"`
    Phone        string   `json:"phone" form:"phone"`
    ImageLink    string   `json:"image_link" form:"image_link"`
    FacebookLink string   `json:"facebook_link" form:"facebook_link"`
    Genres       []string `json:"genres" form:"genres"`
}

// ListArtists handles GET /artists.
func (h *BookingHandler) ListArtists(c echo.Context) error {
    artists, err := h.Artists.ListAll(c.Request().Context())
    if err != nil {
        return err
    }
    out := make([]artistSummary, 0, len(artists))
    for _, a := range artists {
        out = append(out, artistSummary{ID: a.ID, Name: a.Name})
    }
    return c.JSON(http.StatusOK, echo.Map{"artists": out})
}

// SearchArtists handles POST /artists/search.
func (h *BookingHandler) SearchArtists(c echo.Context) error {
    middleware.MarkReadOnly(c)
    var req searchReq
    if err := c.Bind(&req); err != nil {
        return echo.ErrBadRequest
    }
    ctx := c.Request().Context()
    artists, err := h.Artists.Search(ctx, req.SearchTerm)
    if err != nil {
        return err
    }
    starts, err := h.Shows.StartTimesByArtist(ctx)
    if err != nil {
        return err
    }
    data := make([]searchResult, 0, len(artists))
    for _, a := range artists {
        n, err := showtime.CountUpcoming(starts[a.ID], h.Clock.now(), h.Clock.loc())
        if err != nil {
            return err
        }
        data = append(data, searchResult{ID: a.ID, Name: a.Name, NumUpcomingShows: n})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "count":       len(data),
        "data":        data,
        "search_term": req.SearchTerm,
    })
}

// GetArtist handles GET /artists/:id.
func (h *BookingHandler) GetArtist(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return err
    }
    ctx := c.Request().Context()
    a, err := h.Artists.GetByID(ctx, id)
    if errors.Is(err, repository.ErrArtistNotFound) {
        return echo.ErrNotFound
    }
    if err != nil {
        return err
    }
    shows, err := h.Shows.ListByArtist(ctx, id)
    if err != nil {
        return err
    }
    past, upcoming, err := showtime.Partition(shows, h.Clock.now(), h.Clock.loc())
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, artistDetail{
        Artist:             *a,
        Website:            artistWebsite,
        SeekingVenue:       artistSeekingVenue,
        SeekingDescription: artistSeekingDescription,
        PastShows:          venueAppearances(past),
        UpcomingShows:      venueAppearances(upcoming),
        PastShowsCount:     len(past),
        UpcomingShowsCount: len(upcoming),
    })
}

func venueAppearances(shows []model.ShowListing) []venueAppearance {
    out := make([]venueAppearance, 0, len(shows))
    for _, s := range shows {
        out = append(out, venueAppearance{
            VenueID:        s.VenueID,
            VenueName:      s.VenueName,
            VenueImageLink: s.VenueImageLink,
            StartTime:      s.StartTime,
        })
    }
    return out
}

// NewArtistForm handles GET /artists/create.
func (h *BookingHandler) NewArtistForm(c echo.Context) error {
    return c.JSON(http.StatusOK, artistForm())
}

// CreateArtist handles POST /artists/create.
func (h *BookingHandler) CreateArtist(c echo.Context) error {
    var req artistCreateReq
    if err := c.Bind(&req); err != nil {
        return echo.NewHTTPError(http.StatusBadRequest, "An error occurred. Artist could not be listed.")
    }
    failed := "An error occurred. Artist " + req.Name + " could not be listed."
    if err := c.Validate(&req); err != nil {
        return echo.NewHTTPError(http.StatusBadRequest, failed)
    }

    a := model.Artist{
        Name:         req.Name,
        City:         req.City,
        State:        req.State,
        Phone:        req.Phone,
        ImageLink:    req.ImageLink,
        FacebookLink: req.FacebookLink,
        Genres:       req.Genres,
    }
    ctx := c.Request().Context()
    err := database.WithTx(ctx, h.Artists.DB(), func(tx *sql.Tx) error {
        return h.Artists.WithTx(tx).Create(ctx, &a)
    })
    if err != nil {
        h.Logger.WarnContext(ctx, "create artist failed", "name", req.Name, "err", err)
        return echo.NewHTTPError(http.StatusBadRequest, failed)
    }
    if a.Genres == nil {
        a.Genres = []string{}
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "success": true,
        "message": "Artist " + a.Name + " was successfully listed!",
        "artist":  a,
    })
}

// EditArtistForm handles GET /artists/:id/edit.
func (h *BookingHandler) EditArtistForm(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return err
    }
    a, err := h.Artists.GetByID(c.Request().Context(), id)
    if errors.Is(err, repository.ErrArtistNotFound) {
        return echo.ErrNotFound
    }
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, echo.Map{"form": artistForm(), "artist": a})
}

// EditArtist handles POST /artists/:id/edit.  Nothing is stored.
func (h *BookingHandler) EditArtist(c echo.Context) error {
    middleware.MarkReadOnly(c)
    id, err := pathID(c)
    if err != nil {
        return err
    }
    return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/artists/%d", id))
}
