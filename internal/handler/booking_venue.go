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

// Fixed venue page fields.  They are not stored.
const (
    venueWebsite            = "https://www.themusicalhop.com"
    venueSeekingTalent      = true
    venueSeekingDescription = "We are on the lookout for a local artist to play every two weeks. Please call us."
)

type venueArea struct {
    City   string         `json:"city"`
    State  string         `json:"state"`
    Venues []searchResult `json:"venues"`
}

// artistAppearance is a show as listed on a venue page.
type artistAppearance struct {
    ArtistID        int64  `json:"artist_id"`
    ArtistName      string `json:"artist_name"`
    ArtistImageLink string `json:"artist_image_link"`
    StartTime       string `json:"start_time"`
}

type venueDetail struct {
    model.Venue
    Website            string             `json:"website"`
    SeekingTalent      bool               `json:"seeking_talent"`
    SeekingDescription string             `json:"seeking_description"`
    PastShows          []artistAppearance `json:"past_shows"`
    UpcomingShows      []artistAppearance `json:"upcoming_shows"`
    PastShowsCount     int                `json:"past_shows_count"`
    UpcomingShowsCount int                `json:"upcoming_shows_count"`
}

type venueCreateReq struct {
    Name         string   `json:"name" form:"name" validate:"required"`
    City         string   `json:"city" form:"city" validate:"required"`
    State        string   `json:"state" form:"state" validate:"required"`
    Address      string   `json:"address" form:"address"`
    Phone        string   `json:"phone" form:"phone"`
    ImageLink    string   `json:"image_link" form:"image_link"`
    FacebookLink string   `json:"facebook_link" form:"facebook_link"`
    Genres       []string `json:"genres" form:"genres"`
}

// ListVenues handles GET /venues.  Venues are grouped by (city, state) with
// the number of upcoming shows of each venue.
func (h *BookingHandler) ListVenues(c echo.Context) error {
    ctx := c.Request().Context()
    venues, err := h.Venues.ListAll(ctx)
    if err != nil {
        return err
    }
    starts, err := h.Shows.StartTimesByVenue(ctx)
    if err != nil {
        return err
    }

    now := h.Clock.now()
    areas := []venueArea{}
    for _, v := range venues {
        n, err := showtime.CountUpcoming(starts[v.ID], now, h.Clock.loc())
        if err != nil {
            return err
        }
        last := len(areas) - 1
        if last < 0 || areas[last].City != v.City || areas[last].State != v.State {
            areas = append(areas, venueArea{City: v.City, State: v.State, Venues: []searchResult{}})
            last++
        }
        areas[last].Venues = append(areas[last].Venues, searchResult{ID: v.ID, Name: v.Name, NumUpcomingShows: n})
    }
    return c.JSON(http.StatusOK, echo.Map{"areas": areas})
}

// SearchVenues handles POST /venues/search.
func (h *BookingHandler) SearchVenues(c echo.Context) error {
    middleware.MarkReadOnly(c)
    var req searchReq
    if err := c.Bind(&req); err != nil {
        return echo.ErrBadRequest
    }
    ctx := c.Request().Context()
    venues, err := h.Venues.Search(ctx, req.SearchTerm)
    if err != nil {
        return err
    }
    starts, err := h.Shows.StartTimesByVenue(ctx)
    if err != nil {
        return err
    }
    data := make([]searchResult, 0, len(venues))
    for _, v := range venues {
        n, err := showtime.CountUpcoming(starts[v.ID], h.Clock.now(), h.Clock.loc())
        if err != nil {
            return err
        }
        data = append(data, searchResult{ID: v.ID, Name: v.Name, NumUpcomingShows: n})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "count":       len(data),
        "data":        data,
        "search_term": req.SearchTerm,
    })
}

// GetVenue handles GET /venues/:id.
func (h *BookingHandler) GetVenue(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return err
    }
    ctx := c.Request().Context()
    v, err := h.Venues.GetByID(ctx, id)
    if errors.Is(err, repository.ErrVenueNotFound) {
        return echo.ErrNotFound
    }
    if err != nil {
        return err
    }
    shows, err := h.Shows.ListByVenue(ctx, id)
    if err != nil {
        return err
    }
    past, upcoming, err := showtime.Partition(shows, h.Clock.now(), h.Clock.loc())
    if err != nil {
        return err
    }
    out := venueDetail{
        Venue:              *v,
        Website:            venueWebsite,
        SeekingTalent:      venueSeekingTalent,
        SeekingDescription: venueSeekingDescription,
        PastShows:          artistAppearances(past),
        UpcomingShows:      artistAppearances(upcoming),
        PastShowsCount:     len(past),
        UpcomingShowsCount: len(upcoming),
    }
    return c.JSON(http.StatusOK, out)
}

func artistAppearances(shows []model.ShowListing) []artistAppearance {
    out := make([]artistAppearance, 0, len(shows))
    for _, s := range shows {
        out = append(out, artistAppearance{
            ArtistID:        s.ArtistID,
            ArtistName:      s.ArtistName,
            ArtistImageLink: s.ArtistImageLink,
            StartTime:       s.StartTime,
        })
    }
    return out
}

// NewVenueForm handles GET /venues/create.
func (h *BookingHandler) NewVenueForm(c echo.Context) error {
    return c.JSON(http.StatusOK, venueForm())
}

// CreateVenue handles POST /venues/create (form or JSON).  The venue and its
// genres are written in one transaction.
func (h *BookingHandler) CreateVenue(c echo.Context) error {
    var req venueCreateReq
    if err := c.Bind(&req); err != nil {
        return echo.NewHTTPError(http.StatusBadRequest, "An error occurred. Venue could not be listed.")
    }
    failed := "An error occurred. Venue " + req.Name + " could not be listed."
    if err := c.Validate(&req); err != nil {
        return echo.NewHTTPError(http.StatusBadRequest, failed)
    }

    v := model.Venue{
        Name:         req.Name,
        City:         req.City,
        State:        req.State,
        Address:      req.Address,
        Phone:        req.Phone,
        ImageLink:    req.ImageLink,
        FacebookLink: req.FacebookLink,
        Genres:       req.Genres,
    }
    ctx := c.Request().Context()
    err := database.WithTx(ctx, h.Venues.DB(), func(tx *sql.Tx) error {
        return h.Venues.WithTx(tx).Create(ctx, &v)
    })
    if err != nil {
        h.Logger.WarnContext(ctx, "create venue failed", "name", req.Name, "err", err)
        return echo.NewHTTPError(http.StatusBadRequest, failed)
    }
    if v.Genres == nil {
        v.Genres = []string{}
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "success": true,
        "message": "Venue " + v.Name + " was successfully listed!",
        "venue":   v,
    })
}

// DeleteVenue handles DELETE /venues/:id.  The venue, its genres and its
// shows go in one transaction.  Unknown ids succeed without effect.
func (h *BookingHandler) DeleteVenue(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return err
    }
    ctx := c.Request().Context()
    err = database.WithTx(ctx, h.Venues.DB(), func(tx *sql.Tx) error {
        return h.Venues.WithTx(tx).Delete(ctx, id)
    })
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, echo.Map{"success": true, "id": id})
}

// EditVenueForm handles GET /venues/:id/edit.  Editing is not supported;
// the current record is returned to prefill a form.
func (h *BookingHandler) EditVenueForm(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return err
    }
    v, err := h.Venues.GetByID(c.Request().Context(), id)
    if errors.Is(err, repository.ErrVenueNotFound) {
        return echo.ErrNotFound
    }
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, echo.Map{"form": venueForm(), "venue": v})
}

// EditVenue handles POST /venues/:id/edit.  Nothing is stored; the client
// is sent back to the venue page.
func (h *BookingHandler) EditVenue(c echo.Context) error {
    middleware.MarkReadOnly(c)
    id, err := pathID(c)
    if err != nil {
        return err
    }
    return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/venues/%d", id))
}
