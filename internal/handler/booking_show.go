package handler

import (
    "database/sql"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/fyyur-trivia/internal/database"
    "github.com/iliyamo/fyyur-trivia/internal/model"
    "github.com/iliyamo/fyyur-trivia/internal/queue"
    "github.com/iliyamo/fyyur-trivia/internal/service"
    "github.com/iliyamo/fyyur-trivia/internal/showtime"
)

const showNotListed = "An error occurred. Show could not be listed."

type showRow struct {
    VenueID         int64  `json:"venue_id"`
    VenueName       string `json:"venue_name"`
    ArtistID        int64  `json:"artist_id"`
    ArtistName      string `json:"artist_name"`
    ArtistImageLink string `json:"artist_image_link"`
    StartTime       string `json:"start_time"`
}

type showCreateReq struct {
    ArtistID  FlexInt `json:"artist_id" form:"artist_id" validate:"required"`
    VenueID   FlexInt `json:"venue_id" form:"venue_id" validate:"required"`
    StartTime string  `json:"start_time" form:"start_time" validate:"required,showtime"`
}

// ListShows handles GET /shows.
func (h *BookingHandler) ListShows(c echo.Context) error {
    shows, err := h.Shows.ListAll(c.Request().Context())
    if err != nil {
        return err
    }
    out := make([]showRow, 0, len(shows))
    for _, s := range shows {
        out = append(out, showRow{
            VenueID:         s.VenueID,
            VenueName:       s.VenueName,
            ArtistID:        s.ArtistID,
            ArtistName:      s.ArtistName,
            ArtistImageLink: s.ArtistImageLink,
            StartTime:       s.StartTime,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"shows": out})
}

// NewShowForm handles GET /shows/create.  The suggested start time is the
// current time in the stored layout.
func (h *BookingHandler) NewShowForm(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{
        "fields": showFormFields,
        "defaults": echo.Map{
            "start_time": h.Clock.now().In(h.Clock.loc()).Format(showtime.Layout),
        },
        "start_time_layout": showtime.Layout,
    })
}

// CreateShow handles POST /shows/create.  Both parties must exist; the show
// is written in one transaction and announced on the show listed queue once
// committed.
func (h *BookingHandler) CreateShow(c echo.Context) error {
    var req showCreateReq
    if err := c.Bind(&req); err != nil {
        return echo.NewHTTPError(http.StatusBadRequest, showNotListed)
    }
    if err := c.Validate(&req); err != nil {
        return echo.NewHTTPError(http.StatusBadRequest, showNotListed)
    }

    s := model.Show{VenueID: int64(req.VenueID), ArtistID: int64(req.ArtistID), StartTime: req.StartTime}
    ev := queue.ShowListedEvent{VenueID: s.VenueID, ArtistID: s.ArtistID, StartTime: s.StartTime}
    ctx := c.Request().Context()
    err := database.WithTx(ctx, h.Shows.DB(), func(tx *sql.Tx) error {
        if err := h.Shows.WithTx(tx).Create(ctx, &s); err != nil {
            return err
        }
        v, err := h.Venues.WithTx(tx).GetByID(ctx, s.VenueID)
        if err != nil {
            return err
        }
        a, err := h.Artists.WithTx(tx).GetByID(ctx, s.ArtistID)
        if err != nil {
            return err
        }
        ev.VenueName, ev.ArtistName = v.Name, a.Name
        return nil
    })
    if err != nil {
        h.Logger.WarnContext(ctx, "create show failed", "venue_id", s.VenueID, "artist_id", s.ArtistID, "err", err)
        return echo.NewHTTPError(http.StatusBadRequest, showNotListed)
    }

    ev.ShowID = s.ID
    ev.ListedAt = time.Now().UTC().Format(time.RFC3339)
    service.PublishAsync(h.Publisher, h.Logger, queue.ShowListedQueue, ev)

    return c.JSON(http.StatusCreated, echo.Map{
        "success": true,
        "message": "Show was successfully listed!",
        "show":    s,
    })
}
