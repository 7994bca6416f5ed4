package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur-trivia/internal/handler"
)

// RegisterBooking registers the venue, artist and show routes.  admin guards
// the destructive route; pass middleware.AdminOnly(false, "") to leave it
// open.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, admin echo.MiddlewareFunc) {
	e.GET("/", b.Home)

	// ---- Venues ----
	e.GET("/venues", b.ListVenues)
	e.POST("/venues/search", b.SearchVenues)
	e.GET("/venues/create", b.NewVenueForm)
	e.POST("/venues/create", b.CreateVenue)
	e.GET("/venues/:id", b.GetVenue)
	e.DELETE("/venues/:id", b.DeleteVenue, admin)
	e.GET("/venues/:id/edit", b.EditVenueForm)
	e.POST("/venues/:id/edit", b.EditVenue)

	// ---- Artists ----
	e.GET("/artists", b.ListArtists)
	e.POST("/artists/search", b.SearchArtists)
	e.GET("/artists/create", b.NewArtistForm)
	e.POST("/artists/create", b.CreateArtist)
	e.GET("/artists/:id", b.GetArtist)
	e.GET("/artists/:id/edit", b.EditArtistForm)
	e.POST("/artists/:id/edit", b.EditArtist)

	// ---- Shows ----
	e.GET("/shows", b.ListShows)
	e.GET("/shows/create", b.NewShowForm)
	e.POST("/shows/create", b.CreateShow)
}
