// Package main — validating gateway in front of the item-sharing server.
// It checks request shape and identity headers, then forwards verbatim.
package main

import (
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Wh1teW1nter/java-shareit/app/echoServer"
	"github.com/Wh1teW1nter/java-shareit/config"
)

func main() {

	cfg := config.LoadGateway()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	g := &gateway{
		cl:  NewClient(cfg.ServerURL),
		v:   validator.New(),
		log: log,
	}

	e := echo.New()
	echoServer.RegisterMiddlewares(e)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{"status": "ok"})
	})

	users := e.Group("/users")
	users.POST("", g.createUser)
	users.GET("", g.listUsers)
	users.GET("/:id", g.findUser)
	users.PATCH("/:id", g.updateUser)
	users.DELETE("/:id", g.deleteUser)

	e.GET("/items/search", g.searchItems)

	items := e.Group("/items", echoServer.RequireUser())
	items.POST("", g.createItem)
	items.GET("", g.listItems)
	items.GET("/:id", g.findItem)
	items.PATCH("/:id", g.updateItem)
	items.DELETE("/:id", g.deleteItem)
	items.POST("/:id/comment", g.addComment)

	bookings := e.Group("/bookings", echoServer.RequireUser())
	bookings.POST("", g.createBooking)
	bookings.GET("", g.listBookings)
	bookings.GET("/owner", g.listOwnerBookings)
	bookings.GET("/:id", g.findBooking)
	bookings.PATCH("/:id", g.setApproval)

	requests := e.Group("/requests", echoServer.RequireUser())
	requests.POST("", g.createRequest)
	requests.GET("", g.listOwnRequests)
	requests.GET("/all", g.listOtherRequests)
	requests.GET("/:id", g.findRequest)

	slog.Info("starting gateway", "port", cfg.Port, "server_url", cfg.ServerURL)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
