package echoServer

import (
	"github.com/labstack/echo/v4"

	"github.com/Wh1teW1nter/java-shareit/app/echoServer/controller/booking"
	"github.com/Wh1teW1nter/java-shareit/app/echoServer/controller/item"
	"github.com/Wh1teW1nter/java-shareit/app/echoServer/controller/request"
	"github.com/Wh1teW1nter/java-shareit/app/echoServer/controller/user"
)

type C struct {
	User    *user.Controller
	Item    *item.Controller
	Booking *booking.Controller
	Request *request.Controller
}

func Register(e *echo.Echo, c C) {
	// Users are managed without an identity header.
	users := e.Group("/users")
	users.POST("", c.User.Create)
	users.GET("", c.User.List)
	users.GET("/:id", c.User.FindByID)
	users.PATCH("/:id", c.User.Update)
	users.DELETE("/:id", c.User.Delete)

	// Search is public; everything else on /items acts as someone.
	e.GET("/items/search", c.Item.Search)

	items := e.Group("/items", RequireUser())
	items.POST("", c.Item.Create)
	items.GET("", c.Item.ListByOwner)
	items.GET("/:id", c.Item.FindByID)
	items.PATCH("/:id", c.Item.Update)
	items.DELETE("/:id", c.Item.Delete)
	items.POST("/:id/comment", c.Item.AddComment)

	bookings := e.Group("/bookings", RequireUser())
	bookings.POST("", c.Booking.Create)
	bookings.GET("", c.Booking.ListForBooker)
	bookings.GET("/owner", c.Booking.ListForOwner)
	bookings.GET("/:id", c.Booking.FindByID)
	bookings.PATCH("/:id", c.Booking.SetApproval)

	requests := e.Group("/requests", RequireUser())
	requests.POST("", c.Request.Create)
	requests.GET("", c.Request.ListOwn)
	requests.GET("/all", c.Request.ListOthers)
	requests.GET("/:id", c.Request.FindByID)
}
