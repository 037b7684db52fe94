// Package main — item-sharing API server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Wh1teW1nter/java-shareit/app/echoServer"
	bookingctrl "github.com/Wh1teW1nter/java-shareit/app/echoServer/controller/booking"
	itemctrl "github.com/Wh1teW1nter/java-shareit/app/echoServer/controller/item"
	requestctrl "github.com/Wh1teW1nter/java-shareit/app/echoServer/controller/request"
	userctrl "github.com/Wh1teW1nter/java-shareit/app/echoServer/controller/user"
	"github.com/Wh1teW1nter/java-shareit/app/echoServer/validation"
	"github.com/Wh1teW1nter/java-shareit/config"
	bookingrepo "github.com/Wh1teW1nter/java-shareit/repository/booking"
	commentrepo "github.com/Wh1teW1nter/java-shareit/repository/comment"
	itemrepo "github.com/Wh1teW1nter/java-shareit/repository/item"
	requestrepo "github.com/Wh1teW1nter/java-shareit/repository/request"
	userrepo "github.com/Wh1teW1nter/java-shareit/repository/user"
	bookingsvc "github.com/Wh1teW1nter/java-shareit/service/booking"
	commentsvc "github.com/Wh1teW1nter/java-shareit/service/comment"
	itemsvc "github.com/Wh1teW1nter/java-shareit/service/item"
	requestsvc "github.com/Wh1teW1nter/java-shareit/service/request"
	usersvc "github.com/Wh1teW1nter/java-shareit/service/user"
	"github.com/Wh1teW1nter/java-shareit/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	ir := itemrepo.New(db)
	br := bookingrepo.New(db)
	rr := requestrepo.New(db)
	cr := commentrepo.New(db)

	// services
	us := usersvc.New(ur)
	is := itemsvc.New(ir, us, br, cr, rr)
	bs := bookingsvc.New(br, us, ir)
	rs := requestsvc.New(rr, us, ir)
	cs := commentsvc.New(cr, us, ir, br)

	// controllers
	v := validator.New()
	userC := &userctrl.Controller{Svc: us, V: v, Log: log}
	itemC := &itemctrl.Controller{Svc: is, Comments: cs, V: v, Log: log}
	bookingC := &bookingctrl.Controller{Svc: bs, V: v, Log: log}
	requestC := &requestctrl.Controller{Svc: rs, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	echoServer.Register(e, echoServer.C{
		User:    userC,
		Item:    itemC,
		Booking: bookingC,
		Request: requestC,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	slog.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
