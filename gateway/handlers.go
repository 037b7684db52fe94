package main

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Wh1teW1nter/java-shareit/app/echoServer/params"
	bookingsvc "github.com/Wh1teW1nter/java-shareit/service/booking"
)

type gateway struct {
	cl  *Client
	v   *validator.Validate
	log *slog.Logger
}

// forward relays the call and mirrors the server's status and body.
func (g *gateway) forward(c echo.Context, method, path string, userID int64, query url.Values, body any) error {
	status, raw, err := g.cl.Do(c.Request().Context(), method, path, userID, query, body)
	if err != nil {
		g.log.Error("upstream call failed", "method", method, "path", path, "err", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"message": "shareit server unavailable"})
	}
	if len(raw) == 0 {
		return c.NoContent(status)
	}
	return c.JSONBlob(status, raw)
}

func (g *gateway) bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := g.v.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	return nil
}

// pageQuery validates from/size and re-encodes only what the caller sent.
func pageQuery(c echo.Context) (url.Values, error) {
	if _, _, err := params.FromSize(c); err != nil {
		return nil, err
	}
	q := url.Values{}
	for _, k := range []string{"from", "size"} {
		if v := c.QueryParam(k); v != "" {
			q.Set(k, v)
		}
	}
	return q, nil
}

// Users

func (g *gateway) createUser(c echo.Context) error {
	var req createUserReq
	if err := g.bindValid(c, &req); err != nil {
		return err
	}
	return g.forward(c, http.MethodPost, "/users", 0, nil, req)
}

func (g *gateway) updateUser(c echo.Context) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req updateUserReq
	if err := g.bindValid(c, &req); err != nil {
		return err
	}
	return g.forward(c, http.MethodPatch, "/users/"+strconv.FormatInt(id, 10), 0, nil, req)
}

func (g *gateway) findUser(c echo.Context) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	return g.forward(c, http.MethodGet, "/users/"+strconv.FormatInt(id, 10), 0, nil, nil)
}

func (g *gateway) listUsers(c echo.Context) error {
	return g.forward(c, http.MethodGet, "/users", 0, nil, nil)
}

func (g *gateway) deleteUser(c echo.Context) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	return g.forward(c, http.MethodDelete, "/users/"+strconv.FormatInt(id, 10), 0, nil, nil)
}

// Items

func (g *gateway) createItem(c echo.Context) error {
	var req createItemReq
	if err := g.bindValid(c, &req); err != nil {
		return err
	}
	return g.forward(c, http.MethodPost, "/items", params.UserID(c), nil, req)
}

func (g *gateway) updateItem(c echo.Context) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req updateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	return g.forward(c, http.MethodPatch, "/items/"+strconv.FormatInt(id, 10), params.UserID(c), nil, req)
}

func (g *gateway) findItem(c echo.Context) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	return g.forward(c, http.MethodGet, "/items/"+strconv.FormatInt(id, 10), params.UserID(c), nil, nil)
}

func (g *gateway) listItems(c echo.Context) error {
	q, err := pageQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	return g.forward(c, http.MethodGet, "/items", params.UserID(c), q, nil)
}

func (g *gateway) searchItems(c echo.Context) error {
	q, err := pageQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	q.Set("text", c.QueryParam("text"))
	return g.forward(c, http.MethodGet, "/items/search", 0, q, nil)
}

func (g *gateway) deleteItem(c echo.Context) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	return g.forward(c, http.MethodDelete, "/items/"+strconv.FormatInt(id, 10), params.UserID(c), nil, nil)
}

func (g *gateway) addComment(c echo.Context) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req createCommentReq
	if err := g.bindValid(c, &req); err != nil {
		return err
	}
	return g.forward(c, http.MethodPost, "/items/"+strconv.FormatInt(id, 10)+"/comment", params.UserID(c), nil, req)
}

// Bookings

func (g *gateway) createBooking(c echo.Context) error {
	var req createBookingReq
	if err := g.bindValid(c, &req); err != nil {
		return err
	}
	return g.forward(c, http.MethodPost, "/bookings", params.UserID(c), nil, req)
}

func (g *gateway) setApproval(c echo.Context) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	approved := c.QueryParam("approved")
	if approved != "true" && approved != "false" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "approved must be true or false"})
	}
	q := url.Values{}
	q.Set("approved", approved)
	return g.forward(c, http.MethodPatch, "/bookings/"+strconv.FormatInt(id, 10), params.UserID(c), q, nil)
}

func (g *gateway) findBooking(c echo.Context) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	return g.forward(c, http.MethodGet, "/bookings/"+strconv.FormatInt(id, 10), params.UserID(c), nil, nil)
}

func (g *gateway) listBookings(c echo.Context) error {
	return g.listBookingsAt(c, "/bookings")
}

func (g *gateway) listOwnerBookings(c echo.Context) error {
	return g.listBookingsAt(c, "/bookings/owner")
}

// listBookingsAt rejects unknown state tokens before forwarding, with
// the same detail string the server uses.
func (g *gateway) listBookingsAt(c echo.Context, path string) error {
	token := c.QueryParam("state")
	if token != "" {
		if _, err := bookingsvc.ParseState(token); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		}
	}
	q, err := pageQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	if token != "" {
		q.Set("state", token)
	}
	return g.forward(c, http.MethodGet, path, params.UserID(c), q, nil)
}

// Requests

func (g *gateway) createRequest(c echo.Context) error {
	var req createRequestReq
	if err := g.bindValid(c, &req); err != nil {
		return err
	}
	return g.forward(c, http.MethodPost, "/requests", params.UserID(c), nil, req)
}

func (g *gateway) listOwnRequests(c echo.Context) error {
	return g.forward(c, http.MethodGet, "/requests", params.UserID(c), nil, nil)
}

func (g *gateway) listOtherRequests(c echo.Context) error {
	q, err := pageQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	return g.forward(c, http.MethodGet, "/requests/all", params.UserID(c), q, nil)
}

func (g *gateway) findRequest(c echo.Context) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	return g.forward(c, http.MethodGet, "/requests/"+strconv.FormatInt(id, 10), params.UserID(c), nil, nil)
}
