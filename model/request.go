// model/request.go
package model

import "time"

// ItemRequest is a wish for an item that does not exist yet. Created is
// stamped server-side and the request is never mutated afterwards.
type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequesterID int64     `json:"requester_id"`
	Created     time.Time `json:"created"`
}

// RequestWithAnswers annotates a request with the items listed to fulfill it.
type RequestWithAnswers struct {
	ItemRequest
	Items []Item `json:"items"`
}
