package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Wh1teW1nter/java-shareit/app/echoServer"
	"github.com/Wh1teW1nter/java-shareit/util/httpx"
)

// Client forwards validated requests to the main server verbatim and
// hands back whatever status and body it answered with.
type Client struct {
	base string
	hc   *http.Client
}

func NewClient(base string) *Client {
	return &Client{base: strings.TrimRight(base, "/"), hc: httpx.Client()}
}

// Do sends the request. userID == 0 means no identity header; body ==
// nil means no payload.
func (cl *Client) Do(ctx context.Context, method, path string, userID int64, query url.Values, body any) (int, []byte, error) {
	u := cl.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		rd = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID > 0 {
		req.Header.Set(echoServer.HeaderUserID, strconv.FormatInt(userID, 10))
	}

	resp, err := cl.hc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, out, nil
}
