package controlplane

import (
	"net/http"
	"strings"
	"time"
)

const (
	PresignedURLPath = "/get-presigned-url"
	QueryPath        = "/medihub-query-handler"
)

// Client talks to the MediHub control plane. It is safe for concurrent use
// and keeps no per-request state.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(cfg Config) *Client {
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		httpClient: &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Millisecond},
	}
}
