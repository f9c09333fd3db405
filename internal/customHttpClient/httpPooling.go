package customHttpClient

import (
	"net/http"
	"time"

	"chatknowledge/internal/config"
)

var pooledTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

// New returns a client on the shared pooled transport with a hard deadline.
func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: pooledTransport,
		Timeout:   timeout,
	}
}
