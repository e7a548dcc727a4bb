// Package network provides the shared HTTP client and manifest reachability checks.
package network

import (
	"net/http"
	"time"

	"github.com/myselfbbs/vodplay/constant"
)

// UserAgent identifies probe requests.
const UserAgent = constant.App + "/" + constant.Version

// Client is the HTTP client shared across the application.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: newTransport(),
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}
