package rest

import "net/http"

type options struct {
	httpClient *http.Client
	proxyURL   string
}

type Option func(*options)

// WithHTTPClient replaces the default http client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithProxyURL routes requests through the given proxy.
func WithProxyURL(u string) Option {
	return func(o *options) {
		o.proxyURL = u
	}
}
