package rest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-gotop/normfeed/exchange"
	jsoniter "github.com/json-iterator/go"
)

// Redefining the standard package
var Json = jsoniter.ConfigCompatibleWithStandardLibrary

const userAgent = "normfeed"

// APIError define API error when response status is 4xx or 5xx
type APIError struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// Error return error code and message
func (e APIError) Error() string {
	return fmt.Sprintf("<APIError> code=%d, message=%s", e.Code, e.Message)
}

// IsAPIError check if e is an API error
func IsAPIError(e error) bool {
	_, ok := e.(*APIError)
	return ok
}

type doFunc func(req *http.Request) (*http.Response, error)

// Client is the metadata collaborator: exchange, instrument and data-type
// listings used to build valid replay/stream requests. It never touches
// the streaming connection.
type Client struct {
	baseURL string
	apiKey  string
	opts    *options
	do      doFunc
}

// NewClient initializes a metadata API client for the server at baseURL,
// authenticated with apiKey (sent as a bearer token).
func NewClient(baseURL, apiKey string, ops ...Option) *Client {
	opts := &options{
		httpClient: http.DefaultClient,
	}
	for _, o := range ops {
		o(opts)
	}
	if opts.proxyURL != "" {
		proxy, err := url.Parse(opts.proxyURL)
		if err != nil {
			panic(err)
		}
		opts.httpClient.Transport = &http.Transport{
			Proxy: http.ProxyURL(proxy),
		}
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		opts:    opts,
	}
}

// Exchanges lists every venue the server has data for.
func (c *Client) Exchanges(ctx context.Context) ([]ExchangeInfo, error) {
	var out []ExchangeInfo
	if err := c.get(ctx, "/exchanges", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ExchangeDetails returns the available channels, symbols and date ranges
// for one venue.
func (c *Client) ExchangeDetails(ctx context.Context, ex exchange.Exchange) (*ExchangeInfo, error) {
	out := &ExchangeInfo{}
	if err := c.get(ctx, "/exchanges/"+url.PathEscape(ex.String()), out); err != nil {
		return nil, err
	}
	return out, nil
}

// Instruments lists instrument metadata for one venue.
func (c *Client) Instruments(ctx context.Context, ex exchange.Exchange) ([]InstrumentInfo, error) {
	var out []InstrumentInfo
	if err := c.get(ctx, "/instruments/"+url.PathEscape(ex.String()), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// InstrumentInfo returns metadata for a single instrument.
func (c *Client) InstrumentInfo(ctx context.Context, ex exchange.Exchange, symbol string) (*InstrumentInfo, error) {
	out := &InstrumentInfo{}
	endpoint := "/instruments/" + url.PathEscape(ex.String()) + "/" + url.PathEscape(symbol)
	if err := c.get(ctx, endpoint, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	f := c.do
	if f == nil {
		f = c.opts.httpClient.Do
	}
	res, err := f(req)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	defer func() {
		cerr := res.Body.Close()
		// Only overwrite the returned error if the original error was nil
		// and an error occurred while closing the body.
		if err == nil && cerr != nil {
			err = cerr
		}
	}()

	if res.StatusCode >= http.StatusBadRequest {
		apiErr := new(APIError)
		if e := Json.Unmarshal(data, apiErr); e != nil {
			return fmt.Errorf("status %d: %s", res.StatusCode, data)
		}
		return apiErr
	}
	return Json.Unmarshal(data, out)
}
