package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Navigator performs the request behind a navigation verb.
type Navigator interface {
	Navigate(ctx context.Context, method, url string, data any) error
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, method, url string, data any) error

func (fn NavigatorFunc) Navigate(ctx context.Context, method, url string, data any) error {
	return fn(ctx, method, url, data)
}

const maxErrorBody = 4 << 10

// HTTPNavigator sends navigation requests with an http.Client. Data is encoded
// as a JSON body.
type HTTPNavigator struct {
	client *http.Client
	header http.Header
}

func NewHTTPNavigator(client *http.Client) *HTTPNavigator {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPNavigator{
		client: client,
		header: http.Header{
			"Accept":           []string{"application/json"},
			"X-Requested-With": []string{"XMLHttpRequest"},
		},
	}
}

// WithHeader sets a header sent with every request.
func (n *HTTPNavigator) WithHeader(key, value string) *HTTPNavigator {
	n.header.Set(key, value)
	return n
}

func (n *HTTPNavigator) Navigate(ctx context.Context, method, url string, data any) error {
	var body io.Reader
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return errors.Wrap(err, "encoding request body")
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return errors.Wrap(err, "creating request")
	}
	for key, values := range n.header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, url)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &NavigationError{
			StatusCode: resp.StatusCode,
			Method:     method,
			URL:        url,
			Body:       string(msg),
		}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
