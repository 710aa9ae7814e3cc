package mock

import (
	"io"
	"net/http"
	"strings"
)

// RoundTripFunc serves requests without a network.
type RoundTripFunc func(*http.Request) (*http.Response, error)

func (f RoundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func NewHTTPClient(f RoundTripFunc) *http.Client {
	return &http.Client{Transport: f}
}

func NewHTTPResponse(code int, body string) *http.Response {
	return &http.Response{
		StatusCode: code,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}
