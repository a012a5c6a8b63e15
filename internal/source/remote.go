package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	ErrMalformedPayload = errors.New("malformed ecg payload")
	ErrEmptySource      = errors.New("empty ecg source")
)

// FetchError cubre errores de red y respuestas no exitosas.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: HTTP error %d", e.URL, e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Payload es el cuerpo que devuelve el endpoint remoto.
type Payload struct {
	ECGValues []float64 `json:"ecgValues"`
}

// Decode parsea un Payload. Sin ecgValues (o vacío) devuelve ErrEmptySource.
func Decode(r io.Reader) (*Sequence, error) {
	var p Payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if len(p.ECGValues) == 0 {
		return nil, ErrEmptySource
	}
	return NewSequence(p.ECGValues), nil
}

// Client pide los samples al endpoint configurado.
type Client struct {
	url  string
	http *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{url: url, http: &http.Client{Timeout: timeout}}
}

func (c *Client) Fetch(ctx context.Context) (*Sequence, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &FetchError{URL: c.url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{URL: c.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &FetchError{URL: c.url, Status: resp.StatusCode}
	}

	return Decode(resp.Body)
}
