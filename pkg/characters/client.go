// Package characters is a client for the characters REST API
// (GET/POST /characters, GET/PUT/DELETE /characters/{id}).
package characters

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 10 * time.Second

var ErrNotFound = errors.New("character not found")

// APIError is any non-2xx response other than 404.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("characters api: status %d: %s", e.StatusCode, e.Body)
}

type Character struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Occupation string `json:"occupation"`
	Cartoon    bool   `json:"cartoon"`
	Weapon     string `json:"weapon"`
}

// CharacterInput is the writable part of a Character.
type CharacterInput struct {
	Name       string `json:"name"`
	Occupation string `json:"occupation"`
	Cartoon    bool   `json:"cartoon"`
	Weapon     string `json:"weapon"`
}

type Client struct {
	http *resty.Client
}

type Option func(*resty.Client)

func WithTimeout(d time.Duration) Option {
	return func(c *resty.Client) { c.SetTimeout(d) }
}

func NewClient(baseURL string, opts ...Option) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultTimeout).
		SetHeader("Accept", "application/json")

	for _, opt := range opts {
		opt(rc)
	}

	return &Client{http: rc}
}

func (c *Client) List(ctx context.Context) ([]Character, error) {
	var out []Character
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/characters")
	if err := check(resp, err); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) Get(ctx context.Context, id int) (*Character, error) {
	var out Character
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", strconv.Itoa(id)).
		SetResult(&out).
		Get("/characters/{id}")
	if err := check(resp, err); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) Create(ctx context.Context, in CharacterInput) (*Character, error) {
	var out Character
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(in).
		SetResult(&out).
		Post("/characters")
	if err := check(resp, err); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) Update(ctx context.Context, id int, in CharacterInput) (*Character, error) {
	var out Character
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", strconv.Itoa(id)).
		SetBody(in).
		SetResult(&out).
		Put("/characters/{id}")
	if err := check(resp, err); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) Delete(ctx context.Context, id int) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", strconv.Itoa(id)).
		Delete("/characters/{id}")

	return check(resp, err)
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("characters api: %w", err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return ErrNotFound
	case resp.IsError() || resp.StatusCode() >= 300:
		return &APIError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	return nil
}
