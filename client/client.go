// Package client is the consumer side of the marketplace: an API client with
// session cookies, an explicit application-state store, and the view models
// behind the listing-details and profile screens.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"estate-marketplace/internal/domain"
)

// APIError is the decoded error body of a failed request.
type APIError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to the backend HTTP surface. The cookie jar keeps the session
// token between calls.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Jar: jar},
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			apiErr.Message = resp.Status
		}
		return apiErr
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) SignUp(ctx context.Context, username, email, password string) (*domain.User, error) {
	var user domain.User
	err := c.do(ctx, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*domain.User, error) {
	var user domain.User
	err := c.do(ctx, http.MethodPost, "/api/auth/signin", map[string]string{
		"email":    email,
		"password": password,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) SignOut(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/auth/signout", nil, nil)
}

func (c *Client) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	var listing domain.Listing
	if err := c.do(ctx, http.MethodGet, "/api/listing/get/"+id, nil, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (c *Client) SearchListings(ctx context.Context, query url.Values) ([]*domain.Listing, error) {
	path := "/api/listing/get"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	var listings []*domain.Listing
	if err := c.do(ctx, http.MethodGet, path, nil, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func (c *Client) CreateListing(ctx context.Context, listing *domain.Listing) (*domain.Listing, error) {
	var created domain.Listing
	if err := c.do(ctx, http.MethodPost, "/api/listing/create", listing, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateListing(ctx context.Context, id string, fields map[string]interface{}) (*domain.Listing, error) {
	var updated domain.Listing
	if err := c.do(ctx, http.MethodPost, "/api/listing/update/"+id, fields, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteListing(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/listing/delete/"+id, nil, nil)
}

func (c *Client) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/api/user/"+id, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, form ProfileForm) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodPost, "/api/user/update/"+id, form, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/user/delete/"+id, nil, nil)
}
