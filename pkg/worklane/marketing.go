package worklane

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// CreatePoster uploads a poster image with the prompt it was made from. The
// backend stores the file as given and returns the saved record.
func (c *Client) CreatePoster(ctx context.Context, prompt, filename string, image io.Reader) (Poster, error) {
	body, err := posterForm(prompt, filename, image)
	if err != nil {
		return Poster{}, err
	}

	var out Poster
	if err := c.DoJSON(ctx, http.MethodPost, "/api/marketing/add/", body, &out); err != nil {
		return Poster{}, err
	}
	return out, nil
}

// posterForm buffers the whole multipart body so Do can replay it on retry.
func posterForm(prompt, filename string, image io.Reader) (RawBody, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("prompt", prompt); err != nil {
		return RawBody{}, err
	}
	part, err := w.CreateFormFile("image", filename)
	if err != nil {
		return RawBody{}, err
	}
	if _, err := io.Copy(part, image); err != nil {
		return RawBody{}, fmt.Errorf("failed to read poster image: %w", err)
	}
	if err := w.Close(); err != nil {
		return RawBody{}, err
	}

	return RawBody{ContentType: w.FormDataContentType(), Data: buf.Bytes()}, nil
}

// ListPosters returns the user's posters, newest first.
func (c *Client) ListPosters(ctx context.Context) ([]Poster, error) {
	var out []Poster
	if err := c.DoJSON(ctx, http.MethodGet, "/api/marketing/all/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeletePoster(ctx context.Context, id int64) error {
	return c.DoJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/marketing/delete/%d/", id), nil, nil)
}

// Dashboard fetches the home page summary.
func (c *Client) Dashboard(ctx context.Context) (DashboardData, error) {
	var out DashboardData
	if err := c.DoJSON(ctx, http.MethodGet, "/api/dashboard/data/", nil, &out); err != nil {
		return DashboardData{}, err
	}
	return out, nil
}
