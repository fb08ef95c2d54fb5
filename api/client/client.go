// Package client talks to the mouseglass JSON api. A client keeps its session
// cookie, so favorites and the selection persist across calls.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/aouyang1/mouseglass/api/models"
	"github.com/aouyang1/mouseglass/contact"
	"github.com/aouyang1/mouseglass/gallery"
	"github.com/aouyang1/mouseglass/share"
)

// APIError is a non-success response from the server.
type APIError struct {
	StatusCode int
	Message    string
	Fields     []string
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("server error: %s (%s)", e.Message, strings.Join(e.Fields, ", "))
	}
	return fmt.Sprintf("server error: %s", e.Message)
}

type GalleryClient struct {
	baseURL string
	client  *http.Client
}

func NewGalleryClient(baseURL string) (*GalleryClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return &GalleryClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
	}, nil
}

const sessionCookie = "mg_session"

// Session returns the session id the server assigned, if any.
func (gc *GalleryClient) Session() string {
	u, err := url.Parse(gc.baseURL)
	if err != nil {
		return ""
	}
	for _, c := range gc.client.Jar.Cookies(u) {
		if c.Name == sessionCookie {
			return c.Value
		}
	}
	return ""
}

// SetSession resumes an existing session.
func (gc *GalleryClient) SetSession(id string) error {
	u, err := url.Parse(gc.baseURL)
	if err != nil {
		return fmt.Errorf("invalid base url: %w", err)
	}
	gc.client.Jar.SetCookies(u, []*http.Cookie{{Name: sessionCookie, Value: id, Path: "/"}})
	return nil
}

func (gc *GalleryClient) do(ctx context.Context, method, path string, reqBody any) (*http.Response, error) {
	var body io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, gc.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := gc.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

func decodeError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var errResp models.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error, Fields: errResp.Fields}
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("status %d: %s", resp.StatusCode, string(body)),
	}
}

// doJSON sends reqBody, if any, and decodes a 2xx response into out.
func (gc *GalleryClient) doJSON(ctx context.Context, method, path string, reqBody, out any) error {
	resp, err := gc.do(ctx, method, path, reqBody)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// Images lists the images in category. An empty category uses the session's
// current filter.
func (gc *GalleryClient) Images(ctx context.Context, category gallery.Category) (*models.ImageListResponse, error) {
	path := "/api/images"
	if category != "" {
		path += "?category=" + url.QueryEscape(string(category))
	}
	var resp models.ImageListResponse
	if err := gc.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (gc *GalleryClient) Image(ctx context.Context, id int) (*models.ImageResponse, error) {
	var resp models.ImageResponse
	if err := gc.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/images/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (gc *GalleryClient) Categories(ctx context.Context) ([]gallery.CategoryCount, error) {
	var resp models.CategoryListResponse
	if err := gc.doJSON(ctx, http.MethodGet, "/api/categories", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

func (gc *GalleryClient) Filter(ctx context.Context) (gallery.Category, error) {
	var resp models.FilterResponse
	if err := gc.doJSON(ctx, http.MethodGet, "/api/filter", nil, &resp); err != nil {
		return "", err
	}
	return resp.Category, nil
}

func (gc *GalleryClient) SetFilter(ctx context.Context, category gallery.Category) (gallery.Category, error) {
	var resp models.FilterResponse
	req := models.FilterRequest{Category: string(category)}
	if err := gc.doJSON(ctx, http.MethodPut, "/api/filter", req, &resp); err != nil {
		return "", err
	}
	return resp.Category, nil
}

func (gc *GalleryClient) Favorites(ctx context.Context) ([]int, error) {
	var resp models.FavoritesResponse
	if err := gc.doJSON(ctx, http.MethodGet, "/api/favorites", nil, &resp); err != nil {
		return nil, err
	}
	return resp.IDs, nil
}

func (gc *GalleryClient) ToggleFavorite(ctx context.Context, id int) (*models.ToggleFavoriteResponse, error) {
	var resp models.ToggleFavoriteResponse
	if err := gc.doJSON(ctx, http.MethodPost, fmt.Sprintf("/api/favorites/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Selection returns the image open in the overlay, or nil.
func (gc *GalleryClient) Selection(ctx context.Context) (*gallery.ImageRecord, error) {
	var resp models.SelectionResponse
	if err := gc.doJSON(ctx, http.MethodGet, "/api/selection", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Image, nil
}

func (gc *GalleryClient) Select(ctx context.Context, id int) (*gallery.ImageRecord, error) {
	var resp models.SelectionResponse
	if err := gc.doJSON(ctx, http.MethodPut, "/api/selection", models.SelectRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return resp.Image, nil
}

func (gc *GalleryClient) ClearSelection(ctx context.Context) error {
	return gc.doJSON(ctx, http.MethodDelete, "/api/selection", nil, nil)
}

func (gc *GalleryClient) Share(ctx context.Context, id int, native bool) (*share.Result, error) {
	var resp share.Result
	req := models.ShareRequest{Native: native}
	if err := gc.doJSON(ctx, http.MethodPost, fmt.Sprintf("/api/images/%d/share", id), req, &resp); err != nil {
		return nil, err
	}

	// the server hands out relative links unless it knows its public url
	base, err := url.Parse(gc.baseURL + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	ref, err := url.Parse(resp.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid share url %q: %w", resp.URL, err)
	}
	resp.URL = base.ResolveReference(ref).String()
	return &resp, nil
}

// Download writes the image to w and returns the file name suggested by the
// server.
func (gc *GalleryClient) Download(ctx context.Context, id int, w io.Writer) (string, error) {
	resp, err := gc.do(ctx, http.MethodGet, fmt.Sprintf("/api/images/%d/download", id), nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", decodeError(resp)
	}

	name := fmt.Sprintf("%d", id)
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		name = params["filename"]
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read download: %w", err)
	}
	slog.Debug("downloaded image", "id", id, "name", name, "bytes", n)
	return name, nil
}

func (gc *GalleryClient) SubmitContact(ctx context.Context, form contact.Form) (*models.ContactResponse, error) {
	var resp models.ContactResponse
	if err := gc.doJSON(ctx, http.MethodPost, "/api/contact", form, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (gc *GalleryClient) ContactStatus(ctx context.Context) (*models.ContactResponse, error) {
	var resp models.ContactResponse
	if err := gc.doJSON(ctx, http.MethodGet, "/api/contact", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
