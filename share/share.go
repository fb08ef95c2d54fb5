// Package share prepares share payloads for gallery images.
package share

import (
	"context"
	"errors"
	"log/slog"
)

var ErrNoURL = errors.New("share url is required")

type Method string

const (
	// MethodNative hands the payload to the browser's share sheet.
	MethodNative Method = "native"
	// MethodClipboard copies the page URL when no share sheet exists.
	MethodClipboard Method = "clipboard"
)

type Request struct {
	Title  string
	Text   string
	URL    string
	Native bool
}

type Result struct {
	Method Method `json:"method"`
	Title  string `json:"title,omitempty"`
	Text   string `json:"text,omitempty"`
	URL    string `json:"url"`
}

type Service interface {
	Share(ctx context.Context, req Request) (Result, error)
}

// WebShare decides between the browser share sheet and the clipboard
// fallback. The browser performs the actual share.
type WebShare struct{}

func (WebShare) Share(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if req.URL == "" {
		return Result{}, ErrNoURL
	}

	if !req.Native {
		slog.Debug("share falling back to clipboard", "url", req.URL)
		return Result{Method: MethodClipboard, URL: req.URL}, nil
	}
	return Result{
		Method: MethodNative,
		Title:  req.Title,
		Text:   req.Text,
		URL:    req.URL,
	}, nil
}
