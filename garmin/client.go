// Package garmin implements the upload sink: it pushes a completed FIT
// payload to Garmin Connect as an opaque activity file.
//
// The client expects an already-established session token; the login
// protocol is outside its scope.
package garmin

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/goccy/go-json"

	fitsync "github.com/openhealth/fitsync"
	"github.com/openhealth/fitsync/errs"
)

const (
	defaultBaseURL = "https://connectapi.garmin.com"
	uploadPath     = "/upload-service/upload"

	// defaultUserAgent mirrors the Connect mobile app; the upload service
	// rejects unknown agents.
	defaultUserAgent = "GCM-iOS-5.7.2.1"
)

// Config configures a Client.
type Config struct {
	// SessionToken is the pre-established Connect session token. Required.
	SessionToken string

	// BaseURL overrides the API endpoint, mainly for tests.
	BaseURL string

	// UserAgent overrides the User-Agent header.
	UserAgent string

	// HTTPClient overrides the transport; http.DefaultClient when nil.
	HTTPClient *http.Client
}

// Client uploads FIT files to Garmin Connect.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	userAgent  string
}

var _ fitsync.Sink = (*Client)(nil)

// NewClient creates an upload sink client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.SessionToken == "" {
		return nil, fmt.Errorf("%w: garmin session token", errs.ErrMissingToken)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		token:      cfg.SessionToken,
		userAgent:  userAgent,
	}, nil
}

// uploadResult is the subset of the upload response the client inspects.
type uploadResult struct {
	DetailedImportResult struct {
		Failures []struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		} `json:"failures"`
	} `json:"detailedImportResult"`
}

// Upload sends the FIT payload as a multipart file upload. The payload is
// treated as opaque; the sink recognizes the file by its .fit extension.
func (c *Client) Upload(ctx context.Context, filename string, data []byte) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("build upload body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("build upload body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("build upload body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, &body)
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read upload response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", errs.ErrUploadRejected, resp.StatusCode)
	}

	// A 2xx can still carry per-file import failures.
	var result uploadResult
	if err := json.Unmarshal(respBody, &result); err == nil {
		if n := len(result.DetailedImportResult.Failures); n > 0 {
			msg := ""
			if len(result.DetailedImportResult.Failures[0].Messages) > 0 {
				msg = result.DetailedImportResult.Failures[0].Messages[0].Content
			}

			return fmt.Errorf("%w: %d import failures: %s", errs.ErrUploadRejected, n, msg)
		}
	}

	return nil
}
