// Package mapclient talks to the external map rendering backend: image
// generation, document export and document import. It owns the
// TransportError/FormatError taxonomy; callers surface messages on the
// status line and never retry.
package mapclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"salesmap/internal/exchange"
)

// Client is a thin HTTP client over the backend routes. One request in
// flight per action; no client-side queueing or cancellation beyond ctx.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// Artifact is a downloaded file: the export document or a rendered image.
type Artifact struct {
	Filename string
	Data     []byte
}

// Probe checks backend availability ahead of a real request. Callers do not
// inspect the outcome; it exists to warm the connection and mirror the
// preflight the backend expects.
func (c *Client) Probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/generate-map", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// GenerateMap posts the rendering payload and returns the PNG bytes.
func (c *Client) GenerateMap(ctx context.Context, genReq GenerateRequest) (Artifact, error) {
	const op = "generate map"
	body, err := json.Marshal(genReq)
	if err != nil {
		return Artifact{}, fmt.Errorf("%s: marshal request: %w", op, err)
	}
	resp, err := c.post(ctx, op, "/generate-map", "application/json", bytes.NewReader(body))
	if err != nil {
		return Artifact{}, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Artifact{}, &TransportError{Op: op, Err: err}
	}
	name := filenameFrom(resp, "sales_map.png")
	return Artifact{Filename: name, Data: data}, nil
}

// ExportRegions posts the exchange document and returns the document
// artifact. When the backend does not name the file, the fallback filename
// embeds a sortable timestamp.
func (c *Client) ExportRegions(ctx context.Context, doc exchange.Document) (Artifact, error) {
	const op = "export regions"
	body, err := exchange.Encode(doc)
	if err != nil {
		return Artifact{}, fmt.Errorf("%s: %w", op, err)
	}
	resp, err := c.post(ctx, op, "/export-regions", "application/json", bytes.NewReader(body))
	if err != nil {
		return Artifact{}, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Artifact{}, &TransportError{Op: op, Err: err}
	}
	fallback := fmt.Sprintf("regions_export_%s.json", time.Now().Format("20060102_150405"))
	return Artifact{Filename: filenameFrom(resp, fallback), Data: data}, nil
}

// ImportRegions uploads a document file and returns the parsed exchange
// document. Only .json files are offered to the backend; anything else is a
// FormatError before any network traffic happens.
func (c *Client) ImportRegions(ctx context.Context, filename string, r io.Reader) (exchange.Document, error) {
	const op = "import regions"
	if !strings.EqualFold(filepath.Ext(filename), ".json") {
		return exchange.Document{}, &FormatError{Message: "file must be JSON format"}
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return exchange.Document{}, fmt.Errorf("%s: build form: %w", op, err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return exchange.Document{}, &TransportError{Op: op, Err: err}
	}
	if err := form.Close(); err != nil {
		return exchange.Document{}, fmt.Errorf("%s: build form: %w", op, err)
	}

	resp, err := c.post(ctx, op, "/import-regions", form.FormDataContentType(), &buf)
	if err != nil {
		return exchange.Document{}, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return exchange.Document{}, &TransportError{Op: op, Err: err}
	}
	doc, err := exchange.Decode(data)
	if err != nil {
		return exchange.Document{}, &FormatError{Message: "invalid document format"}
	}
	return doc, nil
}

// post issues the request and folds failures into the error taxonomy: a
// structured {"error": ...} body becomes a FormatError with the backend's
// message, everything else a TransportError.
func (c *Client) post(ctx context.Context, op, path, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		if msg := errorMessage(resp); msg != "" {
			return nil, &FormatError{Message: msg}
		}
		return nil, &TransportError{Op: op, Status: resp.StatusCode}
	}
	return resp, nil
}

func errorMessage(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return ""
	}
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	return payload.Error
}

func filenameFrom(resp *http.Response, fallback string) string {
	cd := resp.Header.Get("Content-Disposition")
	if cd == "" {
		return fallback
	}
	_, params, err := mime.ParseMediaType(cd)
	if err != nil {
		return fallback
	}
	if name := params["filename"]; name != "" {
		return filepath.Base(name)
	}
	return fallback
}
