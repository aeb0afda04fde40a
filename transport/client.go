package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"profile-sync/config"
	"profile-sync/session"
)

// Client kapselt alle ausgehenden Anfragen an das Profil-Backend.
// Genau ein Versuch pro Aufruf; Retry-Politik ist Sache der Aufrufer.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Session
	logger     *zap.Logger
}

// NewClient erstellt einen Client mit dem konfigurierten Request-Timeout.
func NewClient(cfg *config.Config, sess *session.Session, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.APIBaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		session:    sess,
		logger:     logger,
	}
}

// Request führt eine JSON-Anfrage aus. body == nil sendet keinen Body.
// Ein vorhandenes Session-Token wird als Bearer-Header mitgeschickt.
func (c *Client) Request(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req)
}

// PostForm sendet form-kodierte Felder; die Auth-Endpunkte erwarten das so.
func (c *Client) PostForm(ctx context.Context, path string, values url.Values) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log := c.logger.With(zap.String("method", req.Method), zap.String("path", req.URL.Path))
	log.Debug("Calling backend")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("Backend unreachable", zap.Error(err))
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}
	log.Debug("Backend returned failure status", zap.Int("status", resp.StatusCode))
	return nil, c.errorFromResponse(req.URL.Path, resp.StatusCode, data)
}

// errorFromResponse übersetzt eine Fehlerantwort in die Fehler-Taxonomie.
func (c *Client) errorFromResponse(path string, status int, body []byte) error {
	switch status {
	case http.StatusNotFound:
		return &NotFoundError{Path: path}
	case http.StatusUnprocessableEntity:
		if verr := parseValidationDetail(body); verr != nil {
			return verr
		}
	}

	// Backend-Meldungen kommen als {"detail": "..."} oder {"error": "..."}.
	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	message := http.StatusText(status)
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Detail != "" {
			message = payload.Detail
		} else if payload.Error != "" {
			message = payload.Error
		}
	}
	return &HTTPError{Status: status, Message: message}
}

// parseValidationDetail liest das 422-Format {detail: [{loc, msg, type}, ...]}.
func parseValidationDetail(body []byte) *ValidationError {
	var payload struct {
		Detail []struct {
			Loc  []any  `json:"loc"`
			Msg  string `json:"msg"`
			Type string `json:"type"`
		} `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return nil
	}

	fields := make(map[string][]string, len(payload.Detail))
	for _, d := range payload.Detail {
		field := "_"
		// loc ist z.B. ["body", "title"]; der letzte String-Eintrag ist das Feld.
		for _, part := range d.Loc {
			if s, ok := part.(string); ok && s != "body" {
				field = s
			}
		}
		fields[field] = append(fields[field], d.Msg)
	}
	return &ValidationError{Fields: fields}
}
