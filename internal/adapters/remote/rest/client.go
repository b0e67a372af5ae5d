package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/studypomo/internal/domain"
	"github.com/bnema/studypomo/internal/ports"
)

const maxResponseBytes = 8 << 20

// Client talks to the document API:
//
//	PUT  {base}/users/{uid}/sessions/{id}
//	GET  {base}/users/{uid}/sessions
//	PUT  {base}/users/{uid}/settings/sections
//	PUT  {base}/users/{uid}/settings/theme
//	POST {base}/users/{uid}/batch
//
// HTTPClient is expected to carry authentication, usually an oauth2 client.
type Client struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var _ ports.RemoteStore = Client{}

// StatusError is a non-2xx response from the document API.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Code)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func IsStatus(err error, code int) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Code == code
}

type sectionsDocument struct {
	Items domain.Sections `json:"items"`
}

type themeDocument struct {
	Value domain.Theme `json:"value"`
}

type sessionsListing struct {
	Documents []domain.Session `json:"documents"`
}

type batchRequest struct {
	Sessions []domain.Session `json:"sessions"`
	Sections *sectionsDocument `json:"sections,omitempty"`
}

func New(baseURL string, httpClient *http.Client, timeout time.Duration) (Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return Client{}, fmt.Errorf("parse remote url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return Client{}, errors.New("remote url must use http or https")
	}
	if parsed.Host == "" {
		return Client{}, errors.New("remote url host is required")
	}

	return Client{BaseURL: parsed.String(), HTTPClient: httpClient, RequestTimeout: timeout}, nil
}

func (c Client) UpsertSession(ctx context.Context, userID string, session domain.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, userPath(userID, "sessions", session.ID), session, nil)
}

func (c Client) PutSections(ctx context.Context, userID string, sections domain.Sections) error {
	if sections == nil {
		sections = domain.Sections{}
	}
	return c.do(ctx, http.MethodPut, userPath(userID, "settings", "sections"), sectionsDocument{Items: sections}, nil)
}

func (c Client) PutTheme(ctx context.Context, userID string, theme domain.Theme) error {
	if _, err := domain.ParseTheme(string(theme)); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, userPath(userID, "settings", "theme"), themeDocument{Value: theme}, nil)
}

func (c Client) MergeBatch(ctx context.Context, userID string, sessions []domain.Session, sections domain.Sections) error {
	req := batchRequest{Sessions: sessions}
	if req.Sessions == nil {
		req.Sessions = []domain.Session{}
	}
	if sections != nil {
		req.Sections = &sectionsDocument{Items: sections}
	}
	return c.do(ctx, http.MethodPost, userPath(userID, "batch"), req, nil)
}

func (c Client) Fetch(ctx context.Context, userID string) (domain.Snapshot, error) {
	var listing sessionsListing
	if err := c.get(ctx, userPath(userID, "sessions"), &listing); err != nil {
		return domain.Snapshot{}, fmt.Errorf("fetch sessions: %w", err)
	}

	var sections sectionsDocument
	if err := c.get(ctx, userPath(userID, "settings", "sections"), &sections); err != nil {
		return domain.Snapshot{}, fmt.Errorf("fetch sections: %w", err)
	}

	var theme themeDocument
	if err := c.get(ctx, userPath(userID, "settings", "theme"), &theme); err != nil {
		return domain.Snapshot{}, fmt.Errorf("fetch theme: %w", err)
	}

	sessions := listing.Documents
	if sessions == nil {
		sessions = []domain.Session{}
	}
	return domain.Snapshot{Sessions: sessions, Sections: sections.Items, Theme: theme.Value}, nil
}

// get decodes into dst and leaves it untouched on 404.
func (c Client) get(ctx context.Context, path string, dst any) error {
	err := c.do(ctx, http.MethodGet, path, nil, dst)
	if IsStatus(err, http.StatusNotFound) {
		return nil
	}
	return err
}

func (c Client) do(ctx context.Context, method, path string, body any, dst any) error {
	if c.BaseURL == "" {
		return domain.ErrRemoteNotConfigured
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(data)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if dst == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(dst); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}

	return nil
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	timeout := c.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

func userPath(userID string, parts ...string) string {
	var b strings.Builder
	b.WriteString("/users/")
	b.WriteString(url.PathEscape(userID))
	for _, part := range parts {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(part))
	}
	return b.String()
}
