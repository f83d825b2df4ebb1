package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mentiroso/internal/domain"
)

// HTTPProvider talks to the remote word service
type HTTPProvider struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// categoriesResponse is the body of GET /categories. Entries may be null.
type categoriesResponse struct {
	Categories []*string `json:"categories"`
}

// randomResponse is the body of GET /random
type randomResponse struct {
	Text     string         `json:"text"`
	Category string         `json:"category"`
	Source   string         `json:"source"`
	Meta     map[string]any `json:"meta"`
}

// NewHTTPProvider creates a provider for the service at baseURL
func NewHTTPProvider(baseURL string, timeout time.Duration, logger *slog.Logger) *HTTPProvider {
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// ListCategories handles GET {base}/categories
func (p *HTTPProvider) ListCategories(ctx context.Context) ([]string, error) {
	var body categoriesResponse
	if err := p.getJSON(ctx, p.baseURL+"/categories", &body); err != nil {
		p.logger.Warn("category list unavailable", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrCategoriesUnavailable, err)
	}

	categories := make([]string, 0, len(body.Categories))
	for _, c := range body.Categories {
		if c != nil && *c != "" {
			categories = append(categories, *c)
		}
	}

	return categories, nil
}

// FetchSecret handles GET {base}/random?category=..&session=..
func (p *HTTPProvider) FetchSecret(ctx context.Context, category, sessionToken string) (domain.Secret, error) {
	u, err := url.Parse(p.baseURL + "/random")
	if err != nil {
		return domain.Secret{}, &ProviderError{Op: "random", Category: category, Err: err}
	}
	q := u.Query()
	q.Set("category", category)
	q.Set("session", sessionToken)
	u.RawQuery = q.Encode()

	var body randomResponse
	if err := p.getJSON(ctx, u.String(), &body); err != nil {
		return domain.Secret{}, &ProviderError{Op: "random", Category: category, Err: err}
	}

	if strings.TrimSpace(body.Text) == "" {
		return domain.Secret{}, &ProviderError{Op: "random", Category: category, Err: domain.ErrEmptySecret}
	}

	meta := body.Meta
	if meta == nil {
		meta = map[string]any{}
	}

	p.logger.Debug("secret fetched", "category", category, "source", body.Source)

	return domain.Secret{Text: body.Text, Meta: meta}, nil
}

func (p *HTTPProvider) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
