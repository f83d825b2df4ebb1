// Package provider fetches the categories and secret words a game is
// played with.
package provider

import (
	"context"
	"errors"
	"fmt"

	"mentiroso/internal/domain"
)

var (
	// ErrCategoriesUnavailable means the category list could not be loaded.
	// Callers fall back to their default categories.
	ErrCategoriesUnavailable = errors.New("categories unavailable")

	// ErrProvider is matched by every *ProviderError
	ErrProvider = errors.New("word provider failed")
)

// Provider supplies categories and secrets. The session token lets the
// provider avoid handing the same device a secret it already played.
type Provider interface {
	ListCategories(ctx context.Context) ([]string, error)
	FetchSecret(ctx context.Context, category, sessionToken string) (domain.Secret, error)
}

// ProviderError describes a failed secret fetch
type ProviderError struct {
	Op       string
	Category string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Category != "" {
		return fmt.Sprintf("%s %q: %v", e.Op, e.Category, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrProvider) true for any ProviderError
func (e *ProviderError) Is(target error) bool {
	return target == ErrProvider
}

// CategoriesOrDefault lists the provider's categories and falls back to
// defaults when the list is unavailable or empty. The second result
// reports whether the fallback was used.
func CategoriesOrDefault(ctx context.Context, p Provider, defaults []string) ([]string, bool) {
	categories, err := p.ListCategories(ctx)
	if err != nil || len(categories) == 0 {
		out := make([]string, len(defaults))
		copy(out, defaults)
		return out, true
	}
	return categories, false
}
