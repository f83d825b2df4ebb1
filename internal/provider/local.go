package provider

import (
	"context"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"mentiroso/internal/domain"
)

// LocalProvider serves secrets from the built-in word lists. It remembers
// which secrets each session already played so it does not repeat them.
type LocalProvider struct {
	categories []CategoryWords
	history    *expirable.LRU[string, []string] // session+category -> played secrets
	rng        *rand.Rand
	mu         sync.Mutex
}

// NewLocalProvider creates an offline provider. historySize bounds the
// number of sessions remembered and historyTTL how long they are kept.
func NewLocalProvider(categories []CategoryWords, historySize int, historyTTL time.Duration, rng *rand.Rand) *LocalProvider {
	if historySize <= 0 {
		historySize = 1
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &LocalProvider{
		categories: categories,
		history:    expirable.NewLRU[string, []string](historySize, nil, historyTTL),
		rng:        rng,
	}
}

// ListCategories returns the built-in category names
func (p *LocalProvider) ListCategories(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(p.categories))
	for _, c := range p.categories {
		names = append(names, c.Name)
	}
	return names, nil
}

// FetchSecret returns a random secret not yet played by the session
func (p *LocalProvider) FetchSecret(ctx context.Context, category, sessionToken string) (domain.Secret, error) {
	if err := ctx.Err(); err != nil {
		return domain.Secret{}, &ProviderError{Op: "random", Category: category, Err: err}
	}

	words := p.wordsFor(category)
	if len(words) == 0 {
		return domain.Secret{}, &ProviderError{Op: "random", Category: category, Err: domain.ErrUnknownCategory}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	key := sessionToken + "|" + category
	played, _ := p.history.Get(key)
	if len(played) >= len(words) {
		played = nil
	}

	word := p.randomWordExcluding(words, played)
	p.history.Add(key, append(slices.Clone(played), word))

	return domain.Secret{
		Text: word,
		Meta: map[string]any{"source": "local"},
	}, nil
}

func (p *LocalProvider) wordsFor(category string) []string {
	for _, c := range p.categories {
		if c.Name == category {
			return c.Words
		}
	}
	return nil
}

// randomWordExcluding returns a random word that's not in the excluded list
func (p *LocalProvider) randomWordExcluding(words, excluded []string) string {
	excludeMap := make(map[string]bool, len(excluded))
	for _, w := range excluded {
		excludeMap[w] = true
	}

	candidates := make([]string, 0, len(words))
	for _, w := range words {
		if !excludeMap[w] {
			candidates = append(candidates, w)
		}
	}

	if len(candidates) == 0 {
		return words[p.rng.Intn(len(words))]
	}

	return candidates[p.rng.Intn(len(candidates))]
}
