package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/fastygo/careconnect/domain"
	"github.com/fastygo/careconnect/internal/config"
	"github.com/fastygo/careconnect/repository"
)

type todo struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// SuggestionClient reads suggested tasks from a JSONPlaceholder-style /todos endpoint.
type SuggestionClient struct {
	*endpoint
	group singleflight.Group
}

var _ repository.SuggestionSource = (*SuggestionClient)(nil)

// NewSuggestionClient builds a client for cfg.BaseURL.
func NewSuggestionClient(cfg config.SuggestionsConfig, bc config.BreakerConfig, logger *zap.Logger) *SuggestionClient {
	return &SuggestionClient{
		endpoint: newEndpoint("suggestions", cfg.BaseURL, cfg.Timeout, bc, logger),
	}
}

// Suggestions returns at most limit items mapped to {id, title, completed}.
// Concurrent calls with the same limit share one request.
func (c *SuggestionClient) Suggestions(ctx context.Context, limit int) ([]domain.Suggestion, error) {
	if limit <= 0 {
		limit = 5
	}
	key := strconv.Itoa(limit)

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		body, err := c.get(ctx, "/todos", map[string]string{"_limit": key})
		if err != nil {
			return nil, err
		}

		var todos []todo
		if err := json.Unmarshal(body, &todos); err != nil {
			return nil, fmt.Errorf("decode suggestions: %w", err)
		}
		if len(todos) > limit {
			todos = todos[:limit]
		}

		items := make([]domain.Suggestion, 0, len(todos))
		for _, t := range todos {
			items = append(items, domain.Suggestion{ID: t.ID, Title: t.Title, Completed: t.Completed})
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}

	shared := v.([]domain.Suggestion)
	out := make([]domain.Suggestion, len(shared))
	copy(out, shared)
	return out, nil
}
