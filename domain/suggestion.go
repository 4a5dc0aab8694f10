package domain

// Suggestion is an externally sourced, read-only task-like item. Its ID belongs to the
// remote namespace and is never merged with local task ids.
type Suggestion struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// SuggestionStatus is the lifecycle tag of the suggestion fetch.
type SuggestionStatus string

const (
	SuggestionsIdle    SuggestionStatus = "idle"
	SuggestionsLoading SuggestionStatus = "loading"
	SuggestionsLoaded  SuggestionStatus = "loaded"
	SuggestionsFailed  SuggestionStatus = "failed"
)

// MsgSuggestionsUnavailable is shown whenever a suggestion fetch fails, whatever the cause.
const MsgSuggestionsUnavailable = "Failed to load suggested tasks."
