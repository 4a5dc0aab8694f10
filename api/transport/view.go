package transport

import (
	"strconv"
	"time"

	"github.com/fastygo/careconnect/domain"
	"github.com/fastygo/careconnect/internal/store"
	"github.com/fastygo/careconnect/pkg/timefmt"
)

// Display texts shared by the views.
const (
	MsgNoActivities      = "No updates yet. Add the first update below."
	MsgNoTasks           = "No tasks yet. Add your first task below."
	MsgNoSuggestions     = "No suggested tasks available right now."
	MsgWeatherNotPresent = "Weather information is not available right now."
)

// RecordView is a record with its display labels.
type RecordView struct {
	ID          int       `json:"id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedOn   string    `json:"createdOn"`
	CreatedAgo  string    `json:"createdAgo"`
	IsCompleted bool      `json:"isCompleted"`
	Status      string    `json:"status"`
}

// WeatherView is the dashboard weather card.
type WeatherView struct {
	Temperature *float64 `json:"temperature"`
	WindSpeed   *float64 `json:"windSpeed"`
	Summary     string   `json:"summary,omitempty"`
	LastUpdated string   `json:"lastUpdated,omitempty"`
	IsLoading   bool     `json:"isLoading"`
	Error       string   `json:"error,omitempty"`
}

type DashboardView struct {
	Weather      WeatherView  `json:"weather"`
	Activities   []RecordView `json:"activities"`
	EmptyMessage string       `json:"emptyMessage,omitempty"`
}

type SuggestionsView struct {
	Status       domain.SuggestionStatus `json:"status"`
	IsLoading    bool                    `json:"isLoading"`
	Items        []domain.Suggestion     `json:"items"`
	Error        string                  `json:"error,omitempty"`
	EmptyMessage string                  `json:"emptyMessage,omitempty"`
}

type TasksView struct {
	Suggestions  SuggestionsView `json:"suggestions"`
	Tasks        []RecordView    `json:"tasks"`
	EmptyMessage string          `json:"emptyMessage,omitempty"`
}

// Renderer turns store state into views. Times are shown in Location.
type Renderer struct {
	Location *time.Location
	Now      func() time.Time
}

func (r Renderer) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func (r Renderer) Records(records []domain.Record) []RecordView {
	now := r.now()
	out := make([]RecordView, 0, len(records))
	for _, rec := range records {
		out = append(out, RecordView{
			ID:          rec.ID,
			Description: rec.Description,
			CreatedAt:   rec.CreatedAt,
			CreatedOn:   timefmt.Absolute(rec.CreatedAt, r.Location),
			CreatedAgo:  timefmt.Relative(rec.CreatedAt, now),
			IsCompleted: rec.IsCompleted,
			Status:      rec.StatusLabel(),
		})
	}
	return out
}

func (r Renderer) Weather(w domain.WeatherState) WeatherView {
	view := WeatherView{
		Temperature: w.Temperature,
		WindSpeed:   w.WindSpeed,
		IsLoading:   w.IsLoading,
		Error:       w.Error,
	}
	if w.LastUpdated != nil {
		view.LastUpdated = timefmt.Absolute(*w.LastUpdated, r.Location)
	}
	switch {
	case w.IsLoading || w.Error != "":
	case w.Temperature == nil || w.WindSpeed == nil:
		view.Summary = MsgWeatherNotPresent
	default:
		view.Summary = formatReading(*w.Temperature) + "°C, wind " + formatReading(*w.WindSpeed) + " km/h"
	}
	return view
}

func (r Renderer) Dashboard(activities []domain.Record, weather domain.WeatherState) DashboardView {
	view := DashboardView{
		Weather:    r.Weather(weather),
		Activities: r.Records(activities),
	}
	if len(activities) == 0 {
		view.EmptyMessage = MsgNoActivities
	}
	return view
}

func (r Renderer) Suggestions(s store.SuggestionState) SuggestionsView {
	items := s.Items
	if items == nil {
		items = []domain.Suggestion{}
	}
	view := SuggestionsView{
		Status:    s.Status,
		IsLoading: s.Status == domain.SuggestionsLoading,
		Items:     items,
		Error:     s.Error,
	}
	if s.Status == domain.SuggestionsLoaded && len(items) == 0 {
		view.EmptyMessage = MsgNoSuggestions
	}
	return view
}

func (r Renderer) Tasks(state store.TaskState) TasksView {
	view := TasksView{
		Suggestions: r.Suggestions(state.Suggestions),
		Tasks:       r.Records(state.Records),
	}
	if len(state.Records) == 0 {
		view.EmptyMessage = MsgNoTasks
	}
	return view
}

func formatReading(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
