// Package intents registers the named view intents and queries on a dispatcher.
package intents

import (
	"context"
	"encoding/json"

	"github.com/fastygo/careconnect/usecase"
	"github.com/fastygo/careconnect/usecase/activity"
	"github.com/fastygo/careconnect/usecase/child"
	"github.com/fastygo/careconnect/usecase/task"
)

// Intent and query names accepted by the dispatcher.
const (
	AddActivity    = "activities/add"
	ToggleActivity = "activities/toggle"
	AddTask        = "tasks/add"
	ToggleTask     = "tasks/toggle"

	QueryActivities  = "activities"
	QueryWeather     = "weather"
	QueryTasks       = "tasks"
	QuerySuggestions = "suggestions"
	QueryChild       = "child"
)

type describePayload struct {
	Description string `json:"description"`
}

type togglePayload struct {
	ID int `json:"id"`
}

// Register wires every view intent and query into d. Each handler mounts its view
// before touching the store so that changes are persisted.
func Register(d *usecase.Dispatcher, activities *activity.UseCase, tasks *task.UseCase, profile *child.UseCase) {
	d.RegisterCommand(AddActivity, func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
		var in describePayload
		if err := usecase.DecodePayload(payload, &in); err != nil {
			return nil, err
		}
		activities.Mount(ctx)
		return activities.AddActivity(ctx, in.Description)
	})
	d.RegisterCommand(ToggleActivity, func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
		var in togglePayload
		if err := usecase.DecodePayload(payload, &in); err != nil {
			return nil, err
		}
		activities.Mount(ctx)
		return activities.ToggleActivity(ctx, in.ID)
	})
	d.RegisterCommand(AddTask, func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
		var in describePayload
		if err := usecase.DecodePayload(payload, &in); err != nil {
			return nil, err
		}
		tasks.Mount(ctx)
		return tasks.AddTask(ctx, in.Description)
	})
	d.RegisterCommand(ToggleTask, func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
		var in togglePayload
		if err := usecase.DecodePayload(payload, &in); err != nil {
			return nil, err
		}
		tasks.Mount(ctx)
		return tasks.ToggleTask(ctx, in.ID)
	})

	d.RegisterQuery(QueryActivities, func(ctx context.Context) (interface{}, error) {
		activities.Mount(ctx)
		return activities.Activities(), nil
	})
	d.RegisterQuery(QueryWeather, func(ctx context.Context) (interface{}, error) {
		activities.Mount(ctx)
		return activities.Weather(), nil
	})
	d.RegisterQuery(QueryTasks, func(ctx context.Context) (interface{}, error) {
		tasks.Mount(ctx)
		return tasks.State().Records, nil
	})
	d.RegisterQuery(QuerySuggestions, func(ctx context.Context) (interface{}, error) {
		tasks.Mount(ctx)
		return tasks.State().Suggestions, nil
	})
	if profile != nil {
		d.RegisterQuery(QueryChild, func(context.Context) (interface{}, error) {
			return profile.Profile(), nil
		})
	}
}
