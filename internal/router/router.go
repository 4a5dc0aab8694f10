package router

import (
	"github.com/fasthttp/router"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	apiHandler "github.com/fastygo/careconnect/api/handler"
)

type Handlers struct {
	Activity *apiHandler.ActivityHandler
	Task     *apiHandler.TaskHandler
	Child    *apiHandler.ChildHandler
	Intent   *apiHandler.IntentHandler
	Health   *apiHandler.HealthHandler
}

type Options struct {
	EnableMetrics bool
}

func New(handlers Handlers, opts Options) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)
	if opts.EnableMetrics {
		r.GET("/metrics", fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler()))
	}

	// Views
	r.GET("/dashboard", handlers.Activity.Dashboard)
	r.GET("/tasks", handlers.Task.Tasks)
	r.GET("/child", handlers.Child.Profile)

	r.POST("/api/v1/activities", handlers.Activity.AddActivity)
	r.POST("/api/v1/activities/{id}/toggle", handlers.Activity.ToggleActivity)

	r.POST("/api/v1/tasks", handlers.Task.AddTask)
	r.POST("/api/v1/tasks/{id}/toggle", handlers.Task.ToggleTask)

	r.POST("/api/v1/intents", handlers.Intent.Dispatch)
	r.GET("/api/v1/queries/{name}", handlers.Intent.Query)

	r.NotFound = func(ctx *fasthttp.RequestCtx) {
		ctx.Response.Header.SetContentType("application/json")
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		ctx.SetBodyString(`{"status":"error","code":"NOT_FOUND","error":"route not found"}`)
	}

	return r
}
