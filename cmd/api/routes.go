package main

import (
	"expvar"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/nhan10132020/moviedb/internal/data"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/healthcheck", app.healthcheckHandler)

	movies := &resource[data.Movie]{
		app:     app,
		name:    "movies",
		store:   app.models.Movies,
		filters: []string{"director_id", "genre_id"},
	}
	directors := &resource[data.Director]{
		app:   app,
		name:  "directors",
		store: app.models.Directors,
	}
	genres := &resource[data.Genre]{
		app:   app,
		name:  "genres",
		store: app.models.Genres,
	}

	movies.register(router)
	directors.register(router)
	genres.register(router)

	router.Handler(http.MethodGet, "/debug/vars", expvar.Handler())
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())

	return app.metrics(app.recoverPanic(app.requestID(app.logRequest(app.enableCORS(app.rateLimit(router))))))
}
