package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/nhan10132020/moviedb/internal/data"
	"go.uber.org/zap"
)

func (app *application) logError(r *http.Request, err error) {
	app.logger.Error(err.Error(),
		zap.String("request_method", r.Method),
		zap.String("request_url", r.URL.String()),
		zap.String("request_id", app.contextGetRequestID(r)),
	)
}

// errorResponse sends a JSON-formatted error message with the given status code.
func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	env := envelope{"error": message}

	err := app.writeJSON(w, status, env, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	message := "the server encountered a problem and could not process your request"
	app.errorResponse(w, r, http.StatusInternalServerError, message)
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource could not be found"
	app.errorResponse(w, r, http.StatusNotFound, message)
}

func (app *application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("the %s method is not supported for this resource", r.Method)
	app.errorResponse(w, r, http.StatusMethodNotAllowed, message)
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *application) failedValidationResponse(w http.ResponseWriter, r *http.Request, errors map[string]string) {
	app.errorResponse(w, r, http.StatusUnprocessableEntity, errors)
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	message := "rate limit exceeded"
	app.errorResponse(w, r, http.StatusTooManyRequests, message)
}

// recordNotFoundResponse answers an id or listing that resolves to nothing: 404 with an empty body.
func (app *application) recordNotFoundResponse(w http.ResponseWriter) {
	app.emptyResponse(w, http.StatusNotFound, nil)
}

// storageErrorResponse maps an error from a data.Store onto a response.
func (app *application) storageErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, data.ErrRecordNotFound):
		app.recordNotFoundResponse(w)
	case errors.Is(err, data.ErrInvalidData):
		app.errorResponse(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		app.serverErrorResponse(w, r, err)
	}
}
