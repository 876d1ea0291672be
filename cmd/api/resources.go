package main

import (
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/nhan10132020/moviedb/internal/data"
	"github.com/nhan10132020/moviedb/internal/validator"
)

// resource serves the collection endpoint /<name>/ and the item endpoint
// /<name>/:id for one record type.
type resource[T data.Record] struct {
	app   *application
	name  string
	store data.Store[T]

	// filters are integer query parameters naming a column. They are
	// consulted in order and only the first one with a value is applied.
	filters []string
}

func (res *resource[T]) register(router *httprouter.Router) {
	collection := "/" + res.name + "/"
	item := collection + ":id"

	router.HandlerFunc(http.MethodGet, collection, res.listHandler)
	router.HandlerFunc(http.MethodPost, collection, res.createHandler)
	router.HandlerFunc(http.MethodGet, item, res.showHandler)
	router.HandlerFunc(http.MethodPut, item, res.replaceHandler)
	router.HandlerFunc(http.MethodPatch, item, res.updateHandler)
	router.HandlerFunc(http.MethodDelete, item, res.deleteHandler)
}

func (res *resource[T]) listHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	v := validator.New()

	var filters []data.Filter
	for _, key := range res.filters {
		if value, ok := res.app.readInt(qs, key, v); ok {
			filters = append(filters, data.Filter{Column: key, Value: value})
			break
		}
	}

	if !v.Valid() {
		res.app.failedValidationResponse(w, r, v.Errors)
		return
	}

	records, err := res.store.GetAll(filters...)
	if err != nil {
		res.app.storageErrorResponse(w, r, err)
		return
	}

	// an empty listing is reported as not found
	if len(records) == 0 {
		res.app.recordNotFoundResponse(w)
		return
	}

	err = res.app.writeJSON(w, http.StatusOK, records, nil)
	if err != nil {
		res.app.serverErrorResponse(w, r, err)
	}
}

func (res *resource[T]) createHandler(w http.ResponseWriter, r *http.Request) {
	var record T

	_, err := res.app.readJSON(w, r, &record)
	if err != nil {
		res.app.badRequestResponse(w, r, err)
		return
	}

	err = res.store.Insert(&record)
	if err != nil {
		res.app.storageErrorResponse(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/%s/%d", res.name, record.RecordID()))

	res.app.emptyResponse(w, http.StatusCreated, headers)
}

func (res *resource[T]) showHandler(w http.ResponseWriter, r *http.Request) {
	id, err := res.app.readIDParam(r)
	if err != nil {
		res.app.recordNotFoundResponse(w)
		return
	}

	record, err := res.store.Get(id)
	if err != nil {
		res.app.storageErrorResponse(w, r, err)
		return
	}

	err = res.app.writeJSON(w, http.StatusOK, record, nil)
	if err != nil {
		res.app.serverErrorResponse(w, r, err)
	}
}

// replaceHandler assigns every mutable field; keys missing from the body are stored as null.
func (res *resource[T]) replaceHandler(w http.ResponseWriter, r *http.Request) {
	res.modify(w, r, false)
}

// updateHandler assigns only the keys present in the body.
func (res *resource[T]) updateHandler(w http.ResponseWriter, r *http.Request) {
	res.modify(w, r, true)
}

func (res *resource[T]) modify(w http.ResponseWriter, r *http.Request, partial bool) {
	id, err := res.app.readIDParam(r)
	if err != nil {
		res.app.recordNotFoundResponse(w)
		return
	}

	var input T

	keys, err := res.app.readJSON(w, r, &input)
	if err != nil {
		res.app.badRequestResponse(w, r, err)
		return
	}

	fields := input.Fields()
	if partial {
		for column := range fields {
			if _, ok := keys[column]; !ok {
				delete(fields, column)
			}
		}
	}

	err = res.store.Update(id, fields)
	if err != nil {
		res.app.storageErrorResponse(w, r, err)
		return
	}

	res.app.emptyResponse(w, http.StatusNoContent, nil)
}

func (res *resource[T]) deleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := res.app.readIDParam(r)
	if err != nil {
		res.app.recordNotFoundResponse(w)
		return
	}

	err = res.store.Delete(id)
	if err != nil {
		res.app.storageErrorResponse(w, r, err)
		return
	}

	res.app.emptyResponse(w, http.StatusNoContent, nil)
}
