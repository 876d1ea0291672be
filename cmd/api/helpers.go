package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/nhan10132020/moviedb/internal/validator"
)

func (app *application) readIDParam(r *http.Request) (int64, error) {
	params := httprouter.ParamsFromContext(r.Context())

	id, err := strconv.ParseInt(params.ByName("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid id parameter")
	}
	return id, nil
}

type envelope map[string]interface{}

func (app *application) writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)

	return nil
}

// emptyResponse writes a status line with no body.
func (app *application) emptyResponse(w http.ResponseWriter, status int, headers http.Header) {
	for key, value := range headers {
		w.Header()[key] = value
	}
	w.WriteHeader(status)
}

// readJSON decodes a single JSON object from the request body into dst and
// also returns the object's top-level keys, so callers can tell an absent
// key from one explicitly set to null.
func (app *application) readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) (map[string]json.RawMessage, error) {
	// limit the size of request body to 1MB
	maxBytes := 1_048_576
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			return nil, fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)
		}
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(body))

	// keys that cannot be mapped to the destination are an error instead of being ignored
	dec.DisallowUnknownFields()

	err = dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError

		switch {
		// syntax problem with the JSON being decoded
		case errors.As(err, &syntaxError):
			return nil, fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)

		// In some case, Decode() may also return io.ErrUnexpectedEOF for syntax errors in the JSON
		case errors.Is(err, io.ErrUnexpectedEOF):
			return nil, errors.New("body contains badly-formed JSON")

		// JSON value is the wrong type for the target destination
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return nil, fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return nil, fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)

		// request body is empty
		case errors.Is(err, io.EOF):
			return nil, errors.New("body must not be empty")

		// JSON contains a field which cannot be mapped to the target destination
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return nil, fmt.Errorf("body contains unknown key %s", fieldName)

		// the value we pass to Decode() is non-nil pointer or not a pointer
		case errors.As(err, &invalidUnmarshalError):
			panic(err)

		default:
			return nil, err
		}
	}

	// check that if the body ONLY contains single JSON value
	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return nil, errors.New("body must only contain a single JSON value")
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil || keys == nil {
		return nil, errors.New("body must be a JSON object")
	}

	return keys, nil
}

// readInt parses the query string value for key. ok reports whether a
// non-empty value was supplied; a value that is not an integer is recorded in v.
func (app *application) readInt(qs url.Values, key string, v *validator.Validator) (value int64, ok bool) {
	s := qs.Get(key)
	if s == "" {
		return 0, false
	}

	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		v.AddError(key, "must be an integer value")
		return 0, true
	}

	return i, true
}
