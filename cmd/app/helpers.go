package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// envelope wraps error bodies and the healthcheck. Records and lists are
// written bare.
type envelope map[string]any

const maxBodyBytes = 1 << 20

// writeJSON writes data as the complete response body.
func (app *application) writeJSON(w http.ResponseWriter, status int, data any) error {
	body, err := json.Marshal(data)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(append(body, '\n'))

	return err
}

type fieldPolicy int

const (
	// rejectUnknown fails on keys the target struct does not declare.
	rejectUnknown fieldPolicy = iota
	// ignoreUnknown drops undeclared keys, so a blog as served by the API
	// (id, user, userId) can be posted back unchanged.
	ignoreUnknown
)

// parseJSON decodes exactly one JSON value from the body into dst. The
// returned errors are safe to send back to the client.
func (app *application) parseJSON(w http.ResponseWriter, r *http.Request, dst any, policy fieldPolicy) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if policy == rejectUnknown {
		dec.DisallowUnknownFields()
	}

	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body holds more than one JSON value")
	}

	return nil
}

func decodeError(err error) error {
	var (
		syntaxErr     *json.SyntaxError
		typeErr       *json.UnmarshalTypeError
		tooLargeErr   *http.MaxBytesError
		invalidDstErr *json.InvalidUnmarshalError
	)

	switch {
	case errors.Is(err, io.EOF):
		return errors.New("request body is empty")
	case errors.Is(err, io.ErrUnexpectedEOF):
		return errors.New("request body is truncated JSON")
	case errors.As(err, &syntaxErr):
		return fmt.Errorf("malformed JSON at byte %d", syntaxErr.Offset)
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return fmt.Errorf("unexpected JSON %s at byte %d", typeErr.Value, typeErr.Offset)
		}
		return fmt.Errorf("field %q must be a %s", typeErr.Field, jsonKind(typeErr.Type.Kind().String()))
	case errors.As(err, &tooLargeErr):
		return fmt.Errorf("request body exceeds %d bytes", tooLargeErr.Limit)
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		return fmt.Errorf("unknown field %s in request body", strings.TrimPrefix(err.Error(), "json: unknown field "))
	case errors.As(err, &invalidDstErr):
		// dst is not a pointer; a programming error, not a client one.
		panic(err)
	default:
		return err
	}
}

func jsonKind(goKind string) string {
	switch {
	case strings.HasPrefix(goKind, "int"), strings.HasPrefix(goKind, "uint"), strings.HasPrefix(goKind, "float"):
		return "number"
	case goKind == "bool":
		return "boolean"
	case goKind == "slice", goKind == "array":
		return "array"
	case goKind == "struct", goKind == "map":
		return "object"
	default:
		return goKind
	}
}

// readIDParam parses a positive integer route parameter.
func (app *application) readIDParam(r *http.Request, key string) (int, error) {
	raw := httprouter.ParamsFromContext(r.Context()).ByName(key)

	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("malformed %s %q", key, raw)
	}

	return id, nil
}

// readLimitOffsetParams returns nil for parameters that were not supplied.
func (app *application) readLimitOffsetParams(r *http.Request) (*int, *int, error) {
	query := r.URL.Query()

	limit, err := optionalInt(query.Get("limit"), "limit")
	if err != nil {
		return nil, nil, err
	}

	offset, err := optionalInt(query.Get("offset"), "offset")
	if err != nil {
		return nil, nil, err
	}

	return limit, offset, nil
}

func optionalInt(raw, name string) (*int, error) {
	if raw == "" {
		return nil, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("malformed %s %q", name, raw)
	}

	return &n, nil
}
