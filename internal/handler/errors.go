package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/travel-agency/internal/domain"
)

// handlerFunc is an HTTP handler that may return an error it chose not to
// translate. Such errors reach the fault boundary in Server.handle.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// handle adapts a handlerFunc to http.HandlerFunc. Any returned error is
// logged with the request id and answered with a generic 500; internal
// details never reach the client. If the handler already sent a status line
// (e.g. JSON encoding failed mid-body) the error is only logged.
func (s *Server) handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		err := fn(ww, r)
		if err == nil {
			return
		}
		// chi's Timeout middleware answers 504 once the request deadline passes.
		if errors.Is(r.Context().Err(), context.DeadlineExceeded) {
			s.log.WarnContext(r.Context(), "request deadline exceeded",
				"path", r.URL.Path,
				"request_id", chimiddleware.GetReqID(r.Context()),
				"error", err,
			)
			return
		}
		if status := ww.Status(); status != 0 {
			s.log.ErrorContext(r.Context(), "error after response started",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"request_id", chimiddleware.GetReqID(r.Context()),
				"error", err,
			)
			return
		}
		s.log.ErrorContext(r.Context(), "unhandled error",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimiddleware.GetReqID(r.Context()),
			"error", err,
		)
		writeText(ww, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

// writeText writes msg as a text/plain body.
func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, msg)
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// writeDomainError answers NotFound with 404 and InvalidOperation or
// validation failures with 400, using the error's message as the body.
// It reports false for any other error, which the caller must propagate.
func writeDomainError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeText(w, http.StatusNotFound, domain.MessageOf(err))
	case errors.Is(err, domain.ErrInvalidOperation):
		writeText(w, http.StatusBadRequest, domain.MessageOf(err))
	case errors.Is(err, domain.ErrValidation):
		writeText(w, http.StatusBadRequest, unwrapMessage(err))
	default:
		return false
	}
	return true
}

// unwrapMessage extracts the human-readable part of a wrapped validation error.
// e.g. "service.ClientService.Register: validation error: email is required" → "email is required"
func unwrapMessage(err error) string {
	msg := err.Error()
	marker := domain.ErrValidation.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}

// pathInt binds the named chi path parameter as an integer, the same way
// oapi-codegen's generated wrappers bind simple-style path parameters.
// Ids are INT columns, so values outside int32 fail binding too.
// On failure it writes a 400 and returns false.
func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	var v int32
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		writeText(w, http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
		return 0, false
	}
	return int(v), true
}

// decodeBody decodes a JSON request body into dst and validates it.
// On failure it writes 413 (body over the size limit) or 400 and returns false.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeText(w, http.StatusRequestEntityTooLarge, http.StatusText(http.StatusRequestEntityTooLarge))
		case errors.Is(err, io.EOF):
			writeText(w, http.StatusBadRequest, "request body is required")
		default:
			writeText(w, http.StatusBadRequest, "malformed JSON body: "+err.Error())
		}
		return false
	}

	if err := s.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			writeText(w, http.StatusBadRequest, err.Error())
			return false
		}
		msgs := make([]string, len(verrs))
		for i, fe := range verrs {
			msgs[i] = fe.Field() + " is " + fe.Tag()
		}
		writeText(w, http.StatusBadRequest, strings.Join(msgs, "; "))
		return false
	}
	return true
}
