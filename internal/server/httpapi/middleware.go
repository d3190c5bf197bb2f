package httpapi

import (
	"context"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/mapboard/internal/common"
	"github.com/dmitrijs2005/mapboard/internal/server/metrics"
)

const (
	msgNotLoggedIn  = "User not logged in"
	msgInvalidToken = "Invalid token"
)

// Authenticate guards protected routes. A missing Authorization header is
// answered with 401; anything else that is not a valid "Bearer <token>"
// is answered with 403. Expired and forged tokens are indistinguishable to
// the client. On success the username is placed in the request context.
func (s *HTTPServer) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeaderName)
		if header == "" {
			s.rejected(metrics.ReasonMissingToken)
			s.writeMessage(w, r, http.StatusUnauthorized, msgNotLoggedIn)
			return
		}

		scheme, token, _ := strings.Cut(header, " ")
		if scheme != common.BearerScheme || token == "" {
			s.rejected(metrics.ReasonInvalidToken)
			s.writeMessage(w, r, http.StatusForbidden, msgInvalidToken)
			return
		}

		username, err := s.tokens.Verify(token)
		if err != nil {
			s.logger.Debug(r.Context(), "token rejected", "error", err)
			s.rejected(metrics.ReasonInvalidToken)
			s.writeMessage(w, r, http.StatusForbidden, msgInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUsername(r.Context(), username)))
	})
}

func (s *HTTPServer) rejected(reason string) {
	if s.metrics != nil {
		s.metrics.AuthRejected(reason)
	}
}

// recoverer turns a handler panic into a JSON 500 and logs the stack.
func (s *HTTPServer) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func(ctx context.Context) {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				s.logger.Error(ctx, "request panic",
					"method", r.Method,
					"uri", r.RequestURI,
					"panic", p,
					"stack", string(debug.Stack()),
				)
				s.writeMessage(w, r, http.StatusInternalServerError, "Internal server error")
			}
		}(r.Context())
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one line per request.
func (s *HTTPServer) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).String(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
