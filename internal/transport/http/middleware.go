package http

import (
	"context"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/domain"
	"github.com/light-bringer/sellerhub-service/pkg/logger"
)

const (
	// RequestIDHeader carries the request ID in and out.
	RequestIDHeader = "X-Request-ID"

	// SellerIDHeader identifies the calling seller. Upstream auth is expected
	// to have verified it; this service only requires its presence.
	SellerIDHeader = "X-Seller-ID"
)

// RequestID propagates or generates a request ID and stores it in the
// context for the logger.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), logger.RequestIDKey, requestID)
		w.Header().Set(RequestIDHeader, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Auth requires the seller identity header on every request and makes it
// available to handlers and the logger through the context.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sellerID := r.Header.Get(SellerIDHeader)
		if sellerID == "" {
			renderError(w, r, domain.ErrUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), logger.SellerIDKey, sellerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CallerID extracts the authenticated seller ID from the context.
func CallerID(ctx context.Context) string {
	if id, ok := ctx.Value(logger.SellerIDKey).(string); ok {
		return id
	}
	return ""
}

// RequestLogger logs method, path, status and latency for every request.
func RequestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(ww, r)

			log.WithContext(r.Context()).Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"latency_ms", time.Since(start).Milliseconds(),
				"client_ip", r.RemoteAddr,
			)
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.statusCode = http.StatusOK
		rw.written = true
	}
	return rw.ResponseWriter.Write(b)
}

// Recoverer converts panics into 500 responses and logs the stack.
func Recoverer(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.WithContext(r.Context()).Error("panic recovered",
						"error", rec,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)
					writeJSONStatus(w, http.StatusInternalServerError,
						`{"error":{"code":"INTERNAL_ERROR","message":"an unexpected error occurred"}}`)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimiter applies a token-bucket limit per client address.
func RateLimiter(perSecond float64, burst int) func(http.Handler) http.Handler {
	limiters := make(map[string]*rate.Limiter)
	var mu sync.Mutex

	getLimiter := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		if limiter, ok := limiters[key]; ok {
			return limiter
		}
		limiter := rate.NewLimiter(rate.Limit(perSecond), burst)
		limiters[key] = limiter
		return limiter
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !getLimiter(r.RemoteAddr).Allow() {
				w.Header().Set("Retry-After", "1")
				writeJSONStatus(w, http.StatusTooManyRequests,
					`{"error":{"code":"RATE_LIMITED","message":"too many requests"}}`)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Timeout bounds request handling; expiry surfaces as 504, distinct from the
// not-found and ownership failures of the handlers beneath it.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			done := make(chan struct{})
			go func() {
				next.ServeHTTP(w, r.WithContext(ctx))
				close(done)
			}()

			select {
			case <-done:
			case <-ctx.Done():
				writeJSONStatus(w, http.StatusGatewayTimeout,
					`{"error":{"code":"TIMEOUT","message":"request timed out"}}`)
			}
		})
	}
}

// RealIP prefers forwarded-for headers over the socket address.
func RealIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			r.RemoteAddr = xff
		} else if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
			r.RemoteAddr = xrip
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSONStatus(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
