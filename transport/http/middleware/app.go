package middleware

import (
	"dinebook/config"
	"dinebook/infras/otel"
	"dinebook/shared/cache"
	"dinebook/shared/constant"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

const (
	otelHTTPScopeName = "http"
)

type AppMiddleware interface {
	Tracing(next http.Handler) http.Handler
	RateLimit() func(http.Handler) http.Handler
}

type appMiddleware struct {
	otel   otel.Otel
	config *config.Config
	cache  cache.RedisCache
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, cache cache.RedisCache) AppMiddleware {
	return &appMiddleware{
		otel:   otel,
		config: config,
		cache:  cache,
	}
}

// Tracing opens the root span of a request. The route pattern is only known once chi has routed it.
func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		spanName := fmt.Sprintf("%s %s", request.Method, request.URL.Path)

		ctx, scope := a.otel.NewScope(request.Context(), otelHTTPScopeName, spanName)
		defer scope.End()

		scope.SetAttributes(map[string]any{
			"app.name":        a.config.App.Name,
			"http.path":       request.URL.Path,
			"http.method":     request.Method,
			"http.user_agent": userAgent(request),
			"http.host":       request.Host,
			"http.source":     clientIP(request),
			"http.request_id": chiMiddleware.GetReqID(ctx),
		})

		ww := chiMiddleware.NewWrapResponseWriter(writer, request.ProtoMajor)

		next.ServeHTTP(ww, request.WithContext(ctx))

		attrs := map[string]any{
			"http.status_code": ww.Status(),
		}

		if rctx := chi.RouteContext(request.Context()); rctx != nil {
			attrs["http.route"] = rctx.RoutePattern()
		}

		scope.SetAttributes(attrs)

		if ww.Status() >= http.StatusInternalServerError {
			scope.TraceError(fmt.Errorf("%s %s answered %d", request.Method, request.URL.Path, ww.Status()))
		}
	})
}

// headerRequestID keeps the chi request id visible to callers.
func headerRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if id := chiMiddleware.GetReqID(request.Context()); id != constant.Empty {
			writer.Header().Set(constant.RequestHeaderRequestID, id)
		}

		next.ServeHTTP(writer, request)
	})
}

// RequestID assigns a request id and echoes it back in the response headers.
func RequestID(next http.Handler) http.Handler {
	return chiMiddleware.RequestID(headerRequestID(next))
}
