// Package server exposes the GraphQL API over HTTP.
//
// Routes:
//   - POST /graphql: GraphQL endpoint
//   - GET  /graphql: GraphQL Playground, or a GET query when ?query= is present
//   - GET  /healthz: store reachability
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/gin-gonic/gin"

	"github.com/staffbook/staffql/internal/logging"
)

const (
	GraphQLPath = "/graphql"
	HealthPath  = "/healthz"

	healthTimeout = 2 * time.Second
)

// Pinger reports whether a backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter builds the gin engine serving es.
func NewRouter(es graphql.ExecutableSchema, pinger Pinger, log logging.Logger) *gin.Engine {
	if log == nil {
		log = logging.Discard()
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log))

	srv := handler.NewDefaultServer(es)
	play := playground.Handler("staffql GraphQL", GraphQLPath)

	router.POST(GraphQLPath, gin.WrapH(srv))
	router.GET(GraphQLPath, func(c *gin.Context) {
		if c.Query("query") != "" {
			srv.ServeHTTP(c.Writer, c.Request)
			return
		}
		play.ServeHTTP(c.Writer, c.Request)
	})
	router.GET(HealthPath, healthHandler(pinger, log))

	return router
}

func healthHandler(pinger Pinger, log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		if err := pinger.Ping(ctx); err != nil {
			log.Warn(ctx, "health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"error":  err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// RequestLogger logs one line per request.
func RequestLogger(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client", c.ClientIP(),
		)
	}
}

// NewHTTPServer wraps h in an http.Server listening on port.
func NewHTTPServer(port int, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
