package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/josemlopez/Write-Properly/internal/metrics"
	"github.com/josemlopez/Write-Properly/internal/writer"
	staticserver "github.com/josemlopez/Write-Properly/static"
)

const (
	sessionCookie   = "wp_session"
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "requestId"
)

type Options struct {
	Dispatcher     *writer.Dispatcher
	UIUser         string
	UIPass         string
	SessionTTL     time.Duration
	RequestTimeout time.Duration
}

// Auth returns the basic auth middleware guarding the UI surface, or nil
// when no credentials are configured. Routes mounted outside Router (the
// Socket.IO endpoint) must be registered through it too.
func (o Options) Auth() []gin.HandlerFunc {
	if o.UIUser == "" || o.UIPass == "" {
		return nil
	}
	return []gin.HandlerFunc{gin.BasicAuth(gin.Accounts{o.UIUser: o.UIPass})}
}

// Router builds the gin engine with the UI, the JSON API, health and metrics.
func Router(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(requestLogger())
	r.Use(requestMetrics())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := opts.Auth()
	h := &handlers{d: opts.Dispatcher, sessionTTL: opts.SessionTTL, timeout: opts.RequestTimeout}
	api := r.Group("/api", auth...)
	api.GET("/options", h.options)
	api.POST("/run", h.run)

	// Everything else is the embedded UI.
	ui := staticserver.Handler()
	r.NoRoute(append(auth, func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		ui.ServeHTTP(c.Writer, c.Request)
	})...)
	return r
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// requestLogger skips /socket.io polling noise.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/socket.io") {
			return
		}
		log.Info().
			Str("requestId", c.GetString(requestIDKey)).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("dur", time.Since(start)).
			Msg("http")
	}
}

func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
