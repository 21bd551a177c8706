package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/josemlopez/Write-Properly/internal/writer"
)

type handlers struct {
	d          *writer.Dispatcher
	sessionTTL time.Duration
	timeout    time.Duration
}

type runResponse struct {
	writer.Result
	RequestID string `json:"requestId"`
	ElapsedMs int64  `json:"elapsedMs"`
}

func (h *handlers) options(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"functions":     writer.Functions,
		"moods":         writer.Moods,
		"verbosities":   writer.Verbosities,
		"continuations": writer.Continuations,
		"defaults":      h.d.Base(),
	})
}

func (h *handlers) run(c *gin.Context) {
	var form writer.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	req, err := form.Request()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := h.d.RunSession(ctx, h.session(c), req)
	if err != nil {
		status := http.StatusBadGateway
		if writer.IsInvalidInput(err) {
			status = http.StatusBadRequest
		} else {
			log.Error().Err(err).Str("requestId", c.GetString(requestIDKey)).Str("function", string(req.Function)).Msg("completion failed")
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, runResponse{
		Result:    res,
		RequestID: c.GetString(requestIDKey),
		ElapsedMs: time.Since(start).Milliseconds(),
	})
}

// session returns the caller's session id, issuing a cookie on first use.
func (h *handlers) session(c *gin.Context) string {
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		return id
	}
	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, id, int(h.sessionTTL.Seconds()), "/", "", false, true)
	return id
}
