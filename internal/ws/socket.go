package ws

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/zerolog/log"

	"github.com/josemlopez/Write-Properly/internal/writer"
)

// Server exposes the dispatcher over Socket.IO. Each connection is its own
// session for continuation purposes.
type Server struct {
	d        *writer.Dispatcher
	sessions *writer.Sessions
	timeout  time.Duration
}

func New(d *writer.Dispatcher, sessions *writer.Sessions, timeout time.Duration) *Server {
	return &Server{d: d, sessions: sessions, timeout: timeout}
}

// Mount attaches the Socket.IO server under /socket.io/ on r. Pass a group
// carrying the UI auth middleware so the socket sits behind the same
// credentials as the JSON API.
func (srv *Server) Mount(r gin.IRouter) *socketio.Server {
	io := socketio.NewServer(nil)

	io.OnConnect("/", func(s socketio.Conn) error {
		log.Info().Str("sid", s.ID()).Msg("socket connected")
		return nil
	})

	io.OnEvent("/", "write:run", func(s socketio.Conn, form writer.Form) map[string]any {
		out := srv.handleRun(context.Background(), s.ID(), form)
		if msg, ok := out["error"]; ok {
			s.Emit("write:error", map[string]any{"message": msg})
		}
		return out
	})

	io.OnError("/", func(s socketio.Conn, e error) {
		if s == nil {
			log.Error().Err(e).Msg("socket error")
			return
		}
		log.Error().Str("sid", s.ID()).Err(e).Msg("socket error")
	})
	io.OnDisconnect("/", func(s socketio.Conn, reason string) {
		if srv.sessions != nil {
			srv.sessions.Forget(s.ID())
		}
		log.Info().Str("sid", s.ID()).Str("reason", reason).Msg("socket disconnected")
	})

	go io.Serve()

	g := r.Group("/socket.io")
	g.GET("/*any", gin.WrapH(io))
	g.POST("/*any", gin.WrapH(io))
	g.OPTIONS("/*any", pollingPreflight)
	return io
}

// pollingPreflight answers the OPTIONS request browsers send before the
// long-polling transport POSTs a JSON payload.
func pollingPreflight(c *gin.Context) {
	h := c.Writer.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", strings.Join([]string{http.MethodGet, http.MethodPost, http.MethodOptions}, ","))
	h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	h.Set("Access-Control-Max-Age", "600")
	c.AbortWithStatus(http.StatusNoContent)
}

func (srv *Server) handleRun(ctx context.Context, sid string, form writer.Form) map[string]any {
	req, err := form.Request()
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	if srv.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, srv.timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := srv.d.RunSession(ctx, sid, req)
	if err != nil {
		if !writer.IsInvalidInput(err) {
			log.Error().Err(err).Str("sid", sid).Str("function", string(req.Function)).Msg("write:run failed")
		}
		return map[string]any{"error": err.Error()}
	}
	log.Info().Str("sid", sid).Str("function", string(req.Function)).Str("outcome", string(res.Outcome)).Msg("write:run")
	return map[string]any{
		"output":     res.Text,
		"outcome":    res.Outcome,
		"prompt":     res.Prompt,
		"sampling":   res.Sampling,
		"candidates": res.Candidates,
		"elapsedMs":  time.Since(start).Milliseconds(),
	}
}
