package ws

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/josemlopez/Write-Properly/internal/ai"
	"github.com/josemlopez/Write-Properly/internal/writer"
)

func newServer(t *testing.T, p ai.Provider) (*Server, *writer.Sessions) {
	t.Helper()
	sessions := writer.NewSessions(time.Minute)
	t.Cleanup(sessions.Close)
	d := writer.NewDispatcher(p, ai.DefaultSampling()).WithSessions(sessions)
	return New(d, sessions, time.Second), sessions
}

func TestHandleRun(t *testing.T) {
	srv, sessions := newServer(t, ai.NewMock("  Fixed text. "))

	out := srv.handleRun(context.Background(), "sid-1", writer.Form{Function: "Write the same with Grammar Fixed", Text: "the grammar were wrong"})
	if _, ok := out["error"]; ok {
		t.Fatalf("unexpected error: %v", out["error"])
	}
	if out["output"] != "Fixed text." {
		t.Fatalf("unexpected output %v", out["output"])
	}
	if out["outcome"] != writer.Answered {
		t.Fatalf("unexpected outcome %v", out["outcome"])
	}
	if out["prompt"] != "Write the same, fixing the grammar:  \nthe grammar were wrong" {
		t.Fatalf("unexpected prompt %v", out["prompt"])
	}
	if last, ok := sessions.Last("sid-1"); !ok || last != "Fixed text." {
		t.Fatalf("connection session should remember answer, got %q %v", last, ok)
	}
}

func TestHandleRunNoAnswer(t *testing.T) {
	srv, _ := newServer(t, ai.NewMock())

	out := srv.handleRun(context.Background(), "sid-1", writer.Form{Function: "Summarize", Text: "x"})
	if _, ok := out["error"]; ok {
		t.Fatalf("no answer should not be an error: %v", out["error"])
	}
	if out["outcome"] != writer.NoAnswer || out["output"] != "" {
		t.Fatalf("expected no_answer, got %v", out)
	}
}

func TestHandleRunErrors(t *testing.T) {
	srv, _ := newServer(t, ai.NewMock("x"))
	out := srv.handleRun(context.Background(), "sid", writer.Form{Function: "Rewrite", Text: "x"})
	if !strings.Contains(fmt.Sprint(out["error"]), "unrecognized function") {
		t.Fatalf("expected unrecognized function error, got %v", out)
	}

	failing, _ := newServer(t, &ai.Mock{Err: ai.ErrProviderFailed})
	out = failing.handleRun(context.Background(), "sid", writer.Form{Function: "Summarize", Text: "x"})
	if !strings.Contains(fmt.Sprint(out["error"]), ai.ErrProviderFailed.Error()) {
		t.Fatalf("expected provider error, got %v", out)
	}
}

func TestMountRegistersRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	srv, _ := newServer(t, ai.NewMock("x"))
	io := srv.Mount(r)
	defer io.Close()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/socket.io/", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight: got %d, want %d", w.Code, http.StatusNoContent)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("preflight should allow any origin")
	}
	if !strings.Contains(w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost) {
		t.Fatalf("preflight should allow POST, got %q", w.Header().Get("Access-Control-Allow-Methods"))
	}
}

func TestMountBehindBasicAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	srv, _ := newServer(t, ai.NewMock("x"))
	io := srv.Mount(r.Group("/", gin.BasicAuth(gin.Accounts{"ana": "secret"})))
	defer io.Close()

	handshake := func(user, pass string) int {
		req := httptest.NewRequest(http.MethodGet, "/socket.io/?EIO=3&transport=polling", nil)
		if user != "" {
			req.SetBasicAuth(user, pass)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := handshake("", ""); code != http.StatusUnauthorized {
		t.Fatalf("handshake without credentials: got %d, want %d", code, http.StatusUnauthorized)
	}
	if code := handshake("ana", "wrong"); code != http.StatusUnauthorized {
		t.Fatalf("handshake with wrong password: got %d, want %d", code, http.StatusUnauthorized)
	}
	if code := handshake("ana", "secret"); code != http.StatusOK {
		t.Fatalf("handshake with credentials: got %d, want %d", code, http.StatusOK)
	}
}
