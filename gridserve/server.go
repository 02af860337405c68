// Package gridserve hosts editing sessions over WebSocket.
//
// Each connection drives one session.Session with JSON packets. The server first sends a Hello, then
// answers each Request with a Response. A session outlives its connection: reconnect with
// "?resume=<id>" to pick it up again. Only one connection may hold a session at a time.
package gridserve

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/samthor/treegrid/internal/jitter"
	"github.com/samthor/treegrid/internal/logger"
	"github.com/samthor/treegrid/session"
	"golang.org/x/time/rate"
)

// Hello is the first packet sent on every connection.
type Hello struct {
	Type          string `json:"type"` // always "hello"
	Session       string `json:"session"`
	Resumed       bool   `json:"resumed"`
	Prompt        string `json:"prompt"`
	MaxPacketSize int    `json:"max_packet_size"`
	RateLimit     int    `json:"rate_limit"`
	RateBurst     int    `json:"rate_burst"`
}

// Request runs one command line.
type Request struct {
	Line string `json:"line"`
}

// Response is the reply to a Request.
type Response struct {
	session.Reply
	Session string `json:"session"`
	Prompt  string `json:"prompt"`
}

// Server is an http.Handler accepting WebSocket connections.
type Server struct {
	opts     Options
	ids      *idGenerator
	attached *xsync.MapOf[string, *session.Session]
	detached *lru.Cache[string, *session.Session]
}

// New returns a new Server.
func New(opts *Options) (*Server, error) {
	var o Options
	if opts != nil {
		o = *opts
	}
	o.setDefaults()

	detached, err := lru.New[string, *session.Session](o.ResumeCapacity)
	if err != nil {
		return nil, err
	}

	return &Server{
		opts:     o,
		ids:      newIDGenerator(),
		attached: xsync.NewMapOf[string, *session.Session](),
		detached: detached,
	}, nil
}

// Attached returns the number of sessions held by a connection.
func (s *Server) Attached() int {
	return s.attached.Size()
}

// Detached returns the number of sessions waiting to be resumed.
func (s *Server) Detached() int {
	return s.detached.Len()
}

func (s *Server) newSession() *session.Session {
	return session.New(&session.Options{Dir: s.opts.Dir})
}

// attach claims the session with this ID, or creates a new one if it is unknown.
func (s *Server) attach(resume string) (id string, sess *session.Session, resumed bool, err error) {
	if resume != "" {
		if _, loaded := s.attached.LoadOrStore(resume, nil); loaded {
			SessionEvents.WithLabelValues("refused").Inc()
			return "", nil, false, websocket.CloseError{Code: CloseAttached, Reason: "session already attached"}
		}

		if sess, ok := s.detached.Peek(resume); ok {
			s.detached.Remove(resume)
			s.attached.Store(resume, sess)
			SessionEvents.WithLabelValues("resumed").Inc()
			AttachedSessions.Inc()
			return resume, sess, true, nil
		}
		s.attached.Delete(resume) // unknown or expired, start over
	}

	sess = s.newSession()
	for {
		id = s.ids.id()
		if s.detached.Contains(id) {
			continue
		}
		if _, loaded := s.attached.LoadOrStore(id, sess); !loaded {
			break
		}
	}
	SessionEvents.WithLabelValues("created").Inc()
	AttachedSessions.Inc()
	return id, sess, false, nil
}

// detach releases a session so it may be resumed, unless it has exited.
func (s *Server) detach(id string, sess *session.Session) {
	if !sess.Exited() {
		if s.detached.Add(id, sess) {
			SessionEvents.WithLabelValues("evicted").Inc()
		}
	}
	s.attached.Delete(id)
	AttachedSessions.Dec()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: s.opts.OriginPatterns})
	if err != nil {
		s.opts.Logger.Warn("could not accept websocket", "path", r.URL.Path, "err", err)
		return // websocket.Accept already writes an error response if it fails.
	}
	c.SetReadLimit(int64(s.opts.MaxPacketSize))

	// Don't use the http.Request Context, see websocket.Accept comment.
	ctx, cancel := context.WithCancelCause(context.Background())
	ctx = logger.WithDefaultArgs(ctx, "remote", r.RemoteAddr)

	context.AfterFunc(ctx, func() {
		err := context.Cause(ctx)

		var closeErr websocket.CloseError
		if errors.As(err, &closeErr) {
			// ok
		} else if err == nil || errors.Is(err, context.Canceled) {
			closeErr.Code = websocket.StatusNormalClosure
		} else {
			// don't emit internal errors
			s.opts.Logger.WarnCtx(ctx, "connection failed", "err", err)
			closeErr = websocket.CloseError{Code: websocket.StatusInternalError}
		}
		c.Close(closeErr.Code, closeErr.Reason)
	})

	if s.opts.PingEvery > 0 {
		go s.ping(ctx, c)
	}

	err = s.run(ctx, c, r.URL.Query().Get("resume"))
	cancel(err)
}

func (s *Server) ping(ctx context.Context, c *websocket.Conn) {
	for {
		d := jitter.Ratio(s.opts.PingEvery, 0.25)
		select {
		case <-ctx.Done():
			return
		case <-time.After(d):
		}
		c.Ping(ctx)
	}
}

func (s *Server) run(ctx context.Context, c *websocket.Conn, resume string) error {
	id, sess, resumed, err := s.attach(resume)
	if err != nil {
		s.opts.Logger.InfoCtx(ctx, "refused attach", "session", resume)
		return err
	}
	defer s.detach(id, sess)

	ctx = logger.WithDefaultArgs(ctx, "session", id)
	s.opts.Logger.InfoCtx(ctx, "attached", "resumed", resumed)

	hello := Hello{
		Type:          "hello",
		Session:       id,
		Resumed:       resumed,
		Prompt:        sess.Prompt(),
		MaxPacketSize: s.opts.MaxPacketSize,
		RateLimit:     s.opts.RateLimit,
		RateBurst:     s.opts.RateBurst,
	}
	if err := wsjson.Write(ctx, c, hello); err != nil {
		return err
	}

	limiter := rate.NewLimiter(rate.Limit(s.opts.RateLimit), s.opts.RateBurst)

	for {
		var req Request
		if err := wsjson.Read(ctx, c, &req); err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				s.opts.Logger.InfoCtx(ctx, "detached")
				return nil
			}
			return err
		}

		if !limiter.Allow() {
			s.opts.Logger.WarnCtx(ctx, "rate limit exceeded")
			return websocket.CloseError{Code: CloseRateLimited, Reason: "rate limit exceeded"}
		}

		start := time.Now()
		reply := sess.Exec(req.Line)
		CommandDuration.Observe(time.Since(start).Seconds())
		CommandCount.WithLabelValues(string(reply.Status)).Inc()
		s.opts.Logger.DebugCtx(ctx, "command", "line", req.Line, "status", reply.Status)

		out := Response{Reply: reply, Session: id, Prompt: sess.Prompt()}
		if err := wsjson.Write(ctx, c, out); err != nil {
			return err
		}
		if sess.Exited() {
			s.opts.Logger.InfoCtx(ctx, "session exited")
			return nil
		}
	}
}
