package gridserve

import (
	"time"

	"github.com/coder/websocket"
	"github.com/samthor/treegrid/internal/logger"
)

const (
	// DefaultMaxPacketSize is the maximum size of a JSON packet we accept.
	DefaultMaxPacketSize = 32768

	// DefaultRateLimit is the number of commands per second we allow.
	DefaultRateLimit = 20

	// DefaultRateBurst is the maximum burst of commands we allow.
	DefaultRateBurst = 40

	// DefaultResumeCapacity is the number of detached sessions kept for resuming.
	DefaultResumeCapacity = 64

	// DefaultDir is where sessions load and save files.
	DefaultDir = "."
)

const (
	// CloseAttached is sent when resuming a session that another connection holds.
	CloseAttached websocket.StatusCode = 4001

	// CloseRateLimited is sent when a client sends commands too quickly.
	CloseRateLimited websocket.StatusCode = 4002
)

// Options configures a Server.
type Options struct {
	// MaxPacketSize is the maximum size of a JSON packet we accept.
	// Defaults to DefaultMaxPacketSize if zero.
	MaxPacketSize int

	// RateLimit is the number of commands per second we allow.
	// Defaults to DefaultRateLimit if zero.
	RateLimit int

	// RateBurst is the maximum burst of commands we allow.
	// Defaults to DefaultRateBurst if zero.
	RateBurst int

	// ResumeCapacity is the number of detached sessions kept for resuming, least recently used first out.
	// Defaults to DefaultResumeCapacity if zero.
	ResumeCapacity int

	// PingEvery sends a ping every ~duration.
	PingEvery time.Duration

	// Dir confines every session's load and save.
	// Defaults to DefaultDir if empty.
	Dir string

	// OriginPatterns are extra hosts allowed to connect cross-origin.
	OriginPatterns []string

	// Logger defaults to discarding everything.
	Logger logger.Logger
}

func (o *Options) setDefaults() {
	if o.MaxPacketSize == 0 {
		o.MaxPacketSize = DefaultMaxPacketSize
	}
	if o.RateLimit == 0 {
		o.RateLimit = DefaultRateLimit
	}
	if o.RateBurst == 0 {
		o.RateBurst = DefaultRateBurst
	}
	if o.ResumeCapacity == 0 {
		o.ResumeCapacity = DefaultResumeCapacity
	}
	if o.Dir == "" {
		o.Dir = DefaultDir
	}
	if o.Logger == nil {
		o.Logger = logger.Discard()
	}
}
