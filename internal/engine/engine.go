package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultDropHorizon is the remaining depth at or below which drops are
// left out of move generation.
const DefaultDropHorizon = 1

// Engine runs one search at a time. It keeps per-search counters and is
// not safe for concurrent use; callers build one per request.
type Engine struct {
	log   zerolog.Logger
	nodes int64

	dropHorizon int

	// limits of the running search; only enforced when bounded is set
	ctx       context.Context
	deadline  time.Time
	nodeLimit int64
	bounded   bool
}

func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{
		log:         log.With().Str("component", "engine").Logger(),
		dropHorizon: DefaultDropHorizon,
		ctx:         context.Background(),
	}
}

// Nodes is the number of positions visited by the last search.
func (e *Engine) Nodes() int64 { return e.nodes }

// SetDropHorizon changes the drop cut-off. A negative value keeps drops at
// every depth.
func (e *Engine) SetDropHorizon(h int) { e.dropHorizon = h }

func (e *Engine) resetLimits() {
	e.ctx = context.Background()
	e.deadline = time.Time{}
	e.nodeLimit = 0
	e.bounded = false
}

// tick counts a node and reports whether the search must stop.
func (e *Engine) tick() error {
	e.nodes++
	if !e.bounded {
		return nil
	}
	if e.nodeLimit > 0 && e.nodes > e.nodeLimit {
		return errSearchAborted
	}
	if e.nodes&255 == 0 {
		if e.ctx.Err() != nil {
			return errSearchAborted
		}
		if !e.deadline.IsZero() && time.Now().After(e.deadline) {
			return errSearchAborted
		}
	}
	return nil
}
