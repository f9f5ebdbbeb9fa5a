// Package worker exposes the interpolation engine behind the message
// envelope used by host applications. A request carries a task identifier
// and the sample payload; the pool answers with ordered progress
// notifications followed by exactly one terminal message per request id,
// either a result or an error. The transport carrying the envelopes is the
// caller's concern.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"geofield/pkg/rbf"
)

// TaskRBFInterpolation is the only task the pool understands.
const TaskRBFInterpolation = "rbf_interpolation"

// Payload is the data section of a request. Points and Values must be
// index-aligned; the engine rejects mismatched lengths.
type Payload struct {
	Points []rbf.Point3D `json:"points"`
	Values []float64     `json:"values"`
	Config rbf.Config    `json:"config"`
}

// Request is one interpolation invocation. A blank ID is replaced with a
// generated UUID, echoed on every message for the request.
type Request struct {
	ID   string  `json:"id"`
	Task string  `json:"task"`
	Data Payload `json:"data"`
}

// Message is a single notification for a request id. Progress-only messages
// arrive in non-decreasing order; the stream for an id terminates with
// either a Result (carrying progress 100) or an Error, never both, and
// nothing follows the terminal message.
type Message struct {
	ID       string      `json:"id"`
	Progress *int        `json:"progress,omitempty"`
	Result   *rbf.Result `json:"result,omitempty"`
	Error    string      `json:"error,omitempty"`
}

// Terminal reports whether no further messages will follow for this id.
func (m Message) Terminal() bool {
	return m.Result != nil || m.Error != ""
}

// Pool runs interpolation requests on a fixed number of goroutines.
// Requests are independent and share no state, so the pool needs no
// locking beyond its channels; its only job is bounding how many O(n²)
// and O(n·g³) working sets exist at once.
type Pool struct {
	workers  int
	log      zerolog.Logger
	requests chan Request
	messages chan Message
	wg       sync.WaitGroup
}

// NewPool creates a pool with the given number of workers. Values below 1
// are clamped to 1.
func NewPool(workers int, logger zerolog.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		workers:  workers,
		log:      logger,
		requests: make(chan Request, workers),
		messages: make(chan Message, 16),
	}
}

// Start launches the worker goroutines. The context is passed through to
// the engine, which honors cancellation between pipeline stages.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for req := range p.requests {
				p.handle(ctx, req)
			}
		}()
	}
}

// Submit queues a request. It must not be called after Close.
func (p *Pool) Submit(req Request) {
	p.requests <- req
}

// Messages returns the notification stream shared by all requests.
func (p *Pool) Messages() <-chan Message {
	return p.messages
}

// Close stops accepting requests, waits for in-flight work to finish, then
// closes the message stream.
func (p *Pool) Close() {
	close(p.requests)
	p.wg.Wait()
	close(p.messages)
}

func (p *Pool) handle(ctx context.Context, req Request) {
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	log := p.log.With().Str("request", id).Logger()

	if req.Task != TaskRBFInterpolation {
		log.Error().Str("task", req.Task).Msg("unknown task")
		p.messages <- Message{ID: id, Error: fmt.Sprintf("unknown task %q", req.Task)}
		return
	}

	start := time.Now()
	log.Info().
		Int("samples", len(req.Data.Points)).
		Int("gridResolution", req.Data.Config.GridResolution).
		Str("kernel", string(req.Data.Config.KernelType)).
		Msg("interpolation started")

	it := rbf.NewInterpolator()
	it.SetProgressCallback(func(percent int) {
		// The final milestone rides on the terminal result message.
		if percent < 100 {
			pct := percent
			p.messages <- Message{ID: id, Progress: &pct}
		}
	})

	result, err := it.Interpolate(ctx, req.Data.Points, req.Data.Values, req.Data.Config)
	if err != nil {
		log.Error().Err(err).Msg("interpolation failed")
		p.messages <- Message{ID: id, Error: err.Error()}
		return
	}

	log.Info().
		Dur("elapsed", time.Since(start)).
		Int("gridPoints", len(result.GridPoints)).
		Msg("interpolation finished")

	done := 100
	p.messages <- Message{ID: id, Progress: &done, Result: result}
}
