package pathfind

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/queue"
	"golang.org/x/sync/errgroup"
)

// ErrSchedulerClosed is returned by Request after Close.
var ErrSchedulerClosed = errors.New("pathfind: scheduler closed")

// Callback receives a solved path on the goroutine calling Tick.
type Callback func(waypoints []mgl32.Vec3, success bool)

// Request asks for a path between two world points.
type Request struct {
	Start    mgl32.Vec3
	End      mgl32.Vec3
	Callback Callback
}

// Result is a solved request waiting for delivery.
type Result struct {
	Waypoints []mgl32.Vec3
	Success   bool

	callback Callback
	seq      uint64
}

// Solver is what the scheduler runs requests against. *Planner
// satisfies it.
type Solver interface {
	FindPath(start, goal mgl32.Vec3) ([]mgl32.Vec3, bool)
}

type job struct {
	req Request
	seq uint64
}

// Scheduler solves requests on a pool of workers and hands the results
// back, in request order, whenever Tick is called.
type Scheduler struct {
	solver  Solver
	logger  *slog.Logger
	workers int

	mu      sync.Mutex
	cond    *sync.Cond
	pending *queue.Queue[job]
	queued  int
	closed  bool
	nextSeq uint64

	resultsMu   sync.Mutex
	results     *heap.Heap[Result]
	nextDeliver uint64
	inFlight    int

	group errgroup.Group
}

// Option configures a Scheduler in NewScheduler.
type Option func(*Scheduler)

// WithWorkers sets the number of solving goroutines.
func WithWorkers(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger sets the logger for worker failures. A nil logger keeps the
// discard default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScheduler starts the workers. Call Close to stop them.
func NewScheduler(solver Solver, opts ...Option) *Scheduler {
	s := &Scheduler{
		solver:  solver,
		logger:  slog.New(slog.DiscardHandler),
		pending: queue.New[job](),
		results: heap.New[Result](func(a, b Result) bool { return a.seq < b.seq }),
		workers: runtime.NumCPU(),
	}
	s.cond = sync.NewCond(&s.mu)

	for _, opt := range opts {
		opt(s)
	}

	for i := 0; i < s.workers; i++ {
		s.group.Go(s.work)
	}
	s.logger.Debug("path scheduler started", "workers", s.workers)
	return s
}

// Request queues req for solving. It never blocks.
func (s *Scheduler) Request(req Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSchedulerClosed
	}
	s.pending.Enqueue(job{req: req, seq: s.nextSeq})
	s.nextSeq++
	s.queued++

	s.resultsMu.Lock()
	s.inFlight++
	s.resultsMu.Unlock()

	s.cond.Signal()
	return nil
}

func (s *Scheduler) work() error {
	for {
		s.mu.Lock()
		for s.queued == 0 && !s.closed {
			s.cond.Wait()
		}
		if s.queued == 0 {
			s.mu.Unlock()
			return nil
		}
		j := s.pending.Dequeue()
		s.queued--
		s.mu.Unlock()

		s.finish(s.solve(j))
	}
}

func (s *Scheduler) solve(j job) (res Result) {
	res = Result{callback: j.req.Callback, seq: j.seq}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("path solve panicked", "seq", j.seq, "panic", fmt.Sprint(r))
			res.Waypoints, res.Success = nil, false
		}
	}()
	res.Waypoints, res.Success = s.solver.FindPath(j.req.Start, j.req.End)
	if !res.Success {
		res.Waypoints = nil
	}
	return res
}

func (s *Scheduler) finish(res Result) {
	s.resultsMu.Lock()
	s.results.Push(res)
	s.resultsMu.Unlock()
}

// Tick delivers every completed result whose predecessors have all been
// delivered, invoking the callbacks on the calling goroutine. It returns
// the number of results delivered.
func (s *Scheduler) Tick() int {
	var ready []Result

	s.resultsMu.Lock()
	for {
		next, ok := s.results.Peek()
		if !ok || next.seq != s.nextDeliver {
			break
		}
		s.results.Pop()
		s.nextDeliver++
		s.inFlight--
		ready = append(ready, next)
	}
	s.resultsMu.Unlock()

	for _, res := range ready {
		if res.callback != nil {
			res.callback(res.Waypoints, res.Success)
		}
	}
	return len(ready)
}

// Pending returns the number of requests not yet delivered.
func (s *Scheduler) Pending() int {
	s.resultsMu.Lock()
	defer s.resultsMu.Unlock()
	return s.inFlight
}

// Drain ticks every interval until nothing is pending or ctx is done.
func (s *Scheduler) Drain(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		s.Tick()
		if s.Pending() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Close stops accepting requests and waits for the workers to finish the
// queued ones. Results stay available to Tick.
func (s *Scheduler) Close() error {
	s.mu.Lock()
	s.closed = true
	s.cond.Broadcast()
	s.mu.Unlock()

	return s.group.Wait()
}
