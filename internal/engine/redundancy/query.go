package redundancy

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/ikon/internal/core/domain"
	"go.trai.ch/ikon/internal/core/ports"
	"go.trai.ch/ikon/internal/engine/loop"
	"go.trai.ch/zerr"
)

// Status is the lifecycle state of a query.
type Status string

const (
	// StatusPending means the query is still running.
	StatusPending Status = "pending"
	// StatusCompleted means a host returned data.
	StatusCompleted Status = "completed"
	// StatusFailed means every host failed, a host aborted, or the query timed out.
	StatusFailed Status = "failed"
	// StatusAborted means the query was cancelled by its owner.
	StatusAborted Status = "aborted"
)

// QueryStatus is a snapshot of a query.
type QueryStatus struct {
	ID        string
	Status    Status
	Batch     Batch
	StartTime time.Time
	// QueriesSent is the number of attempts sent so far.
	QueriesSent int
	// QueriesPending is the number of attempts still in flight.
	QueriesPending int
	// Remaining lists the hosts not tried yet.
	Remaining []string
}

type attempt struct {
	resource string
	cancel   context.CancelFunc
}

// Query is one logical request racing across hosts.
type Query struct {
	r     *Redundancy
	loop  *loop.Loop
	id    string
	batch Batch
	start time.Time
	span  ports.Span

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	status      Status
	resources   []string
	inflight    []*attempt
	sent        int
	lastErr     error
	rotateTimer *loop.Timer
	timeout     *loop.Timer
	subscribers []DoneFunc
}

func newQuery(ctx context.Context, r *Redundancy, batch Batch, resources []string) *Query {
	q := &Query{
		r:         r,
		loop:      r.loop,
		id:        uuid.NewString(),
		batch:     batch,
		start:     time.Now(),
		status:    StatusPending,
		resources: resources,
	}

	ctx, q.span = r.tracer.Start(ctx, "ikon.query")
	q.span.SetAttribute("query_id", q.id)
	q.span.SetAttribute("provider", batch.Key.Provider)
	q.span.SetAttribute("prefix", batch.Key.Prefix)
	q.span.SetAttribute("icons", batch.Names)
	q.ctx, q.cancel = context.WithCancel(ctx)
	return q
}

// ID returns the unique id of the query.
func (q *Query) ID() string {
	return q.id
}

// Status returns a snapshot of the query.
func (q *Query) Status() QueryStatus {
	q.mu.Lock()
	defer q.mu.Unlock()
	return QueryStatus{
		ID:             q.id,
		Status:         q.status,
		Batch:          q.batch,
		StartTime:      q.start,
		QueriesSent:    q.sent,
		QueriesPending: len(q.inflight),
		Remaining:      slices.Clone(q.resources),
	}
}

// Subscribe adds done to the callbacks notified when the query finishes.
// With overwrite set, previous subscribers are dropped.
func (q *Query) Subscribe(done DoneFunc, overwrite bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if overwrite {
		q.subscribers = nil
	}
	if done != nil {
		q.subscribers = append(q.subscribers, done)
	}
}

// Abort cancels the query. In-flight attempts are cancelled and no subscriber is notified afterwards.
func (q *Query) Abort() {
	q.mu.Lock()
	if q.status != StatusPending && q.status != StatusFailed {
		q.mu.Unlock()
		return
	}
	wasPending := q.status == StatusPending
	q.status = StatusAborted
	q.subscribers = nil
	q.stopLocked()
	q.mu.Unlock()

	q.cancel()
	if wasPending {
		q.finish(StatusAborted, domain.ErrQueryAborted)
	}
}

func (q *Query) begin() {
	q.mu.Lock()
	q.timeout = q.loop.AfterFunc(q.r.cfg.Timeout, q.onTimeout)
	q.mu.Unlock()
	q.loop.Post(q.execNext)
}

// execNext sends the batch to the next host. It runs on the loop.
func (q *Query) execNext() {
	q.mu.Lock()
	if q.status != StatusPending {
		q.mu.Unlock()
		return
	}
	q.rotateTimer.Stop()
	q.rotateTimer = nil

	if len(q.resources) == 0 {
		if len(q.inflight) > 0 {
			// Wait for the outstanding attempts or the timeout.
			q.mu.Unlock()
			return
		}
		err := q.exhaustedErrLocked()
		q.mu.Unlock()
		q.fail(err)
		return
	}

	resource := q.resources[0]
	q.resources = q.resources[1:]
	ctx, cancel := context.WithCancel(q.ctx)
	a := &attempt{resource: resource, cancel: cancel}
	q.inflight = append(q.inflight, a)
	q.sent++
	q.rotateTimer = q.loop.AfterFunc(q.r.cfg.Rotate, q.execNext)
	q.mu.Unlock()

	q.r.metrics.AttemptSent(q.r.provider)
	go func() {
		resp := q.r.send(ctx, resource, q.batch)
		if !q.loop.Post(func() { q.onResponse(a, resp) }) {
			cancel()
		}
	}()
}

// onResponse handles the outcome of one attempt. It runs on the loop.
func (q *Query) onResponse(a *attempt, resp Response) {
	a.cancel()

	q.mu.Lock()
	q.inflight = slices.DeleteFunc(q.inflight, func(other *attempt) bool { return other == a })

	switch q.status {
	case StatusPending:
	case StatusFailed:
		if resp.Outcome != OutcomeSuccess || !q.r.cfg.DataAfterTimeout {
			q.mu.Unlock()
			return
		}
	default:
		q.mu.Unlock()
		return
	}

	switch resp.Outcome {
	case OutcomeAbort:
		q.lastErr = resp.Err
		err := q.abortErrLocked()
		q.mu.Unlock()
		q.fail(err)

	case OutcomeNext:
		q.lastErr = resp.Err
		if len(q.inflight) > 0 {
			q.mu.Unlock()
			return
		}
		if len(q.resources) == 0 {
			err := q.exhaustedErrLocked()
			q.mu.Unlock()
			q.fail(err)
			return
		}
		q.mu.Unlock()
		q.execNext()

	case OutcomeSuccess:
		late := q.status == StatusFailed
		q.status = StatusCompleted
		q.stopLocked()
		pending := q.inflight
		q.inflight = nil
		subscribers := slices.Clone(q.subscribers)
		q.mu.Unlock()

		for _, other := range pending {
			other.cancel()
		}
		q.cancel()
		q.r.remember(a.resource)
		if !late {
			q.finish(StatusCompleted, nil)
		}
		for _, done := range subscribers {
			done(resp.Data, nil)
		}
	}
}

func (q *Query) onTimeout() {
	q.mu.Lock()
	if q.status != StatusPending {
		q.mu.Unlock()
		return
	}
	var err error = domain.ErrQueryTimeout
	if q.lastErr != nil {
		err = zerr.Wrap(q.lastErr, domain.ErrQueryTimeout.Error())
	}
	q.mu.Unlock()
	q.fail(err)
}

// fail moves a pending query to failed and notifies subscribers.
func (q *Query) fail(err error) {
	q.mu.Lock()
	if q.status != StatusPending {
		q.mu.Unlock()
		return
	}
	q.status = StatusFailed
	q.stopLocked()
	subscribers := slices.Clone(q.subscribers)
	keepAttempts := q.r.cfg.DataAfterTimeout && len(q.inflight) > 0
	q.mu.Unlock()

	if !keepAttempts {
		q.cancel()
	}
	q.finish(StatusFailed, err)
	for _, done := range subscribers {
		done(nil, err)
	}
}

func (q *Query) finish(status Status, err error) {
	q.r.remove(q)
	q.r.metrics.QueryFinished(q.r.provider, string(status), time.Since(q.start).Seconds())
	q.span.SetAttribute("status", string(status))
	if err != nil && status != StatusAborted {
		q.span.RecordError(err)
	}
	q.span.End()
}

// stopLocked stops both timers. The caller holds q.mu.
func (q *Query) stopLocked() {
	q.rotateTimer.Stop()
	q.rotateTimer = nil
	q.timeout.Stop()
}

func (q *Query) exhaustedErrLocked() error {
	if q.lastErr == nil {
		return domain.ErrHostsExhausted
	}
	return zerr.Wrap(q.lastErr, domain.ErrHostsExhausted.Error())
}

func (q *Query) abortErrLocked() error {
	if q.lastErr == nil {
		return domain.ErrQueryAborted
	}
	return zerr.Wrap(q.lastErr, domain.ErrQueryAborted.Error())
}
