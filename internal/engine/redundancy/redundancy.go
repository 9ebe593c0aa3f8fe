// Package redundancy fetches icon data from a list of redundant API hosts.
//
// A query sends its batch to one host, and when that host has not answered
// after the rotate delay, to the next one as well, so several attempts can race.
// The first success wins. A 404 aborts the query. Any other failure moves on
// to the next host. The query fails when every host failed or when the overall
// timeout elapses. All state transitions and callbacks run on the loop.
package redundancy

import (
	"context"
	"math/rand/v2"
	"slices"
	"sync"

	"go.trai.ch/ikon/internal/core/domain"
	"go.trai.ch/ikon/internal/core/ports"
	"go.trai.ch/ikon/internal/engine/loop"
	"go.trai.ch/zerr"
)

// Outcome classifies the response of a single attempt.
type Outcome uint8

const (
	// OutcomeSuccess means the response carries icon data.
	OutcomeSuccess Outcome = iota
	// OutcomeNext means the attempt failed and another host may succeed.
	OutcomeNext
	// OutcomeAbort means the request can never succeed; the query fails at once.
	OutcomeAbort
)

// Response is the classified result of one attempt.
type Response struct {
	Outcome Outcome
	Data    *domain.IconSetData
	Err     error
}

// Batch is the set of icon names requested from one store in one request.
type Batch struct {
	Key   domain.SetKey
	Names []string
}

// SendFunc performs one attempt against resource.
// It must return when ctx is cancelled.
type SendFunc func(ctx context.Context, resource string, batch Batch) Response

// DoneFunc receives the outcome of a query. Exactly one of data and err is non-nil.
type DoneFunc func(data *domain.IconSetData, err error)

// Redundancy runs queries for one provider and remembers which host answered last.
type Redundancy struct {
	provider string
	cfg      domain.ProviderConfig
	loop     *loop.Loop
	send     SendFunc
	tracer   ports.Tracer
	metrics  ports.Metrics

	mu      sync.Mutex
	index   int
	queries []*Query
	shuffle func([]string)
}

// New creates the query runner of a provider.
func New(
	provider string,
	cfg domain.ProviderConfig,
	l *loop.Loop,
	send SendFunc,
	tracer ports.Tracer,
	metrics ports.Metrics,
) (*Redundancy, error) {
	if len(cfg.Resources) == 0 {
		return nil, zerr.With(domain.ErrInvalidConfig, "provider", provider)
	}
	return &Redundancy{
		provider: provider,
		cfg:      cfg,
		loop:     l,
		send:     send,
		tracer:   tracer,
		metrics:  metrics,
		shuffle: func(s []string) {
			rand.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
		},
	}, nil
}

// Config returns the provider configuration.
func (r *Redundancy) Config() domain.ProviderConfig {
	return r.cfg
}

// Index returns the index of the host that answered the last successful query.
func (r *Redundancy) Index() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index
}

// SetIndex sets the host queries start from when hosts are not shuffled.
func (r *Redundancy) SetIndex(i int) {
	if i < 0 || i >= len(r.cfg.Resources) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.index = i
}

// Query starts a query for batch. The first attempt is sent on the next loop turn.
// done may be nil; subscribers can be added with Query.Subscribe.
func (r *Redundancy) Query(ctx context.Context, batch Batch, done DoneFunc) *Query {
	q := newQuery(ctx, r, batch, r.orderedResources())
	if done != nil {
		q.subscribers = append(q.subscribers, done)
	}

	r.mu.Lock()
	r.queries = append(r.queries, q)
	r.mu.Unlock()

	r.metrics.QueryStarted(r.provider)
	q.begin()
	return q
}

// Find returns the first running query matching fn.
func (r *Redundancy) Find(fn func(QueryStatus) bool) *Query {
	r.mu.Lock()
	queries := slices.Clone(r.queries)
	r.mu.Unlock()

	for _, q := range queries {
		if fn(q.Status()) {
			return q
		}
	}
	return nil
}

// Running returns the number of queries that have not reached a terminal status.
func (r *Redundancy) Running() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queries)
}

func (r *Redundancy) orderedResources() []string {
	resources := slices.Clone(r.cfg.Resources)
	if r.cfg.Random {
		r.shuffle(resources)
		return resources
	}

	r.mu.Lock()
	index := r.index
	r.mu.Unlock()
	return slices.Concat(resources[index:], resources[:index])
}

// remember records the host that answered, unless hosts are shuffled.
func (r *Redundancy) remember(resource string) {
	if r.cfg.Random {
		return
	}
	if i := slices.Index(r.cfg.Resources, resource); i >= 0 {
		r.SetIndex(i)
	}
}

func (r *Redundancy) remove(q *Query) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = slices.DeleteFunc(r.queries, func(other *Query) bool { return other == q })
}
