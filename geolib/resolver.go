package geolib

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
)

const (
	// DefaultWorkerPoolSize is used when a Resolver is built with a
	// non-positive pool size.
	DefaultWorkerPoolSize = 1024

	workerPoolExpireTime = time.Minute
)

// Resolver orchestrates location requests: it picks a provider from the
// registry by name, gates on its availability and runs the lookup.
// There is no state machine here, only a request/response pattern; the
// forced-IP detour belongs to the providers themselves.
//
// Bulk resolution fans out over a shared worker pool, so a single huge
// request cannot monopolize the process.
type Resolver struct {
	registry   *Registry
	logger     Logger
	rwmutex    sync.RWMutex
	closeOnce  sync.Once
	workerPool *ants.PoolWithFunc
	closed     bool
}

// Resolve answers a single location request with the given provider.
//
// ErrUnknownProvider is returned for an identifier missing from the
// registry, ErrNotAvailable when the provider is not installed or
// cannot answer this particular request. A successful answer may be
// partial or even empty.
func (r *Resolver) Resolve(ctx context.Context, providerName string, req Request) (LocationResult, error) {
	r.rwmutex.RLock()
	defer r.rwmutex.RUnlock()

	if r.closed {
		return nil, ErrResolverShutdown
	}

	provider, ok := r.registry.Get(providerName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, providerName)
	}

	if !provider.Available(req.Env) {
		return nil, ErrNotAvailable
	}

	location, err := provider.Lookup(ctx, req)
	if err != nil {
		if !errors.Is(err, ErrNotAvailable) {
			r.logger.LookupError(req.IP, providerName, err)
		}

		return nil, err
	}

	return location, nil
}

// ResolveAll resolves many IP addresses with the same provider and
// environment. Results come back in the order of the given addresses.
// Per-address failures are logged and produce an entry with a nil
// location instead of aborting the whole batch.
func (r *Resolver) ResolveAll(ctx context.Context,
	providerName string,
	ips []net.IP,
	env Environ) ([]ResolveResult, error) {
	r.rwmutex.RLock()
	defer r.rwmutex.RUnlock()

	if r.closed {
		return nil, ErrResolverShutdown
	}

	provider, ok := r.registry.Get(providerName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, providerName)
	}

	if !provider.Available(env) {
		return nil, ErrNotAvailable
	}

	resultChannel := make(chan ResolveResult, len(ips))
	rv := make([]ResolveResult, 0, len(ips))
	wg := &sync.WaitGroup{}
	groupRequest := newPoolResolveGroup(ctx, resultChannel,
		provider, env, wg, r.workerPool)

	ipsToIndex := map[string]int{}

	for i, v := range ips {
		vv := v.To16()

		if err := groupRequest.Do(ctx, vv); err != nil {
			break
		}

		ipsToIndex[string(vv)] = i
	}

	go func() {
		wg.Wait()
		close(resultChannel)
	}()

	for res := range resultChannel {
		rv = append(rv, res)
	}

	sort.Slice(rv, func(i, j int) bool {
		return ipsToIndex[string(rv[i].IP)] < ipsToIndex[string(rv[j].IP)]
	})

	return rv, nil
}

// Shutdown stops the resolver and releases its worker pool. All
// subsequent calls return ErrResolverShutdown. It is safe to call
// many times.
func (r *Resolver) Shutdown() {
	r.closeOnce.Do(func() {
		r.rwmutex.Lock()
		r.closed = true
		r.rwmutex.Unlock()

		r.workerPool.Release()
	})
}

func (r *Resolver) resolveIP(raw interface{}) {
	req := raw.(*poolResolveRequest)

	defer req.wg.Done()

	select {
	case <-req.ctx.Done():
		return
	default:
	}

	location, err := req.provider.Lookup(req.ctx, req.request)
	if err != nil {
		if !errors.Is(err, ErrNotAvailable) {
			r.logger.LookupError(req.request.IP, req.provider.Name(), err)
		}

		location = nil
	}

	result := ResolveResult{
		IP:       req.request.IP,
		Provider: req.provider.Name(),
		Location: location,
	}

	select {
	case <-req.ctx.Done():
	case req.resultChannel <- result:
	}
}

type noopLogger struct{}

func (n noopLogger) LookupError(ip net.IP, name string, err error) {}

func (n noopLogger) CheckError(name string, err error) {}

// NewResolver builds a resolver on top of the registry. A nil logger
// disables logging; a non-positive workerPoolSize picks
// DefaultWorkerPoolSize.
func NewResolver(registry *Registry, logger Logger, workerPoolSize int) (*Resolver, error) {
	if workerPoolSize <= 0 {
		workerPoolSize = DefaultWorkerPoolSize
	}

	if logger == nil {
		logger = noopLogger{}
	}

	rv := &Resolver{
		registry: registry,
		logger:   logger,
	}

	pool, err := ants.NewPoolWithFunc(workerPoolSize,
		rv.resolveIP,
		ants.WithExpiryDuration(workerPoolExpireTime))
	if err != nil {
		return nil, fmt.Errorf("cannot initialize a worker pool: %w", err)
	}

	rv.workerPool = pool

	return rv, nil
}
