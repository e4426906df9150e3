package geolib

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/panjf2000/ants/v2"
)

type poolResolveRequest struct {
	ctx           context.Context
	request       Request
	provider      Provider
	resultChannel chan<- ResolveResult
	wg            *sync.WaitGroup
}

type poolResolveGroup struct {
	ctx           context.Context
	cancel        context.CancelFunc
	resultChannel chan<- ResolveResult
	provider      Provider
	env           Environ
	wg            *sync.WaitGroup
	pool          *ants.PoolWithFunc
}

func (p *poolResolveGroup) Do(ctx context.Context, ip net.IP) error {
	select {
	case <-ctx.Done():
		return ErrContextIsClosed
	case <-p.ctx.Done():
		return ErrContextIsClosed
	default:
	}

	p.wg.Add(1)

	req := &poolResolveRequest{
		ctx: p.ctx,
		request: Request{
			IP:  ip,
			Env: p.env,
		},
		provider:      p.provider,
		resultChannel: p.resultChannel,
		wg:            p.wg,
	}

	if err := p.pool.Invoke(req); err != nil {
		p.wg.Done()
		p.cancel()

		return fmt.Errorf("cannot schedule a task: %w", err)
	}

	return nil
}

func newPoolResolveGroup(ctx context.Context,
	resultChannel chan<- ResolveResult,
	provider Provider,
	env Environ,
	wg *sync.WaitGroup,
	pool *ants.PoolWithFunc) *poolResolveGroup {
	ctx, cancel := context.WithCancel(ctx)

	return &poolResolveGroup{
		ctx:           ctx,
		wg:            wg,
		resultChannel: resultChannel,
		provider:      provider,
		env:           env,
		cancel:        cancel,
		pool:          pool,
	}
}
