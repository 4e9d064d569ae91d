package operator

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-ledger/internal/operator/actions"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

// OperatorDelegator manages the queue, starts/stops Operators (workers), and enqueues items.
type OperatorDelegator struct {
	backend    storage.Backend
	queue      chan ActionItem
	numWorkers int
	maxRetries int
	logger     *logrus.Logger
	wg         sync.WaitGroup
	stopOnce   sync.Once
}

func NewOperatorDelegator(backend storage.Backend, numWorkers, maxRetries int, logger *logrus.Logger) *OperatorDelegator {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &OperatorDelegator{
		backend:    backend,
		queue:      make(chan ActionItem, 1000),
		numWorkers: numWorkers,
		maxRetries: maxRetries,
		logger:     logger,
	}
}

func (d *OperatorDelegator) Start() {
	for i := 0; i < d.numWorkers; i++ {
		d.wg.Add(1)
		op := NewOperator(d.backend, d.queue, d.maxRetries, d.logger)
		go func() {
			defer d.wg.Done()
			op.Run()
		}()
	}
}

// Stop drains the queue and waits for the workers. Process must not be called afterwards.
func (d *OperatorDelegator) Stop() {
	d.stopOnce.Do(func() {
		close(d.queue)
		d.wg.Wait()
	})
}

// Process runs action in one atomic unit of work and returns its outcome.
func (d *OperatorDelegator) Process(ctx context.Context, action actions.IAction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	respCh := make(chan ActionItemResponse, 1)
	item := ActionItem{
		ctx:      ctx,
		action:   action,
		response: respCh,
	}

	select {
	case d.queue <- item:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case resp := <-respCh:
		return resp.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
