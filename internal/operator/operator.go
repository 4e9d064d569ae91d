package operator

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-ledger/internal/operator/actions"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

// Operator is the worker that processes items from the queue.
type Operator struct {
	backend    storage.Backend
	queue      chan ActionItem
	maxRetries int
	logger     *logrus.Logger
}

func NewOperator(backend storage.Backend, queue chan ActionItem, maxRetries int, logger *logrus.Logger) *Operator {
	return &Operator{
		backend:    backend,
		queue:      queue,
		maxRetries: maxRetries,
		logger:     logger,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		item.response <- ActionItemResponse{err: o.processItem(item)}
	}
}

func (o *Operator) newBackOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 20 * time.Millisecond
	exp.MaxInterval = time.Second
	exp.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(o.maxRetries)), ctx)
}

// processItem runs the action in its own unit of work, rerunning it from
// scratch when the backend reports a transient conflict.
func (o *Operator) processItem(item ActionItem) error {
	attempt := func() error {
		err := o.performOnce(item)
		if err != nil && !storage.IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		o.logger.WithError(err).WithField("waitMs", wait.Milliseconds()).Warn("Operator.processItem.retry")
	}

	return backoff.RetryNotify(attempt, o.newBackOff(item.ctx), notify)
}

func (o *Operator) performOnce(item ActionItem) error {
	writer, err := o.backend.Write(item.ctx)
	if err != nil {
		return err
	}

	err = item.action.Perform(item.ctx, writer)
	if err != nil {
		if rbErr := writer.Rollback(item.ctx); rbErr != nil {
			o.logger.WithError(rbErr).Error("Operator.performOnce.rollback")
		}
		return err
	}

	return writer.Commit(item.ctx)
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
