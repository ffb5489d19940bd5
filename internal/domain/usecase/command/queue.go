package command

import (
	"context"
	"fmt"
	"sync"

	errs "github.com/amirhossein-jamali/schema-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/schema-ledger/internal/domain/port/core"
)

// Queue runs commands sequentially per schema history table inside one process,
// so concurrent API calls wait in line instead of contending for the database lock
type Queue struct {
	logger   coreport.Logger
	capacity int

	// Per-table queues for strict ordering
	queues    sync.Map // map[string]chan *queuedCommand
	workers   sync.WaitGroup
	closeMu   sync.RWMutex
	isClosing bool
}

type queuedCommand struct {
	ctx        context.Context
	name       string
	run        func(ctx context.Context) (any, error)
	resultChan chan queuedResult
}

type queuedResult struct {
	value any
	err   error
}

// NewQueue creates a new command queue
func NewQueue(logger coreport.Logger, capacity int) *Queue {
	if capacity <= 0 {
		capacity = 16
	}
	return &Queue{
		logger:   logger,
		capacity: capacity,
	}
}

// Run enqueues fn behind every earlier command for the same key and waits for its result
func Run[T any](ctx context.Context, q *Queue, key, name string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	value, err := q.enqueue(ctx, key, name, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if value == nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("%w: unexpected result type %T", errs.ErrInternal, value)
	}
	return typed, err
}

func (q *Queue) enqueue(ctx context.Context, key, name string, run func(ctx context.Context) (any, error)) (any, error) {
	q.closeMu.RLock()
	if q.isClosing {
		q.closeMu.RUnlock()
		return nil, fmt.Errorf("%w: command queue is shutting down", errs.ErrInternal)
	}

	queueIface, loaded := q.queues.LoadOrStore(key, make(chan *queuedCommand, q.capacity))
	queue, ok := queueIface.(chan *queuedCommand)
	if !ok {
		q.closeMu.RUnlock()
		q.logger.Error("Failed to type assert command queue", nil)
		return nil, errs.ErrInternal
	}

	if !loaded {
		q.logger.Debug("Starting command queue worker", map[string]any{"table": key})
		q.workers.Add(1)
		go q.work(key, queue)
	}

	cmd := &queuedCommand{
		ctx:        ctx,
		name:       name,
		run:        run,
		resultChan: make(chan queuedResult, 1),
	}

	// Shutdown closes queues only once no sender holds the read lock
	select {
	case queue <- cmd:
		q.closeMu.RUnlock()
	case <-ctx.Done():
		q.closeMu.RUnlock()
		q.logger.Warn("Context canceled while enqueueing command", map[string]any{
			"table":   key,
			"command": name,
			"error":   ctx.Err().Error(),
		})
		return nil, ctx.Err()
	}

	select {
	case result := <-cmd.resultChan:
		return result.value, result.err
	case <-ctx.Done():
		q.logger.Warn("Context canceled while waiting for command result", map[string]any{
			"table":   key,
			"command": name,
			"error":   ctx.Err().Error(),
		})
		return nil, ctx.Err()
	}
}

// work drains one table's queue
func (q *Queue) work(key string, queue chan *queuedCommand) {
	defer q.workers.Done()

	for cmd := range queue {
		if err := cmd.ctx.Err(); err != nil {
			cmd.resultChan <- queuedResult{err: err}
			continue
		}

		q.logger.Debug("Running queued command", map[string]any{
			"table":   key,
			"command": cmd.name,
		})
		value, err := cmd.run(cmd.ctx)
		cmd.resultChan <- queuedResult{value: value, err: err}
	}

	q.logger.Debug("Command queue worker stopped", map[string]any{"table": key})
}

// Shutdown stops accepting commands and waits for queued ones to finish
func (q *Queue) Shutdown() {
	q.closeMu.Lock()
	if q.isClosing {
		q.closeMu.Unlock()
		return
	}
	q.isClosing = true
	q.closeMu.Unlock()

	q.queues.Range(func(_, queueIface any) bool {
		if queue, ok := queueIface.(chan *queuedCommand); ok {
			close(queue)
		}
		return true
	})
	q.workers.Wait()
	q.logger.Info("Command queue shut down", nil)
}
