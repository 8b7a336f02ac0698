package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pickmymaid/content-api/internal/api/metrics"
)

const (
	defaultWorkers = 2
	channelBuffer  = 64
)

// ErrQueueFull is returned by Enqueue when the target worker has no room left.
var ErrQueueFull = errors.New("queue: worker buffer full")

// Handler processes one job.
type Handler[T any] func(ctx context.Context, job T) error

// Dispatcher routes jobs to a fixed set of workers using a hash of the job key,
// so jobs sharing a key are handled in order by the same worker.
type Dispatcher[T any] struct {
	workers []chan T
	key     func(T) string
	handle  Handler[T]
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher[T any](numWorkers int, key func(T) string, handle Handler[T], log zerolog.Logger) *Dispatcher[T] {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher[T]{
		workers: make([]chan T, numWorkers),
		key:     key,
		handle:  handle,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan T, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher[T]) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher[T]) Wait() {
	d.wg.Wait()
}

// Enqueue hands job to its worker without blocking. When the worker buffer is full
// the job is dropped and ErrQueueFull returned.
func (d *Dispatcher[T]) Enqueue(job T) error {
	idx := d.shardIndex(d.key(job))
	select {
	case d.workers[idx] <- job:
		metrics.MailQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return nil
	default:
		metrics.MailJobsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().Int("worker_id", idx).Msg("job dropped, queue full")
		return ErrQueueFull
	}
}

func (d *Dispatcher[T]) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher[T]) runWorker(ctx context.Context, id int, ch <-chan T) {
	defer d.wg.Done()
	depth := metrics.MailQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-ch:
			depth.Set(float64(len(ch)))
			if err := d.handle(ctx, job); err != nil {
				metrics.MailJobsTotal.WithLabelValues("failed").Inc()
				d.log.Error().Err(err).Int("worker_id", id).Msg("job failed")
				continue
			}
			metrics.MailJobsTotal.WithLabelValues("sent").Inc()
		}
	}
}
