package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/packagetracker/tracker/internal/pkg/metrics"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Refresher re-fetches one tracking number and runs the notification engine.
type Refresher interface {
	Refresh(ctx context.Context, trackingNumber string) error
}

// Dispatcher routes refresh jobs to a fixed set of workers using consistent
// hashing on the tracking number, so jobs for one package run in order.
type Dispatcher struct {
	workers   []chan string
	refresher Refresher
	log       zerolog.Logger
	wg        sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, refresher Refresher, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan string, numWorkers),
		refresher: refresher,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands trackingNumber to its worker. It blocks while that worker's
// buffer is full and gives up when ctx is done.
func (d *Dispatcher) Enqueue(ctx context.Context, trackingNumber string) error {
	idx := d.shardIndex(trackingNumber)
	select {
	case d.workers[idx] <- trackingNumber:
		metrics.RefreshQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// EnqueueBatch enqueues every tracking number and returns how many were accepted.
func (d *Dispatcher) EnqueueBatch(ctx context.Context, trackingNumbers []string) (int, error) {
	for i, tn := range trackingNumbers {
		if err := d.Enqueue(ctx, tn); err != nil {
			return i, err
		}
	}
	return len(trackingNumbers), nil
}

// shardIndex maps a tracking number deterministically to a worker index.
func (d *Dispatcher) shardIndex(trackingNumber string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(trackingNumber))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	defer d.wg.Done()
	depth := metrics.RefreshQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case tn, ok := <-ch:
			if !ok {
				return
			}
			depth.Set(float64(len(ch)))
			if err := d.refresher.Refresh(ctx, tn); err != nil {
				metrics.RefreshJobsTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("tracking_number", tn).
					Int("worker_id", id).
					Msg("refresh failed")
				continue
			}
			metrics.RefreshJobsTotal.WithLabelValues("ok").Inc()
		}
	}
}
