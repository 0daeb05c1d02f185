package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueRecost = "jobs:recost"
	QueueEmail  = "jobs:email"

	JobTypeRecost      = "recost"
	JobTypeRecostSweep = "recost_sweep"
	JobTypeEmail       = "email"

	// MaxJobAttempts failures re-enqueue the job; the next failure sends it
	// to the dead letter queue.
	MaxJobAttempts = 3
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// RecostJobPayload targets a single product for recosting.
type RecostJobPayload struct {
	ProductID string `json:"product_id"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueRecost pushes a single-product recost job to Redis.
func (d *Dispatcher) EnqueueRecost(ctx context.Context, productID string) error {
	return d.enqueue(ctx, QueueRecost, JobTypeRecost, RecostJobPayload{ProductID: productID})
}

// EnqueueRecostSweep pushes a sweep job; the recost worker expands it into
// one job per CALCULATED product. Satisfies service.RecostTrigger.
func (d *Dispatcher) EnqueueRecostSweep(ctx context.Context) error {
	return d.enqueue(ctx, QueueRecost, JobTypeRecostSweep, struct{}{})
}

// EnqueueEmail pushes an email job to Redis.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload interface{}) error {
	return d.enqueue(ctx, QueueEmail, JobTypeEmail, payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// Handlers routes each job type to its processor.
type Handlers struct {
	Recost *RecostWorker
	Email  *EmailWorker
}

// StartWorkerPool launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, handlers Handlers) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i, handlers)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, id int, handlers Handlers) {
	queues := []string{QueueRecost, QueueEmail}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, handlers, result[0], result[1])
		}
	}
}

// processJob dispatches one job. A failed job is re-enqueued with its attempt
// counter bumped until MaxJobAttempts, then parked in the DLQ.
func processJob(ctx context.Context, rdb *redis.Client, handlers Handlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	var err error
	switch job.Type {
	case JobTypeRecost:
		err = handlers.Recost.ProcessRecost(ctx, job.Payload)
	case JobTypeRecostSweep:
		err = handlers.Recost.ProcessSweep(ctx)
	case JobTypeEmail:
		err = handlers.Email.Process(ctx, job.Payload)
	default:
		log.Error().Str("type", job.Type).Str("queue", queue).Msg("unknown job type")
		return
	}
	if err == nil {
		return
	}

	job.Attempts++
	if job.Attempts >= MaxJobAttempts {
		SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, err.Error(), job.Attempts)
		return
	}

	encoded, mErr := json.Marshal(job)
	if mErr != nil {
		log.Error().Err(mErr).Str("type", job.Type).Msg("failed to re-encode job for retry")
		return
	}
	if pushErr := rdb.LPush(ctx, queue, encoded).Err(); pushErr != nil {
		log.Error().Err(pushErr).Str("type", job.Type).Msg("failed to re-enqueue job")
		return
	}
	log.Warn().
		Err(err).
		Str("type", job.Type).
		Int("attempts", job.Attempts).
		Msg("job failed, re-enqueued")
}
