package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"outdoor-rental-backend/internal/config"
	"outdoor-rental-backend/internal/contract"
	"outdoor-rental-backend/internal/logger"
)

// contractJob is one queued contract delivery: generate the PDF, mail it
// to the customer, and copy the owner.
type contractJob struct {
	id            string
	data          contract.ContractData
	customerEmail string
	attempts      int
}

// ContractDeliveryQueue sends rental agreements in the background so
// checkout never blocks on SMTP. Deliveries are retried with backoff and
// dropped after the configured number of attempts; a dropped delivery is
// logged and the reservation stays valid.
type ContractDeliveryQueue struct {
	jobs       chan contractJob
	generator  *contract.Generator
	email      EmailService
	maxRetries int
	workers    int

	wg       sync.WaitGroup
	stopOnce sync.Once
	done     chan struct{}
}

// NewContractDeliveryQueue creates and starts the delivery workers.
func NewContractDeliveryQueue(cfg config.NotifierConfig, generator *contract.Generator, email EmailService) *ContractDeliveryQueue {
	q := &ContractDeliveryQueue{
		jobs:       make(chan contractJob, cfg.QueueSize),
		generator:  generator,
		email:      email,
		maxRetries: cfg.MaxRetries,
		workers:    cfg.Workers,
		done:       make(chan struct{}),
	}
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(i)
	}
	logger.Info("contract delivery queue started", "workers", q.workers, "queueSize", cfg.QueueSize)
	return q
}

// EnqueueContract queues a delivery. When the queue is full the job is
// dropped with a log entry rather than blocking checkout.
func (q *ContractDeliveryQueue) EnqueueContract(data contract.ContractData, customerEmail string) {
	job := contractJob{
		id:            uuid.New().String(),
		data:          data,
		customerEmail: customerEmail,
	}
	select {
	case q.jobs <- job:
		logger.Debug("contract delivery queued", "jobId", job.id, "orderNumber", data.OrderNumber)
	default:
		logger.Error("contract delivery queue full, dropping job",
			"jobId", job.id, "orderNumber", data.OrderNumber)
	}
}

// Stop drains the queue and waits for in-flight deliveries to finish.
func (q *ContractDeliveryQueue) Stop() {
	q.stopOnce.Do(func() {
		close(q.done)
		close(q.jobs)
		q.wg.Wait()
		logger.Info("contract delivery queue stopped")
	})
}

func (q *ContractDeliveryQueue) worker(id int) {
	defer q.wg.Done()
	for job := range q.jobs {
		q.deliver(job)
	}
	logger.Debug("contract delivery worker exiting", "worker", id)
}

func (q *ContractDeliveryQueue) deliver(job contractJob) {
	for job.attempts = 1; job.attempts <= q.maxRetries; job.attempts++ {
		if err := q.attempt(job); err != nil {
			logger.Warn("contract delivery attempt failed",
				"jobId", job.id,
				"orderNumber", job.data.OrderNumber,
				"attempt", job.attempts,
				"error", err)
			if job.attempts < q.maxRetries && q.sleep(backoff(job.attempts)) {
				continue
			}
			logger.Error("contract delivery abandoned",
				"jobId", job.id, "orderNumber", job.data.OrderNumber)
			return
		}
		logger.Info("contract delivered",
			"jobId", job.id,
			"orderNumber", job.data.OrderNumber,
			"attempts", job.attempts)
		return
	}
}

func (q *ContractDeliveryQueue) attempt(job contractJob) error {
	pdf, err := q.generator.Generate(job.data)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := q.email.SendContractEmail(ctx, job.customerEmail, job.data.CustomerName, job.data.OrderNumber, pdf); err != nil {
		return err
	}
	if err := q.email.SendOwnerNotification(ctx, job.data.CustomerName, job.customerEmail, job.data.OrderNumber, pdf); err != nil {
		// The customer already has the contract, so only log.
		logger.Warn("owner notification failed",
			"jobId", job.id, "orderNumber", job.data.OrderNumber, "error", err)
	}
	return nil
}

// sleep waits for d unless the queue is stopping. Reports whether the
// full duration elapsed.
func (q *ContractDeliveryQueue) sleep(d time.Duration) bool {
	select {
	case <-time.After(d):
		return true
	case <-q.done:
		return false
	}
}

func backoff(attempt int) time.Duration {
	return time.Duration(1<<(attempt-1)) * time.Second
}
