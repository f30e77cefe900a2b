package services

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// EnrichmentPool bounds the number of concurrent external
// text-generation calls so enrichment never starves request handlers.
// Submissions carry their own deadline and are abandoned (not retried)
// when it expires.
type EnrichmentPool interface {
	Start()
	Stop()
	Submit(ctx context.Context, task func(context.Context) ([]string, error)) ([]string, error)
}

type enrichJob struct {
	ctx    context.Context
	run    func(context.Context) ([]string, error)
	result chan enrichResult
}

type enrichResult struct {
	lines []string
	err   error
}

type enrichmentPool struct {
	jobQueue    chan enrichJob
	concurrency int
	logger      *zap.Logger
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

func NewEnrichmentPool(concurrency int, logger *zap.Logger) EnrichmentPool {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &enrichmentPool{
		jobQueue:    make(chan enrichJob, 100),
		concurrency: concurrency,
		logger:      logger,
		stopChan:    make(chan struct{}),
	}
}

// Start implements EnrichmentPool.
func (p *enrichmentPool) Start() {
	p.logger.Info("starting enrichment pool", zap.Int("concurrency", p.concurrency))

	for i := 0; i < p.concurrency; i++ {
		p.wg.Add(1)
		go p.processJobs(i + 1)
	}
}

// Stop implements EnrichmentPool.
func (p *enrichmentPool) Stop() {
	close(p.stopChan)
	p.wg.Wait()
	p.logger.Info("enrichment pool stopped")
}

// Submit implements EnrichmentPool. It blocks until the task finishes,
// the caller's context expires, or the pool shuts down.
func (p *enrichmentPool) Submit(ctx context.Context, task func(context.Context) ([]string, error)) ([]string, error) {
	job := enrichJob{
		ctx:    ctx,
		run:    task,
		result: make(chan enrichResult, 1),
	}

	select {
	case p.jobQueue <- job:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.stopChan:
		return nil, errors.New("enrichment pool stopped")
	}

	select {
	case res := <-job.result:
		return res.lines, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.stopChan:
		return nil, errors.New("enrichment pool stopped")
	}
}

func (p *enrichmentPool) processJobs(workerID int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case job := <-p.jobQueue:
			if err := job.ctx.Err(); err != nil {
				job.result <- enrichResult{err: err}
				continue
			}
			lines, err := job.run(job.ctx)
			if err != nil {
				p.logger.Debug("enrichment task failed",
					zap.Int("worker", workerID),
					zap.Error(err))
			}
			job.result <- enrichResult{lines: lines, err: err}
		}
	}
}
