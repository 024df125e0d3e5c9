package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is a named periodic task
type Job struct {
	Name     string
	Schedule string
	Timeout  time.Duration
	Run      func(ctx context.Context) error
	// RunOnStart fires the job once when the scheduler starts
	RunOnStart bool
}

// SchedulerConfig configures a Scheduler
type SchedulerConfig struct {
	Location *time.Location
}

// Scheduler runs independent jobs on cron schedules evaluated in a fixed zone.
// It is owned by the process entry point; nothing about it is global.
type Scheduler struct {
	cron    *cron.Cron
	loc     *time.Location
	jobs    []Job
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
}

// NewScheduler creates a scheduler; schedules are standard 5-field cron specs
func NewScheduler(cfg SchedulerConfig) *Scheduler {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		loc:    loc,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Location returns the zone schedules are evaluated in
func (s *Scheduler) Location() *time.Location {
	return s.loc
}

// Register adds a job. It must be called before Start.
func (s *Scheduler) Register(job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return fmt.Errorf("scheduler already started, cannot register %s", job.Name)
	}

	if _, err := s.cron.AddFunc(job.Schedule, func() { s.execute(job) }); err != nil {
		return fmt.Errorf("register job %s (%q): %w", job.Name, job.Schedule, err)
	}
	s.jobs = append(s.jobs, job)

	log.Printf("🗓️ Job registered: %s [%s %s]", job.Name, job.Schedule, s.loc)
	return nil
}

// Start begins scheduling and fires RunOnStart jobs in the background
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.started = true

	s.cron.Start()
	for _, job := range s.jobs {
		if job.RunOnStart {
			s.wg.Add(1)
			go func(j Job) {
				defer s.wg.Done()
				s.execute(j)
			}(job)
		}
	}

	log.Printf("🚀 Scheduler started with %d jobs", len(s.jobs))
}

// Stop halts scheduling, cancels the job context and waits for running jobs
// or for ctx to expire, whichever is first.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = false
	s.mu.Unlock()

	cronDone := s.cron.Stop()
	s.cancel()

	done := make(chan struct{})
	go func() {
		<-cronDone.Done()
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("🛑 Scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler stop: %w", ctx.Err())
	}
}

// execute runs a job with its timeout. Errors and panics are logged, never
// propagated, so a failing job cannot take the process down.
func (s *Scheduler) execute(job Job) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Job %s panicked: %v", job.Name, r)
		}
	}()

	ctx := s.ctx
	if job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.Timeout)
		defer cancel()
	}

	if err := job.Run(ctx); err != nil {
		log.Printf("❌ Job %s failed: %v", job.Name, err)
	}
}
