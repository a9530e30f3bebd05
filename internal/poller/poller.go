// Package poller drives one render from submission to a terminal state,
// polling the composer for status and reporting progress to a Presenter.
package poller

import (
	"context"
	"time"

	"framecraft/internal/composer"
	v1 "framecraft/internal/contracts/render/v1"
	"framecraft/internal/pkg/errors"
	"framecraft/internal/pkg/logger"
)

// DefaultInterval is the wait between two status lookups.
const DefaultInterval = 2 * time.Second

type Options struct {
	Client    Client
	Presenter Presenter
	Interval  time.Duration
	Clock     Clock
	Logger    *logger.Logger
}

// Poller runs submissions one at a time.
type Poller struct {
	client    Client
	presenter Presenter
	interval  time.Duration
	clock     Clock
	log       *logger.Logger
}

func New(opts Options) *Poller {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	clock := opts.Clock
	if clock == nil {
		clock = realClock{}
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	return &Poller{
		client:    opts.Client,
		presenter: opts.Presenter,
		interval:  interval,
		clock:     clock,
		log:       log.WithComponent("poller"),
	}
}

// Run submits sub and polls until the job is done or failed, or ctx ends.
// Submit is disabled for the duration of the run. A failed render is
// returned as a REMOTE_ERROR alongside the last job state.
func (p *Poller) Run(ctx context.Context, sub composer.Submission) (v1.Job, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p.presenter.SubmitEnabled(false)
	defer p.presenter.SubmitEnabled(true)

	var t Tracker
	p.observe(&t, v1.StatusSubmitted)

	id, err := p.client.Submit(ctx, sub)
	if err != nil {
		return v1.Job{}, p.fail(ctx, &t, err)
	}

	ctx = logger.ContextWithJobID(ctx, id)
	log := p.log.FromContext(ctx)
	log.Info("render queued")

	for {
		job, err := p.client.Status(ctx, id)
		if err != nil {
			return v1.Job{}, p.fail(ctx, &t, err)
		}

		switch status := p.observe(&t, job.Status); status {
		case v1.StatusDone:
			log.Info("render done", "url", job.URL)
			p.presenter.Done(job)
			return job, nil
		case v1.StatusFailed:
			log.Warn("render failed", "status", string(job.Status), "error", job.Error)
			msg := job.Error
			if msg == "" {
				msg = UnknownError
			}
			p.presenter.Failed(Failure{Message: msg})
			return job, errors.New(errors.CodeRemote, "render failed").
				WithOp("poller.run").
				WithField("job_id", id).
				WithField("status", string(job.Status))
		}

		select {
		case <-ctx.Done():
			return job, errors.WrapWithCode(ctx.Err(), errors.CodeTimeout, "poller.run", "polling stopped")
		case <-p.clock.After(p.interval):
		}
	}
}

func (p *Poller) observe(t *Tracker, s v1.Status) v1.Status {
	status, progress := t.Observe(s)
	p.presenter.Progress(status, progress)
	return status
}

func (p *Poller) fail(ctx context.Context, t *Tracker, err error) error {
	p.log.FromContext(ctx).WithError(err).Warn("run failed")
	p.observe(t, v1.StatusFailed)
	p.presenter.Failed(Describe(err))
	return err
}
