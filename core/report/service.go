package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/kampushq/kampus/core"
)

var (
	// defaultSchedule is the inter-poll delay ramp; the last value is reused
	// once the schedule is exhausted.
	defaultSchedule = []time.Duration{
		400 * time.Millisecond,
		700 * time.Millisecond,
		1 * time.Second,
		1500 * time.Millisecond,
		2 * time.Second,
		2500 * time.Millisecond,
		3 * time.Second,
		3500 * time.Millisecond,
	}

	// sleepFunc waits for d or until ctx is done. mockable
	sleepFunc = func(ctx context.Context, d time.Duration) error {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			return nil
		}
	}

	// errors
	ErrTimeout     = errors.New("timeout waiting for report generation")
	ErrNotReady    = errors.New("report artifact is not ready")
	ErrJobCanceled = errors.New("report generation was canceled")
)

// defaultMaxPolls caps a poll run at ~2 min worst case with the default schedule.
const defaultMaxPolls = 60

// JobFailedError reports a job that reached FAILED; it carries the final
// snapshot so callers can surface Job.ErrorMessage. It is not a transport error.
type JobFailedError struct {
	Job Job
}

func (e *JobFailedError) Error() string {
	if e.Job.ErrorMessage != "" {
		return fmt.Sprintf("report generation failed: %s", e.Job.ErrorMessage)
	}
	return "report generation failed"
}

type (
	Option func(*Service)

	// Service drives server-side report generation from the client: it
	// creates jobs, polls them to a terminal status and retrieves artifacts.
	Service struct {
		repo     Repository
		log      core.Logger
		schedule []time.Duration
		maxPolls int
	}
)

func NewService(repo Repository, log core.Logger, opts ...Option) *Service {
	svc := &Service{
		repo:     repo,
		log:      log,
		schedule: defaultSchedule,
		maxPolls: defaultMaxPolls,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// WithSchedule overrides the inter-poll delay ramp.
func WithSchedule(ds ...time.Duration) Option {
	return func(svc *Service) {
		if len(ds) > 0 {
			svc.schedule = ds
		}
	}
}

// WithMaxPolls overrides the poll-iteration cap.
func WithMaxPolls(n int) Option {
	return func(svc *Service) {
		if n > 0 {
			svc.maxPolls = n
		}
	}
}

// Wait polls the job until it reaches a terminal status and returns that
// snapshot; a FAILED or CANCELED job is a normal return, not an error.
// onUpdate (optional) receives every snapshot, the terminal one included.
// Wait fails with ErrTimeout once the iteration cap is exhausted, and with
// the ctx error when the caller cancels; an in-flight fetch is left to
// complete and its result discarded.
func (svc *Service) Wait(ctx context.Context, jobID int, onUpdate func(Job)) (Job, error) {
	for i := 0; i < svc.maxPolls; i++ {
		job, err := svc.repo.GetJob(ctx, jobID)
		if err != nil {
			return Job{}, pkgerrors.Wrapf(err, "fetching report job %d", jobID)
		}
		if onUpdate != nil {
			onUpdate(job)
		}
		if job.Status.Terminal() {
			return job, nil
		}
		if err := sleepFunc(ctx, svc.delay(i)); err != nil {
			return Job{}, pkgerrors.Wrapf(err, "polling report job %d canceled", jobID)
		}
	}
	return Job{}, ErrTimeout
}

func (svc *Service) delay(i int) time.Duration {
	if i < len(svc.schedule) {
		return svc.schedule[i]
	}
	return svc.schedule[len(svc.schedule)-1]
}

// EnrollmentList creates an enrollment-list job and sees it through to the artifact.
func (svc *Service) EnrollmentList(ctx context.Context, req EnrollmentListRequest, onUpdate func(Job)) (Artifact, error) {
	job, err := svc.repo.CreateEnrollmentListJob(ctx, req)
	if err != nil {
		return Artifact{}, pkgerrors.Wrap(err, "creating enrollment-list job")
	}
	return svc.finish(ctx, job, req.FallbackFilename(), onUpdate)
}

// GroupBulletin creates a group-bulletin job and sees it through to the artifact.
func (svc *Service) GroupBulletin(ctx context.Context, req GroupBulletinRequest, onUpdate func(Job)) (Artifact, error) {
	job, err := svc.repo.CreateGroupBulletinJob(ctx, req)
	if err != nil {
		return Artifact{}, pkgerrors.Wrap(err, "creating group-bulletin job")
	}
	return svc.finish(ctx, job, req.FallbackFilename(), onUpdate)
}

// StudentBulletin creates a student-bulletin job and sees it through to the artifact.
func (svc *Service) StudentBulletin(ctx context.Context, req StudentBulletinRequest, onUpdate func(Job)) (Artifact, error) {
	job, err := svc.repo.CreateStudentBulletinJob(ctx, req)
	if err != nil {
		return Artifact{}, pkgerrors.Wrap(err, "creating student-bulletin job")
	}
	return svc.finish(ctx, job, req.FallbackFilename(), onUpdate)
}

func (svc *Service) finish(ctx context.Context, job Job, fallback string, onUpdate func(Job)) (Artifact, error) {
	svc.log.Debug(fmt.Sprintf("report job %d created, polling", job.ID))

	job, err := svc.Wait(ctx, job.ID, onUpdate)
	if err != nil {
		return Artifact{}, err
	}

	switch job.Status {
	case StatusFailed:
		return Artifact{}, &JobFailedError{Job: job}
	case StatusCanceled:
		return Artifact{}, ErrJobCanceled
	}
	return svc.Download(ctx, job, fallback)
}
