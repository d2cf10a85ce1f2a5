package usecase

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"video-distributor/domain/model"
	"video-distributor/infrastructure/logger"
)

var (
	ErrNoSourceFile      = errors.New("no source file selected")
	ErrPublishInProgress = errors.New("publish already in progress")
	ErrNothingToPublish  = errors.New("no selected platform is idle")
)

type PublishConfig struct {
	MinDelay time.Duration
	MaxDelay time.Duration
	// FailureRate is the probability that a completion ends in error.
	FailureRate float64
}

// PublishRun describes one started run. Done is closed once every scheduled
// completion has fired.
type PublishRun struct {
	SessionID string
	Targets   []model.PlatformID
	Skipped   []model.PlatformID
	Delays    map[model.PlatformID]time.Duration
	done      chan struct{}
}

func (r *PublishRun) Done() <-chan struct{} { return r.done }

type IPublishUsecase interface {
	Publish(ctx context.Context, sessionID string) (*PublishRun, error)
	Reset(ctx context.Context, sessionID string) (*model.Session, error)
}

type PublishOption func(*publishUsecase)

// WithDelaySampler replaces the uniform random delay.
func WithDelaySampler(fn func(model.PlatformID) time.Duration) PublishOption {
	return func(u *publishUsecase) { u.sampleDelay = fn }
}

// WithRand seeds outcome and delay sampling.
func WithRand(r *rand.Rand) PublishOption {
	return func(u *publishUsecase) { u.rng = r }
}

type publishUsecase struct {
	registry    ISessionRegistry
	cfg         PublishConfig
	mu          sync.Mutex
	rng         *rand.Rand
	sampleDelay func(model.PlatformID) time.Duration
}

func NewPublishUsecase(registry ISessionRegistry, cfg PublishConfig, opts ...PublishOption) IPublishUsecase {
	if cfg.MaxDelay < cfg.MinDelay {
		cfg.MaxDelay = cfg.MinDelay
	}
	u := &publishUsecase{
		registry: registry,
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	u.sampleDelay = u.uniformDelay
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *publishUsecase) uniformDelay(model.PlatformID) time.Duration {
	span := int64(u.cfg.MaxDelay - u.cfg.MinDelay)
	if span <= 0 {
		return u.cfg.MinDelay
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.cfg.MinDelay + time.Duration(u.rng.Int63n(span))
}

func (u *publishUsecase) outcome() model.PublishStatus {
	if u.cfg.FailureRate <= 0 {
		return model.PublishSuccess
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.rng.Float64() < u.cfg.FailureRate {
		return model.PublishError
	}
	return model.PublishSuccess
}

// Publish starts a simulated run for every selected idle platform. All
// targets move to uploading in the same replacement that sets the
// publishing flag; each then completes on its own timer. The flag clears
// when the last outstanding completion fires, whatever its registry
// position.
func (u *publishUsecase) Publish(_ context.Context, sessionID string) (*PublishRun, error) {
	store, err := u.registry.Get(sessionID)
	if err != nil {
		return nil, err
	}

	run := &PublishRun{
		SessionID: sessionID,
		Delays:    make(map[model.PlatformID]time.Duration),
		done:      make(chan struct{}),
	}
	_, err = store.Update(func(next *model.Session) error {
		if next.File == nil {
			return ErrNoSourceFile
		}
		if next.IsPublishing {
			return ErrPublishInProgress
		}
		run.Targets, run.Skipped = nil, nil
		for _, id := range next.SelectedPlatforms() {
			if next.Status[id] != model.PublishIdle {
				run.Skipped = append(run.Skipped, id)
				continue
			}
			run.Targets = append(run.Targets, id)
		}
		if len(run.Targets) == 0 {
			return ErrNothingToPublish
		}
		next.IsPublishing = true
		for _, id := range run.Targets {
			next.Status[id] = model.PublishUploading
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	lg := logger.GetLogger().WithField("session_id", sessionID)
	lg.WithField("targets", run.Targets).WithField("skipped", run.Skipped).Info("publish run started")

	// Guarded by the store lock: only touched inside Update callbacks.
	outstanding := len(run.Targets)
	for _, id := range run.Targets {
		id := id
		delay := u.sampleDelay(id)
		run.Delays[id] = delay
		time.AfterFunc(delay, func() {
			status := u.outcome()
			finished := false
			_, _ = store.Update(func(next *model.Session) error {
				next.Status[id] = status
				outstanding--
				if outstanding == 0 {
					next.IsPublishing = false
					finished = true
				}
				return nil
			})
			lg.WithField("platform", id).WithField("status", status).Info("simulated upload completed")
			if finished {
				lg.Info("publish run finished")
				close(run.done)
			}
		})
	}
	return run, nil
}

// Reset returns every platform to idle so another run can start. It is
// refused while a run is in flight.
func (u *publishUsecase) Reset(_ context.Context, sessionID string) (*model.Session, error) {
	store, err := u.registry.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return store.Update(func(next *model.Session) error {
		if next.IsPublishing {
			return ErrPublishInProgress
		}
		for id := range next.Status {
			next.Status[id] = model.PublishIdle
		}
		return nil
	})
}
