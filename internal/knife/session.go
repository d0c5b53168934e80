package knife

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
)

// Session is the level state machine.
//
//	Pending --Start--> Active
//	Active --timeout|ReportFailure--> Lost
//	Active --ReportHit(last)--> Won
//	Won|Lost --Restart--> Active
//
// All entry points are called from the simulation thread; misuse is ignored.
type Session struct {
	bus      *Bus
	progress ProgressStore
	logger   *log.Logger

	cfg        LevelConfig
	configured bool
	remaining  int
	elapsed    float64
	status     Status
	generation uint64
}

// NewSession creates a Pending session. bus and progress are required.
func NewSession(bus *Bus, progress ProgressStore, logger *log.Logger) (*Session, error) {
	if bus == nil {
		return nil, fmt.Errorf("%w: event bus", ErrMissingCollaborator)
	}
	if progress == nil {
		return nil, fmt.Errorf("%w: progress store", ErrMissingCollaborator)
	}
	return &Session{
		bus:      bus,
		progress: progress,
		logger:   discardLogger(logger),
		status:   StatusPending,
	}, nil
}

// Start activates the session with cfg. Calling Start on an Active session
// does nothing; use Restart instead.
func (s *Session) Start(cfg LevelConfig) error {
	if s.status == StatusActive {
		s.logger.Debug("start ignored, level already active", "level", s.cfg.Index)
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.cfg = cfg
	s.configured = true
	s.remaining = cfg.RequiredHits
	s.elapsed = 0
	s.status = StatusActive
	s.generation++

	s.logger.Info("level started",
		"level", cfg.Index,
		"hits", cfg.RequiredHits,
		"limit", cfg.TimeLimit,
		"generation", s.generation,
	)
	s.bus.Publish(LevelStarted{
		Level:        cfg.Index,
		RequiredHits: cfg.RequiredHits,
		TimeLimit:    cfg.TimeLimit,
		Generation:   s.generation,
	})
	return nil
}

// Restart discards the current attempt and starts the same level again.
func (s *Session) Restart() {
	if !s.configured {
		return
	}
	s.status = StatusPending
	// Config was validated by the first Start.
	_ = s.Start(s.cfg)
}

// Tick advances the level clock by dt seconds and fails the level on timeout.
func (s *Session) Tick(dt float64) {
	if s.status != StatusActive {
		return
	}
	if dt > 0 {
		s.elapsed += dt
	}

	if s.TimeLeft() == 0 && s.remaining > 0 {
		s.fail(FailTimeout)
	}
}

// ReportHit records a knife stuck in the target.
func (s *Session) ReportHit() {
	if s.status != StatusActive {
		return
	}

	s.remaining--
	if s.remaining <= 0 {
		s.remaining = 0
		s.status = StatusWon
		s.logger.Info("level completed", "level", s.cfg.Index, "elapsed", s.elapsed)

		if err := s.progress.SaveProgress(s.cfg.Index); err != nil {
			s.logger.Warn("could not save progress", "level", s.cfg.Index, "error", err)
		}
		s.bus.Publish(LevelCompleted{Level: s.cfg.Index, Elapsed: s.elapsed})
		return
	}

	s.bus.Publish(ScoreChanged{Remaining: s.remaining})
	s.bus.Publish(ProjectileRequested{Generation: s.generation})
}

// ReportFailure records a knife hitting another knife.
func (s *Session) ReportFailure() {
	if s.status != StatusActive {
		return
	}
	s.fail(FailCollision)
}

func (s *Session) fail(reason FailReason) {
	s.status = StatusLost
	s.logger.Info("level failed", "level", s.cfg.Index, "reason", reason, "remaining", s.remaining)
	s.bus.Publish(LevelFailed{Level: s.cfg.Index, Reason: reason})
}

// Status returns the current status.
func (s *Session) Status() Status {
	return s.status
}

// Remaining returns the number of knives still required.
func (s *Session) Remaining() int {
	return s.remaining
}

// Elapsed returns seconds since the level started.
func (s *Session) Elapsed() float64 {
	return s.elapsed
}

// TimeLeft returns max(0, limit - elapsed).
func (s *Session) TimeLeft() float64 {
	return math.Max(0, s.cfg.TimeLimit-s.elapsed)
}

// Generation returns the attempt counter, bumped by every Start.
func (s *Session) Generation() uint64 {
	return s.generation
}

// Config returns the level config of the current attempt.
func (s *Session) Config() LevelConfig {
	return s.cfg
}

// Active reports whether the level is being played.
func (s *Session) Active() bool {
	return s.status == StatusActive
}
