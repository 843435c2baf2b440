package motion

import (
	"context"
	"log/slog"
	"math"

	"github.com/pkg/errors"
)

// DefaultFPS is the frame rate used when PlayerConfig.FPS is not positive.
const DefaultFPS = 60

// PlayerConfig holds the parameters of a [Player]. Everything a frame
// depends on is passed here rather than read from package state.
type PlayerConfig struct {
	// FPS is the number of frames per second of animation time.
	FPS float64
	// Stage receives the animated objects. Required.
	Stage Stage
	// OnFrame is called after every frame has been advanced, typically to
	// render it. A non-nil error stops playback.
	OnFrame func(frame int, elapsed float64) error
	// Logger overrides the package logger for this player.
	Logger *slog.Logger
}

// Player drives animations frame by frame at a fixed rate. It does not
// sleep between frames; pacing is up to OnFrame.
type Player struct {
	cfg PlayerConfig
}

// NewPlayer creates a player, filling in defaults.
func NewPlayer(cfg PlayerConfig) *Player {
	if !(cfg.FPS > 0) {
		cfg.FPS = DefaultFPS
	}
	return &Player{cfg: cfg}
}

// FPS returns the effective frame rate.
func (p *Player) FPS() float64 { return p.cfg.FPS }

func (p *Player) logger() *slog.Logger {
	if p.cfg.Logger != nil {
		return p.cfg.Logger
	}
	return Logger()
}

// Frames returns the number of frames needed to play animations lasting
// duration seconds.
func (p *Player) Frames(duration float64) int {
	if !(duration > 0) {
		return 0
	}
	return int(math.Ceil(duration*p.cfg.FPS - 1e-9))
}

// Play initializes anims on the configured stage and advances them together
// until the longest has finished. Each animation runs at its own duration:
// at elapsed time e it receives min(1, e/duration). Every animation is
// finished at the end. Play stops early when ctx is done or any animation
// returns an error.
func (p *Player) Play(ctx context.Context, anims ...Animator) error {
	if p.cfg.Stage == nil {
		return errors.Wrap(ErrMissingTarget, "player: nil stage")
	}
	var longest float64
	for i, a := range anims {
		if a == nil {
			return errors.Wrapf(ErrMissingTarget, "player: animation %d is nil", i)
		}
		if err := a.Initialize(p.cfg.Stage); err != nil {
			return errors.WithMessagef(err, "player: animation %d", i)
		}
		longest = math.Max(longest, a.Duration())
	}

	frames := p.Frames(longest)
	log := p.logger()
	log.Info("play started",
		slog.Int("animations", len(anims)),
		slog.Float64("duration", longest),
		slog.Int("frames", frames),
	)

	for frame := 0; frame <= frames; frame++ {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "player: stopped at frame %d", frame)
		}
		elapsed := math.Min(float64(frame)/p.cfg.FPS, longest)
		for i, a := range anims {
			if err := a.Advance(localTime(elapsed, a.Duration())); err != nil {
				return errors.WithMessagef(err, "player: animation %d at frame %d", i, frame)
			}
		}
		if p.cfg.OnFrame != nil {
			if err := p.cfg.OnFrame(frame, elapsed); err != nil {
				return errors.WithMessagef(err, "player: frame %d", frame)
			}
		}
	}

	for i, a := range anims {
		if err := a.Finish(); err != nil {
			return errors.WithMessagef(err, "player: finish animation %d", i)
		}
	}
	log.Info("play finished", slog.Int("frames", frames))
	return nil
}

// Play runs anims to completion on stage at fps frames per second.
func Play(ctx context.Context, stage Stage, fps float64, anims ...Animator) error {
	return NewPlayer(PlayerConfig{FPS: fps, Stage: stage}).Play(ctx, anims...)
}

// localTime maps elapsed seconds to a normalized time for an animation of
// the given duration.
func localTime(elapsed, duration float64) float64 {
	if !(duration > 0) {
		return 1
	}
	return clamp01(elapsed / duration)
}
