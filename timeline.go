package motion

import (
	"log/slog"

	"github.com/pkg/errors"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Timeline drives an Animator from a game loop: call Update(dt) once per
// tick. Time is kept by a gween tween running from 0 to 1 over the
// animator's duration, so Update mirrors the tween API used by Ebitengine
// games. Seek scrubs to any point, forward or backward.
//
// There is no global timeline manager; users call Update themselves.
type Timeline struct {
	anim  Animator
	stage Stage
	clock *gween.Tween

	// Loop restarts the timeline from 0 after it finishes.
	Loop bool
	// OnFinish is called once each time the timeline commits at 1.
	OnFinish func()

	t       float64
	started bool
	done    bool
}

// NewTimeline creates a timeline for anim on stage. Nothing is initialized
// until the first Update or Seek.
func NewTimeline(stage Stage, anim Animator) *Timeline {
	d := float32(anim.Duration())
	if d <= 0 {
		d = 0
	}
	return &Timeline{
		anim:  anim,
		stage: stage,
		clock: gween.New(0, 1, d, ease.Linear),
	}
}

// Animator returns the driven animator.
func (tl *Timeline) Animator() Animator { return tl.anim }

// Done reports whether the timeline has finished and committed.
func (tl *Timeline) Done() bool { return tl.done }

// Progress returns the normalized time of the last frame.
func (tl *Timeline) Progress() float64 { return tl.t }

func (tl *Timeline) start() error {
	if tl.started {
		return nil
	}
	if err := tl.anim.Initialize(tl.stage); err != nil {
		return errors.WithMessage(err, "timeline")
	}
	tl.started = true
	return nil
}

// Update advances the clock by dt seconds and renders the animator at the
// new time. A finished timeline ignores Update unless Loop is set.
func (tl *Timeline) Update(dt float32) error {
	if tl.done {
		if !tl.Loop {
			return nil
		}
		if err := tl.Rewind(); err != nil {
			return err
		}
	}
	if err := tl.start(); err != nil {
		return err
	}
	v, finished := tl.clock.Update(dt)
	if finished {
		return tl.finish()
	}
	return tl.advance(float64(v))
}

// Seek jumps to normalized time t and renders that frame. Seeking to 1
// finishes the timeline.
func (tl *Timeline) Seek(t float64) error {
	if err := checkUnitTime(t); err != nil {
		return errors.WithMessage(err, "timeline")
	}
	if err := tl.start(); err != nil {
		return err
	}
	tl.clock.Set(float32(t * tl.anim.Duration()))
	if t == 1 {
		return tl.finish()
	}
	tl.done = false
	return tl.advance(t)
}

// Rewind returns the animator to its unstarted state and resets the clock.
func (tl *Timeline) Rewind() error {
	tl.clock.Reset()
	tl.done = false
	if !tl.started {
		return nil
	}
	if err := tl.anim.Advance(0); err != nil {
		return errors.WithMessage(err, "timeline")
	}
	if err := tl.anim.CleanupAt(0); err != nil {
		return errors.WithMessage(err, "timeline")
	}
	tl.t = 0
	return nil
}

// advance renders t. PrepareForAnim runs first so that a target taken off
// stage by a commit at 1 is back on stage when the timeline moves back.
func (tl *Timeline) advance(t float64) error {
	t = clamp01(t)
	if err := tl.anim.PrepareForAnim(t); err != nil {
		return errors.WithMessage(err, "timeline")
	}
	if err := tl.anim.Advance(t); err != nil {
		return errors.WithMessage(err, "timeline")
	}
	tl.t = t
	return nil
}

func (tl *Timeline) finish() error {
	if err := tl.anim.Finish(); err != nil {
		return errors.WithMessage(err, "timeline")
	}
	tl.t = 1
	if !tl.done {
		tl.done = true
		Logger().Debug("timeline finished", slog.Float64("duration", tl.anim.Duration()))
		if tl.OnFinish != nil {
			tl.OnFinish()
		}
	}
	return nil
}
