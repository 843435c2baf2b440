package motion

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/pkg/errors"
)

func TestBounds(t *testing.T) {
	b := emptyBounds()
	if !b.IsEmpty() {
		t.Error("emptyBounds should be empty")
	}
	assertVec(t, "empty center", b.Center(), Vec3{})
	assertVec(t, "empty size", b.Size(), Vec3{})

	b = b.Extend(V3(1, -1, 0)).Extend(V3(-3, 5, 2))
	if b.IsEmpty() {
		t.Fatal("extended bounds should not be empty")
	}
	assertVec(t, "min", b.Min, V3(-3, -1, 0))
	assertVec(t, "max", b.Max, V3(1, 5, 2))
	assertVec(t, "center", b.Center(), V3(-1, 2, 1))
	assertVec(t, "size", b.Size(), V3(4, 6, 2))
	if !b.Contains(V3(1, 5, 2)) || b.Contains(V3(1.1, 0, 1)) {
		t.Error("Contains should include faces only")
	}
}

func TestStatusString(t *testing.T) {
	tests := map[Status]string{
		StatusNotStarted: "not-started",
		StatusRunning:    "running",
		StatusFinished:   "finished",
		StatusRewound:    "rewound",
		Status(9):        "unknown",
	}
	for s, want := range tests {
		if s.String() != want {
			t.Errorf("Status(%d).String() = %q, want %q", s, s.String(), want)
		}
	}
}

func TestCheckUnitTime(t *testing.T) {
	for _, ok := range []float64{0, 0.5, 1} {
		if err := checkUnitTime(ok); err != nil {
			t.Errorf("checkUnitTime(%v) = %v", ok, err)
		}
	}
	for _, bad := range []float64{-1e-12, 1.0000001, math.NaN(), math.Inf(1)} {
		if err := checkUnitTime(bad); !errors.Is(err, ErrSequenceBounds) {
			t.Errorf("checkUnitTime(%v) = %v, want ErrSequenceBounds", bad, err)
		}
	}
}

func TestErrorKindsAreDistinct(t *testing.T) {
	kinds := []error{ErrSingularTransform, ErrDegenerateCorrespondence, ErrMissingTarget, ErrSequenceBounds}
	for i, a := range kinds {
		for j, b := range kinds {
			if (i == j) != errors.Is(a, b) {
				t.Errorf("errors.Is(%v, %v) = %v", a, b, i != j)
			}
		}
	}
	wrapped := errors.Wrap(ErrMissingTarget, "context")
	if !errors.Is(errors.WithMessage(wrapped, "more"), ErrMissingTarget) {
		t.Error("wrapped kind should survive more context")
	}
}

func TestSetLogger(t *testing.T) {
	l := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	SetLogger(l)
	if Logger() != l {
		t.Error("Logger should return the configured logger")
	}
	SetLogger(nil)
	if Logger() == l || Logger() == nil {
		t.Error("SetLogger(nil) should restore a silent logger")
	}
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should be disabled")
	}
}
