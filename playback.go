package motion

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// playbackStep is a single action in a playback script.
type playbackStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	T      float64 `json:"t,omitempty"`
	DT     float32 `json:"dt,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// playbackScript is the top-level JSON structure for a playback script.
type playbackScript struct {
	Steps []playbackStep `json:"steps"`
}

// Playback runs a scripted sequence of seeks and clock steps against a
// [Timeline], one step per frame, for automated scrub testing. Scripts are
// JSON:
//
//	{"steps": [
//	  {"action": "seek", "t": 0.4},
//	  {"action": "snapshot", "label": "mid"},
//	  {"action": "step", "dt": 0.016, "frames": 10},
//	  {"action": "wait", "frames": 3},
//	  {"action": "finish"}
//	]}
type Playback struct {
	steps     []playbackStep
	cursor    int
	waitCount int
	stepCount int
	stepDT    float32
	done      bool

	// OnSnapshot is called for every snapshot step with its label.
	OnSnapshot func(label string, tl *Timeline)
}

// LoadPlaybackScript parses a JSON playback script.
func LoadPlaybackScript(data []byte) (*Playback, error) {
	var script playbackScript
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, errors.Wrap(err, "parse playback script")
	}
	if len(script.Steps) == 0 {
		return nil, errors.New("parse playback script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "seek":
			if err := checkUnitTime(st.T); err != nil {
				return nil, errors.WithMessagef(err, "parse playback script: step %d", i)
			}
		case "step", "wait", "finish", "snapshot":
		default:
			return nil, errors.Errorf("parse playback script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Playback{steps: script.Steps}, nil
}

// Done reports whether all steps have been executed.
func (p *Playback) Done() bool {
	return p.done
}

// Step executes one frame of the script against tl.
func (p *Playback) Step(tl *Timeline) error {
	if p.done {
		return nil
	}
	if p.waitCount > 0 {
		p.waitCount--
		p.checkDone()
		return nil
	}
	if p.stepCount > 0 {
		p.stepCount--
		err := tl.Update(p.stepDT)
		p.checkDone()
		return err
	}
	if p.cursor >= len(p.steps) {
		p.done = true
		return nil
	}

	st := p.steps[p.cursor]
	p.cursor++

	var err error
	switch st.Action {
	case "seek":
		err = tl.Seek(st.T)
	case "step":
		frames := st.Frames
		if frames < 1 {
			frames = 1
		}
		p.stepDT = st.DT
		p.stepCount = frames - 1 // this frame counts as one
		err = tl.Update(st.DT)
	case "wait":
		if st.Frames > 0 {
			p.waitCount = st.Frames - 1
		}
	case "finish":
		err = tl.Seek(1)
	case "snapshot":
		if p.OnSnapshot != nil {
			p.OnSnapshot(st.Label, tl)
		}
	}
	p.checkDone()
	return errors.WithMessagef(err, "playback step %d (%s)", p.cursor-1, st.Action)
}

// Run executes the whole script.
func (p *Playback) Run(tl *Timeline) error {
	for !p.done {
		if err := p.Step(tl); err != nil {
			return err
		}
	}
	return nil
}

func (p *Playback) checkDone() {
	if p.cursor >= len(p.steps) && p.waitCount == 0 && p.stepCount == 0 {
		p.done = true
	}
}
