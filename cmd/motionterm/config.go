package main

import (
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/motion"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	defaultFPS   = 30
	defaultScale = 4
)

// config is the YAML document describing a scene and the timeline played on
// it.
type config struct {
	FPS    float64     `yaml:"fps"`
	Scale  float64     `yaml:"scale"` // terminal columns per scene unit
	Loop   bool        `yaml:"loop"`
	Camera cameraSpec  `yaml:"camera"`
	Shapes []shapeSpec `yaml:"shapes"`
	Steps  []stepSpec  `yaml:"steps"`
}

type shapeSpec struct {
	Name   string  `yaml:"name"`
	Sides  int     `yaml:"sides"`
	Radius float64 `yaml:"radius"`
	Center vec     `yaml:"center"`
	Points []vec   `yaml:"points"` // overrides sides and radius
	Closed bool    `yaml:"closed"`
	Color  string  `yaml:"color"`
	// Offstage shapes are only shown once an animation puts them on stage.
	Offstage bool `yaml:"offstage"`
}

// cameraSpec makes the view track a shape. Lerp defaults to 1 (snap).
type cameraSpec struct {
	Follow string  `yaml:"follow"`
	Lerp   float64 `yaml:"lerp"`
}

type jumpSpec struct {
	Height float64 `yaml:"height"`
	Type   string  `yaml:"type"`
}

// stepSpec is one animation. A step with Parallel or Sequence children is a
// group or a nested sequence and ignores the other fields.
type stepSpec struct {
	Op       string    `yaml:"op"`
	Name     string    `yaml:"name"`
	Duration float64   `yaml:"duration"`
	Targets  []string  `yaml:"targets"` // empty means every shape
	Vector   vec       `yaml:"vector"`
	Factor   float64   `yaml:"factor"`
	Angle    float64   `yaml:"angle"`
	Angles   vec       `yaml:"angles"`
	Kind     string    `yaml:"kind"`
	Points   []vec     `yaml:"points"`
	Easing   string    `yaml:"easing"`
	Lag      float64   `yaml:"lag"`
	Jump     *jumpSpec `yaml:"jump"`
	Turns    int       `yaml:"turns"`
	Pulse    float64   `yaml:"pulse"`

	Parallel []stepSpec `yaml:"parallel"`
	Sequence []stepSpec `yaml:"sequence"`
}

// vec is a YAML sequence of two or three numbers.
type vec []float64

func (v vec) vec3() (motion.Vec3, error) {
	switch len(v) {
	case 0:
		return motion.Vec3{}, nil
	case 2:
		return motion.V2(v[0], v[1]), nil
	case 3:
		return motion.V3(v[0], v[1], v[2]), nil
	}
	return motion.Vec3{}, errors.Errorf("vector needs 2 or 3 components, got %d", len(v))
}

func vecs(vs []vec) ([]motion.Vec3, error) {
	out := make([]motion.Vec3, len(vs))
	for i, v := range vs {
		p, err := v.vec3()
		if err != nil {
			return nil, errors.WithMessagef(err, "point %d", i)
		}
		out[i] = p
	}
	return out, nil
}

func loadConfig(path string) (*config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (*config, error) {
	var cfg config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	if len(cfg.Shapes) == 0 {
		return nil, errors.New("parse config: no shapes")
	}
	if len(cfg.Steps) == 0 {
		return nil, errors.New("parse config: no steps")
	}
	if cfg.FPS <= 0 {
		cfg.FPS = defaultFPS
	}
	if cfg.Scale <= 0 {
		cfg.Scale = defaultScale
	}
	return &cfg, nil
}

// show is a built config: the scene, its shapes and the root sequence.
type show struct {
	scene  *motion.Scene
	shapes []*motion.Node
	byName map[string]*motion.Node
	colors map[*motion.Node]tcell.Color
	seq    *motion.Sequence

	follow     *motion.Node
	followLerp float64
}

func (c *config) build() (*show, error) {
	sh := &show{
		scene:  motion.NewScene(),
		byName: make(map[string]*motion.Node, len(c.Shapes)),
		colors: make(map[*motion.Node]tcell.Color, len(c.Shapes)),
	}
	for i, spec := range c.Shapes {
		n, err := spec.node()
		if err != nil {
			return nil, errors.WithMessagef(err, "shape %d (%s)", i, spec.Name)
		}
		if _, dup := sh.byName[n.Name]; dup {
			return nil, errors.Errorf("shape %d: duplicate name %q", i, n.Name)
		}
		sh.byName[n.Name] = n
		sh.shapes = append(sh.shapes, n)
		sh.colors[n] = tcell.ColorWhite
		if spec.Color != "" {
			sh.colors[n] = tcell.GetColor(spec.Color)
		}
		if !spec.Offstage {
			sh.scene.Add(n)
		}
	}

	if name := c.Camera.Follow; name != "" {
		n, ok := sh.byName[name]
		if !ok {
			return nil, errors.Wrapf(motion.ErrMissingTarget, "camera: unknown shape %q", name)
		}
		sh.follow = n
		sh.followLerp = c.Camera.Lerp
		if sh.followLerp <= 0 || sh.followLerp > 1 {
			sh.followLerp = 1
		}
	}

	steps, err := sh.buildSteps(c.Steps)
	if err != nil {
		return nil, err
	}
	seq, err := motion.NewSequence(steps...)
	if err != nil {
		return nil, err
	}
	sh.seq = seq
	return sh, nil
}

func (s shapeSpec) node() (*motion.Node, error) {
	name := s.Name
	if name == "" {
		return nil, errors.New("missing name")
	}
	center, err := s.Center.vec3()
	if err != nil {
		return nil, errors.WithMessage(err, "center")
	}
	if len(s.Points) > 0 {
		pts, err := vecs(s.Points)
		if err != nil {
			return nil, err
		}
		if s.Closed {
			return motion.NewPolygon(name, pts...), nil
		}
		return motion.NewShape(name, pts...), nil
	}
	if s.Sides == 0 {
		return motion.NewDot(name, center), nil
	}
	r := s.Radius
	if r <= 0 {
		r = 1
	}
	return motion.NewRegularPolygon(name, center, r, s.Sides), nil
}

func (sh *show) buildSteps(specs []stepSpec) ([]motion.Animator, error) {
	out := make([]motion.Animator, len(specs))
	for i, spec := range specs {
		a, err := sh.buildStep(spec)
		if err != nil {
			return nil, errors.WithMessagef(err, "step %d", i)
		}
		out[i] = a
	}
	return out, nil
}

func (sh *show) targets(names []string) ([]motion.Animatable, error) {
	if len(names) == 0 {
		out := make([]motion.Animatable, len(sh.shapes))
		for i, n := range sh.shapes {
			out[i] = n
		}
		return out, nil
	}
	out := make([]motion.Animatable, len(names))
	for i, name := range names {
		n, ok := sh.byName[name]
		if !ok {
			return nil, errors.Wrapf(motion.ErrMissingTarget, "unknown shape %q", name)
		}
		out[i] = n
	}
	return out, nil
}

func (sh *show) buildStep(spec stepSpec) (motion.Animator, error) {
	switch {
	case len(spec.Parallel) > 0:
		children, err := sh.buildSteps(spec.Parallel)
		if err != nil {
			return nil, errors.WithMessage(err, "parallel")
		}
		g := motion.NewGroup(children...)
		g.Name = spec.Name
		return g, nil
	case len(spec.Sequence) > 0:
		children, err := sh.buildSteps(spec.Sequence)
		if err != nil {
			return nil, errors.WithMessage(err, "sequence")
		}
		seq, err := motion.NewSequence(children...)
		if err != nil {
			return nil, err
		}
		seq.Name = spec.Name
		return seq, nil
	}

	objs, err := sh.targets(spec.Targets)
	if err != nil {
		return nil, err
	}
	v, err := spec.Vector.vec3()
	if err != nil {
		return nil, errors.WithMessage(err, "vector")
	}
	d := spec.Duration

	var a *motion.Animation
	switch spec.Op {
	case "shift":
		a = motion.Shift(d, v, objs...)
	case "move_to":
		a = motion.MoveTo(d, v, objs...)
	case "scale":
		a = motion.ScaleBy(d, spec.Factor, objs...)
	case "rotate":
		a = motion.RotateBy(d, spec.Angle, objs...)
	case "rotate3d":
		angles, err := spec.Angles.vec3()
		if err != nil {
			return nil, errors.WithMessage(err, "angles")
		}
		a = motion.Rotate3DBy(d, angles.X, angles.Y, angles.Z, objs...)
	case "transform":
		kind, err := motion.ParseTransformKind(spec.Kind)
		if err != nil {
			return nil, err
		}
		pts, err := vecs(spec.Points)
		if err != nil {
			return nil, err
		}
		a = motion.TransformWith(d, kind, motion.TransformParams{
			Points: pts,
			Vector: v,
			Angle:  spec.Angle,
		}, objs...)
	case "fade_in":
		a = motion.FadeIn(d, objs...)
	case "fade_out":
		a = motion.FadeOut(d, objs...)
	case "wait":
		a = motion.Wait(d, objs...)
	default:
		return nil, errors.Errorf("unknown op %q", spec.Op)
	}

	if spec.Name != "" {
		a.WithName(spec.Name)
	}
	if spec.Easing != "" {
		kind, err := motion.ParseEasing(spec.Easing)
		if err != nil {
			return nil, err
		}
		a.WithEasing(motion.Named(kind))
	}
	if spec.Lag > 0 {
		a.WithLag(spec.Lag)
	}

	var fx motion.Effects
	if spec.Jump != nil {
		kind, err := motion.ParseJumpType(spec.Jump.Type)
		if err != nil {
			return nil, err
		}
		fx.SetJump(spec.Jump.Height, kind)
	}
	if spec.Turns != 0 {
		fx.SetTurns(spec.Turns)
	}
	if spec.Pulse != 0 {
		fx.SetScalePulse(spec.Pulse)
	}
	return a.WithEffects(fx), nil
}
