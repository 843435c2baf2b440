// Package motion is an affine-transform algebra and a timed animation
// engine for geometric objects.
//
// Motion provides the transform math, easing curves, effect layers and
// composition rules that a programmatic animation tool needs. It draws
// nothing itself: objects implement [Animatable], a scene implements
// [Stage], and a renderer reads the objects after every frame.
//
// # Quick start
//
// The simplest way to get started is [Play], which advances animations at a
// fixed frame rate and hands each frame to a callback:
//
//	scene := motion.NewScene()
//	square := motion.NewRegularPolygon("square", motion.V2(0, 0), 1, 4)
//	scene.Add(square)
//
//	shift := motion.Shift(2, motion.V2(3, 0), square)
//	shift.WithEffects(*new(motion.Effects).SetJump(1, motion.JumpParabolical))
//	player := motion.NewPlayer(motion.PlayerConfig{
//		FPS: 30, Stage: scene,
//		OnFrame: func(frame int, elapsed float64) error { return render(scene) },
//	})
//	err := player.Play(ctx, shift)
//
// From a game loop, wrap the animation in a [Timeline] and call
// [Timeline.Update] once per tick:
//
//	tl := motion.NewTimeline(scene, seq)
//	func (g *Game) Update() error { return g.tl.Update(1.0 / 60) }
//
// # Transforms
//
// A [Transform] is stored as the images of the origin and the three basis
// vectors, applied to row vectors. [Transform.Compose] chains maps so that
// a.Compose(b) applies a first. Named constructors such as [Isomorphism2D],
// [GeneralAffine] and [Rotation3DBetweenFrames] solve for the map that
// satisfies point correspondences; each takes a blend factor alpha so the
// same constructor can drive an animation.
//
// # Animations
//
// An [Animation] restores its targets to a saved baseline and reapplies its
// operation on every Advance, so any time can be rendered in any order.
// [Group] runs children in parallel and [Sequence] runs them back to back,
// resolving the children around the active one so that scrubbing and
// direct jumps produce the same frame.
//
// # Errors
//
// Failures wrap one of [ErrSingularTransform], [ErrDegenerateCorrespondence],
// [ErrMissingTarget] or [ErrSequenceBounds]; test them with errors.Is.
// Composites stop at the first child error.
//
// # Integrations
//
// The ecs sub-module drives timelines inside a [Donburi] world. The
// examples directory renders timelines with [Ebitengine].
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package motion
