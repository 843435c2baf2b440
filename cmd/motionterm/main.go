// Command motionterm previews motion timelines in a terminal.
//
// The scene and its steps are read from a YAML file (see demo.yaml for the
// format); without -config the built-in demo plays. Keys:
//
//	space        pause / resume
//	left, right  scrub by 5%
//	r            rewind
//	q, esc       quit
package main

import (
	_ "embed"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/motion"
	"github.com/pkg/errors"
)

//go:embed demo.yaml
var demoConfig []byte

const scrubStep = 0.05

func main() {
	configPath := flag.String("config", "", "YAML scene file (default: built-in demo)")
	logPath := flag.String("log", "", "write a debug log to this file")
	dump := flag.Bool("dump", false, "print the timeline tree and exit")
	flag.Parse()

	if err := run(*configPath, *logPath, *dump); err != nil {
		fmt.Fprintf(os.Stderr, "motionterm: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, logPath string, dump bool) error {
	var (
		cfg *config
		err error
	)
	if configPath == "" {
		cfg, err = parseConfig(demoConfig)
	} else {
		cfg, err = loadConfig(configPath)
	}
	if err != nil {
		return err
	}

	if logPath != "" {
		f, err := os.Create(logPath)
		if err != nil {
			return errors.Wrap(err, "open log")
		}
		defer f.Close()
		motion.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	sh, err := cfg.build()
	if err != nil {
		return err
	}
	if dump {
		fmt.Print(motion.DumpTimeline(sh.seq))
		return nil
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "create screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "init screen")
	}
	defer screen.Fini()

	p := &preview{cfg: cfg, show: sh, screen: screen}
	return p.loop()
}

// preview owns the terminal session of one show.
type preview struct {
	cfg    *config
	show   *show
	screen tcell.Screen
	canvas *canvas
	tl     *motion.Timeline
	paused bool
}

func (p *preview) loop() error {
	w, h := p.screen.Size()
	p.canvas = newCanvas(w, h-1, p.cfg.Scale)
	p.tl = motion.NewTimeline(p.show.scene, p.show.seq)
	p.tl.Loop = p.cfg.Loop
	if p.show.follow != nil {
		p.canvas.cam.Follow(p.show.follow, motion.Vec3{}, p.show.followLerp)
	}

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go p.screen.ChannelEvents(events, quit)

	dt := 1 / p.cfg.FPS
	ticker := time.NewTicker(time.Duration(float64(time.Second) * dt))
	defer ticker.Stop()

	if err := p.tl.Seek(0); err != nil {
		return err
	}
	p.render()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			done, err := p.handle(ev)
			if done || err != nil {
				return err
			}
		case <-ticker.C:
			if p.paused {
				continue
			}
			if err := p.tl.Update(float32(dt)); err != nil {
				return err
			}
			p.canvas.cam.Update(float32(dt))
		}
		p.render()
	}
}

// handle reacts to one terminal event and reports whether to quit.
func (p *preview) handle(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		p.canvas.resize(w, h-1)
		p.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true, nil
		case tcell.KeyLeft:
			return false, p.scrub(-scrubStep)
		case tcell.KeyRight:
			return false, p.scrub(scrubStep)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true, nil
			case ' ':
				p.paused = !p.paused
			case 'r':
				return false, p.tl.Rewind()
			}
		}
	}
	return false, nil
}

func (p *preview) scrub(delta float64) error {
	p.paused = true
	t := math.Min(math.Max(p.tl.Progress()+delta, 0), 1)
	if err := p.tl.Seek(t); err != nil {
		return err
	}
	p.canvas.cam.Update(0)
	return nil
}

func (p *preview) render() {
	p.canvas.draw(p.show)
	p.canvas.flush(p.screen)

	state := "playing"
	if p.paused {
		state = "paused"
	}
	status := fmt.Sprintf(" t=%.2f  %s  [space] pause  [←/→] scrub  [r] rewind  [q] quit", p.tl.Progress(), state)
	style := tcell.StyleDefault.Reverse(true)
	w, h := p.screen.Size()
	for x := 0; x < w; x++ {
		r := ' '
		if x < len([]rune(status)) {
			r = []rune(status)[x]
		}
		p.screen.SetContent(x, h-1, r, nil, style)
	}
	p.screen.Show()
}
