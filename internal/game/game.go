// Package game runs one merge game on a tcell screen: it owns the physics
// world and the session, feeds them input, and redraws every tick.
package game

import (
	"math/rand"
	"time"

	"emoji-merge/internal/config"
	"emoji-merge/internal/physics"
	"emoji-merge/internal/render"
	"emoji-merge/internal/session"
	"emoji-merge/internal/store"
	"emoji-merge/internal/system"
	"emoji-merge/internal/vmath"

	"github.com/gdamore/tcell/v2"
)

// maxMessages bounds the message log.
const maxMessages = 50

// Options are the collaborators a Game may share with others.
type Options struct {
	Progress *store.Progress  // nil keeps no progress
	Listener session.Listener // extra listener, e.g. audio cues
	Rand     *rand.Rand       // nil seeds from the clock
	Clock    session.Clock    // nil uses the wall clock
}

// Game is the top-level orchestrator for one player.
type Game struct {
	screen   tcell.Screen
	cfg      config.Config
	clock    session.Clock
	world    *physics.World
	session  *session.Session
	renderer *render.Renderer
	effects  system.Effects
	messages []string

	frame     int
	mouseDown bool
}

// New creates a Game drawing on screen. The screen must already be
// initialised.
func New(screen tcell.Screen, cfg config.Config, opts Options) *Game {
	g := &Game{
		screen: screen,
		cfg:    cfg,
		clock:  opts.Clock,
		world:  physics.NewWorld(vmath.V(0, cfg.Gravity), cfg.Substeps),
	}
	if g.clock == nil {
		g.clock = session.SystemClock{}
	}
	rng := opts.Rand
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	listeners := session.Listeners{presenter{g}}
	if opts.Listener != nil {
		listeners = append(listeners, opts.Listener)
	}
	b := cfg.Board()
	g.session = session.New(session.Config{
		Board:     b,
		Cooldown:  cfg.Cooldown,
		Grace:     cfg.Grace,
		RunLogDir: cfg.DataDir,
	}, session.Deps{
		Engine:   g.world,
		Rand:     rng,
		Clock:    g.clock,
		Listener: listeners,
		Progress: opts.Progress,
	})
	g.renderer = render.NewRenderer(screen, b)
	screen.EnableMouse()
	g.addMessage("Steer with ←/→ or the mouse, drop with space or a click.")
	return g
}

// Session exposes the running session.
func (g *Game) Session() *session.Session { return g.session }

// Run is the main game loop. It returns when the player quits or the
// screen goes away, and finalises the screen.
func (g *Game) Run() {
	defer g.screen.Fini()

	// Start an async input reader goroutine.
	eventCh := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(eventCh)
				return
			}
			eventCh <- ev
		}
	}()

	ticker := time.NewTicker(g.cfg.Tick)
	defer ticker.Stop()
	last := time.Now()
	g.draw()

	for {
		select {
		case ev, ok := <-eventCh:
			if !ok {
				return // screen closed / disconnected
			}
			if !g.handleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			g.step(now.Sub(last).Seconds())
			last = now
			g.draw()
		}
	}
}

// step advances the simulation by dt seconds. The session reacts from
// inside the engine's step callback.
func (g *Game) step(dt float64) {
	g.world.Step(dt)
	g.session.Tick(g.clock.Now())
	g.effects.Tick()
	g.frame++
}

func (g *Game) draw() {
	g.renderer.DrawFrame(render.Frame{
		Snap:     g.session.Snapshot(),
		Effects:  g.effects.Active(),
		Messages: g.messages,
		Grace:    g.cfg.Grace,
		Blink:    (g.frame/15)%2 == 0,
	})
}

// handleEvent applies one input event. It returns false when the player
// asked to quit.
func (g *Game) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
		g.renderer.Resize()
		g.draw()
	case *tcell.EventKey:
		action := keyToAction(ev)
		if action == ActionQuit {
			return false
		}
		g.processAction(action)
	case *tcell.EventMouse:
		g.handleMouse(ev)
	}
	return true
}

// processAction handles one keyboard action.
func (g *Game) processAction(action Action) {
	snap := g.session.Snapshot()
	switch action {
	case ActionLeft:
		g.session.UpdateDropX(snap.DropX - keyStep)
	case ActionRight:
		g.session.UpdateDropX(snap.DropX + keyStep)
	case ActionDrop:
		g.session.PointerDown()
	case ActionReset:
		if snap.IsGameOver {
			g.session.Reset()
		}
	}
}

// handleMouse steers with any movement and drops on the press edge of the
// primary button.
func (g *Game) handleMouse(ev *tcell.EventMouse) {
	x, _ := ev.Position()
	g.session.PointerMove(g.renderer.ScreenToWorldX(x))

	pressed := ev.Buttons()&tcell.Button1 != 0
	if pressed && !g.mouseDown {
		g.session.PointerDown()
	}
	g.mouseDown = pressed
}

// addMessage appends msg to the message log, keeping the newest entries.
func (g *Game) addMessage(msg string) {
	g.messages = append(g.messages, msg)
	if len(g.messages) > maxMessages {
		g.messages = g.messages[len(g.messages)-maxMessages:]
	}
}
