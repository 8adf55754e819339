package game

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"emoji-merge/assets"
	"emoji-merge/internal/config"
	"emoji-merge/internal/session"
	"emoji-merge/internal/store"
	"emoji-merge/internal/vmath"

	"github.com/gdamore/tcell/v2"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		BoardWidth:    24,
		BoardHeight:   30,
		DeadlineRatio: 0.18,
		SpawnY:        2.5,
		Cooldown:      500 * time.Millisecond,
		Grace:         2 * time.Second,
		Tick:          16 * time.Millisecond,
		Substeps:      4,
		Gravity:       40,
		Store:         store.KindMemory,
		DataDir:       t.TempDir(),
	}
}

// newTestGame builds a Game on an 80x40 simulation screen with a manual
// clock.
func newTestGame(t *testing.T) (*Game, *session.ManualClock) {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	if err := ss.Init(); err != nil {
		t.Fatalf("SimulationScreen.Init: %v", err)
	}
	ss.SetSize(80, 40)
	t.Cleanup(ss.Fini)
	clock := session.NewManualClock(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	g := New(ss, testConfig(t), Options{
		Progress: store.NewProgress(store.NewMemory()),
		Rand:     rand.New(rand.NewSource(42)),
		Clock:    clock,
	})
	return g, clock
}

func key(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func TestKeyToAction(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want Action
	}{
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), ActionLeft},
		{tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), ActionRight},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), ActionDrop},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionQuit},
		{key('h'), ActionLeft},
		{key('l'), ActionRight},
		{key(' '), ActionDrop},
		{key('j'), ActionDrop},
		{key('r'), ActionReset},
		{key('q'), ActionQuit},
		{key('x'), ActionNone},
	}
	for _, tc := range cases {
		if got := keyToAction(tc.ev); got != tc.want {
			t.Errorf("keyToAction(%v) = %d; want %d", tc.ev.Name(), got, tc.want)
		}
	}
}

func TestKeysSteerAndDrop(t *testing.T) {
	g, _ := newTestGame(t)
	x0 := g.session.Snapshot().DropX

	g.handleEvent(key('l'))
	g.handleEvent(key('l'))
	if got := g.session.Snapshot().DropX; got != x0+2*keyStep {
		t.Fatalf("DropX = %v; want %v", got, x0+2*keyStep)
	}
	g.handleEvent(key('h'))
	if got := g.session.Snapshot().DropX; got != x0+keyStep {
		t.Fatalf("DropX = %v; want %v", got, x0+keyStep)
	}

	g.handleEvent(key(' '))
	snap := g.session.Snapshot()
	if !snap.Cooling || len(snap.Pieces) != 1 {
		t.Fatalf("after drop: cooling=%v pieces=%d; want true, 1", snap.Cooling, len(snap.Pieces))
	}
}

func TestQuitKeyStopsLoop(t *testing.T) {
	g, _ := newTestGame(t)
	if g.handleEvent(key('q')) {
		t.Fatal("q should end the loop")
	}
	if !g.handleEvent(key('x')) {
		t.Fatal("unbound key should not end the loop")
	}
}

func TestMouseSteersAndDropsOnPress(t *testing.T) {
	g, _ := newTestGame(t)
	cam := g.renderer.Camera()
	sx, _, _ := cam.WorldToScreen(vmath.V(8, 10))

	g.handleEvent(tcell.NewEventMouse(sx, 10, tcell.ButtonNone, tcell.ModNone))
	if got, want := g.session.Snapshot().DropX, cam.ScreenToWorldX(sx); got != want {
		t.Fatalf("DropX = %v; want %v", got, want)
	}

	g.handleEvent(tcell.NewEventMouse(sx, 10, tcell.Button1, tcell.ModNone))
	if len(g.session.Snapshot().Pieces) != 1 {
		t.Fatal("button press should drop a piece")
	}
	// Holding the button does not drop again, even after the cooldown.
	g.session.Tick(time.Now().Add(time.Hour))
	g.handleEvent(tcell.NewEventMouse(sx+2, 10, tcell.Button1, tcell.ModNone))
	if len(g.session.Snapshot().Pieces) != 1 {
		t.Fatal("drag with the button held should not drop")
	}
}

func TestDroppedPieceFalls(t *testing.T) {
	g, clock := newTestGame(t)
	g.handleEvent(key(' '))
	y0 := g.session.Snapshot().Pieces[0].Pos.Y

	for range 40 {
		clock.Advance(16 * time.Millisecond)
		g.step(0.016)
	}
	snap := g.session.Snapshot()
	if snap.Pieces[0].Pos.Y <= y0 {
		t.Fatalf("piece did not fall: y %v -> %v", y0, snap.Pieces[0].Pos.Y)
	}
	if snap.Cooling {
		t.Fatal("cooldown should be over after 640ms")
	}
}

func TestDiscoveryAddsLoreMessage(t *testing.T) {
	g, _ := newTestGame(t)
	level := g.session.Snapshot().Current
	g.handleEvent(key(' '))

	last := g.messages[len(g.messages)-1]
	if !strings.Contains(last, assets.LevelLore[level]) {
		t.Fatalf("last message %q does not contain the lore for level %d", last, level)
	}
}

func TestPresenterEffects(t *testing.T) {
	g, _ := newTestGame(t)
	p := presenter{g}

	p.OnMergeEffect(vmath.V(5, 20), assets.Def(4).Score)
	if n := len(g.effects.Active()); n != 2 {
		t.Fatalf("merge queued %d effects; want flash and popup", n)
	}
	if r := g.effects.Active()[0].Radius; r != assets.Def(4).Radius {
		t.Fatalf("flash radius = %v; want %v", r, assets.Def(4).Radius)
	}

	p.OnMegaMergeEffect(vmath.V(12, 20))
	if n := len(g.effects.Active()); n != 4 {
		t.Fatalf("effects = %d; want 4 after a mega-merge", n)
	}
	if last := g.messages[len(g.messages)-1]; last != assets.MegaMergeLore {
		t.Fatalf("last message = %q; want mega-merge lore", last)
	}

	p.OnReset()
	if n := len(g.effects.Active()); n != 0 {
		t.Fatalf("reset left %d effects", n)
	}
	if len(g.messages) != 1 {
		t.Fatalf("reset left %d messages; want just the greeting", len(g.messages))
	}
}

func TestResetKeyOnlyAfterGameOver(t *testing.T) {
	g, _ := newTestGame(t)
	g.handleEvent(key(' '))
	g.handleEvent(key('r'))
	if len(g.session.Snapshot().Pieces) != 1 {
		t.Fatal("r must not reset a running game")
	}
}

func TestAddMessageCapsLog(t *testing.T) {
	g, _ := newTestGame(t)
	for i := range maxMessages + 10 {
		g.addMessage(strings.Repeat("x", i%5+1))
	}
	if len(g.messages) != maxMessages {
		t.Fatalf("messages = %d; want %d", len(g.messages), maxMessages)
	}
}

func TestDrawDoesNotPanic(t *testing.T) {
	g, clock := newTestGame(t)
	g.handleEvent(key(' '))
	for range 10 {
		clock.Advance(16 * time.Millisecond)
		g.step(0.016)
		g.draw()
	}
	g.handleEvent(tcell.NewEventResize(60, 24))
	g.draw()
}
