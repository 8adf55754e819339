// Package session is the state machine for one game: dropping pieces,
// scoring merges, tracking discoveries, and deciding when the game is lost.
package session

import (
	"log"
	"maps"
	"math/rand"
	"slices"
	"time"

	"emoji-merge/assets"
	"emoji-merge/internal/board"
	"emoji-merge/internal/factory"
	"emoji-merge/internal/generate"
	"emoji-merge/internal/physics"
	"emoji-merge/internal/piece"
	"emoji-merge/internal/store"
	"emoji-merge/internal/system"
	"emoji-merge/internal/vmath"
)

// State is where a session is in its lifecycle.
type State uint8

const (
	StatePlaying  State = iota // accepting drops
	StateCooling               // a drop just happened; waiting out the cooldown
	StateGameOver              // lost; only a reset gets out
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateCooling:
		return "cooling"
	case StateGameOver:
		return "game over"
	}
	return "unknown"
}

// Config holds the per-session rules.
type Config struct {
	Board    board.Board
	Cooldown time.Duration
	Grace    time.Duration
	// RunLogDir receives runs.jsonl on game over. Empty disables the log.
	RunLogDir string
}

// Deps are the collaborators a session drives. Engine must be fresh: the
// session adds the board walls to it and subscribes to its steps.
type Deps struct {
	Engine   physics.Engine
	Rand     *rand.Rand
	Clock    Clock           // defaults to SystemClock
	Listener Listener        // defaults to NopListener
	Progress *store.Progress // nil keeps nothing between sessions
}

// PieceView is one live piece as the renderer sees it.
type PieceView struct {
	ID    physics.BodyID
	Level int
	Pos   vmath.Vec2
}

// Snapshot is a copy of everything the presentation layer shows.
type Snapshot struct {
	State      State
	Score      int
	HiScore    int
	Current    int
	Next       int
	DropX      float64
	Cooling    bool
	IsGameOver bool
	Discovered []int // this session, ascending
	Gallery    []int // every session, ascending
	Pieces     []PieceView

	// DeadlineElapsed is how long a piece has been over the line, while
	// DeadlineRunning is true.
	DeadlineElapsed time.Duration
	DeadlineRunning bool
}

// Session is one game. It is not safe for concurrent use; the goroutine
// that steps the engine owns it.
type Session struct {
	cfg      Config
	engine   physics.Engine
	clock    Clock
	listener Listener
	progress *store.Progress

	bag      *generate.Bag
	reg      *piece.Registry
	resolver *system.MergeResolver
	deadline *system.DeadlineMonitor
	walls    []physics.BodyID

	state      State
	score      int
	hiScore    int
	current    int
	next       int
	dropX      float64
	dropAt     time.Time
	discovered map[int]bool
	gallery    map[int]bool
	run        store.RunLog
	startedAt  time.Time
}

// New starts a session on deps.Engine.
func New(cfg Config, deps Deps) *Session {
	s := &Session{
		cfg:        cfg,
		engine:     deps.Engine,
		clock:      deps.Clock,
		listener:   deps.Listener,
		progress:   deps.Progress,
		discovered: make(map[int]bool),
		gallery:    make(map[int]bool),
	}
	if s.clock == nil {
		s.clock = SystemClock{}
	}
	if s.listener == nil {
		s.listener = NopListener{}
	}
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s.bag = generate.NewBag(assets.BagWeights, rng)
	s.reg = piece.NewRegistry(s.engine)
	s.resolver = system.NewMergeResolver(s.reg, s.engine, sink{s})
	s.deadline = system.NewDeadlineMonitor(cfg.Board.DeadlineY(), cfg.Board.SpawnExclusionY(), cfg.Grace)
	s.walls = factory.NewBoundaries(s.engine, cfg.Board)

	s.hiScore = s.progress.HiScore()
	for _, level := range s.progress.Gallery() {
		s.gallery[level] = true
	}

	s.current = s.bag.Pull()
	s.next = s.bag.Pull()
	s.dropX = cfg.Board.ClampDropX(cfg.Board.Width/2, s.currentRadius())
	s.startedAt = s.clock.Now()

	s.engine.OnStep(s.onStep)
	return s
}

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Board returns the playfield geometry.
func (s *Session) Board() board.Board { return s.cfg.Board }

// UpdateDropX moves the drop guide to x, clamped so the current piece fits
// between the walls.
func (s *Session) UpdateDropX(x float64) {
	if s.state == StateGameOver {
		return
	}
	s.dropX = s.cfg.Board.ClampDropX(x, s.currentRadius())
}

// PointerMove steers the drop guide.
func (s *Session) PointerMove(x float64) { s.UpdateDropX(x) }

// PointerDown drops the current piece, or starts over after a loss.
func (s *Session) PointerDown() {
	if s.state == StateGameOver {
		s.Reset()
		return
	}
	s.CommitDrop()
}

// CommitDrop releases the current piece at the drop guide. It reports
// false if the session is cooling down or over.
func (s *Session) CommitDrop() bool {
	if s.state != StatePlaying {
		return false
	}
	now := s.clock.Now()
	level := s.current
	s.reg.Spawn(level, vmath.V(s.dropX, s.cfg.Board.SpawnY))
	s.run.Drops++
	s.discover(level)

	s.current = s.next
	s.next = s.bag.Pull()
	s.dropX = s.cfg.Board.ClampDropX(s.dropX, s.currentRadius())

	s.state = StateCooling
	s.dropAt = now
	return true
}

// Tick ends the cooldown once it has run its course.
func (s *Session) Tick(now time.Time) {
	if s.state == StateCooling && now.Sub(s.dropAt) >= s.cfg.Cooldown {
		s.state = StatePlaying
	}
}

// Reset clears the board and starts a fresh game. The high score and the
// gallery survive.
func (s *Session) Reset() {
	s.reg.RemoveAll()
	s.score = 0
	clear(s.discovered)
	s.bag.Reset()
	s.current = s.bag.Pull()
	s.next = s.bag.Pull()
	s.dropX = s.cfg.Board.ClampDropX(s.dropX, s.currentRadius())
	s.deadline.Reset()
	s.state = StatePlaying
	s.run = store.RunLog{}
	s.startedAt = s.clock.Now()

	s.listener.OnReset()
	s.listener.OnScoreChanged(s.score, s.hiScore)
}

// Snapshot copies the presentation state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State:      s.state,
		Score:      s.score,
		HiScore:    s.hiScore,
		Current:    s.current,
		Next:       s.next,
		DropX:      s.dropX,
		Cooling:    s.state == StateCooling,
		IsGameOver: s.state == StateGameOver,
		Discovered: sortedLevels(s.discovered),
		Gallery:    sortedLevels(s.gallery),
	}
	for _, id := range s.reg.Live() {
		b, ok := s.engine.Body(id)
		if !ok {
			continue
		}
		level, _ := s.reg.LevelOf(id)
		snap.Pieces = append(snap.Pieces, PieceView{ID: id, Level: level, Pos: b.Position})
	}
	snap.DeadlineElapsed, snap.DeadlineRunning = s.deadline.Pending(s.clock.Now())
	return snap
}

// Stats returns the statistics of the game so far.
func (s *Session) Stats() store.RunLog {
	run := s.run
	run.Score = s.score
	run.HiScore = s.hiScore
	run.Discovered = sortedLevels(s.discovered)
	run.Duration = s.clock.Now().Sub(s.startedAt)
	return run
}

func (s *Session) onStep(pairs []physics.Pair) {
	if s.state == StateGameOver {
		return
	}
	now := s.clock.Now()
	s.resolver.Resolve(pairs)
	if s.deadline.Check(s.pieceBodies(), now) {
		s.gameOver(now)
		return
	}
	s.Tick(now)
}

func (s *Session) pieceBodies() []physics.Body {
	ids := s.reg.Live()
	bodies := make([]physics.Body, 0, len(ids))
	for _, id := range ids {
		if b, ok := s.engine.Body(id); ok {
			bodies = append(bodies, b)
		}
	}
	return bodies
}

func (s *Session) gameOver(now time.Time) {
	s.state = StateGameOver
	s.listener.OnGameOver()

	if s.cfg.RunLogDir == "" {
		return
	}
	run := s.Stats()
	run.EndedAt = now
	if err := store.AppendRun(s.cfg.RunLogDir, run); err != nil {
		log.Printf("session: %v", err)
	}
}

func (s *Session) addScore(points int) {
	s.score += points
	if s.score > s.hiScore {
		s.hiScore = max(s.score, s.progress.SetHiScore(s.score))
	}
	s.listener.OnScoreChanged(s.score, s.hiScore)
}

// discover records level as seen this session, announcing it the first
// time only.
func (s *Session) discover(level int) {
	if level > s.run.HighestLevel {
		s.run.HighestLevel = level
	}
	if s.discovered[level] {
		return
	}
	s.discovered[level] = true
	s.listener.OnDiscovery(level)
	if !s.gallery[level] {
		s.gallery[level] = true
		for _, l := range s.progress.SetGallery(sortedLevels(s.gallery)) {
			s.gallery[l] = true
		}
	}
}

func (s *Session) currentRadius() float64 {
	return assets.Def(s.current).Radius
}

func sortedLevels(set map[int]bool) []int {
	return slices.Sorted(maps.Keys(set))
}

// sink routes merge outcomes back into the session without widening its
// exported API.
type sink struct{ s *Session }

func (k sink) Merged(level int, pos vmath.Vec2, score int) {
	k.s.run.Merges++
	k.s.addScore(score)
	k.s.discover(level)
	k.s.listener.OnMergeEffect(pos, score)
	k.s.listener.OnMergeAudioCue(level)
}

func (k sink) MegaMerged(pos vmath.Vec2) {
	k.s.run.MegaMerges++
	k.s.addScore(assets.MegaBonus)
	k.s.listener.OnMegaMergeEffect(pos)
}

func (k sink) DropCue(level int, intensity float64) {
	k.s.listener.OnDropAudioCue(level, intensity)
}
