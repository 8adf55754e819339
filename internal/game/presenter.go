package game

import (
	"fmt"

	"emoji-merge/assets"
	"emoji-merge/internal/session"
	"emoji-merge/internal/system"
	"emoji-merge/internal/vmath"
)

// presenter turns session notifications into effects and log lines.
type presenter struct {
	g *Game
}

var _ session.Listener = presenter{}

func (p presenter) OnScoreChanged(int, int) {}

func (p presenter) OnDiscovery(level int) {
	def := assets.Def(level)
	p.g.addMessage(fmt.Sprintf("%s %s: %s", def.Glyph, def.Name, assets.LevelLore[level]))
}

func (p presenter) OnMergeEffect(pos vmath.Vec2, score int) {
	radius := 1.0
	if level, ok := assets.LevelForScore(score); ok {
		radius = assets.Def(level).Radius
	}
	p.g.effects.Add(system.EffectFlash, pos, radius, score)
	p.g.effects.Add(system.EffectPopup, pos, radius, score)
}

func (p presenter) OnMegaMergeEffect(pos vmath.Vec2) {
	p.g.effects.Add(system.EffectMegaBurst, pos, 0, assets.MegaBonus)
	p.g.effects.Add(system.EffectPopup, pos, 0, assets.MegaBonus)
	p.g.addMessage(assets.MegaMergeLore)
}

func (p presenter) OnDropAudioCue(int, float64) {}

func (p presenter) OnMergeAudioCue(int) {}

func (p presenter) OnGameOver() {
	p.g.addMessage(assets.GameOverLore)
}

func (p presenter) OnReset() {
	p.g.effects.Clear()
	p.g.messages = nil
	p.g.addMessage("A fresh board. Good luck!")
}
