package game

import (
	"time"

	"github.com/tomz197/qwerfighter/internal/config"
	"github.com/tomz197/qwerfighter/internal/object"
)

// Snapshot is the read-only view of one tick. It shares nothing with the
// engine, so it can be handed to other goroutines once built.
type Snapshot struct {
	Tick      uint64        `json:"tick"`
	State     State         `json:"state"`
	Score     int           `json:"score"`
	Elapsed   time.Duration `json:"elapsed"`
	Scroll    float64       `json:"scroll"`
	Screen    object.Screen `json:"screen"`
	Player    PlayerView    `json:"player"`
	Abilities []AbilityView `json:"abilities"`
	Entities  []EntityView  `json:"entities"`
	Stats     Stats         `json:"stats"`
}

// PlayerView describes the player.
type PlayerView struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	W       float64 `json:"w"`
	H       float64 `json:"h"`
	Health  int     `json:"health"`
	Shield  bool    `json:"shield"`
	Heal    bool    `json:"heal"`
	Barrage bool    `json:"barrage"`
}

// AbilityView describes one ability's cycle.
type AbilityView struct {
	Ability   object.Ability `json:"ability"`
	Phase     object.Phase   `json:"phase"`
	Remaining time.Duration  `json:"remaining"`
	Locked    bool           `json:"locked,omitempty"` // Score gate not met
}

// EntityView is one drawable thing: its kind and bounding box. Health is set
// for grunts and bosses only.
type EntityView struct {
	Kind   object.Kind `json:"kind"`
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
	W      float64     `json:"w"`
	H      float64     `json:"h"`
	Health int         `json:"health,omitempty"`
}

// Count returns how many entities of kind k the snapshot holds.
func (s *Snapshot) Count(k object.Kind) int {
	n := 0
	for _, ent := range s.Entities {
		if ent.Kind == k {
			n++
		}
	}
	return n
}

func (e *Engine) snapshot() *Snapshot {
	now := e.clock.Elapsed()
	p := e.reg.Player

	snap := &Snapshot{
		Tick:    e.tick,
		State:   e.state,
		Score:   e.ledger.Score(),
		Elapsed: now,
		Scroll:  e.scroll,
		Screen:  e.screen,
		Player: PlayerView{
			X:       p.X,
			Y:       p.Y,
			W:       p.Size.W,
			H:       p.Size.H,
			Health:  p.Health,
			Shield:  p.ShieldActive,
			Heal:    p.HealActive,
			Barrage: p.BarrageActive,
		},
		Stats: e.stats,
	}

	for a := range object.AbilityCount {
		snap.Abilities = append(snap.Abilities, AbilityView{
			Ability:   a,
			Phase:     e.phase(a, now),
			Remaining: p.Cooldown(a).Remaining(now),
			Locked:    a == object.AbilityHoming && e.ledger.Score() < config.HomingMinScore,
		})
	}

	n := 1 + len(p.Orbiters) + e.reg.Grunts.Len() + e.reg.Bosses.Len() +
		e.reg.Shots.Len() + e.reg.Charged.Len() + e.reg.Barrage.Len() + e.reg.Homing.Len() + 2 // shield and heal
	snap.Entities = make([]EntityView, 0, n)
	add := func(k object.Kind, x, y float64, size object.Size) {
		snap.Entities = append(snap.Entities, EntityView{Kind: k, X: x, Y: y, W: size.W, H: size.H})
	}
	addBox := func(c object.Collider) {
		box := c.Rect()
		snap.Entities = append(snap.Entities, EntityView{Kind: c.Kind(), X: box.X, Y: box.Y, W: box.W, H: box.H})
	}

	add(object.KindPlayer, p.X, p.Y, p.Size)
	if p.ShieldActive {
		add(object.KindShield, p.X-10, p.Y-10, e.sizes.Of(object.KindShield))
	}
	if p.HealActive {
		add(object.KindHeal, p.X-50, p.Y-50, e.sizes.Of(object.KindHeal))
	}
	for _, o := range p.Orbiters {
		add(object.KindOrbiter, o.X, o.Y, o.Size)
	}
	for _, g := range e.reg.Grunts.Items() {
		addBox(g)
		snap.Entities[len(snap.Entities)-1].Health = g.Health
	}
	for _, b := range e.reg.Bosses.Items() {
		addBox(b)
		snap.Entities[len(snap.Entities)-1].Health = b.Health
	}
	for _, s := range e.reg.Shots.Items() {
		addBox(s)
	}
	for _, s := range e.reg.Charged.Items() {
		addBox(s)
	}
	for _, s := range e.reg.Barrage.Items() {
		addBox(s)
	}
	for _, h := range e.reg.Homing.Items() {
		addBox(h)
	}
	return snap
}
