package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/qwerfighter/internal/clock"
	"github.com/tomz197/qwerfighter/internal/config"
	"github.com/tomz197/qwerfighter/internal/input"
	"github.com/tomz197/qwerfighter/internal/object"
)

func newTestEngine(t *testing.T) (*Engine, *clock.Manual) {
	t.Helper()
	src := clock.NewManual(time.Time{})
	e := New(Options{Source: src, Rand: rand.New(rand.NewSource(1))})
	return e, src
}

// addGrunt places a motionless grunt at (x, y).
func addGrunt(e *Engine, x, y float64) *object.Grunt {
	g := object.NewGrunt(e.rng, e.screen, e.sizes.Of(object.KindGrunt), e.reg.NextID())
	g.X, g.Y, g.VX, g.VY = x, y, 0, 0
	e.reg.Grunts.Add(g)
	return g
}

func addBoss(e *Engine, x, y float64) *object.Boss {
	b := object.NewBoss(e.rng, e.screen, e.sizes.Of(object.KindBoss), e.reg.NextID())
	b.X, b.Y, b.VY = x, y, 0
	e.reg.Bosses.Add(b)
	return b
}

func TestOrbiterCountFollowsScoreTier(t *testing.T) {
	tests := []struct {
		score int
		want  int
	}{
		{score: 7999, want: 0},
		{score: 8000, want: 1},
		{score: 16000, want: 2},
		{score: 40000, want: 5},
	}
	for _, tt := range tests {
		e, _ := newTestEngine(t)
		e.ledger.score = tt.score

		snap := e.Tick(input.Input{})

		if got := len(e.reg.Player.Orbiters); got != tt.want {
			t.Errorf("score %d: %d orbiters, want %d", tt.score, got, tt.want)
		}
		if got := snap.Count(object.KindOrbiter); got != tt.want {
			t.Errorf("score %d: snapshot has %d orbiters, want %d", tt.score, got, tt.want)
		}
	}
}

func TestOrbitersRespaceFromLeadAngle(t *testing.T) {
	e, _ := newTestEngine(t)
	e.ledger.score = 8000
	e.Tick(input.Input{})

	lead := e.reg.Player.Orbiters[0].Angle
	e.ledger.score = 16000
	e.syncOrbiters()

	orbs := e.reg.Player.Orbiters
	if len(orbs) != 2 {
		t.Fatalf("%d orbiters, want 2", len(orbs))
	}
	if orbs[0].Angle != lead {
		t.Errorf("lead moved from %v to %v", lead, orbs[0].Angle)
	}
	want := lead + 180
	if want >= 360 {
		want -= 360
	}
	if orbs[1].Angle != want {
		t.Errorf("second orbiter at %v, want %v", orbs[1].Angle, want)
	}

	e.ledger.score = 0
	e.syncOrbiters()
	if len(e.reg.Player.Orbiters) != 0 {
		t.Fatal("orbiters not truncated at tier 0")
	}
}

func TestAbilityCooldownBoundary(t *testing.T) {
	e, src := newTestEngine(t)
	charged := input.Input{Charged: true}
	cd := e.reg.Player.Cooldown(object.AbilityCharged)

	e.Tick(charged)
	if e.reg.Charged.Len() != 1 {
		t.Fatalf("charged shots = %d, want 1", e.reg.Charged.Len())
	}

	src.Advance(config.ChargedCooldown - time.Nanosecond)
	e.Tick(charged)
	if last, _ := cd.LastUsed(); last != 0 || e.reg.Charged.Len() != 1 {
		t.Fatalf("reactivated before the cooldown ran out (last=%v, shots=%d)", last, e.reg.Charged.Len())
	}

	src.Advance(time.Nanosecond)
	e.Tick(charged)
	if last, _ := cd.LastUsed(); last != config.ChargedCooldown {
		t.Fatalf("last activation = %v, want %v", last, config.ChargedCooldown)
	}
	if e.reg.Charged.Len() != 2 {
		t.Fatalf("charged shots = %d, want 2", e.reg.Charged.Len())
	}
}

func TestHomingGate(t *testing.T) {
	t.Run("score below threshold", func(t *testing.T) {
		e, _ := newTestEngine(t)
		e.Tick(input.Input{}) // first grunt appears
		e.ledger.score = config.HomingMinScore - 1

		e.Tick(input.Input{Homing: true})
		if e.reg.Homing.Len() != 0 {
			t.Fatal("homing fired below the score gate")
		}
		if _, used := e.reg.Player.Cooldown(object.AbilityHoming).LastUsed(); used {
			t.Fatal("rejected activation started the cooldown")
		}
	})

	t.Run("no enemies", func(t *testing.T) {
		e, _ := newTestEngine(t)
		e.ledger.score = config.HomingMinScore

		e.Tick(input.Input{Homing: true}) // abilities run before the first spawn
		if e.reg.Homing.Len() != 0 {
			t.Fatal("homing fired with no enemies")
		}
		if _, used := e.reg.Player.Cooldown(object.AbilityHoming).LastUsed(); used {
			t.Fatal("rejected activation started the cooldown")
		}
	})

	t.Run("locks the nearest enemy", func(t *testing.T) {
		e, _ := newTestEngine(t)
		e.Tick(input.Input{})
		e.reg.Grunts.Clear()
		p := e.reg.Player
		far := addGrunt(e, 0, 0)
		near := addGrunt(e, p.X, p.Y-300)
		e.ledger.score = config.HomingMinScore

		e.Tick(input.Input{Homing: true})
		if e.reg.Homing.Len() != 1 {
			t.Fatalf("homing shots = %d, want 1", e.reg.Homing.Len())
		}
		id, locked := e.reg.Homing.Items()[0].Target()
		if !locked || id != near.ID() || id == far.ID() {
			t.Fatalf("locked onto %d, want %d", id, near.ID())
		}
	})
}

func TestShotHitsOnlyOneTarget(t *testing.T) {
	e, _ := newTestEngine(t)
	first := addGrunt(e, 100, 100)
	second := addGrunt(e, 100, 100)
	e.reg.Charged.Add(object.NewChargedShot(&object.Player{X: 110, Y: 120, Size: object.Size{W: 50, H: 50}}, e.sizes))

	e.resolve()

	if e.reg.Charged.Len() != 0 {
		t.Fatal("shot was not consumed")
	}
	if e.reg.Grunts.Contains(first) || !e.reg.Grunts.Contains(second) {
		t.Fatal("want exactly the first grunt removed")
	}
	if e.Score() != config.ScoreGruntByCharged {
		t.Fatalf("score = %d, want %d", e.Score(), config.ScoreGruntByCharged)
	}
}

func TestPlayerShotsWearGruntsDown(t *testing.T) {
	e, _ := newTestEngine(t)
	g := addGrunt(e, 100, 100)
	shooter := &object.Player{X: 110, Y: 120, Size: object.Size{W: 50, H: 50}, Attack: config.PlayerAttack}

	e.reg.Shots.Add(object.NewPlayerShot(shooter, e.sizes))
	e.resolve()
	if !e.reg.Grunts.Contains(g) || g.Health != config.GruntHealth-config.PlayerAttack {
		t.Fatalf("after one shot: alive=%v health=%d", e.reg.Grunts.Contains(g), g.Health)
	}
	if e.reg.Shots.Len() != 0 || e.Score() != 0 {
		t.Fatalf("after one shot: shots=%d score=%d", e.reg.Shots.Len(), e.Score())
	}
	for _, ent := range e.snapshot().Entities {
		if ent.Kind == object.KindGrunt && ent.Health != config.GruntHealth-config.PlayerAttack {
			t.Fatalf("snapshot grunt health = %d", ent.Health)
		}
	}

	e.reg.Shots.Add(object.NewPlayerShot(shooter, e.sizes))
	e.resolve()
	if e.reg.Grunts.Contains(g) {
		t.Fatal("grunt survived the second shot")
	}
	if snap := e.snapshot(); snap.Count(object.KindGrunt) != 0 {
		t.Fatalf("snapshot still holds %d grunts", snap.Count(object.KindGrunt))
	}
	if e.Score() != config.ScoreGruntByShot || e.stats.GruntsKilled != 1 {
		t.Fatalf("score = %d kills = %d, want a single %d", e.Score(), e.stats.GruntsKilled, config.ScoreGruntByShot)
	}
}

func TestBossKillRewardedOnce(t *testing.T) {
	e, _ := newTestEngine(t)
	p := e.reg.Player
	p.Orbiters = []*object.Orbiter{object.NewOrbiter(p, e.sizes.Of(object.KindOrbiter), 0)}
	orb := p.Orbiters[0]
	boss := addBoss(e, orb.X-40, orb.Y-40)
	boss.Health = 5 * config.OrbiterDamage

	if boss.Rect().Overlaps(p.Rect()) {
		t.Fatal("test setup: boss touches the player")
	}

	for hit := 1; hit <= 4; hit++ {
		e.resolve()
		if !e.reg.Bosses.Contains(boss) {
			t.Fatalf("boss removed on hit %d", hit)
		}
		if e.Score() != 0 {
			t.Fatalf("score %d awarded before the kill", e.Score())
		}
	}

	e.resolve()
	if e.reg.Bosses.Contains(boss) {
		t.Fatal("boss survived the fifth hit")
	}
	e.resolve()
	if e.Score() != config.ScoreBossByOrbiter {
		t.Fatalf("score = %d, want a single %d", e.Score(), config.ScoreBossByOrbiter)
	}
	if e.stats.BossesKilled != 1 {
		t.Fatalf("bosses killed = %d", e.stats.BossesKilled)
	}
}

func TestBossAccumulatesProjectileDamage(t *testing.T) {
	e, _ := newTestEngine(t)
	boss := addBoss(e, 100, 100)
	shooter := &object.Player{X: 120, Y: 150, Size: object.Size{W: 50, H: 50}}

	e.reg.Charged.Add(object.NewChargedShot(shooter, e.sizes))
	e.resolve()
	if boss.Health != config.BossHealth-config.ChargedShotDamage || e.Score() != 0 {
		t.Fatalf("after charged: health=%d score=%d", boss.Health, e.Score())
	}

	e.reg.Homing.Add(object.NewHomingShot(&object.Player{X: 70, Y: 150}, e.sizes, boss.ID()))
	e.resolve()
	if e.reg.Bosses.Contains(boss) {
		t.Fatal("boss survived 800 damage")
	}
	if e.Score() != config.ScoreBossByHoming {
		t.Fatalf("score = %d, want %d", e.Score(), config.ScoreBossByHoming)
	}
}

func TestPauseFreezesSpawning(t *testing.T) {
	e, src := newTestEngine(t)

	e.Tick(input.Input{}) // t=0: first grunt
	if e.stats.GruntsSpawned != 1 {
		t.Fatalf("spawned %d, want 1", e.stats.GruntsSpawned)
	}

	src.Advance(400 * time.Millisecond)
	e.Tick(input.Input{Pause: true})
	if e.State() != StatePaused {
		t.Fatalf("state = %v, want paused", e.State())
	}

	for range 10 {
		src.Advance(time.Second)
		e.Tick(input.Input{})
	}
	if e.stats.GruntsSpawned != 1 {
		t.Fatalf("spawned %d while paused", e.stats.GruntsSpawned)
	}

	e.Tick(input.Input{Pause: true})
	if e.State() != StatePlaying {
		t.Fatalf("state = %v, want playing", e.State())
	}

	src.Advance(50 * time.Millisecond) // game time 0.45s
	e.Tick(input.Input{})
	if e.stats.GruntsSpawned != 1 {
		t.Fatal("grunt spawned before 0.5s of unpaused time")
	}

	src.Advance(50 * time.Millisecond) // game time 0.5s
	e.Tick(input.Input{})
	if e.stats.GruntsSpawned != 2 {
		t.Fatalf("spawned %d at 0.5s of game time, want 2", e.stats.GruntsSpawned)
	}
}

func TestPausedTickChangesNothing(t *testing.T) {
	e, src := newTestEngine(t)
	e.Tick(input.Input{})
	e.Tick(input.Input{Pause: true})

	before := e.Tick(input.Input{})
	src.Advance(5 * time.Second)
	after := e.Tick(input.Input{Left: true, Charged: true})

	if after.Player != before.Player || len(after.Entities) != len(before.Entities) || after.Elapsed != before.Elapsed {
		t.Fatal("world changed while paused")
	}
	if e.reg.Charged.Len() != 0 {
		t.Fatal("ability fired while paused")
	}
}

func TestShieldAbsorbsOneHit(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Tick(input.Input{Shield: true})
	e.reg.Grunts.Clear()
	e.reg.Shots.Clear()
	p := e.reg.Player

	addGrunt(e, p.X, p.Y)
	e.resolve()
	if p.Health != config.PlayerStartHealth || p.ShieldActive {
		t.Fatalf("health=%d shield=%v after shielded hit", p.Health, p.ShieldActive)
	}
	if e.reg.Grunts.Len() != 0 {
		t.Fatal("grunt not removed by shield")
	}

	addGrunt(e, p.X, p.Y)
	e.resolve()
	if p.Health != config.PlayerStartHealth-config.GruntAttack {
		t.Fatalf("health = %d after unshielded hit", p.Health)
	}
}

func TestGameOverAndRestart(t *testing.T) {
	e, src := newTestEngine(t)
	e.Tick(input.Input{})
	e.reg.Grunts.Clear()
	e.reg.Shots.Clear()
	e.ledger.score = 3000
	p := e.reg.Player

	addGrunt(e, p.X, p.Y)
	e.resolve()
	if e.State() != StatePlaying {
		t.Fatalf("state = %v at health %d", e.State(), p.Health)
	}

	addGrunt(e, p.X, p.Y)
	addGrunt(e, p.X, p.Y)
	e.resolve()
	if e.State() != StateGameOver {
		t.Fatalf("state = %v at health %d, want game over", e.State(), p.Health)
	}
	if p.Health != 0 {
		t.Fatalf("health = %d; contacts after death must be skipped", p.Health)
	}

	src.Advance(time.Second)
	snap := e.Tick(input.Input{Charged: true})
	if snap.State != StateGameOver || e.reg.Charged.Len() != 0 {
		t.Fatal("game over tick ran the simulation")
	}

	snap = e.Tick(input.Input{Restart: true})
	if snap.State != StatePlaying || snap.Score != 0 {
		t.Fatalf("after restart state=%v score=%d", snap.State, snap.Score)
	}
	if e.reg.Grunts.Len()+e.reg.Bosses.Len()+e.reg.Shots.Len()+e.reg.Homing.Len() != 0 {
		t.Fatal("restart left entities behind")
	}
	if p.Health != config.PlayerStartHealth || snap.Elapsed != 0 {
		t.Fatalf("health=%d elapsed=%v after restart", p.Health, snap.Elapsed)
	}
}

func TestHealEvery2000(t *testing.T) {
	e, src := newTestEngine(t)
	e.ledger.score = config.HealEveryScore
	e.Tick(input.Input{})

	p := e.reg.Player
	if p.Health != config.PlayerStartHealth+config.HealAmount || !p.HealActive {
		t.Fatalf("health=%d heal=%v", p.Health, p.HealActive)
	}

	src.Advance(config.HealVisualTime)
	e.Tick(input.Input{})
	if p.HealActive {
		t.Fatal("heal visual outlived its duration")
	}
	if p.Health != config.PlayerStartHealth+config.HealAmount {
		t.Fatal("healed twice for the same 2000 points")
	}
}

func TestBarrageReplacesAutoFire(t *testing.T) {
	e, src := newTestEngine(t)
	e.Tick(input.Input{Barrage: true})
	if e.reg.Barrage.Len() != 1 || e.reg.Shots.Len() != 0 {
		t.Fatalf("barrage=%d shots=%d on activation tick", e.reg.Barrage.Len(), e.reg.Shots.Len())
	}

	src.Advance(config.BarrageWindow)
	e.Tick(input.Input{})
	if e.reg.Player.BarrageActive {
		t.Fatal("barrage window did not close")
	}
	if e.reg.Shots.Len() != 1 {
		t.Fatalf("shots = %d, want auto-fire back", e.reg.Shots.Len())
	}
}

func TestLongRunInvariants(t *testing.T) {
	e, src := newTestEngine(t)
	rng := rand.New(rand.NewSource(7))

	last := 0
	prev := StatePlaying
	for tick := range 5000 {
		in := input.Input{
			Left:    rng.Intn(2) == 0,
			Right:   rng.Intn(2) == 0,
			Up:      rng.Intn(3) == 0,
			Down:    rng.Intn(3) == 0,
			Charged: rng.Intn(20) == 0,
			Barrage: rng.Intn(50) == 0,
			Shield:  rng.Intn(50) == 0,
			Homing:  rng.Intn(20) == 0,
			Restart: true,
		}
		src.Advance(config.TickTime)
		snap := e.Tick(in)
		if prev == StateGameOver {
			last = 0 // restarted
		}
		prev = snap.State

		if snap.Score < last {
			t.Fatalf("tick %d: score dropped from %d to %d", tick, last, snap.Score)
		}
		last = snap.Score
		if want := snap.Score / config.OrbiterTierScore; snap.Count(object.KindOrbiter) != want {
			t.Fatalf("tick %d: %d orbiters at score %d", tick, snap.Count(object.KindOrbiter), snap.Score)
		}
		p := snap.Player
		if p.X < 0 || p.Y < 0 || p.X > snap.Screen.Width-p.W || p.Y > snap.Screen.Height-p.H {
			t.Fatalf("tick %d: player off screen at (%v,%v)", tick, p.X, p.Y)
		}
	}
}
