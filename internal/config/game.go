package config

import "time"

// Game configuration constants.
// All tunable game parameters are centralized here for easy adjustment.

// Playfield, in logical units.
const (
	ScreenWidth  = 144 * 4
	ScreenHeight = 288 * 3
)

// Tick rate
const (
	TickRate = 60
	TickTime = time.Second / TickRate
)

// Player
const (
	PlayerStartHealth = 100
	PlayerAttack      = 10
	PlayerSpeed       = 7.0
	FireInterval      = 150 * time.Millisecond
)

// Abilities
const (
	ChargedCooldown = 10 * time.Second
	BarrageCooldown = 18 * time.Second
	BarrageWindow   = 5 * time.Second
	ShieldCooldown  = 28 * time.Second
	HomingCooldown  = 8 * time.Second
	HomingMinScore  = 5000
)

// Projectiles (speeds in units per tick)
const (
	PlayerShotSpeed    = 5.0
	ChargedShotSpeed   = 10.0
	ChargedShotDamage  = 300
	BarrageShotSpeed   = 15.0
	BarrageShotDamage  = 10
	HomingSteerSpeed   = 7.0
	HomingFallbackRise = 10.0
	HomingShotDamage   = 500
)

// Enemies
const (
	GruntInterval = 500 * time.Millisecond
	GruntHealth   = 20
	GruntAttack   = 50
	GruntMinSpeed = 2
	GruntMaxSpeed = 6
	GruntGravity  = 0.1
	GruntSpawnY   = -100.0
	BossInterval  = 10 * time.Second
	BossHealth    = 500
	BossAttack    = 500
	BossSpeed     = 0.6
	BossSpawnY    = -200.0
)

// Orbiting effects
const (
	OrbiterTierScore = 8000
	OrbiterRadius    = 100.0
	OrbiterStepDeg   = 2.0
	OrbiterDamage    = 50
)

// Healing
const (
	HealEveryScore = 2000
	HealAmount     = 50
	HealVisualTime = 500 * time.Millisecond
)

// Kill bonuses by weapon
const (
	ScoreGruntByShot    = 100
	ScoreGruntByCharged = 200
	ScoreGruntByBarrage = 300
	ScoreGruntByHoming  = 400
	ScoreGruntByOrbiter = 150
	ScoreBossByShot     = 500
	ScoreBossByCharged  = 1000
	ScoreBossByBarrage  = 2000
	ScoreBossByHoming   = 1000
	ScoreBossByOrbiter  = 1000
)

// Terminal rendering
const (
	MaxTermWidth  = 96 // Columns; wider terminals get a centred, bordered playfield
	MaxTermHeight = 48
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
	ShutdownGrace          = 15 * time.Second
)

// Inactivity
const (
	InactivityWarnUser       = 90 * time.Second
	InactivityDisconnectUser = 120 * time.Second
)
