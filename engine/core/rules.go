package core

import (
	"time"

	"github.com/1siamBot/tankarena/engine/maplib"
)

// Rules holds the tuning constants shared by every system
type Rules struct {
	Grid        maplib.Grid
	PlayerSpawn maplib.CellPos
	BaseCell    maplib.CellPos
	EnemySpawns []maplib.CellPos

	PlayerSpeed    float64
	PlayerCooldown time.Duration
	PlayerHealth   int
	StartLives     int

	ProjectileSize   float64
	ProjectileSpeed  float64
	ProjectileOffset float64 // gap between the facing edge and a new shell

	StuckEpsilon   float64
	StuckThreshold int
	DecideJitter   time.Duration
	FireProximity  float64 // in tiles
	RandomFire     float64 // per-tick chance once cooldown has elapsed
	TowardBonus    float64

	SpawnFromPlayer float64 // minimum spawn distance in tiles
	SpawnFromEnemy  float64

	SpeedFactor     float64
	RapidFireFactor float64
	ShieldCharges   int
	ShieldDuration  time.Duration
	PowerUpLifetime time.Duration
}

// DefaultRules returns the classic 16x16 arena tuning
func DefaultRules() Rules {
	return Rules{
		Grid:        maplib.Grid{Cols: 16, Rows: 16, Tile: 40},
		PlayerSpawn: maplib.CellPos{X: 4, Y: 14},
		BaseCell:    maplib.CellPos{X: 7, Y: 14},
		EnemySpawns: []maplib.CellPos{{X: 1, Y: 1}, {X: 7, Y: 1}, {X: 14, Y: 1}},

		PlayerSpeed:    2,
		PlayerCooldown: 250 * time.Millisecond,
		PlayerHealth:   1,
		StartLives:     3,

		ProjectileSize:   8,
		ProjectileSpeed:  6,
		ProjectileOffset: 8,

		StuckEpsilon:   1,
		StuckThreshold: 30,
		DecideJitter:   2 * time.Second,
		FireProximity:  6,
		RandomFire:     0.05,
		TowardBonus:    2,

		SpawnFromPlayer: 3,
		SpawnFromEnemy:  2,

		SpeedFactor:     1.5,
		RapidFireFactor: 0.5,
		ShieldCharges:   3,
		ShieldDuration:  10 * time.Second,
		PowerUpLifetime: 10 * time.Second,
	}
}
