package main

import "time"

const (
	ProtocolVersion = 1
	writeWait       = 10 * time.Second
	tickRate        = 15 // ticks per second
	maxTickDelta    = 0.25

	worldWidth  = 1280.0
	worldHeight = 720.0

	defaultMaxLiveMonkeys = 300

	attackReach      = 12.0
	attackCooldownMs = 800

	wanderDecisionMinMs = 1200
	wanderDecisionMaxMs = 3200

	animationFrameMs    = 150
	animationFrameCount = 4
	facingDeadzone      = 0.01

	bananaSize         = 18.0
	bananaHealFraction = 0.3
	defaultBananaMax   = 12
	bananaSpawnMargin  = 48.0

	treeMinRadius    = 24.0
	treeMaxRadius    = 56.0
	defaultTreeCount = 14
	decorationCount  = 30

	arenaSpawnMargin  = 64.0
	spawnJitterRadius = 90.0
)

// Per-tier spawn costs in base currency, and the margin added to a funding
// amount before allocation to absorb upstream fee noise.
const (
	costSmall      = 0.1
	costMedium     = 0.5
	costLarge      = 2.0
	allocFeeMargin = 0.005

	// Team buckets are derived at 1/100 base-currency resolution.
	teamBucketUnits = 100
)
