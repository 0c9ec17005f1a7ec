package server

import "time"

const (
	ProtocolVersion = 1
	writeWait       = 10 * time.Second
	tickRate        = 20 // fixed simulation ticks per second

	// World extents on the XZ plane, in tiles (matches the map format).
	worldWidth = 200.0
	worldDepth = 200.0

	// Ray heights for perception queries.
	eyeHeight   = 1.6
	torsoHeight = 1.0

	// Steering.
	avoidProbeLength = 2.5
	avoidSideAngle   = 0.785398163397448 // 45 degrees
	actorRadius      = 0.45

	// Combat.
	attackReachSlack = 1.25 // tolerance band above attack range on the apply edge
	attackWindupTime = 0.35 // seconds between entering Attacking and the hit landing
	corpseDelay      = 2.5  // seconds a dead monster lingers before removal

	// Enrage policy. Basic enrage is temporary; boss enrage is permanent and
	// additionally shortens cooldowns.
	enrageDamageMultiplier   = 1.5
	enrageSpeedMultiplier    = 1.3
	enrageDuration           = 8.0
	bossEnrageHealthFraction = 0.30
	bossEnrageCooldownFactor = 0.6

	// Performance scheduler. Sleep and wake thresholds deliberately differ:
	// a single threshold oscillates at the boundary.
	sleepDistance     = 40.0
	wakeDistance      = 35.0
	wakeCheckInterval = 0.5 // seconds between wake checks while sleeping

	// Presentation distance gates. Skipping these callbacks never feeds back
	// into simulation state.
	animationGateDistance = 45.0
	billboardGateDistance = 60.0

	// Prop cache.
	propCacheRefreshInterval = 5.0 // seconds between rebuilds

	// Social chat sessions.
	chatRange             = 8.0
	chatDuration          = 4.0  // seconds both participants stay locked
	chatSecondLineDelay   = 1.5  // seconds before the partner's line shows
	chatGlobalCooldown    = 12.0 // seconds between any two sessions world-wide
	chatAttemptInterval   = 2.0  // seconds between initiation checks per actor
	idleInteractionChance = 0.35 // roll on idle timer expiry

	// Idle/patrol pacing.
	idleDurationMin   = 2.0
	idleDurationMax   = 5.0
	patrolWaitMin     = 1.0
	patrolWaitMax     = 3.0
	patrolArriveEps   = 0.5
	roamerPatrolScale = 3.0

	heartbeatInterval = 2 * time.Second
	disconnectAfter   = 3 * heartbeatInterval
)
