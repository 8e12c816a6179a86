package main

import "math"

// Snap thresholds. Below these the animation is considered finished and
// the value jumps to the target, so repaints stop.
const (
	zoomSnapEpsilon = 0.001
	panSnapEpsilon  = 0.1
)

// expDecay eases *current toward target with frame-rate independent
// exponential decay. dt is the frame delta in seconds, speed the decay
// rate per second. Returns true while the value is still animating.
func expDecay(current *float64, target, dt, speed, epsilon float64) bool {
	if math.Abs(*current-target) <= epsilon {
		*current = target
		return false
	}
	t := 1.0 - math.Exp(-speed*dt)
	*current += (target - *current) * t
	return true
}

// expDecayXY eases a 2D value, snapping when the remaining distance is
// within epsilon.
func expDecayXY(curX, curY *float64, targetX, targetY, dt, speed, epsilon float64) bool {
	dx := *curX - targetX
	dy := *curY - targetY
	if math.Hypot(dx, dy) <= epsilon {
		*curX = targetX
		*curY = targetY
		return false
	}
	t := 1.0 - math.Exp(-speed*dt)
	*curX += (targetX - *curX) * t
	*curY += (targetY - *curY) * t
	return true
}
