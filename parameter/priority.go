package parameter

// Simulation phase priorities (lower runs first)
// Order is part of the frame contract; do not reorder
const (
	PrioritySpawn      = 10
	PrioritySteering   = 20
	PriorityProjectile = 30
	PriorityCollision  = 40
	PriorityCull       = 50
	PrioritySweep      = 60 // After every marking phase
	PriorityFacing     = 70
	PriorityMovement   = 80
	PriorityWeapon     = 90
	PriorityVisual     = 100 // Last, reads weapon and movement results
)
