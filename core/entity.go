package core

// Entity identifies a live actor
// Zero is never assigned; ids are recycled after removal
type Entity uint64

// VolumeID is the world engine handle for a collision volume
type VolumeID uint64

// AgentID is the world engine handle for a crowd steering agent
// Zero means no agent is attached
type AgentID uint64

// Kind partitions actors into player, enemies and projectiles
type Kind uint8

const (
	KindPlayer Kind = iota
	KindEnemy
	KindProjectile
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindProjectile:
		return "projectile"
	default:
		return "unknown"
	}
}

// VisualState selects which pre-loaded representation of a character is shown
type VisualState uint8

const (
	VisualNone VisualState = iota // Projectiles
	VisualIdle
	VisualWalk
	VisualAttack
)

func (v VisualState) String() string {
	switch v {
	case VisualIdle:
		return "idle"
	case VisualWalk:
		return "walk"
	case VisualAttack:
		return "attack"
	default:
		return "none"
	}
}
