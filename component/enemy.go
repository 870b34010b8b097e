package component

import "github.com/lixenwraith/lizard-arena/core"

// EnemyComponent holds the weak reference to the enemy's crowd agent
// The agent record is owned by the world engine
type EnemyComponent struct {
	Agent core.AgentID
}
