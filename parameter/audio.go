package parameter

import "time"

// Audio output
const (
	// AudioSampleRate in Hz
	AudioSampleRate = 48000
	// AudioBufferDuration is the speaker buffer; larger is safer, smaller reacts faster
	AudioBufferDuration = 100 * time.Millisecond
	// AudioMaxVoices caps concurrently playing cues; new cues are dropped beyond it
	AudioMaxVoices = 16
)

// Cue shapes
const (
	FireCueDuration = 60 * time.Millisecond
	FireCueAttack   = 2 * time.Millisecond
	FireCueRelease  = 40 * time.Millisecond

	KillCueDuration = 180 * time.Millisecond
	KillCueAttack   = 3 * time.Millisecond
	KillCueRelease  = 140 * time.Millisecond

	SpawnCueDuration = 120 * time.Millisecond
	SpawnCueAttack   = 20 * time.Millisecond
	SpawnCueRelease  = 80 * time.Millisecond

	RejectCueDuration = 40 * time.Millisecond
	RejectCueAttack   = 2 * time.Millisecond
	RejectCueRelease  = 20 * time.Millisecond
)
