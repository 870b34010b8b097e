package audio

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/lizard-arena/event"
	"github.com/lixenwraith/lizard-arena/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// SoundManager plays short cues for game events through a single mixer
// Every operation is safe before Initialize and after Cleanup; cues are then counted but silent
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	played      map[Cue]int
	dropped     int
}

// NewSoundManager creates a silent manager with a master volume in [0,1]
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: min(max(volume, 0), 1),
		played: make(map[Cue]int),
	}
}

// Initialize opens the speaker; calling it again is a no-op
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return fmt.Errorf("opening speaker: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops every playing cue
// beep has no speaker close; clearing the mixer leaves it silent
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Clear()
	sm.initialized = false
}

// Play starts a cue; returns false when silent or when too many cues are already playing
func (sm *SoundManager) Play(c Cue) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if c == CueNone {
		return false
	}
	sm.played[c]++
	if !sm.initialized {
		return false
	}

	streamer := newCue(c, sm.volume, sampleRate)
	speaker.Lock()
	defer speaker.Unlock()
	if sm.mixer.Len() >= parameter.AudioMaxVoices {
		sm.dropped++
		return false
	}
	sm.mixer.Add(streamer)
	return true
}

// HandleEvent plays the cue mapped to a game event
func (sm *SoundManager) HandleEvent(ev event.GameEvent) {
	sm.Play(CueFor(ev.Type))
}

// Played returns how many times a cue was requested
func (sm *SoundManager) Played(c Cue) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played[c]
}

// Dropped returns how many cues were skipped for lack of a free voice
func (sm *SoundManager) Dropped() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.dropped
}

// CueFor maps an event type to its cue; events without a sound map to CueNone
func CueFor(t event.EventType) Cue {
	switch t {
	case event.EventProjectileFired:
		return CueFire
	case event.EventEnemyKilled:
		return CueKill
	case event.EventEnemySpawned:
		return CueSpawn
	case event.EventFireRejected:
		return CueReject
	}
	return CueNone
}
