package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/lizard-arena/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length wave, optionally gliding from freq to endFreq
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a constant pitch oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewGlide(freq, freq, duration, wave, rate)
}

// NewGlide creates an oscillator whose pitch moves linearly from freq to endFreq
func NewGlide(freq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		endFreq:  endFreq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewPCG(uint64(freq), uint64(endFreq))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.endFreq-o.freq)*progress
		o.phase += freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain; math.Log2(0) is -Inf so zero gain is silenced instead
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Cue identifies a sound effect
type Cue int

const (
	CueNone Cue = iota
	CueFire
	CueKill
	CueSpawn
	CueReject
)

var cueNames = map[Cue]string{
	CueFire:   "fire",
	CueKill:   "kill",
	CueSpawn:  "spawn",
	CueReject: "reject",
}

func (c Cue) String() string {
	if name, ok := cueNames[c]; ok {
		return name
	}
	return "none"
}

// newCue builds the streamer for a cue at the given master volume
func newCue(c Cue, volume float64, rate beep.SampleRate) beep.Streamer {
	switch c {
	case CueFire:
		// Descending zap
		osc := NewGlide(1400, 500, parameter.FireCueDuration, WaveSquare, rate)
		shaped := NewEnvelope(osc, parameter.FireCueDuration, parameter.FireCueAttack, parameter.FireCueRelease, rate)
		return newVolume(shaped, 0.25*volume)

	case CueKill:
		// Noise burst over a low thump
		noise := NewOscillator(0, parameter.KillCueDuration, WaveNoise, rate)
		thump := NewGlide(160, 50, parameter.KillCueDuration, WaveSine, rate)
		mixed := beep.Mix(newVolume(noise, 0.4), newVolume(thump, 0.6))
		shaped := NewEnvelope(mixed, parameter.KillCueDuration, parameter.KillCueAttack, parameter.KillCueRelease, rate)
		return newVolume(shaped, 0.5*volume)

	case CueSpawn:
		// Soft rising chirp
		osc := NewGlide(300, 600, parameter.SpawnCueDuration, WaveSine, rate)
		shaped := NewEnvelope(osc, parameter.SpawnCueDuration, parameter.SpawnCueAttack, parameter.SpawnCueRelease, rate)
		return newVolume(shaped, 0.2*volume)

	case CueReject:
		// Dull click
		osc := NewOscillator(110, parameter.RejectCueDuration, WaveSaw, rate)
		shaped := NewEnvelope(osc, parameter.RejectCueDuration, parameter.RejectCueAttack, parameter.RejectCueRelease, rate)
		return newVolume(shaped, 0.1*volume)
	}
	return nil
}
