package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/vi-edit/constant"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// sample returns the wave's value at phase in [0, 1)
func (w WaveType) sample(phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2 * (phase - 0.5)
	case WaveNoise:
		return rand.Float64()*2 - 1
	}
	return math.Sin(2 * math.Pi * phase)
}

// Partial is one frequency component of a Voice
// Release is how long before the end of the voice the partial starts fading
type Partial struct {
	Freq    float64
	Level   float64
	Release time.Duration
}

// Voice describes a short sound: partials sharing one wave shape and attack
// Levels should sum to at most 1
type Voice struct {
	Wave     WaveType
	Duration time.Duration
	Attack   time.Duration
	Partials []Partial
}

var (
	errorVoice = Voice{
		Wave:     WaveSaw,
		Duration: constant.ErrorSoundDuration,
		Attack:   constant.ErrorSoundAttack,
		Partials: []Partial{
			{Freq: constant.ErrorSoundFreq, Level: 1, Release: constant.ErrorSoundRelease},
		},
	}
	bellVoice = Voice{
		Wave:     WaveSine,
		Duration: constant.BellSoundDuration,
		Attack:   constant.BellSoundAttack,
		Partials: []Partial{
			{Freq: constant.BellFundamentalFreq, Level: 0.7, Release: constant.BellSoundFundamentalRelease},
			{Freq: constant.BellOvertoneFreq, Level: 0.3, Release: constant.BellSoundOvertoneRelease},
		},
	}
)

// Streamer renders the voice at rate
// Attack and releases longer than the voice are clamped to it
func (v Voice) Streamer(rate beep.SampleRate) beep.Streamer {
	length := rate.N(v.Duration)
	attack := min(rate.N(v.Attack), length)
	t := &tone{
		wave:   v.Wave,
		length: length,
		attack: attack,
		step:   make([]float64, len(v.Partials)),
		phase:  make([]float64, len(v.Partials)),
		level:  make([]float64, len(v.Partials)),
		fade:   make([]int, len(v.Partials)),
	}
	for k, p := range v.Partials {
		t.step[k] = p.Freq / float64(rate)
		t.level[k] = p.Level
		t.fade[k] = length - min(rate.N(p.Release), length-attack)
	}
	return t
}

// tone is a Voice being played, one phase and fade point per partial
type tone struct {
	wave   WaveType
	length int
	attack int
	pos    int
	step   []float64
	phase  []float64
	level  []float64
	fade   []int
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.length {
			return i, i > 0
		}
		var sum float64
		for k := range t.phase {
			sum += t.level[k] * t.gain(k) * t.wave.sample(t.phase[k])
			t.phase[k] += t.step[k]
			t.phase[k] -= math.Floor(t.phase[k])
		}
		samples[i][0], samples[i][1] = sum, sum
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// gain is the linear envelope of partial k at the current position
func (t *tone) gain(k int) float64 {
	g := 1.0
	if t.pos < t.attack {
		g = float64(t.pos) / float64(t.attack)
	}
	if rel := t.length - t.fade[k]; rel > 0 && t.pos >= t.fade[k] {
		g = min(g, float64(t.length-t.pos)/float64(rel))
	}
	return g
}

// newVolume scales a stream linearly; zero or less silences it
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// CreateErrorSound is a short low buzz
func CreateErrorSound(rate beep.SampleRate, vol float64) beep.Streamer {
	return newVolume(errorVoice.Streamer(rate), vol)
}

// CreateBellSound is a struck tone with a fast-decaying overtone
func CreateBellSound(rate beep.SampleRate, vol float64) beep.Streamer {
	return newVolume(bellVoice.Streamer(rate), vol)
}
