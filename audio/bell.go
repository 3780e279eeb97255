// Package audio rings the editor bell.
//
// The bell is an application-shell service: it is created with the report
// sink, started by the hub and handed to whatever wants to ring it. With no
// audio device it degrades to a silent no-op and says so once in the log.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/vi-edit/constant"
	"github.com/lixenwraith/vi-edit/report"
)

// Sound selects what Ring plays
type Sound uint8

const (
	SoundBell Sound = iota
	SoundError
)

func (s Sound) String() string {
	switch s {
	case SoundBell:
		return "bell"
	case SoundError:
		return "error"
	}
	return "unknown"
}

// Player is the output device
type Player interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Clear()
}

// speakerPlayer plays through the system speaker
type speakerPlayer struct{}

func (speakerPlayer) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}

func (speakerPlayer) Play(s beep.Streamer) { speaker.Play(s) }

func (speakerPlayer) Clear() { speaker.Clear() }

// Bell is the audio service
type Bell struct {
	mu     sync.Mutex
	sink   *report.Sink
	player Player
	rate   beep.SampleRate
	volume float64
	muted  bool
	ready  bool
	last   time.Time
	now    func() time.Time
}

// NewBell creates a bell playing through the system speaker
func NewBell(sink *report.Sink) *Bell {
	return NewBellWithPlayer(sink, speakerPlayer{})
}

// NewBellWithPlayer creates a bell with an explicit output device
func NewBellWithPlayer(sink *report.Sink, p Player) *Bell {
	return &Bell{
		sink:   sink,
		player: p,
		rate:   beep.SampleRate(constant.AudioSampleRate),
		volume: 0.5,
		now:    time.Now,
	}
}

// Name implements service.Service
func (b *Bell) Name() string { return "audio" }

// Dependencies implements service.Service
func (b *Bell) Dependencies() []string { return []string{"report"} }

// Init implements service.Service
// args[0]: bool - muted, a muted bell never opens the device
// args[1]: float64 - volume in [0, 1]
func (b *Bell) Init(args ...any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(args) > 0 {
		if muted, ok := args[0].(bool); ok {
			b.muted = muted
		}
	}
	if len(args) > 1 {
		if vol, ok := args[1].(float64); ok {
			b.volume = max(0, min(vol, 1))
		}
	}
	return nil
}

// Start implements service.Service
// A missing device is reported and leaves the bell silent, it never fails the shell
func (b *Bell) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.muted || b.ready {
		return nil
	}
	if err := b.player.Init(b.rate, constant.AudioBufferSize); err != nil {
		if b.sink != nil {
			b.sink.Reportf(report.Warning, report.AudioUnavailable, "audio disabled: %v", err)
		}
		return nil
	}
	b.ready = true
	return nil
}

// Stop implements service.Service
func (b *Bell) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ready {
		b.player.Clear()
		b.ready = false
	}
	return nil
}

// Available reports whether the device was opened
func (b *Bell) Available() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ready
}

// Muted reports the mute state
func (b *Bell) Muted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.muted
}

// SetMuted changes the mute state, unmuting does not reopen a device that failed
func (b *Bell) SetMuted(muted bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.muted = muted
}

// Ring plays s and reports whether it was played
// Rings closer together than MinSoundGap collapse into one
func (b *Bell) Ring(s Sound) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.muted || !b.ready {
		return false
	}
	now := b.now()
	if !b.last.IsZero() && now.Sub(b.last) < constant.MinSoundGap {
		return false
	}
	b.last = now

	var stream beep.Streamer
	switch s {
	case SoundError:
		stream = CreateErrorSound(b.rate, b.volume)
	default:
		stream = CreateBellSound(b.rate, b.volume)
	}
	b.player.Play(stream)
	return true
}
