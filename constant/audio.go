package constant

import "time"

// Audio hardware settings
const (
	AudioSampleRate = 44100
	AudioBufferSize = AudioSampleRate / 20 // 50ms
)

// MinSoundGap suppresses bells rung in quick succession
const MinSoundGap = 50 * time.Millisecond

// Error buzz
const (
	ErrorSoundDuration = 80 * time.Millisecond
	ErrorSoundAttack   = 5 * time.Millisecond
	ErrorSoundRelease  = 20 * time.Millisecond
	ErrorSoundFreq     = 110.0 // Hz
)

// Bell tone
const (
	BellSoundDuration           = 600 * time.Millisecond
	BellSoundAttack             = 5 * time.Millisecond
	BellSoundFundamentalRelease = 550 * time.Millisecond
	BellSoundOvertoneRelease    = 200 * time.Millisecond
	BellFundamentalFreq         = 880.0 // Hz
	BellOvertoneFreq            = 2640.0
)
