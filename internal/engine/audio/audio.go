// Package audio plays the looping background track and the collision cues.
package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// dbBase makes effects.Volume interpret Volume as decibels.
var dbBase = math.Pow(10, 1.0/20)

// ErrNotInitialized is returned when playing before Init.
var ErrNotInitialized = errors.New("audio not initialized")

// Manager handles audio playback for the game.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate

	music        beep.StreamSeekCloser
	musicCtrl    *beep.Ctrl
	musicVolume  *effects.Volume
	musicPath    string
	masterVolume float64
	sfxVolLevel  float64
	muted        bool

	// Cues are mixed so overlapping collisions don't cut each other off.
	sfxMixer *beep.Mixer
}

// New creates a new audio manager.
func New() *Manager {
	return &Manager{
		masterVolume: 1.0,
		sfxVolLevel:  1.0,
		sfxMixer:     &beep.Mixer{},
	}
}

// Init opens the speaker. The speaker runs its own goroutine.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	m.sampleRate = DefaultSampleRate
	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.sfxMixer)

	m.initialized = true
	return nil
}

// Close stops all playback.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	m.stopMusic()
	speaker.Clear()
	m.initialized = false
}

// IsInitialized returns whether the audio system is initialized.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
	m.updateMusicVolume()
}

// SetSFXVolume sets the cue volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolLevel = clamp(vol, 0, 1)
}

// SetMuted silences everything without forgetting the volume levels.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
	m.updateMusicVolume()
}

// MasterVolume returns the master volume.
func (m *Manager) MasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// SFXVolume returns the cue volume.
func (m *Manager) SFXVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sfxVolLevel
}

// effective returns the gain for a channel level, honoring mute.
func (m *Manager) effective(level float64) float64 {
	if m.muted {
		return 0
	}
	return m.masterVolume * level
}

func (m *Manager) updateMusicVolume() {
	if m.musicVolume == nil {
		return
	}
	applyVolume(m.musicVolume, m.effective(1))
}

func applyVolume(v *effects.Volume, vol float64) {
	v.Base = dbBase
	v.Silent = vol <= 0
	v.Volume = volumeToDb(vol)
}

// volumeToDb converts a 0-1 volume to decibels: 1 is 0dB, 0.5 is about -6dB.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return 20 * math.Log10(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// PlayMusic loops a WAV file until StopMusic or Close.
func (m *Manager) PlayMusic(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}
	m.stopMusic()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open music: %w", err)
	}
	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("decode wav: %w", err)
	}

	looped := &loopStreamer{streamer: streamer, resampled: m.resample(format, streamer)}
	m.musicCtrl = &beep.Ctrl{Streamer: looped}
	m.musicVolume = &effects.Volume{Streamer: m.musicCtrl}
	m.updateMusicVolume()

	m.music = streamer
	m.musicPath = path
	speaker.Play(m.musicVolume)
	return nil
}

// StopMusic stops the background track.
func (m *Manager) StopMusic() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopMusic()
}

func (m *Manager) stopMusic() {
	if m.music == nil {
		return
	}
	speaker.Lock()
	m.musicCtrl.Paused = true
	speaker.Unlock()
	speaker.Clear()
	speaker.Play(m.sfxMixer)

	m.music.Close()
	m.music = nil
	m.musicCtrl = nil
	m.musicVolume = nil
	m.musicPath = ""
}

// MusicPath returns the path of the current track, empty when silent.
func (m *Manager) MusicPath() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.musicPath
}

// PlayCue queues a collision cue on the effects mixer. It never blocks the
// caller on playback.
func (m *Manager) PlayCue(c Cue) error {
	m.mu.RLock()
	initialized := m.initialized
	rate := m.sampleRate
	vol := m.effective(m.sfxVolLevel)
	m.mu.RUnlock()

	if !initialized {
		return ErrNotInitialized
	}
	if vol <= 0 {
		return nil
	}

	s := &effects.Volume{Streamer: c.Streamer(rate)}
	applyVolume(s, vol)

	speaker.Lock()
	m.sfxMixer.Add(s)
	speaker.Unlock()
	return nil
}

func (m *Manager) resample(format beep.Format, s beep.Streamer) beep.Streamer {
	if format.SampleRate == m.sampleRate {
		return s
	}
	return beep.Resample(4, format.SampleRate, m.sampleRate, s)
}

// loopStreamer rewinds the underlying track whenever it runs out.
type loopStreamer struct {
	streamer  beep.StreamSeekCloser
	resampled beep.Streamer
}

func (l *loopStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	filled := 0
	for filled < len(samples) {
		n, ok := l.resampled.Stream(samples[filled:])
		filled += n
		if !ok {
			if err := l.streamer.Seek(0); err != nil {
				return filled, filled > 0
			}
			if n == 0 && l.streamer.Len() == 0 {
				return filled, filled > 0
			}
		}
	}
	return filled, true
}

func (l *loopStreamer) Err() error {
	return l.streamer.Err()
}
