package device

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
)

const speakerSampleRate = beep.SampleRate(44100)

// SpeakerBuzzer renders tones through the machine's sound card instead of
// a GPIO buzzer. Useful for developing on a desktop without hardware.
type SpeakerBuzzer struct {
	mu          sync.Mutex
	initialized bool
	logger      *slog.Logger
}

// NewSpeakerBuzzer creates a sound-card tone player. The speaker is
// initialized lazily on the first Play so machines without audio output
// only fail when a tone is actually requested.
func NewSpeakerBuzzer(logger *slog.Logger) *SpeakerBuzzer {
	return &SpeakerBuzzer{logger: logger}
}

// Play starts a continuous sine tone at the given frequency.
func (s *SpeakerBuzzer) Play(freqHz float64) error {
	if err := s.ensureInitialized(); err != nil {
		return err
	}

	tone, err := generators.SineTone(speakerSampleRate, freqHz)
	if err != nil {
		return fmt.Errorf("generate %.1fHz tone: %w", freqHz, err)
	}

	speaker.Clear()
	speaker.Play(tone)
	return nil
}

// Stop silences playback.
func (s *SpeakerBuzzer) Stop() error {
	s.mu.Lock()
	initialized := s.initialized
	s.mu.Unlock()

	if initialized {
		speaker.Clear()
	}
	return nil
}

// Close stops playback and shuts the speaker down.
func (s *SpeakerBuzzer) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		speaker.Clear()
		speaker.Close()
		s.initialized = false
	}
	return nil
}

func (s *SpeakerBuzzer) ensureInitialized() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	bufferSize := speakerSampleRate.N(100 * time.Millisecond)
	if err := speaker.Init(speakerSampleRate, bufferSize); err != nil {
		return fmt.Errorf("initialize speaker: %w", err)
	}
	s.initialized = true
	s.logger.Debug("Speaker initialized", "sample_rate", speakerSampleRate)
	return nil
}
