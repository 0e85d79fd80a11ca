package scan

import (
	"errors"
	"sync"
)

// ErrTorchUnavailable is returned when the decoder exposes no torch.
var ErrTorchUnavailable = errors.New("torch unavailable")

// Torch is the decoder's optional flash capability. The session forwards
// calls without interpreting them.
type Torch interface {
	Available() bool
	IsOn() bool
	On() error
	Off() error
}

// NoTorch is used when the decoder has no flash.
type NoTorch struct{}

func (NoTorch) Available() bool { return false }
func (NoTorch) IsOn() bool      { return false }
func (NoTorch) On() error       { return ErrTorchUnavailable }
func (NoTorch) Off() error      { return ErrTorchUnavailable }

// SoftTorch only tracks on/off. It stands in for decoders whose flash is
// driven outside this process, enabled by scanner.torch.
type SoftTorch struct {
	mu sync.Mutex
	on bool
}

func (t *SoftTorch) Available() bool { return true }

func (t *SoftTorch) IsOn() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.on
}

func (t *SoftTorch) On() error {
	t.mu.Lock()
	t.on = true
	t.mu.Unlock()
	return nil
}

func (t *SoftTorch) Off() error {
	t.mu.Lock()
	t.on = false
	t.mu.Unlock()
	return nil
}

// Torch returns the decoder torch.
func (s *Session) Torch() Torch { return s.torch }

// ToggleTorch switches the torch. Unavailable torches are a no-op.
func (s *Session) ToggleTorch() error {
	t := s.torch
	if !t.Available() {
		return nil
	}
	var err error
	if t.IsOn() {
		err = t.Off()
	} else {
		err = t.On()
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("torch toggle failed")
	}
	return err
}
