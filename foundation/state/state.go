package state

import "sync"

// Channel identifies one sensing modality of a session.
type Channel int

const (
	Vision Channel = iota
	Audio
	Speech
)

// State tracks which sensing channels are live for a session. A channel
// that failed to initialize is switched off once at setup; per-cycle code
// then degrades to zero output instead of re-raising the failure.
type State struct {
	sync.RWMutex

	Vision bool
	Audio  bool
	Speech bool
}

func NewState() *State {
	return &State{
		Vision: true,
		Audio:  true,
		Speech: true,
	}
}

func (s *State) Get(ch Channel) bool {
	s.RLock()
	defer s.RUnlock()
	{
		switch ch {
		case Vision:
			return s.Vision

		case Audio:
			return s.Audio

		case Speech:
			return s.Speech
		}
	}
	return false
}

func (s *State) Set(ch Channel, enabled bool) {
	s.Lock()
	defer s.Unlock()
	{
		switch ch {
		case Vision:
			s.Vision = enabled

		case Audio:
			s.Audio = enabled

		case Speech:
			s.Speech = enabled
		}
	}
}
