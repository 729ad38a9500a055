package resilience

import "sync"

type singleFlightCall struct {
	wg    sync.WaitGroup
	value any
	err   error
}

// SingleFlight deduplicates concurrent calls sharing a key. The third return
// value reports whether the result was shared with another caller.
type SingleFlight struct {
	mu    sync.Mutex
	calls map[string]*singleFlightCall
}

func NewSingleFlight() *SingleFlight {
	return &SingleFlight{calls: make(map[string]*singleFlightCall)}
}

func (s *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	s.mu.Lock()
	if existing, ok := s.calls[key]; ok {
		s.mu.Unlock()
		existing.wg.Wait()
		return existing.value, existing.err, true
	}

	call := &singleFlightCall{}
	call.wg.Add(1)
	s.calls[key] = call
	s.mu.Unlock()

	call.value, call.err = fn()
	call.wg.Done()

	s.mu.Lock()
	delete(s.calls, key)
	s.mu.Unlock()

	return call.value, call.err, false
}
