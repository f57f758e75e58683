package session

import "github.com/towerkeep/mudcore/internal/logger"

// Monitor attaches an admin's sink channel to a target session so the
// target's outbound lines are fanned out to the admin in real time.
// Returns false if the target is already being monitored.
func (m *Manager) Monitor(adminUsername, targetUsername string, sink chan<- string) bool {
	target, ok := m.ClientFor(targetUsername)
	if !ok {
		return false
	}
	if !target.beginMonitor(adminUsername, sink) {
		return false
	}
	logger.Info("admin monitor attached", "admin", adminUsername, "target", targetUsername)
	return true
}

// StopMonitor detaches whatever admin is watching a session.
func (m *Manager) StopMonitor(targetUsername string) {
	if target, ok := m.ClientFor(targetUsername); ok {
		target.endMonitor()
	}
}

// Takeover blocks the target's own input and starts a goroutine draining
// lines from the returned channel, executing each one through the target's
// current state handler as if the target had typed it. Lines sent this way
// bypass the permission checks a command handler would apply to the
// target's own flags (elevated per spec.md's "elevated command
// permissions" requirement is the command dispatcher's job once wired in;
// this layer's contract is simply "run as the target, unblocked").
// Release stops the goroutine and restores normal input.
func (m *Manager) Takeover(targetUsername string) (lines chan<- string, release func(), ok bool) {
	target, found := m.ClientFor(targetUsername)
	if !found {
		return nil, nil, false
	}

	target.setInputBlocked(true)
	ch := make(chan string, 8)
	target.TakeoverLines = ch
	done := make(chan struct{})

	go func() {
		for {
			select {
			case line, ok := <-ch:
				if !ok {
					return
				}
				target.dispatchMu.Lock()
				next := m.states[target.State].handle(m, target, line)
				if next != target.State {
					m.transition(target, next)
				}
				target.dispatchMu.Unlock()
			case <-done:
				return
			}
		}
	}()

	release = func() {
		close(done)
		target.setInputBlocked(false)
		target.TakeoverLines = nil
		logger.Info("admin takeover released", "target", targetUsername)
	}
	logger.Info("admin takeover started", "target", targetUsername)
	return ch, release, true
}
