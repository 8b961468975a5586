package workspace

import "sync"

// Janitor destroys workspaces in the background once their results have
// been handed back. Close waits for every scheduled destroy to finish.
type Janitor struct {
	manager *Manager

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewJanitor returns a Janitor that destroys through m.
func NewJanitor(m *Manager) *Janitor {
	return &Janitor{manager: m}
}

// Schedule queues ws for destruction. After Close the destroy runs inline.
func (j *Janitor) Schedule(ws *Workspace) {
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		j.manager.Destroy(ws)
		return
	}
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		j.manager.Destroy(ws)
	}()
}

// Close stops background scheduling and drains pending destroys.
func (j *Janitor) Close() {
	j.mu.Lock()
	j.closed = true
	j.mu.Unlock()
	j.wg.Wait()
}
