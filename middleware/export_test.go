package middleware

import "time"

func NewMemoryCounterAt(now func() time.Time) *MemoryCounter {
	return &MemoryCounter{windows: make(map[string]*memoryWindow), now: now}
}

func (m *MemoryCounter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.windows)
}
