package atsbt

import (
	"strings"
	"sync"
	"time"
)

// mockTransport is a scripted Transport. Responses are enqueued as timed
// chunks and become readable once their timestamp passes, so tests can
// exercise delayed and out-of-band module output.
type mockTransport struct {
	mu sync.Mutex

	writes []string
	chunks []timedChunk

	resets int
	closes int

	// respond, when set, enqueues a scripted reply for each written
	// command line after respondDelay.
	respond      func(cmd string) []string
	respondDelay time.Duration

	readErr error
}

type timedChunk struct {
	at   time.Time
	data string
}

func newMockTransport() *mockTransport {
	return &mockTransport{}
}

func (m *mockTransport) WriteString(s string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd := strings.TrimSuffix(s, "\r")
	m.writes = append(m.writes, cmd)

	if m.respond != nil {
		if lines := m.respond(cmd); len(lines) > 0 {
			m.enqueueLocked(m.respondDelay, lines...)
		}
	}

	return nil
}

func (m *mockTransport) ReadAvailable() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.readErr != nil {
		return nil, m.readErr
	}

	now := time.Now()
	var out []byte
	remaining := m.chunks[:0]
	for _, c := range m.chunks {
		if c.at.Before(now) {
			out = append(out, c.data...)
		} else {
			remaining = append(remaining, c)
		}
	}
	m.chunks = remaining

	return out, nil
}

func (m *mockTransport) ResetInput() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.resets++

	// Drop whatever would already have been readable.
	now := time.Now()
	remaining := m.chunks[:0]
	for _, c := range m.chunks {
		if !c.at.Before(now) {
			remaining = append(remaining, c)
		}
	}
	m.chunks = remaining

	return nil
}

func (m *mockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closes++

	return nil
}

func (m *mockTransport) enqueue(after time.Duration, lines ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.enqueueLocked(after, lines...)
}

func (m *mockTransport) enqueueLocked(after time.Duration, lines ...string) {
	m.chunks = append(m.chunks, timedChunk{
		at:   time.Now().Add(after),
		data: strings.Join(lines, "\r\n") + "\r\n",
	})
}

func (m *mockTransport) written() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.writes))
	copy(out, m.writes)

	return out
}

func (m *mockTransport) lastWrite() string {
	writes := m.written()
	if len(writes) == 0 {
		return ""
	}

	return writes[len(writes)-1]
}

func (m *mockTransport) countWrites(prefix string) int {
	count := 0
	for _, w := range m.written() {
		if strings.HasPrefix(w, prefix) {
			count++
		}
	}

	return count
}
