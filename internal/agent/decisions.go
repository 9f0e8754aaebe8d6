package agent

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Conceptual-Machines/jukebox-api/internal/models"
)

// DefaultLogCapacity is how many decisions the log keeps
const DefaultLogCapacity = 50

// DecisionLog is a bounded, concurrency-safe log of agent decisions.
// Once full, the oldest decision is dropped.
type DecisionLog struct {
	mu    sync.Mutex
	buf   []models.AgentDecision
	start int
	size  int
	now   func() time.Time
}

// NewDecisionLog creates a log holding at most capacity decisions
func NewDecisionLog(capacity int) *DecisionLog {
	if capacity <= 0 {
		capacity = DefaultLogCapacity
	}
	return &DecisionLog{
		buf: make([]models.AgentDecision, capacity),
		now: time.Now,
	}
}

// Record appends a decision and returns it
func (l *DecisionLog) Record(event, message string, data map[string]interface{}) models.AgentDecision {
	d := models.AgentDecision{
		ID:        uuid.NewString(),
		Event:     event,
		Message:   message,
		Data:      data,
		CreatedAt: l.now().UTC(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	capacity := len(l.buf)
	if l.size < capacity {
		l.buf[(l.start+l.size)%capacity] = d
		l.size++
	} else {
		l.buf[l.start] = d
		l.start = (l.start + 1) % capacity
	}
	return d
}

// List returns the decisions, newest first
func (l *DecisionLog) List() []models.AgentDecision {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.AgentDecision, 0, l.size)
	for i := l.size - 1; i >= 0; i-- {
		out = append(out, l.buf[(l.start+i)%len(l.buf)])
	}
	return out
}

// Len returns the number of stored decisions
func (l *DecisionLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.size
}

// Clear drops every decision
func (l *DecisionLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.buf {
		l.buf[i] = models.AgentDecision{}
	}
	l.start, l.size = 0, 0
}
