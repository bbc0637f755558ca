package notify

import (
	"sync"
	"time"
)

// Kind is the visual severity of a toast.
type Kind string

const (
	Info    Kind = "info"
	Warning Kind = "warning"
	Error   Kind = "error"
)

const (
	DefaultLifetime  = 5000 * time.Millisecond
	DefaultExitGrace = 500 * time.Millisecond
)

// Toast is one transient notification. Lifecycle: active -> exiting -> removed.
type Toast struct {
	ID        int64     `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	Exiting   bool      `json:"exiting"`
	CreatedAt time.Time `json:"createdAt"`
}

type entry struct {
	toast  Toast
	expire *time.Timer
	remove *time.Timer
}

// Queue holds the toasts of one browser session. All mutation goes through its methods.
type Queue struct {
	mu       sync.Mutex
	entries  []*entry
	lastID   int64
	closed   bool
	lifetime time.Duration
	grace    time.Duration
	now      func() time.Time
	subs     map[int]chan struct{}
	nextSub  int
}

type Option func(*Queue)

// WithTimings overrides the auto-expiry and exit grace delays (tests).
func WithTimings(lifetime, grace time.Duration) Option {
	return func(q *Queue) {
		q.lifetime = lifetime
		q.grace = grace
	}
}

// WithClock overrides the id clock (tests).
func WithClock(now func() time.Time) Option {
	return func(q *Queue) { q.now = now }
}

func NewQueue(opts ...Option) *Queue {
	q := &Queue{
		lifetime: DefaultLifetime,
		grace:    DefaultExitGrace,
		now:      time.Now,
		subs:     map[int]chan struct{}{},
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// nextID is the millisecond clock scaled up, bumped past the last id so bursts
// inside one millisecond never collide.
func (q *Queue) nextID() int64 {
	id := q.now().UnixMilli() * 1000
	if id <= q.lastID {
		id = q.lastID + 1
	}
	q.lastID = id
	return id
}

// Show appends a toast and schedules its auto-expiry. It returns the new id (0 after Close).
func (q *Queue) Show(kind Kind, message string) int64 {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return 0
	}
	id := q.nextID()
	e := &entry{toast: Toast{ID: id, Kind: kind, Message: message, CreatedAt: q.now()}}
	e.expire = time.AfterFunc(q.lifetime, func() { q.Dismiss(id) })
	q.entries = append(q.entries, e)
	q.mu.Unlock()

	q.notify()
	return id
}

func (q *Queue) Info(message string) int64    { return q.Show(Info, message) }
func (q *Queue) Warning(message string) int64 { return q.Show(Warning, message) }
func (q *Queue) Error(message string) int64   { return q.Show(Error, message) }

// Dismiss flags the toast as exiting and removes it after the grace delay.
// Dismissing an exiting or removed toast is a no-op.
func (q *Queue) Dismiss(id int64) {
	q.mu.Lock()
	e := q.find(id)
	if e == nil || e.toast.Exiting || q.closed {
		q.mu.Unlock()
		return
	}
	e.toast.Exiting = true
	if e.expire != nil {
		e.expire.Stop()
	}
	e.remove = time.AfterFunc(q.grace, func() { q.remove(id) })
	q.mu.Unlock()

	q.notify()
}

func (q *Queue) remove(id int64) {
	q.mu.Lock()
	idx := -1
	for i, e := range q.entries {
		if e.toast.ID == id {
			idx = i
			break
		}
	}
	// only exiting entries may be removed
	if idx < 0 || !q.entries[idx].toast.Exiting {
		q.mu.Unlock()
		return
	}
	q.entries = append(q.entries[:idx], q.entries[idx+1:]...)
	q.mu.Unlock()

	q.notify()
}

func (q *Queue) find(id int64) *entry {
	for _, e := range q.entries {
		if e.toast.ID == id {
			return e
		}
	}
	return nil
}

// List returns a snapshot of the current toasts, oldest first.
func (q *Queue) List() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Toast, 0, len(q.entries))
	for _, e := range q.entries {
		out = append(out, e.toast)
	}
	return out
}

// Subscribe returns a channel that receives a signal after every change, and a cancel func.
// Signals are coalesced; readers should call List after waking up.
func (q *Queue) Subscribe() (<-chan struct{}, func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	ch := make(chan struct{}, 1)
	id := q.nextSub
	q.nextSub++
	q.subs[id] = ch
	return ch, func() {
		q.mu.Lock()
		delete(q.subs, id)
		q.mu.Unlock()
	}
}

func (q *Queue) notify() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, ch := range q.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Close stops every pending timer and drops all toasts.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	for _, e := range q.entries {
		if e.expire != nil {
			e.expire.Stop()
		}
		if e.remove != nil {
			e.remove.Stop()
		}
	}
	q.entries = nil
}
