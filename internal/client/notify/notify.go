// Package notify keeps the single transient banner shown to the user.
package notify

import (
	"sync"
	"time"
)

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

// DefaultTTL is how long a banner stays up.
const DefaultTTL = 5 * time.Second

type Banner struct {
	Kind    Kind      `json:"kind"`
	Message string    `json:"message"`
	Shown   time.Time `json:"shown"`
}

// afterFunc is a seam so tests can fire dismissals by hand.
var afterFunc = func(d time.Duration, f func()) stopper { return time.AfterFunc(d, f) }

type stopper interface{ Stop() bool }

// Notifier holds at most one banner. Showing a new banner replaces the
// current one at once and restarts the dismissal timer.
type Notifier struct {
	mu      sync.Mutex
	ttl     time.Duration
	current *Banner
	timer   stopper
	seq     uint64
	onShow  func(Banner)
}

// New returns a Notifier whose banners last ttl. onShow, when non-nil, is
// called synchronously for every banner shown.
func New(ttl time.Duration, onShow func(Banner)) *Notifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Notifier{ttl: ttl, onShow: onShow}
}

func (n *Notifier) Success(msg string) { n.show(Success, msg) }

func (n *Notifier) Error(msg string) { n.show(Error, msg) }

func (n *Notifier) show(kind Kind, msg string) {
	b := Banner{Kind: kind, Message: msg, Shown: time.Now()}

	n.mu.Lock()
	if n.timer != nil {
		n.timer.Stop()
	}
	n.seq++
	seq := n.seq
	n.current = &b
	n.timer = afterFunc(n.ttl, func() { n.expire(seq) })
	n.mu.Unlock()

	if n.onShow != nil {
		n.onShow(b)
	}
}

// expire clears the banner only if it is still the one the timer was set for.
func (n *Notifier) expire(seq uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.seq == seq {
		n.current = nil
		n.timer = nil
	}
}

// Current returns the visible banner, if any.
func (n *Notifier) Current() (Banner, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Banner{}, false
	}
	return *n.current, true
}

// Dismiss removes the visible banner.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
	}
	n.seq++
	n.current = nil
	n.timer = nil
}
