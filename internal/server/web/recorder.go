package web

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/mochamagic/internal/client/services"
)

// Banner is the message a workflow wanted shown.
type Banner struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Redirect is the view a workflow wanted to switch to.
type Redirect struct {
	Page    services.Page `json:"page"`
	AfterMS int64         `json:"after_ms"`
}

// Recorder captures banners and navigation so they can be returned with the
// HTTP response. It satisfies services.Notifier and services.Navigator.
type Recorder struct {
	mu       sync.Mutex
	banner   *Banner
	redirect *Redirect
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Success(msg string) { r.setBanner("success", msg) }
func (r *Recorder) Error(msg string)   { r.setBanner("error", msg) }

func (r *Recorder) setBanner(kind, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.banner = &Banner{Kind: kind, Message: msg}
}

func (r *Recorder) Navigate(page services.Page, after time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.redirect = &Redirect{Page: page, AfterMS: after.Milliseconds()}
}

// Take returns and clears what was recorded.
func (r *Recorder) Take() (*Banner, *Redirect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, rd := r.banner, r.redirect
	r.banner, r.redirect = nil, nil
	return b, rd
}
