package interaction

import (
	"time"

	"github.com/atotto/clipboard"
)

const (
	// CopiedNotice is shown after a value is copied
	CopiedNotice = "Copied!"
	// NoticeTTL is how long a notice stays visible
	NoticeTTL = 2 * time.Second
)

// Clipboard receives copied text
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard
type SystemClipboard struct{}

// WriteAll copies text to the OS clipboard
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Notice is a transient message
type Notice struct {
	Text    string
	Expires time.Time
}

// Notices holds at most one active notice
type Notices struct {
	now     func() time.Time
	ttl     time.Duration
	current *Notice
}

// NewNotices creates a notice holder. A nil clock uses time.Now.
func NewNotices(now func() time.Time) *Notices {
	if now == nil {
		now = time.Now
	}
	return &Notices{now: now, ttl: NoticeTTL}
}

// Show replaces the active notice
func (n *Notices) Show(text string) Notice {
	notice := Notice{Text: text, Expires: n.now().Add(n.ttl)}
	n.current = &notice
	return notice
}

// Current returns the active notice, if it has not expired
func (n *Notices) Current() (Notice, bool) {
	if n.current == nil {
		return Notice{}, false
	}
	if !n.now().Before(n.current.Expires) {
		n.current = nil
		return Notice{}, false
	}
	return *n.current, true
}

// TTL returns how long notices last
func (n *Notices) TTL() time.Duration {
	return n.ttl
}
