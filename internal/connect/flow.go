package connect

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/atotto/clipboard"
)

// DefaultTimeout bounds how long a flow waits for the completion
// signal. An abandoned browser tab fails the flow instead of hanging
// it.
const DefaultTimeout = 3 * time.Minute

// Domain errors.
var (
	ErrTimeout = errors.New("authorization timed out")
)

// State is the flow's lifecycle position.
type State int

const (
	StateIdle State = iota
	StateConnecting
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Flow runs authorization rounds. Each round owns its own listener and
// tears it down on every exit path: success, timeout, or cancellation.
type Flow struct {
	timeout       time.Duration
	openBrowser   func(string) error
	copyClipboard func(string) error
	notify        func(format string, args ...any)

	mu    sync.Mutex
	state State
}

// NewFlow creates a flow with the given signal timeout. notify receives
// user-facing progress lines; a nil notify discards them.
func NewFlow(timeout time.Duration, notify func(format string, args ...any)) *Flow {
	return NewFlowWithBrowser(timeout, notify, OpenBrowser)
}

// NewFlowWithBrowser creates a flow with a custom browser launcher.
func NewFlowWithBrowser(timeout time.Duration, notify func(format string, args ...any), openBrowser func(string) error) *Flow {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if notify == nil {
		notify = func(string, ...any) {}
	}
	return &Flow{
		timeout:       timeout,
		openBrowser:   openBrowser,
		copyClipboard: clipboard.WriteAll,
		notify:        notify,
	}
}

// State reports the flow's current lifecycle position.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

// Authorize runs one authorization round against authURL: start the
// callback listener, send the user to the browser, and wait for the
// completion signal. It returns only after the listener is torn down,
// so a follow-up status fetch never races the teardown.
func (f *Flow) Authorize(ctx context.Context, authURL string) error {
	f.setState(StateConnecting)

	l, err := NewListener()
	if err != nil {
		f.setState(StateFailed)
		return err
	}
	defer func() { _ = l.Close() }()

	target, err := callbackURL(authURL, l)
	if err != nil {
		f.setState(StateFailed)
		return err
	}

	f.notify("Authorize jjprep in your browser:\n\n  %s\n\n", target)
	if err := f.openBrowser(target); err == nil {
		f.notify("A browser tab should have opened.\n")
	}
	if f.copyClipboard != nil {
		if err := f.copyClipboard(target); err == nil {
			f.notify("The link is on your clipboard too.\n")
		}
	}

	timer := time.NewTimer(f.timeout)
	defer timer.Stop()

	select {
	case <-l.Done():
		if err := l.Close(); err != nil {
			f.setState(StateFailed)
			return fmt.Errorf("closing callback listener: %w", err)
		}
		f.setState(StateSuccess)
		return nil
	case <-ctx.Done():
		f.setState(StateFailed)
		return ctx.Err()
	case <-timer.C:
		f.setState(StateFailed)
		return ErrTimeout
	}
}

// callbackURL appends the listener's redirect address and state nonce
// to the authorization URL.
func callbackURL(authURL string, l *Listener) (string, error) {
	u, err := url.Parse(authURL)
	if err != nil {
		return "", fmt.Errorf("parsing authorization url: %w", err)
	}
	q := u.Query()
	q.Set("redirect_uri", l.RedirectURL())
	q.Set("state", l.State())
	u.RawQuery = q.Encode()
	return u.String(), nil
}
