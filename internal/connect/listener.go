// Package connect runs the interactive calendar authorization flow: a
// browser round-trip completed by a loopback callback listener.
package connect

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"
)

// Signal is the completion event the authorization redirect carries in
// its "event" query parameter. Anything else is ignored.
const Signal = "jj:google-connected"

const successPage = `<!DOCTYPE html>
<html>
<head><title>jjprep</title></head>
<body style="font-family: sans-serif; text-align: center; padding-top: 4rem;">
<h1>Calendar connected</h1>
<p>You can close this tab and go back to the terminal.</p>
</body>
</html>`

// Listener is the loopback endpoint the authorization flow redirects
// back to. It consumes at most one completion signal; Close tears the
// endpoint down and is safe to call from every exit path, repeatedly.
type Listener struct {
	ln    net.Listener
	srv   *http.Server
	state string

	signalOnce sync.Once
	done       chan struct{}
	closeOnce  sync.Once
	closeErr   error
}

// NewListener binds a fresh port on 127.0.0.1 and starts serving the
// callback endpoint.
func NewListener() (*Listener, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("binding callback listener: %w", err)
	}

	l := &Listener{
		ln:    ln,
		state: newState(),
		done:  make(chan struct{}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", l.handleCallback)
	l.srv = &http.Server{Handler: mux}

	go func() { _ = l.srv.Serve(ln) }()

	return l, nil
}

// RedirectURL is the callback address to hand to the authorization
// server.
func (l *Listener) RedirectURL() string {
	return fmt.Sprintf("http://%s/callback", l.ln.Addr())
}

// State is the per-flow nonce echoed back on the callback.
func (l *Listener) State() string {
	return l.state
}

// Done is closed exactly once, when the completion signal arrives.
func (l *Listener) Done() <-chan struct{} {
	return l.done
}

func (l *Listener) handleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("event") != Signal {
		http.Error(w, "unexpected event", http.StatusBadRequest)
		return
	}
	if s := q.Get("state"); s != "" && s != l.state {
		http.Error(w, "state mismatch", http.StatusBadRequest)
		return
	}

	// Duplicate redirects still get the success page, but the signal
	// fires once.
	l.signalOnce.Do(func() { close(l.done) })

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = fmt.Fprint(w, successPage)
}

// Close shuts the listener down. Idempotent.
func (l *Listener) Close() error {
	l.closeOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		l.closeErr = l.srv.Shutdown(ctx)
	})
	return l.closeErr
}

func newState() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
