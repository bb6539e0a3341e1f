package screens

import (
	"context"
	"sync"
)

// lifecycle guards state updates behind the mounted flag. Each Mount starts
// a new generation; work started in an older generation is not applied.
// Full reloads are also numbered so that only the latest one lands.
type lifecycle struct {
	mu      sync.Mutex
	mounted bool
	gen     uint64
	loads   uint64
	ctx     context.Context
	cancel  context.CancelFunc
}

// reload identifies one full reload of a screen.
type reload struct {
	gen uint64
	seq uint64
}

func (l *lifecycle) mount() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.mounted {
		return
	}
	l.mounted = true
	l.gen++
	l.ctx, l.cancel = context.WithCancel(context.Background())
}

func (l *lifecycle) unmount() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.mounted {
		return
	}
	l.mounted = false
	l.cancel()
}

// begin returns the current generation, or false when not mounted.
func (l *lifecycle) begin() (uint64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen, l.mounted
}

// apply runs fn if the screen is still mounted in generation gen.
func (l *lifecycle) apply(gen uint64, fn func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.mounted || l.gen != gen {
		return false
	}
	fn()
	return true
}

// beginLoad starts a full reload. It supersedes every reload still in flight.
func (l *lifecycle) beginLoad() (reload, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loads++
	return reload{gen: l.gen, seq: l.loads}, l.mounted
}

// applyLoad runs fn if r is still the latest reload of the current generation.
func (l *lifecycle) applyLoad(r reload, fn func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.mounted || l.gen != r.gen || l.loads != r.seq {
		return false
	}
	fn()
	return true
}

// background is cancelled on Unmount. It is used for work the screen starts
// on its own, such as refetching after a login.
func (l *lifecycle) background() context.Context {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ctx == nil {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}
	return l.ctx
}

func (l *lifecycle) Mounted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mounted
}
