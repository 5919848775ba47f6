package waitlist

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultFormTTL is how long an untouched form instance is kept
const DefaultFormTTL = 30 * time.Minute

type registryEntry struct {
	form     *Form
	lastSeen time.Time
}

// Registry holds the live form instances of the web front-end, one per
// rendered form, keyed by an opaque id carried in the page. It is local to
// the process.
type Registry struct {
	mu      sync.Mutex
	forms   map[string]*registryEntry
	newForm func() *Form
	ttl     time.Duration
	now     func() time.Time
}

// NewRegistry creates a registry whose forms submit through submitter
func NewRegistry(submitter Submitter, ttl time.Duration, opts ...FormOption) *Registry {
	if ttl <= 0 {
		ttl = DefaultFormTTL
	}
	return &Registry{
		forms: make(map[string]*registryEntry),
		newForm: func() *Form {
			return NewForm(submitter, opts...)
		},
		ttl: ttl,
		now: time.Now,
	}
}

// Open creates a new form instance and returns its id
func (r *Registry) Open() (string, *Form) {
	id := uuid.New().String()

	r.mu.Lock()
	defer r.mu.Unlock()

	form := r.newForm()
	r.forms[id] = &registryEntry{form: form, lastSeen: r.now()}
	return id, form
}

// Get returns the form for id. Unknown or expired ids get a fresh form
// under the same id so a page rendered before a restart keeps working;
// malformed ids get a fresh form under a new id.
func (r *Registry) Get(id string) (string, *Form) {
	if _, err := uuid.Parse(id); err != nil {
		return r.Open()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.forms[id]
	if !ok {
		entry = &registryEntry{form: r.newForm()}
		r.forms[id] = entry
	}
	entry.lastSeen = r.now()
	return id, entry.form
}

// Lookup returns the live form for id without creating one
func (r *Registry) Lookup(id string) (*Form, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.forms[id]
	if !ok {
		return nil, false
	}
	entry.lastSeen = r.now()
	return entry.form, true
}

// Len returns the number of live form instances
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.forms)
}

// Sweep drops forms idle for longer than the TTL and returns how many were
// removed. Forms with a submission in flight are kept.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, entry := range r.forms {
		if entry.lastSeen.After(cutoff) {
			continue
		}
		if entry.form.State() == StateSubmitting {
			continue
		}
		delete(r.forms, id)
		removed++
	}
	return removed
}

// Run sweeps expired forms every interval until ctx is done
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				log.Printf("[INFO] Expired %d idle waitlist form(s)", n)
			}
		}
	}
}
