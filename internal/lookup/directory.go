// Package lookup provides the in-process people directory and phrase catalog
// the composer queries for mentions and suggestions.
package lookup

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/iksnae/chat-composer/internal"
	"github.com/iksnae/chat-composer/internal/autocomplete"
)

const (
	// DefaultMentionLimit is used when a caller passes a non-positive limit
	DefaultMentionLimit = 20
	// DefaultMentionLatency simulates the directory round trip
	DefaultMentionLatency = 150 * time.Millisecond
)

var firstNames = []string{
	"John", "Jane", "Michael", "Sarah", "David", "Emily", "James", "Emma",
	"Robert", "Olivia", "William", "Sophia", "Richard", "Isabella", "Joseph", "Ava",
	"Thomas", "Mia", "Charles", "Charlotte", "Daniel", "Amelia", "Matthew", "Harper",
	"Mark", "Evelyn", "Donald", "Abigail", "Steven", "Elizabeth", "Paul", "Sofia",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Wilson", "Anderson", "Thomas", "Taylor",
	"Moore", "Jackson", "Martin", "Lee", "Thompson", "White", "Harris", "Sanchez",
	"Clark", "Ramirez", "Lewis", "Robinson", "Walker", "Young", "Allen", "King",
}

type person struct {
	first, last string
	mention     autocomplete.Mention
}

// Directory answers mention queries over a generated corpus of people
type Directory struct {
	people    []person
	usernames []string
	latency   time.Duration

	mu  sync.Mutex // guards rng; lookups run on their own goroutines
	rng *rand.Rand
}

// DirectoryOption configures a Directory
type DirectoryOption func(*Directory)

// WithMentionLatency sets the simulated delay per query
func WithMentionLatency(d time.Duration) DirectoryOption {
	return func(dir *Directory) { dir.latency = d }
}

// WithRand sets the source used for empty-query samples
func WithRand(r *rand.Rand) DirectoryOption {
	return func(dir *Directory) { dir.rng = r }
}

// NewDirectory builds the directory from every first and last name pairing
func NewDirectory(opts ...DirectoryOption) *Directory {
	d := &Directory{latency: DefaultMentionLatency}
	for _, first := range firstNames {
		for _, last := range lastNames {
			username := strings.ToLower(first) + "-" + strings.ToLower(last)
			d.people = append(d.people, person{
				first: strings.ToLower(first),
				last:  strings.ToLower(last),
				mention: autocomplete.Mention{
					ID:       username,
					Name:     first + " " + last,
					Username: username,
				},
			})
			d.usernames = append(d.usernames, username)
		}
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.rng == nil {
		d.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return d
}

// Len returns the corpus size
func (d *Directory) Len() int {
	return len(d.people)
}

// Mentions returns up to limit people whose first or last name starts with
// query or whose username contains it, in corpus order. When fewer than limit
// match, fuzzy matches over usernames fill the rest. An empty query returns a
// random sample.
func (d *Directory) Mentions(ctx context.Context, query string, limit int) ([]autocomplete.Mention, error) {
	if err := wait(ctx, d.latency); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultMentionLimit
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return d.sample(limit), nil
	}

	var out []autocomplete.Mention
	seen := make(map[int]bool)
	for i, p := range d.people {
		if len(out) == limit {
			break
		}
		if strings.HasPrefix(p.first, q) || strings.HasPrefix(p.last, q) || strings.Contains(p.mention.Username, q) {
			out = append(out, p.mention)
			seen[i] = true
		}
	}

	if len(out) < limit {
		for _, match := range fuzzy.Find(q, d.usernames) {
			if len(out) == limit {
				break
			}
			if seen[match.Index] {
				continue
			}
			out = append(out, d.people[match.Index].mention)
			seen[match.Index] = true
		}
	}

	internal.LogDebugKV("directory lookup", "query", query, "matched", len(out))
	return out, nil
}

func (d *Directory) sample(limit int) []autocomplete.Mention {
	if limit > len(d.people) {
		limit = len(d.people)
	}
	d.mu.Lock()
	perm := d.rng.Perm(len(d.people))
	d.mu.Unlock()

	out := make([]autocomplete.Mention, 0, limit)
	for _, i := range perm[:limit] {
		out = append(out, d.people[i].mention)
	}
	return out
}

// wait sleeps for d or until ctx is done
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
