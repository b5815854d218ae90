// Package stream turns a generated reply into a sequence of cumulative
// fragments and reconciles them into the session store as they arrive.
package stream

import (
	"context"
	"strings"
	"time"
	"unicode"
)

// Fragment is one step of a streamed reply. Content is the cumulative text so
// far; Done marks the last fragment, whose Content is the full reply.
type Fragment struct {
	Content string
	Done    bool
}

// Split breaks text into alternating runs of whitespace and non-whitespace.
// Concatenating the runs reproduces text exactly.
func Split(text string) []string {
	var runs []string
	start := 0
	inSpace := false
	for i, r := range text {
		space := unicode.IsSpace(r)
		if i == 0 {
			inSpace = space
			continue
		}
		if space != inSpace {
			runs = append(runs, text[start:i])
			start = i
			inSpace = space
		}
	}
	if start < len(text) {
		runs = append(runs, text[start:])
	}
	return runs
}

// Stream emits one cumulative fragment per run of text, waiting delay before
// each, followed by a Done fragment carrying the full text. The channel is
// closed when the stream ends or ctx is cancelled.
func Stream(ctx context.Context, fullText string, delay time.Duration) <-chan Fragment {
	out := make(chan Fragment)

	go func() {
		defer close(out)

		var b strings.Builder
		b.Grow(len(fullText))

		for _, run := range Split(fullText) {
			if !sleep(ctx, delay) {
				return
			}
			b.WriteString(run)
			if !send(ctx, out, Fragment{Content: b.String()}) {
				return
			}
		}
		send(ctx, out, Fragment{Content: fullText, Done: true})
	}()

	return out
}

func send(ctx context.Context, out chan<- Fragment, f Fragment) bool {
	select {
	case out <- f:
		return true
	case <-ctx.Done():
		return false
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
