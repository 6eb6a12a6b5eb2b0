// Package assist fabricates bookmark summaries and tag suggestions. There is
// no model behind it: the engine sleeps for a configured delay and returns
// canned text, which is enough to exercise the storage and queue paths.
package assist

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"
)

var ErrBadURL = errors.New("url must be absolute")

const cannedSummary = "This is an automatically generated summary of the content at the " +
	"provided URL. It highlights key points and main topics covered in the article, " +
	"making it easier to decide if the content is relevant to your needs."

type Suggestion struct {
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
	Title   string   `json:"title"`
}

type Engine struct {
	Delay time.Duration
}

// Summarize pretends to read the page. It honors ctx cancellation during the
// artificial delay.
func (e *Engine) Summarize(ctx context.Context, rawURL, title string) (Suggestion, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || !u.IsAbs() || u.Host == "" {
		return Suggestion{}, ErrBadURL
	}

	if e.Delay > 0 {
		t := time.NewTimer(e.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return Suggestion{}, ctx.Err()
		case <-t.C:
		}
	}

	if title == "" {
		title = "Content from " + hostLabel(u.Host)
	}

	return Suggestion{
		Summary: cannedSummary,
		Tags:    suggestTags(u, title),
		Title:   title,
	}, nil
}

func suggestTags(u *url.URL, title string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, 5)

	add := func(t string) {
		t = strings.ToLower(strings.Trim(t, "-_"))
		if len(t) < 3 || len(out) >= 5 {
			return
		}
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}

	add(hostLabel(u.Host))
	for _, seg := range strings.Split(u.Path, "/") {
		for _, w := range strings.FieldsFunc(seg, func(r rune) bool { return r == '-' || r == '_' || r == '.' }) {
			add(w)
		}
	}
	for _, w := range strings.Fields(title) {
		add(w)
	}
	return out
}

func hostLabel(host string) string {
	host = strings.TrimPrefix(host, "www.")
	if i := strings.Index(host, ":"); i >= 0 {
		host = host[:i]
	}
	if i := strings.Index(host, "."); i > 0 {
		return host[:i]
	}
	return host
}
