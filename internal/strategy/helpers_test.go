package strategy

import (
	"context"
	"fmt"
)

// fakeSession serves canned pages by URL so strategies can be exercised
// without a browser.
type fakeSession struct {
	pages     map[string]string
	current   string
	navigated []string
	released  bool
}

func newFakeSession(pages map[string]string) *fakeSession {
	return &fakeSession{pages: pages}
}

func (s *fakeSession) Navigate(_ context.Context, url string) error {
	s.navigated = append(s.navigated, url)
	if _, ok := s.pages[url]; !ok {
		return fmt.Errorf("net::ERR_NAME_NOT_RESOLVED for %s", url)
	}
	s.current = url
	return nil
}

func (s *fakeSession) HTML(context.Context) (string, error) {
	if s.current == "" {
		return "", fmt.Errorf("no page loaded")
	}
	return s.pages[s.current], nil
}

func (s *fakeSession) Evaluate(context.Context, string) error { return nil }

func (s *fakeSession) Location(context.Context) (string, error) { return s.current, nil }

func (s *fakeSession) Release() { s.released = true }
