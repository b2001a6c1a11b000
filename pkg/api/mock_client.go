package api

import (
	"context"
	"fmt"
	"sync"
)

// MockData seeds deterministic responses for tests or local demos.
type MockData struct {
	Stats  StatsSnapshot
	Unread int
	Pages  []PageFragment
}

// MockClient implements Client using in-memory fixtures. Pages are served in
// order of page number; requests past the configured pages return an empty
// fragment, which the scroll loader treats as end of data.
type MockClient struct {
	mu    sync.RWMutex
	data  MockData
	calls struct {
		stats  int
		unread int
		pages  []int
	}
	err error
}

// NewMockClient builds a mock client from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	return &MockClient{data: data}
}

// FailWith makes every subsequent call return err (nil restores normal
// behavior).
func (c *MockClient) FailWith(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

// SetStats replaces the stats fixture.
func (c *MockClient) SetStats(snapshot StatsSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.Stats = snapshot
}

// SetUnread replaces the unread-count fixture.
func (c *MockClient) SetUnread(count int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.Unread = count
}

// DashboardStats returns the configured snapshot.
func (c *MockClient) DashboardStats(context.Context) (StatsSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls.stats++
	if c.err != nil {
		return StatsSnapshot{}, c.err
	}
	return c.data.Stats, nil
}

// UnreadCount returns the configured count.
func (c *MockClient) UnreadCount(context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls.unread++
	if c.err != nil {
		return 0, c.err
	}
	return c.data.Unread, nil
}

// LoadMore serves the fixture for the requested page. Page numbers start at
// 1 and fixture index 0 corresponds to page 2, the first page the loader
// ever requests.
func (c *MockClient) LoadMore(_ context.Context, _ string, page int) (PageFragment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls.pages = append(c.calls.pages, page)
	if c.err != nil {
		return PageFragment{}, c.err
	}
	idx := page - 2
	if idx < 0 {
		return PageFragment{}, fmt.Errorf("api: mock page %d out of range", page)
	}
	if idx >= len(c.data.Pages) {
		return PageFragment{}, nil
	}
	return c.data.Pages[idx], nil
}

// StatsCalls reports how many stats fetches happened.
func (c *MockClient) StatsCalls() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.calls.stats
}

// UnreadCalls reports how many unread-count fetches happened.
func (c *MockClient) UnreadCalls() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.calls.unread
}

// PageCalls reports the page numbers requested so far.
func (c *MockClient) PageCalls() []int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]int(nil), c.calls.pages...)
}
