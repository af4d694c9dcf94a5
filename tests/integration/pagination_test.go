package integration

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/quellwerk/go-apikit/internal/testutil"
	"github.com/quellwerk/go-apikit/pkg/endpoint"
	"github.com/quellwerk/go-apikit/pkg/pagecache"
	"github.com/quellwerk/go-apikit/pkg/paginate"
)

// setupRedis creates a Redis container for integration testing.
func setupRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: host + ":" + port.Port(),
	})

	cleanup := func() {
		redisClient.Close()
		container.Terminate(ctx)
	}

	return redisClient, cleanup
}

// ticket is the item type walked in these tests.
type ticket struct {
	ID      int    `json:"id"`
	Subject string `json:"subject"`
}

// ticketPage is the paged collection envelope served by the mock API.
type ticketPage struct {
	TotalCount int      `json:"total_count"`
	Items      []ticket `json:"items"`
}

// pageQuery carries the 1-based page parameters the mock API honors.
type pageQuery struct {
	Page    int `url:"page"`
	PerPage int `url:"per_page"`
}

// httpSource pages through the mock API's ticket collection over HTTP.
type httpSource struct {
	client  *endpoint.Client
	path    string
	perPage int

	page       int
	total      int
	totalKnown bool
}

func (s *httpSource) NextPage(ctx context.Context) ([]ticket, error) {
	resp, err := endpoint.Call[ticketPage](ctx, s.client, endpoint.Request{
		Path:  s.path,
		Query: pageQuery{Page: s.page + 1, PerPage: s.perPage},
	})
	if err != nil {
		return nil, err
	}

	s.total = resp.Value.TotalCount
	s.totalKnown = true
	return resp.Value.Items, nil
}

func (s *httpSource) Offset() int {
	return s.page * s.perPage
}

func (s *httpSource) SetOffset(offset int) {
	if offset%s.perPage == 0 {
		s.page = offset / s.perPage
		return
	}
	s.page = math.MaxInt / s.perPage
}

func (s *httpSource) TotalItems() (int, bool) {
	return s.total, s.totalKnown
}

func seedTickets(n int) []any {
	items := make([]any, n)
	for i := range items {
		items[i] = ticket{ID: i + 1, Subject: fmt.Sprintf("Ticket %03d", i+1)}
	}
	return items
}

// TestWalkThroughCache walks a 25-item collection over HTTP with a cold
// cache, then again with a fresh source: the second walk must not issue
// a single HTTP request.
func TestWalkThroughCache(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetPagedItems("/tickets", seedTickets(25))

	client, err := endpoint.New(endpoint.DefaultConfig(mock.URL(), "IntegrationTest/1.0.0"))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	ctx := context.Background()
	cacheCfg := pagecache.Config{Keyspace: "itest:tickets", TTL: time.Minute}

	// First walk: cold cache, three pages over HTTP.
	src1 := &httpSource{client: client, path: "/tickets", perPage: 10}
	cached1, err := pagecache.New(redisClient, src1, cacheCfg)
	if err != nil {
		t.Fatalf("Failed to create page cache: %v", err)
	}

	items, err := paginate.New[ticket](cached1).Collect(ctx)
	if err != nil {
		t.Fatalf("First walk failed: %v", err)
	}

	if len(items) != 25 {
		t.Fatalf("First walk items = %d, want 25", len(items))
	}
	for i, item := range items {
		if item.ID != i+1 {
			t.Fatalf("items[%d].ID = %d, want %d (order broken)", i, item.ID, i+1)
		}
	}
	if got := mock.GetRequestCount(); got != 3 {
		t.Errorf("HTTP requests after first walk = %d, want 3", got)
	}

	// Second walk: fresh source, same keyspace, zero HTTP traffic.
	src2 := &httpSource{client: client, path: "/tickets", perPage: 10}
	cached2, err := pagecache.New(redisClient, src2, cacheCfg)
	if err != nil {
		t.Fatalf("Failed to create page cache: %v", err)
	}

	items, err = paginate.New[ticket](cached2).Collect(ctx)
	if err != nil {
		t.Fatalf("Second walk failed: %v", err)
	}

	if len(items) != 25 {
		t.Errorf("Second walk items = %d, want 25", len(items))
	}
	if got := mock.GetRequestCount(); got != 3 {
		t.Errorf("HTTP requests after second walk = %d, want 3 (served from cache)", got)
	}

	// The advisory total survived the cache roundtrip.
	if total, ok := cached2.TotalItems(); !ok || total != 25 {
		t.Errorf("TotalItems = (%d, %v), want (25, true)", total, ok)
	}
}

// TestInvalidateForcesRefetch drops the cached pages and verifies the
// next walk goes back to the API.
func TestInvalidateForcesRefetch(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetPagedItems("/tickets", seedTickets(8))

	client, err := endpoint.New(endpoint.DefaultConfig(mock.URL(), "IntegrationTest/1.0.0"))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	ctx := context.Background()
	cacheCfg := pagecache.Config{Keyspace: "itest:invalidate", TTL: time.Minute}

	src := &httpSource{client: client, path: "/tickets", perPage: 5}
	cached, err := pagecache.New(redisClient, src, cacheCfg)
	if err != nil {
		t.Fatalf("Failed to create page cache: %v", err)
	}

	if _, err := paginate.New[ticket](cached).Collect(ctx); err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	afterWalk := mock.GetRequestCount()

	deleted, err := cached.Invalidate(ctx)
	if err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("Invalidated pages = %d, want 2", deleted)
	}

	src2 := &httpSource{client: client, path: "/tickets", perPage: 5}
	cached2, err := pagecache.New(redisClient, src2, cacheCfg)
	if err != nil {
		t.Fatalf("Failed to create page cache: %v", err)
	}
	if _, err := paginate.New[ticket](cached2).Collect(ctx); err != nil {
		t.Fatalf("Walk after invalidate failed: %v", err)
	}

	if got := mock.GetRequestCount(); got != afterWalk+2 {
		t.Errorf("HTTP requests = %d, want %d (refetched after invalidate)", got, afterWalk+2)
	}
}

// TestSuspendAcrossContexts lets a context expire while a real HTTP
// fetch is in flight, then resumes with a fresh context: the fetch must
// not be re-issued.
func TestSuspendAcrossContexts(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetResponse("/slow", testutil.MockAPIResponse{
		StatusCode: 200,
		Body:       `{"total_count": 2, "items": [{"id": 1, "subject": "a"}, {"id": 2, "subject": "b"}]}`,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Delay:      300 * time.Millisecond,
	})

	client, err := endpoint.New(endpoint.DefaultConfig(mock.URL(), "IntegrationTest/1.0.0"))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	src := &httpSource{client: client, path: "/slow", perPage: 2}
	it := paginate.New[ticket](src)
	defer it.Close()

	shortCtx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := it.Next(shortCtx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Next under expiring ctx = %v, want context.DeadlineExceeded", err)
	}

	item, err := it.Next(context.Background())
	if err != nil {
		t.Fatalf("Resumed Next failed: %v", err)
	}
	if item.ID != 1 {
		t.Errorf("resumed item ID = %d, want 1", item.ID)
	}

	if got := mock.GetRequestCount(); got != 1 {
		t.Errorf("HTTP requests = %d, want 1 (suspension must not re-fetch)", got)
	}
}
