package vector

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Orio77/coctail-mcp/internal/db"
	"github.com/Orio77/coctail-mcp/internal/domain"
	"github.com/Orio77/coctail-mcp/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.Register()
	m.Run()
}

type mockStore struct {
	queryFn   func(ctx context.Context, q *db.KNNQuery) (*db.QueryResponse, error)
	upsertFn  func(ctx context.Context, keyPrefix string, vectors []db.Vector) error
	deleteFn  func(ctx context.Context, keyPrefix string) error
	statsFn   func(ctx context.Context, index string) (*db.IndexStats, error)
	queries   []*db.KNNQuery
	upserts   [][]db.Vector
	deleted   int
	statCalls int
}

func (m *mockStore) Query(ctx context.Context, q *db.KNNQuery) (*db.QueryResponse, error) {
	m.queries = append(m.queries, q)
	if m.queryFn != nil {
		return m.queryFn(ctx, q)
	}
	return &db.QueryResponse{}, nil
}

func (m *mockStore) Upsert(ctx context.Context, keyPrefix string, vectors []db.Vector) error {
	m.upserts = append(m.upserts, vectors)
	if m.upsertFn != nil {
		return m.upsertFn(ctx, keyPrefix, vectors)
	}
	return nil
}

func (m *mockStore) DeleteAll(ctx context.Context, keyPrefix string) error {
	m.deleted++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, keyPrefix)
	}
	return nil
}

func (m *mockStore) Stats(ctx context.Context, index string) (*db.IndexStats, error) {
	m.statCalls++
	if m.statsFn != nil {
		return m.statsFn(ctx, index)
	}
	return &db.IndexStats{}, nil
}

func newTestRepo(s store) *Repo {
	return New(s, "cocktails", "cocktail:", zap.NewNop())
}

func TestQuery_Success(t *testing.T) {
	ms := &mockStore{
		queryFn: func(_ context.Context, _ *db.KNNQuery) (*db.QueryResponse, error) {
			return &db.QueryResponse{Matches: []db.QueryMatch{{ID: "cocktail_1", Score: 0.95}}}, nil
		},
	}
	repo := newTestRepo(ms)

	raw, err := repo.Query(context.Background(), []float64{0.1, 0.2}, 3)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	resp, ok := raw.(*db.QueryResponse)
	if !ok {
		t.Fatalf("Query() returned %T, want *db.QueryResponse", raw)
	}
	if len(resp.Matches) != 1 || resp.Matches[0].ID != "cocktail_1" {
		t.Errorf("unexpected matches: %+v", resp.Matches)
	}

	q := ms.queries[0]
	if q.IndexName != "cocktails" || q.KeyPrefix != "cocktail:" {
		t.Errorf("query targeted %q/%q", q.IndexName, q.KeyPrefix)
	}
	if q.TopK != 3 || !q.IncludeMetadata {
		t.Errorf("query params = %+v", q)
	}
}

func TestQuery_EmptyVectorShortCircuits(t *testing.T) {
	ms := &mockStore{}
	repo := newTestRepo(ms)

	raw, err := repo.Query(context.Background(), nil, 5)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	resp, ok := raw.(*db.QueryResponse)
	if !ok || len(resp.Matches) != 0 {
		t.Errorf("Query() = %#v, want empty response", raw)
	}
	if len(ms.queries) != 0 {
		t.Error("store was queried for an empty vector")
	}
}

func TestQuery_TopKCoercion(t *testing.T) {
	tests := []struct {
		name string
		topK int
		want int
	}{
		{"zero uses default", 0, DefaultTopK},
		{"negative uses default", -7, DefaultTopK},
		{"over max clamps", 5000, MaxTopK},
		{"max passes through", MaxTopK, MaxTopK},
		{"normal passes through", 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := &mockStore{}
			repo := newTestRepo(ms)

			if _, err := repo.Query(context.Background(), []float64{0.1}, tt.topK); err != nil {
				t.Fatalf("Query() error = %v", err)
			}
			if got := ms.queries[0].TopK; got != tt.want {
				t.Errorf("TopK = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestQuery_StoreError(t *testing.T) {
	ms := &mockStore{
		queryFn: func(_ context.Context, _ *db.KNNQuery) (*db.QueryResponse, error) {
			return nil, errors.New("connection refused")
		},
	}
	repo := newTestRepo(ms)

	_, err := repo.Query(context.Background(), []float64{0.1}, 5)
	if !errors.Is(err, domain.ErrSearch) {
		t.Errorf("Query() error = %v, want ErrSearch", err)
	}
}

func TestUpsert_Batching(t *testing.T) {
	vectors := make([]domain.Vector, 250)
	for i := range vectors {
		vectors[i] = domain.Vector{ID: "v", Values: []float64{0.1}}
	}
	ms := &mockStore{}
	repo := newTestRepo(ms)

	if err := repo.Upsert(context.Background(), vectors); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if len(ms.upserts) != 3 {
		t.Fatalf("got %d batches, want 3", len(ms.upserts))
	}
	for i, want := range []int{100, 100, 50} {
		if len(ms.upserts[i]) != want {
			t.Errorf("batch %d has %d vectors, want %d", i, len(ms.upserts[i]), want)
		}
	}
}

func TestUpsert_AbortsOnFirstFailure(t *testing.T) {
	calls := 0
	ms := &mockStore{
		upsertFn: func(_ context.Context, _ string, _ []db.Vector) error {
			calls++
			if calls == 2 {
				return errors.New("write failed")
			}
			return nil
		},
	}
	repo := newTestRepo(ms)

	vectors := make([]domain.Vector, 250)
	for i := range vectors {
		vectors[i] = domain.Vector{ID: "v", Values: []float64{0.1}}
	}
	err := repo.Upsert(context.Background(), vectors)
	if !errors.Is(err, domain.ErrSearch) {
		t.Fatalf("Upsert() error = %v, want ErrSearch", err)
	}
	if calls != 2 {
		t.Errorf("store called %d times, want 2 (abort after failure)", calls)
	}
}

func TestUpsert_Empty(t *testing.T) {
	ms := &mockStore{}
	repo := newTestRepo(ms)

	if err := repo.Upsert(context.Background(), nil); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if len(ms.upserts) != 0 {
		t.Error("store was called for an empty upsert")
	}
}

func TestClear(t *testing.T) {
	ms := &mockStore{}
	repo := newTestRepo(ms)

	if err := repo.Clear(context.Background()); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if ms.deleted != 1 {
		t.Errorf("DeleteAll called %d times, want 1", ms.deleted)
	}

	ms.deleteFn = func(_ context.Context, _ string) error { return errors.New("boom") }
	if err := repo.Clear(context.Background()); !errors.Is(err, domain.ErrSearch) {
		t.Errorf("Clear() error = %v, want ErrSearch", err)
	}
}

func TestCount(t *testing.T) {
	ms := &mockStore{
		statsFn: func(_ context.Context, _ string) (*db.IndexStats, error) {
			return &db.IndexStats{TotalVectorCount: 42}, nil
		},
	}
	repo := newTestRepo(ms)

	n, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 42 {
		t.Errorf("Count() = %d, want 42", n)
	}

	ms.statsFn = func(_ context.Context, _ string) (*db.IndexStats, error) {
		return nil, errors.New("boom")
	}
	if _, err := repo.Count(context.Background()); !errors.Is(err, domain.ErrSearch) {
		t.Errorf("Count() error = %v, want ErrSearch", err)
	}
}
