package docstore

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interlink/internal/domain"
)

type widget struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

func (w *widget) SetID(id string) { w.ID = id }

func TestFilter_Matches(t *testing.T) {
	id := uuid.New()
	doc := map[string]any{"name": "a", "projectID": "p1", "count": float64(3)}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{name: "zero filter", filter: Filter{}, want: true},
		{name: "by id", filter: ByID(id), want: true},
		{name: "other id", filter: ByID(uuid.New()), want: false},
		{name: "empty id set", filter: ByIDs(nil), want: false},
		{name: "field match", filter: Where("name", "a").And("projectID", "p1"), want: true},
		{name: "field mismatch", filter: Where("name", "a").And("projectID", "p2"), want: false},
		{name: "missing field", filter: Where("language", "Go"), want: false},
		{name: "non-string field", filter: Where("count", "3"), want: false},
		{name: "id and field", filter: ByIDs([]uuid.UUID{uuid.New(), id}).And("name", "a"), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(id, doc))
		})
	}
}

func TestFilter_AndDoesNotAlias(t *testing.T) {
	base := Where("projectID", "p1")
	a := base.And("name", "a")
	b := base.And("name", "b")

	assert.Len(t, base.Fields(), 1)
	assert.Equal(t, "a", a.Fields()[1].Value)
	assert.Equal(t, "b", b.Fields()[1].Value)
}

func TestUpdate_Apply(t *testing.T) {
	tests := []struct {
		name   string
		doc    map[string]any
		update Update
		want   map[string]any
	}{
		{
			name:   "set and unset",
			doc:    map[string]any{"name": "a", "howTo": "x"},
			update: Set("name", "b").Unset("howTo"),
			want:   map[string]any{"name": "b"},
		},
		{
			name:   "set normalizes slices",
			doc:    map[string]any{},
			update: Set("tags", []string{"x", "y"}),
			want:   map[string]any{"tags": []any{"x", "y"}},
		},
		{
			name:   "add to missing array",
			doc:    map[string]any{},
			update: Update{}.AddToSet("ids", "r1"),
			want:   map[string]any{"ids": []any{"r1"}},
		},
		{
			name:   "add existing element is a no-op",
			doc:    map[string]any{"ids": []any{"r1", "r2"}},
			update: Update{}.AddToSet("ids", "r1"),
			want:   map[string]any{"ids": []any{"r1", "r2"}},
		},
		{
			name:   "pull removes every occurrence",
			doc:    map[string]any{"ids": []any{"r1", "r2", "r1"}},
			update: Update{}.Pull("ids", "r1"),
			want:   map[string]any{"ids": []any{"r2"}},
		},
		{
			name:   "pull from missing array",
			doc:    map[string]any{},
			update: Update{}.Pull("ids", "r1"),
			want:   map[string]any{"ids": []any{}},
		},
		{
			name:   "operators apply in order",
			doc:    map[string]any{"ids": []any{}},
			update: Update{}.AddToSet("ids", "r1").Pull("ids", "r1").AddToSet("ids", "r2"),
			want:   map[string]any{"ids": []any{"r2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.update.Apply(tt.doc))
			if diff := cmp.Diff(tt.want, tt.doc); diff != "" {
				t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUpdate_ApplyRejectsNonArray(t *testing.T) {
	doc := map[string]any{"ids": "r1"}
	assert.Error(t, Update{}.AddToSet("ids", "r2").Apply(doc))
	assert.Error(t, Update{}.Pull("ids", "r2").Apply(doc))
}

func TestNewDocument(t *testing.T) {
	doc, err := NewDocument(
		Where("name", "ct"),
		Set("projectID", "p1").AddToSet("relationIDs", "r1"),
	)
	require.NoError(t, err)

	want := map[string]any{"name": "ct", "projectID": "p1", "relationIDs": []any{"r1"}}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("NewDocument() mismatch (-want +got):\n%s", diff)
	}
}

func TestExport(t *testing.T) {
	id := uuid.New()
	doc := Document{ID: id, Body: []byte(`{"name":"w","tags":["a"],"_id":"leak"}`)}

	got, err := Export[widget](doc, nil)
	require.NoError(t, err)
	assert.Equal(t, widget{ID: id.String(), Name: "w", Tags: []string{"a"}}, got)

	override := uuid.New()
	got, err = Export[widget](doc, &override)
	require.NoError(t, err)
	assert.Equal(t, override.String(), got.ID)

	_, err = Export[widget](Document{Body: []byte(`{}`)}, nil)
	assert.True(t, errors.Is(err, domain.ErrInvalidRecord))

	_, err = Export[widget](Document{ID: id}, nil)
	assert.Error(t, err)
}

func TestExportAll(t *testing.T) {
	out, err := ExportAll[widget](nil)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)

	_, err = ExportAll[widget]([]Document{
		{ID: uuid.New(), Body: []byte(`{"name":"ok"}`)},
		{ID: uuid.New(), Body: []byte(`not json`)},
	})
	assert.Error(t, err)
}

func TestValidField(t *testing.T) {
	assert.True(t, ValidField("projectID"))
	assert.True(t, ValidField("_private"))
	assert.False(t, ValidField(""))
	assert.False(t, ValidField("1abc"))
	assert.False(t, ValidField("name'); DROP TABLE x; --"))
	assert.False(t, ValidField("a.b"))
}

type nopStore struct{ closed atomic.Bool }

func (s *nopStore) Collection(string) Collection { return nil }
func (s *nopStore) Close()                       { s.closed.Store(true) }

func TestProvider_OpensOnce(t *testing.T) {
	var opens atomic.Int32
	store := &nopStore{}
	provider := NewProvider(func(context.Context) (Store, error) {
		opens.Add(1)
		return store, nil
	})

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := provider.Acquire(context.Background())
			assert.NoError(t, err)
			assert.Same(t, store, got)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), opens.Load())

	provider.Close()
	assert.True(t, store.closed.Load())
}

func TestProvider_SharesFailure(t *testing.T) {
	var opens atomic.Int32
	connErr := &domain.ConnectionError{Driver: "postgres", Err: errors.New("no database uri or name set")}
	provider := NewProvider(func(context.Context) (Store, error) {
		opens.Add(1)
		return nil, connErr
	})

	_, err := provider.Acquire(context.Background())
	require.Error(t, err)
	_, err = provider.Collection(context.Background(), "things")

	var target *domain.ConnectionError
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, int32(1), opens.Load())
}

func TestProvider_CloseBeforeAcquire(t *testing.T) {
	provider := NewProvider(func(context.Context) (Store, error) {
		t.Fatal("opener must not run after Close")
		return nil, nil
	})

	provider.Close()
	_, err := provider.Acquire(context.Background())
	assert.ErrorIs(t, err, errProviderClosed)
}
