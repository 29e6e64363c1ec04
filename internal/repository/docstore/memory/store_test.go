package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interlink/internal/repository/docstore"
)

type item struct {
	Name string   `json:"name"`
	Kind string   `json:"kind"`
	IDs  []string `json:"ids,omitempty"`
}

func decode(t *testing.T, doc docstore.Document) item {
	t.Helper()
	var it item
	require.NoError(t, doc.Decode(&it))
	return it
}

func TestCollection_InsertFind(t *testing.T) {
	ctx := context.Background()
	c := New().Collection("items")

	for _, it := range []item{{Name: "b", Kind: "x"}, {Name: "a", Kind: "x"}, {Name: "c", Kind: "y"}} {
		_, err := c.InsertOne(ctx, it)
		require.NoError(t, err)
	}

	docs, err := c.Find(ctx, docstore.Where("kind", "x"), docstore.Asc("name"))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", decode(t, docs[0]).Name)
	assert.Equal(t, "b", decode(t, docs[1]).Name)

	docs, err = c.Find(ctx, docstore.Filter{}, docstore.SortKey{Field: "name", Desc: true})
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "c", decode(t, docs[0]).Name)

	docs, err = c.Find(ctx, docstore.Where("kind", "z"))
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestCollection_FindOne(t *testing.T) {
	ctx := context.Background()
	c := New().Collection("items")

	id, err := c.InsertOne(ctx, item{Name: "a"})
	require.NoError(t, err)

	doc, err := c.FindOne(ctx, docstore.ByID(id))
	require.NoError(t, err)
	assert.Equal(t, id, doc.ID)
	assert.NotContains(t, string(doc.Body), id.String())

	_, err = c.FindOne(ctx, docstore.ByID(uuid.New()))
	assert.ErrorIs(t, err, docstore.ErrNoDocuments)
}

func TestCollection_InsertRejectsNonObject(t *testing.T) {
	c := New().Collection("items")
	_, err := c.InsertOne(context.Background(), []string{"x"})
	assert.Error(t, err)
	_, err = c.InsertOne(context.Background(), nil)
	assert.Error(t, err)
}

func TestCollection_UpdateOne(t *testing.T) {
	ctx := context.Background()
	c := New().Collection("items")

	res, err := c.UpdateOne(ctx, docstore.Where("name", "a"), docstore.Set("kind", "x"))
	require.NoError(t, err)
	assert.Equal(t, docstore.UpdateResult{}, res)

	res, err = c.UpdateOne(ctx, docstore.Where("name", "a"), docstore.Update{}.AddToSet("ids", "1"), docstore.Upsert())
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, res.UpsertedID)

	res, err = c.UpdateOne(ctx, docstore.Where("name", "a"), docstore.Update{}.AddToSet("ids", "2"), docstore.Upsert())
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Matched)
	assert.Equal(t, uuid.Nil, res.UpsertedID)

	doc, err := c.FindOne(ctx, docstore.Where("name", "a"))
	require.NoError(t, err)
	assert.Equal(t, item{Name: "a", IDs: []string{"1", "2"}}, decode(t, doc))
}

func TestCollection_UpdateFailureLeavesDocument(t *testing.T) {
	ctx := context.Background()
	c := New().Collection("items")

	_, err := c.InsertOne(ctx, item{Name: "a", Kind: "x"})
	require.NoError(t, err)

	// kind is a string, so the AddToSet fails after the Set was applied
	_, err = c.UpdateOne(ctx, docstore.Where("name", "a"), docstore.Set("name", "b").AddToSet("kind", "y"))
	require.Error(t, err)

	_, err = c.FindOne(ctx, docstore.Where("name", "a"))
	assert.NoError(t, err)
}

func TestCollection_DeleteOne(t *testing.T) {
	ctx := context.Background()
	c := New().Collection("items")

	_, err := c.InsertOne(ctx, item{Name: "a"})
	require.NoError(t, err)
	_, err = c.InsertOne(ctx, item{Name: "a"})
	require.NoError(t, err)

	n, err := c.DeleteOne(ctx, docstore.Where("name", "a"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	docs, err := c.Find(ctx, docstore.Filter{})
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	n, err = c.DeleteOne(ctx, docstore.Where("name", "zzz"))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCollection_ConcurrentAddToSet(t *testing.T) {
	ctx := context.Background()
	c := New().Collection("items")

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.UpdateOne(ctx, docstore.Where("name", "a"),
				docstore.Update{}.AddToSet("ids", fmt.Sprint(i%5)), docstore.Upsert())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	docs, err := c.Find(ctx, docstore.Filter{})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.ElementsMatch(t, []string{"0", "1", "2", "3", "4"}, decode(t, docs[0]).IDs)
}

func TestCollection_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := New().Collection("items")

	_, err := c.InsertOne(ctx, item{Name: "a"})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = c.Find(ctx, docstore.Filter{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_CollectionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.Collection("dev_items").InsertOne(ctx, item{Name: "a"})
	require.NoError(t, err)

	docs, err := s.Collection("test_items").Find(ctx, docstore.Filter{})
	require.NoError(t, err)
	assert.Empty(t, docs)

	docs, err = s.Collection("dev_items").Find(ctx, docstore.Filter{})
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}
