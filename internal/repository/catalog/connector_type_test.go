package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interlink/internal/domain"
	"interlink/internal/domain/models/catalog"
	"interlink/internal/repository/docstore"
	"interlink/internal/repository/docstore/memory"
)

func ptr[T any](v T) *T { return &v }

func TestConnectorTypeRepository_UpsertIdempotent(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)

	require.NoError(t, r.connectorTypes.UpsertByName(ctx, "p1", "X", "relA"))
	require.NoError(t, r.connectorTypes.UpsertByName(ctx, "p1", "X", "relA"))

	got, err := r.connectorTypes.ListByProject(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"relA"}, got[0].RelationIDs)
}

func TestConnectorTypeRepository_UpsertAccumulates(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)

	require.NoError(t, r.connectorTypes.UpsertByName(ctx, "p1", "X", "relA"))
	require.NoError(t, r.connectorTypes.UpsertByName(ctx, "p1", "X", "relB"))
	require.NoError(t, r.connectorTypes.UpsertByName(ctx, "p1", "Y", "relC"))

	got, err := r.connectorTypes.ListByProject(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	byName := map[string]catalog.ConnectorType{}
	for _, c := range got {
		byName[c.Name] = c
	}
	assert.Equal(t, []string{"relA", "relB"}, byName["X"].RelationIDs)
	assert.Equal(t, []string{"relC"}, byName["Y"].RelationIDs)
}

func TestConnectorTypeRepository_UpsertMatchesNameAcrossProjects(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)

	require.NoError(t, r.connectorTypes.UpsertByName(ctx, "p1", "shared", "relA"))
	require.NoError(t, r.connectorTypes.UpsertByName(ctx, "p2", "shared", "relB"))

	assert.Equal(t, 1, r.count(t, r.collections.ConnectorTypes))

	moved, err := r.connectorTypes.ListByProject(ctx, "p2")
	require.NoError(t, err)
	require.Len(t, moved, 1)
	assert.Equal(t, []string{"relA", "relB"}, moved[0].RelationIDs)

	left, err := r.connectorTypes.ListByProject(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestConnectorTypeRepository_ConcurrentUpsertsKeepEveryRelation(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)

	const n = 20
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, r.connectorTypes.UpsertByName(ctx, "p1", "X", uuid.NewString()))
		}()
	}
	wg.Wait()

	got, err := r.connectorTypes.ListByProject(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Len(t, got[0].RelationIDs, n)
}

func TestConnectorTypeRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)

	require.NoError(t, r.connectorTypes.UpsertByName(ctx, "p1", "X", "relA"))
	list, err := r.connectorTypes.ListByProject(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	got, err := r.connectorTypes.GetByID(ctx, list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, &list[0], got)

	for _, id := range []string{uuid.NewString(), "nope"} {
		_, err := r.connectorTypes.GetByID(ctx, id)
		assert.ErrorIs(t, err, domain.ErrNotFound, "id %q", id)
	}
}

func TestConnectorTypeRepository_Update(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		patch   catalog.ConnectorTypePatch
		want    catalog.ConnectorType
		wantErr error
	}{
		{
			name:  "empty patch is a no-op",
			patch: catalog.ConnectorTypePatch{},
			want:  catalog.ConnectorType{ProjectID: "p1", Name: "X", RelationIDs: []string{"relA"}},
		},
		{
			name:  "rename",
			patch: catalog.ConnectorTypePatch{Name: ptr("Z")},
			want:  catalog.ConnectorType{ProjectID: "p1", Name: "Z", RelationIDs: []string{"relA"}},
		},
		{
			name:  "add relation",
			patch: catalog.ConnectorTypePatch{Relation: &catalog.RelationOp{ID: "relB", Op: catalog.RelationOpAdd}},
			want:  catalog.ConnectorType{ProjectID: "p1", Name: "X", RelationIDs: []string{"relA", "relB"}},
		},
		{
			name:  "add existing relation",
			patch: catalog.ConnectorTypePatch{Relation: &catalog.RelationOp{ID: "relA", Op: catalog.RelationOpAdd}},
			want:  catalog.ConnectorType{ProjectID: "p1", Name: "X", RelationIDs: []string{"relA"}},
		},
		{
			name:  "delete relation",
			patch: catalog.ConnectorTypePatch{Relation: &catalog.RelationOp{ID: "relA", Op: catalog.RelationOpDelete}},
			want:  catalog.ConnectorType{ProjectID: "p1", Name: "X", RelationIDs: []string{}},
		},
		{
			name: "rename and add",
			patch: catalog.ConnectorTypePatch{
				Name:     ptr("Z"),
				Relation: &catalog.RelationOp{ID: "relB", Op: catalog.RelationOpAdd},
			},
			want: catalog.ConnectorType{ProjectID: "p1", Name: "Z", RelationIDs: []string{"relA", "relB"}},
		},
		{
			name:    "unknown op",
			patch:   catalog.ConnectorTypePatch{Relation: &catalog.RelationOp{ID: "relB", Op: "toggle"}},
			want:    catalog.ConnectorType{ProjectID: "p1", Name: "X", RelationIDs: []string{"relA"}},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRepos(t)
			require.NoError(t, r.connectorTypes.UpsertByName(ctx, "p1", "X", "relA"))
			list, err := r.connectorTypes.ListByProject(ctx, "p1")
			require.NoError(t, err)
			id := list[0].ID

			err = r.connectorTypes.Update(ctx, id, tt.patch)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			got, err := r.connectorTypes.GetByID(ctx, id)
			require.NoError(t, err)
			tt.want.ID = id
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestConnectorTypeRepository_UpdateAndDeleteUnknown(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)

	err := r.connectorTypes.Update(ctx, uuid.NewString(), catalog.ConnectorTypePatch{Name: ptr("Z")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = r.connectorTypes.Update(ctx, uuid.NewString(), catalog.ConnectorTypePatch{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = r.connectorTypes.Delete(ctx, "bad-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConnectorTypeRepository_Delete(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)

	require.NoError(t, r.connectorTypes.UpsertByName(ctx, "p1", "X", "relA"))
	list, err := r.connectorTypes.ListByProject(ctx, "p1")
	require.NoError(t, err)

	require.NoError(t, r.connectorTypes.Delete(ctx, list[0].ID))
	assert.Equal(t, 0, r.count(t, r.collections.ConnectorTypes))

	err = r.connectorTypes.Delete(ctx, list[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConnectorTypeRepository_FindByName(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)

	require.NoError(t, r.connectorTypes.UpsertByName(ctx, "p1", "grpc", "r1"))

	got, err := r.connectorTypes.FindByName(ctx, "grpc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "p1", got.ProjectID)
	assert.Equal(t, []string{"r1"}, got.RelationIDs)

	got, err = r.connectorTypes.FindByName(ctx, "rest")
	require.NoError(t, err)
	assert.Nil(t, got)
}

// uniqueNameCollection rejects every update the way a unique index does.
type uniqueNameCollection struct {
	docstore.Collection
}

func (c uniqueNameCollection) UpdateOne(context.Context, docstore.Filter, docstore.Update, ...docstore.UpdateOption) (docstore.UpdateResult, error) {
	return docstore.UpdateResult{}, fmt.Errorf("update dev_connectorTypes: %w", docstore.ErrDuplicateKey)
}

type uniqueNameStore struct {
	*memory.Store
}

func (s uniqueNameStore) Collection(name string) docstore.Collection {
	return uniqueNameCollection{Collection: s.Store.Collection(name)}
}

func TestConnectorTypeRepository_UpdateDuplicateName(t *testing.T) {
	config := &RepositoryConfig{
		Provider: docstore.NewProvider(func(context.Context) (docstore.Store, error) {
			return uniqueNameStore{Store: memory.New()}, nil
		}),
		Collections: NewCollections("test_"),
		Logger:      slog.New(slog.DiscardHandler),
	}
	t.Cleanup(config.Provider.Close)
	repo := NewConnectorTypeRepository(config)

	err := repo.Update(context.Background(), uuid.NewString(), catalog.ConnectorTypePatch{Name: ptr("grpc")})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualError(t, err, `connector type "grpc" already exists`)
}
