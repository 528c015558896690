package producttype

import (
	"context"
	"testing"

	"github.com/example/pastelaria-api/domain/producttype"
	"github.com/example/pastelaria-api/domain/store"
	"github.com/example/pastelaria-api/domain/validation"
	"github.com/example/pastelaria-api/modules/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// countingStore records cache traffic in memory.
type countingStore struct {
	data        map[string]any
	invalidated []string
}

func (s *countingStore) Get(_ context.Context, key string, dest any) (bool, error) {
	v, ok := s.data[key]
	if !ok {
		return false, nil
	}
	switch d := dest.(type) {
	case *[]producttype.Response:
		*d = v.([]producttype.Response)
	case *producttype.Response:
		*d = v.(producttype.Response)
	}
	return true, nil
}

func (s *countingStore) Set(_ context.Context, key string, value any) error {
	s.data[key] = value
	return nil
}

func (s *countingStore) DeletePattern(_ context.Context, pattern string) error {
	s.invalidated = append(s.invalidated, pattern)
	s.data = map[string]any{}
	return nil
}

func setupTestService(t *testing.T) (*Service, *countingStore, *gorm.DB) {
	t.Helper()

	db, err := store.Open(store.Config{Driver: store.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&producttype.ProductType{}))
	t.Cleanup(func() { _ = store.Close(db) })

	cs := &countingStore{data: map[string]any{}}
	return NewService(producttype.NewRepository(db), cache.NewLoader(cs)), cs, db
}

func ptr[T any](v T) *T { return &v }

func TestService_CreateValidation(t *testing.T) {
	svc, _, _ := setupTestService(t)

	_, err := svc.Create(context.Background(), producttype.CreateRequest{Name: ptr("ab")})
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{"The name field must be at least 3 characters."}, verrs["name"])

	_, err = svc.Create(context.Background(), producttype.CreateRequest{})
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{"The name field is required."}, verrs["name"])
}

func TestService_ListIsCachedAndInvalidatedOnWrite(t *testing.T) {
	svc, cs, db := setupTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, producttype.CreateRequest{Name: ptr("Pastel salgado")})
	require.NoError(t, err)

	list, err := svc.List(ctx, store.Active)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Contains(t, cs.data, "product-type:list")

	// A row written behind the service stays invisible until a write invalidates the cache.
	require.NoError(t, db.Create(&producttype.ProductType{Name: "Bebida"}).Error)
	list, err = svc.List(ctx, store.Active)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.Update(ctx, created.ID, producttype.UpdateRequest{Name: ptr("Pastel doce")})
	require.NoError(t, err)
	assert.Contains(t, cs.invalidated, "product-type:*")

	list, err = svc.List(ctx, store.Active)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestService_DeleteRestore(t *testing.T) {
	svc, _, _ := setupTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, producttype.CreateRequest{Name: ptr("Bebida")})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, producttype.ErrNotFound)

	trashed, err := svc.List(ctx, store.TrashedOnly)
	require.NoError(t, err)
	require.Len(t, trashed, 1)
	assert.NotNil(t, trashed[0].DeletedAt)

	require.NoError(t, svc.Restore(ctx, created.ID))
	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.DeletedAt)

	assert.ErrorIs(t, svc.Restore(ctx, created.ID), producttype.ErrNotFound)
}
