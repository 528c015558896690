package customer

import (
	"context"
	"testing"

	"github.com/example/pastelaria-api/domain/customer"
	"github.com/example/pastelaria-api/domain/store"
	"github.com/example/pastelaria-api/domain/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestService(t *testing.T) *Service {
	t.Helper()

	db, err := store.Open(store.Config{Driver: store.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&customer.Customer{}))
	t.Cleanup(func() { _ = store.Close(db) })
	return NewService(customer.NewRepository(db))
}

func ptr[T any](v T) *T { return &v }

func validRequest(email string) customer.CreateRequest {
	return customer.CreateRequest{
		Name:         ptr("Maria Souza"),
		Email:        ptr(email),
		Phone:        ptr("(11)9 1234-5678"),
		DateOfBirth:  ptr("1990-05-17"),
		Address:      ptr("Rua das Flores, 10"),
		Complement:   ptr("Apto 12"),
		Neighborhood: ptr("Centro"),
		Zipcode:      ptr("01310-100"),
	}
}

func TestService_CreateReturnsSubmittedFields(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validRequest("maria@example.com"))
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria Souza", got.Name)
	assert.Equal(t, "maria@example.com", got.Email)
	assert.Equal(t, "1990-05-17", got.DateOfBirth)
	assert.Equal(t, "01310-100", got.Zipcode)
	assert.NotEmpty(t, got.CreatedAt)
	assert.Nil(t, got.DeletedAt)
}

func TestService_CreateDuplicateEmail(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, validRequest("maria@example.com"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, validRequest("maria@example.com"))
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{"The email has already been taken."}, verrs["email"])
}

func TestService_CreateValidation(t *testing.T) {
	svc := setupTestService(t)

	req := validRequest("not-an-email")
	req.Zipcode = ptr("01310100")
	req.Name = nil

	_, err := svc.Create(context.Background(), req)
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "email")
	assert.Contains(t, verrs, "zipcode")
	assert.Contains(t, verrs, "name")
}

func TestService_UpdateKeepsOwnEmail(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validRequest("maria@example.com"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, customer.UpdateRequest{
		Email:        ptr("maria@example.com"),
		Neighborhood: ptr("Vila Mariana"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Vila Mariana", updated.Neighborhood)
	assert.Equal(t, "Maria Souza", updated.Name)
}

func TestService_UpdateMissingIsNotFoundBeforeValidation(t *testing.T) {
	svc := setupTestService(t)

	_, err := svc.Update(context.Background(), 404, customer.UpdateRequest{Email: ptr("broken")})
	assert.ErrorIs(t, err, customer.ErrNotFound)
}

func TestService_DeleteRestore(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validRequest("maria@example.com"))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Restore(ctx, created.ID), customer.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, created.ID))

	list, err := svc.List(ctx, store.Active)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.Create(ctx, validRequest("maria@example.com"))
	require.NoError(t, err)

	var verrs validation.Errors
	require.ErrorAs(t, svc.Restore(ctx, created.ID), &verrs)
	assert.Contains(t, verrs, "email")
}
