package usecase

import (
	"context"
	"testing"

	"movie-booking/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUpsertUserByEmailKeepsFirstName(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store.repository(), zap.NewNop())
	ctx := context.Background()

	firstID, created, err := svc.UpsertUserByEmail(ctx, "Ravi", "ravi@example.com", nil)
	require.NoError(t, err)
	assert.True(t, created)

	secondID, created, err := svc.UpsertUserByEmail(ctx, "Someone Else", " RAVI@example.com ", nil)
	require.NoError(t, err)
	assert.False(t, created)

	assert.Equal(t, firstID, secondID)
	require.Len(t, store.users, 1)
	assert.Equal(t, "Ravi", store.users[0].Name)
}

func TestRegister(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store.repository(), zap.NewNop())
	ctx := context.Background()
	phone := "9876543210"

	user, created, err := svc.Register(ctx, &request.RegisterRequest{Name: "Meera", Email: "meera@example.com", Phone: &phone})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Meera", user.Name)
	assert.Equal(t, &phone, user.Phone)

	again, created, err := svc.Register(ctx, &request.RegisterRequest{Name: "M", Email: "meera@example.com"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, user.ID, again.ID)
	assert.Equal(t, "Meera", again.Name)

	_, _, err = svc.Register(ctx, &request.RegisterRequest{Name: "x", Email: "not-an-email"})
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, KindValidation, svcErr.Kind)
	assert.Contains(t, svcErr.Fields, "email")
}
