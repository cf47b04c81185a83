package platform

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/uniattend/internal/domain"
	"github.com/felixgeelhaar/uniattend/internal/errors"
	"github.com/felixgeelhaar/uniattend/internal/session"
	"github.com/felixgeelhaar/uniattend/internal/storage"
)

func TestLoginThenUnauthorizedLogsOut(t *testing.T) {
	ctx := context.Background()
	fb := newFakeBackend(t, map[string]http.HandlerFunc{
		"POST /api/v1/auth/sign-in": respond(http.StatusOK, map[string]any{
			"body": map[string]any{
				"id":          7,
				"email":       "a@b.com",
				"name":        "Aigerim",
				"roles":       []any{"teacher"},
				"accessToken": "tok",
			},
		}),
		"GET /api/v1/teacher/group": respond(http.StatusUnauthorized, ErrorResponse{Message: "expired"}),
	})

	mem := storage.NewMemoryStore()
	store := session.NewStore(mem)
	require.NoError(t, store.Hydrate(ctx))

	c := newTestClient(t, fb,
		WithTokenSource(store.AccessToken),
		WithUnauthorizedHandler(func(ctx context.Context) { _ = store.Logout(ctx) }),
	)

	p, err := c.SignIn(ctx, domain.Credentials{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)
	sess, err := store.Login(ctx, *p)
	require.NoError(t, err)
	assert.Equal(t, "tok", sess.AccessToken)
	assert.True(t, store.HasRole("teacher"))
	assert.NotEmpty(t, mem.Snapshot())

	_, err = c.ListGroups(ctx)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeSessionExpired))
	assert.Equal(t, "tok", fb.last(t).Header.Get(AuthHeader))

	assert.False(t, store.HasRole("teacher"))
	assert.Nil(t, store.Current())
	assert.Empty(t, mem.Snapshot())

	_, err = c.ListGroups(ctx)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotLoggedIn))
}
