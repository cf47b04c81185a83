package session

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/uniattend/internal/domain"
	"github.com/felixgeelhaar/uniattend/internal/errors"
	"github.com/felixgeelhaar/uniattend/internal/log"
	"github.com/felixgeelhaar/uniattend/internal/storage"
)

func teacherPrincipal() Principal {
	return Principal{
		ID:          "7",
		Email:       "a@b.com",
		Name:        "Aigerim",
		Birthday:    "1990-04-01",
		Roles:       json.RawMessage(`[{"name":"Teacher"}]`),
		GroupID:     "3",
		GroupName:   "SE-2101",
		AccessToken: "tok",
	}
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "7", "exp": exp.Unix()})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestNewStoreIsLoading(t *testing.T) {
	s := NewStore(storage.NewMemoryStore())

	assert.True(t, s.Loading())
	_, err := s.Require()
	assert.True(t, errors.HasCode(err, errors.ErrCodeSessionLoading))

	require.NoError(t, s.Hydrate(context.Background()))
	assert.False(t, s.Loading())
	assert.Nil(t, s.Current())
}

func TestLoginPersistsAndExposesSession(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	s := NewStore(mem)
	require.NoError(t, s.Hydrate(ctx))

	sess, err := s.Login(ctx, teacherPrincipal())
	require.NoError(t, err)

	assert.Equal(t, domain.ID("7"), sess.SubjectID)
	assert.Equal(t, "1990-04-01", sess.DateOfBirth)
	assert.Equal(t, "tok", s.AccessToken())
	assert.True(t, s.HasRole("teacher"))
	assert.True(t, s.HasRole("TEACHER"))
	assert.False(t, s.HasRole("admin"))

	snap := mem.Snapshot()
	assert.Equal(t, "7", snap[KeyUserID])
	assert.Contains(t, snap[KeyUser], `"accessToken":"tok"`)
}

func TestLoginWithoutAccessTokenChangesNothing(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	s := NewStore(mem)
	require.NoError(t, s.Hydrate(ctx))
	_, err := s.Login(ctx, teacherPrincipal())
	require.NoError(t, err)

	p := teacherPrincipal()
	p.ID = "8"
	p.AccessToken = ""
	_, err = s.Login(ctx, p)

	assert.True(t, errors.HasCode(err, errors.ErrCodeSessionInvalid))
	assert.Equal(t, domain.ID("7"), s.Current().SubjectID)
	assert.Equal(t, "7", mem.Snapshot()[KeyUserID])
}

func TestLoginRoleIDTakesPrecedence(t *testing.T) {
	ctx := context.Background()
	s := NewStore(storage.NewMemoryStore())
	require.NoError(t, s.Hydrate(ctx))

	p := teacherPrincipal()
	p.RoleID = "3"
	sess, err := s.Login(ctx, p)
	require.NoError(t, err)

	assert.Equal(t, domain.Roles{domain.RoleRef(3, "admin")}, sess.Roles)
	assert.True(t, s.HasRole("admin"))
	assert.False(t, s.HasRole("teacher"))
}

func TestLoginThenHydrateOnFreshStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	first := NewStore(storage.NewFileStore(path))
	require.NoError(t, first.Hydrate(ctx))
	want, err := first.Login(ctx, teacherPrincipal())
	require.NoError(t, err)

	second := NewStore(storage.NewFileStore(path))
	require.NoError(t, second.Hydrate(ctx))

	assert.Equal(t, want, second.Current())
}

func TestHydrateRunsOnce(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	s := NewStore(mem)
	require.NoError(t, s.Hydrate(ctx))

	// A record written behind the store's back is not picked up again.
	other := NewStore(mem)
	require.NoError(t, other.Hydrate(ctx))
	_, err := other.Login(ctx, teacherPrincipal())
	require.NoError(t, err)

	require.NoError(t, s.Hydrate(ctx))
	assert.Nil(t, s.Current())
}

func TestHydrateConcurrentCallers(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	seed := NewStore(mem)
	require.NoError(t, seed.Hydrate(ctx))
	_, err := seed.Login(ctx, teacherPrincipal())
	require.NoError(t, err)

	s := NewStore(mem)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Hydrate(ctx))
			assert.True(t, s.HasRole("teacher"))
		}()
	}
	wg.Wait()
}

func TestHydrateLegacyRecord(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	require.NoError(t, mem.SetMany(ctx, map[string]string{
		KeyUserID: "12",
		KeyUser:   `{"id":12,"name":"Dana","roles":[{"id":2}],"birthday":"2001-09-09","accessToken":"abc"}`,
	}))

	s := NewStore(mem)
	require.NoError(t, s.Hydrate(ctx))

	sess := s.Current()
	require.NotNil(t, sess)
	assert.True(t, sess.HasRole("student"), "role id 2 resolves through the catalog")
	assert.Equal(t, "2001-09-09", sess.DateOfBirth)
}

func TestHydratePurgesBadRecords(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
	}{
		{"user only", map[string]string{KeyUser: `{"id":1,"accessToken":"t"}`}},
		{"id only", map[string]string{KeyUserID: "1", KeyAccessToken: "t"}},
		{"not json", map[string]string{KeyUserID: "1", KeyUser: `{"id":`}},
		{"no token", map[string]string{KeyUserID: "1", KeyUser: `{"id":1}`}},
		{"no id", map[string]string{KeyUserID: "1", KeyUser: `{"accessToken":"t"}`}},
		{"id mismatch", map[string]string{KeyUserID: "2", KeyUser: `{"id":1,"accessToken":"t"}`}},
		{"bad roles", map[string]string{KeyUserID: "1", KeyUser: `{"id":1,"roles":[true],"accessToken":"t"}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			mem := storage.NewMemoryStore()
			require.NoError(t, mem.SetMany(ctx, tt.values))

			s := NewStore(mem)
			require.NoError(t, s.Hydrate(ctx))

			assert.Nil(t, s.Current())
			assert.False(t, s.HasRole("teacher"))
			assert.Empty(t, mem.Snapshot())
		})
	}
}

func TestHydrateExpiredJWT(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for name, tc := range map[string]struct {
		exp  time.Time
		kept bool
	}{
		"expired": {now.Add(-time.Minute), false},
		"valid":   {now.Add(time.Hour), true},
	} {
		t.Run(name, func(t *testing.T) {
			mem := storage.NewMemoryStore()
			p := teacherPrincipal()
			p.AccessToken = signedToken(t, tc.exp)

			seed := NewStore(mem, WithClock(func() time.Time { return now }))
			require.NoError(t, seed.Hydrate(ctx))
			_, err := seed.Login(ctx, p)
			require.NoError(t, err)

			s := NewStore(mem, WithClock(func() time.Time { return now }))
			require.NoError(t, s.Hydrate(ctx))
			assert.Equal(t, tc.kept, s.Current() != nil)
			assert.Equal(t, tc.kept, len(mem.Snapshot()) > 0)
		})
	}
}

func TestHydrateCorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{"), 0o600))

	s := NewStore(storage.NewFileStore(path))
	require.NoError(t, s.Hydrate(ctx))
	assert.Nil(t, s.Current())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "corrupt document removed")
}

func TestLogoutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	s := NewStore(mem)
	require.NoError(t, s.Hydrate(ctx))
	require.NoError(t, mem.SetMany(ctx, map[string]string{KeyAccessToken: "legacy"}))
	_, err := s.Login(ctx, teacherPrincipal())
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx))
	assert.Nil(t, s.Current())
	assert.Empty(t, s.AccessToken())
	assert.Empty(t, mem.Snapshot(), "legacy accessToken key cleared too")

	require.NoError(t, s.Logout(ctx))
	assert.Empty(t, mem.Snapshot())
}

func TestRequire(t *testing.T) {
	ctx := context.Background()
	s := NewStore(storage.NewMemoryStore())
	require.NoError(t, s.Hydrate(ctx))

	_, err := s.Require()
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotLoggedIn))

	_, err = s.Login(ctx, teacherPrincipal())
	require.NoError(t, err)

	sess, err := s.Require("admin", "teacher")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", sess.Email)

	_, err = s.Require("admin")
	assert.True(t, errors.HasCode(err, errors.ErrCodeForbidden))
}

func TestCurrentReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewStore(storage.NewMemoryStore())
	require.NoError(t, s.Hydrate(ctx))
	_, err := s.Login(ctx, teacherPrincipal())
	require.NoError(t, err)

	c := s.Current()
	c.Roles[0] = domain.NamedRole("admin")
	c.AccessToken = "changed"

	assert.False(t, s.HasRole("admin"))
	assert.Equal(t, "tok", s.AccessToken())
}

// mockStorage lets tests inject backend failures.
type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockStorage) SetMany(ctx context.Context, values map[string]string) error {
	return m.Called(ctx, values).Error(0)
}

func (m *mockStorage) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func (m *mockStorage) Close() error { return nil }

func TestHydrateStorageFailure(t *testing.T) {
	st := &mockStorage{}
	st.On("Get", mock.Anything, KeyUserID).Return("", false, stderrors.New("connection refused"))

	s := NewStore(st)
	err := s.Hydrate(context.Background())

	assert.True(t, errors.HasCode(err, errors.ErrCodeStorageFailed))
	assert.False(t, s.Loading(), "a failed hydrate still ends loading")
	assert.Nil(t, s.Current())
	assert.Equal(t, err, s.Hydrate(context.Background()), "result is remembered")
	st.AssertNumberOfCalls(t, "Get", 1)
}

func TestLoginStorageFailureKeepsMemory(t *testing.T) {
	st := &mockStorage{}
	st.On("Get", mock.Anything, mock.Anything).Return("", false, nil)
	st.On("SetMany", mock.Anything, mock.Anything).Return(stderrors.New("disk full"))

	s := NewStore(st)
	require.NoError(t, s.Hydrate(context.Background()))

	_, err := s.Login(context.Background(), teacherPrincipal())
	assert.True(t, errors.HasCode(err, errors.ErrCodeStorageFailed))
	assert.Nil(t, s.Current(), "memory is only updated after storage succeeded")
}

func TestLogoutClearsMemoryEvenIfStorageFails(t *testing.T) {
	st := &mockStorage{}
	st.On("Get", mock.Anything, mock.Anything).Return("", false, nil)
	st.On("SetMany", mock.Anything, mock.Anything).Return(nil)
	st.On("Delete", mock.Anything, []string{KeyUserID, KeyUser, KeyAccessToken}).Return(stderrors.New("timeout"))

	s := NewStore(st)
	require.NoError(t, s.Hydrate(context.Background()))
	_, err := s.Login(context.Background(), teacherPrincipal())
	require.NoError(t, err)

	err = s.Logout(context.Background())
	assert.True(t, errors.HasCode(err, errors.ErrCodeStorageFailed))
	assert.False(t, s.HasRole("teacher"))
	st.AssertExpectations(t)
}

func TestLogoutStorageFailureWarnsAndSuggestsRetry(t *testing.T) {
	st := &mockStorage{}
	st.On("Get", mock.Anything, mock.Anything).Return("", false, nil)
	st.On("SetMany", mock.Anything, mock.Anything).Return(nil)
	st.On("Delete", mock.Anything, mock.Anything).Return(stderrors.New("timeout")).Once()
	st.On("Delete", mock.Anything, mock.Anything).Return(nil)

	var logs bytes.Buffer
	cfg := log.DefaultConfig()
	cfg.Output = log.NewOutput(&logs)
	s := NewStore(st, WithLogger(log.New(cfg)))
	require.NoError(t, s.Hydrate(context.Background()))
	_, err := s.Login(context.Background(), teacherPrincipal())
	require.NoError(t, err)

	err = s.Logout(context.Background())
	var ue *errors.UniAttendError
	require.ErrorAs(t, err, &ue)
	assert.Contains(t, ue.Suggestions, "Run 'uniattend logout' again to remove the stored session")
	assert.Contains(t, logs.String(), "stored session was kept")
	assert.Contains(t, logs.String(), "uniattend logout")
	assert.Nil(t, s.Current())

	require.NoError(t, s.Logout(context.Background()), "a second logout clears storage")
	st.AssertNumberOfCalls(t, "Delete", 2)
}
