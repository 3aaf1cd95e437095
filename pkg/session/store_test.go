package session

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/ecommerce_hub/pkg/apiclient"
	"github.com/Skotchmaster/ecommerce_hub/pkg/models"
)

type fakeAuth struct {
	res   *apiclient.LoginResponse
	err   error
	calls int
}

func (f *fakeAuth) Login(_ context.Context, _, _ string) (*apiclient.LoginResponse, error) {
	f.calls++
	return f.res, f.err
}

var maria = models.Identity{ID: "1", FullName: "Maria Lopez", Email: "maria.lopez@example.com", Role: models.RoleAdmin}

func TestRestore_AbsentOrMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  []byte
	}{
		{name: "absent", raw: nil},
		{name: "not json", raw: []byte("{not json")},
		{name: "missing id", raw: []byte(`{"fullName":"x","email":"x@y.z","role":"user"}`)},
		{name: "unknown role", raw: []byte(`{"id":"9","role":"superuser"}`)},
		{name: "missing role", raw: []byte(`{"id":"9","email":"x@y.z"}`)},
		{name: "wrong shape", raw: []byte(`[1,2,3]`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			storage := NewMemoryStorage(tt.raw)
			s := New(storage, &fakeAuth{})
			require.True(t, s.Loading())

			s.Restore(context.Background())

			assert.False(t, s.Loading())
			_, ok := s.Current()
			assert.False(t, ok)
			assert.Nil(t, storage.Raw())
		})
	}
}

func TestRestore_ValidSession(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(record{Identity: maria, AccessToken: "tok"})
	require.NoError(t, err)

	s := New(NewMemoryStorage(raw), &fakeAuth{})
	s.Restore(context.Background())

	got, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, maria, got)
	assert.Equal(t, "tok", s.AccessToken())
}

func TestRestore_NumericID(t *testing.T) {
	t.Parallel()

	s := New(NewMemoryStorage([]byte(`{"id":42,"fullName":"C","email":"c@x.y","role":"user"}`)), &fakeAuth{})
	s.Restore(context.Background())

	got, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, models.ID("42"), got.ID)
}

func TestLogin_PersistsAndSurvivesReload(t *testing.T) {
	t.Parallel()

	storage := NewFileStorage(filepath.Join(t.TempDir(), "user.json"))
	auth := &fakeAuth{res: &apiclient.LoginResponse{User: &maria, AccessToken: "tok"}}

	s := New(storage, auth)
	s.Restore(context.Background())

	got, err := s.Login(context.Background(), maria.Email, "Password123!")
	require.NoError(t, err)
	assert.Equal(t, maria, got)

	reloaded := New(storage, auth)
	reloaded.Restore(context.Background())
	cur, ok := reloaded.Current()
	require.True(t, ok)
	assert.Equal(t, maria, cur)
	assert.Equal(t, "tok", reloaded.AccessToken())
}

func TestLogin_TopLevelIdentity(t *testing.T) {
	t.Parallel()

	s := New(NewMemoryStorage(nil), &fakeAuth{res: &apiclient.LoginResponse{Identity: maria}})
	got, err := s.Login(context.Background(), maria.Email, "pw")
	require.NoError(t, err)
	assert.Equal(t, maria.ID, got.ID)
}

func TestLogin_MalformedIdentityKeepsPreviousSession(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		res    *apiclient.LoginResponse
		reason string
	}{
		{name: "missing id", res: &apiclient.LoginResponse{User: &models.Identity{FullName: "Nobody", Role: models.RoleUser}}, reason: "id is required"},
		{name: "unknown role", res: &apiclient.LoginResponse{User: &models.Identity{ID: "1", Role: "root"}}, reason: "role must be one of"},
		{name: "missing role", res: &apiclient.LoginResponse{Identity: models.Identity{ID: "1"}}, reason: "role is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			raw, err := json.Marshal(record{Identity: maria})
			require.NoError(t, err)
			storage := NewMemoryStorage(raw)

			s := New(storage, &fakeAuth{res: tt.res})
			s.Restore(context.Background())

			_, err = s.Login(context.Background(), "nobody@example.com", "pw")
			require.ErrorIs(t, err, apiclient.ErrInvalidResponse)
			assert.Contains(t, apiclient.Message(err), tt.reason)

			cur, ok := s.Current()
			require.True(t, ok)
			assert.Equal(t, maria, cur)
			assert.JSONEq(t, string(raw), string(storage.Raw()))
		})
	}
}

func TestLogin_GatewayFailureKeepsPreviousSession(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(record{Identity: maria})
	require.NoError(t, err)
	storage := NewMemoryStorage(raw)

	gwErr := &apiclient.Error{Op: "login", Kind: apiclient.KindAuthenticationFailed, Status: 401, Message: "invalid credentials"}
	s := New(storage, &fakeAuth{err: gwErr})
	s.Restore(context.Background())

	_, err = s.Login(context.Background(), maria.Email, "wrong")
	require.ErrorIs(t, err, apiclient.ErrAuthenticationFailed)

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, maria.ID, cur.ID)
}

type failingStorage struct{ MemoryStorage }

func (f *failingStorage) Save(context.Context, []byte) error { return errors.New("disk full") }

func TestLogin_StorageFailureLeavesLoggedOut(t *testing.T) {
	t.Parallel()

	s := New(&failingStorage{}, &fakeAuth{res: &apiclient.LoginResponse{User: &maria}})
	_, err := s.Login(context.Background(), maria.Email, "pw")
	require.Error(t, err)

	_, ok := s.Current()
	assert.False(t, ok)
}

func TestLogout(t *testing.T) {
	t.Parallel()

	storage := NewMemoryStorage(nil)
	auth := &fakeAuth{res: &apiclient.LoginResponse{User: &maria, AccessToken: "tok"}}
	s := New(storage, auth)

	_, err := s.Login(context.Background(), maria.Email, "pw")
	require.NoError(t, err)
	require.NotNil(t, storage.Raw())

	require.NoError(t, s.Logout(context.Background()))
	_, ok := s.Current()
	assert.False(t, ok)
	assert.Empty(t, s.AccessToken())
	assert.Nil(t, storage.Raw())
	assert.Equal(t, 1, auth.calls)
}

func TestFileStorage_EmptyAndClear(t *testing.T) {
	t.Parallel()

	fs := NewFileStorage(filepath.Join(t.TempDir(), "nested", "user.json"))
	ctx := context.Background()

	_, err := fs.Load(ctx)
	require.ErrorIs(t, err, ErrEmpty)

	require.NoError(t, fs.Save(ctx, []byte(`{"id":"1"}`)))
	data, err := fs.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"1"}`, string(data))

	require.NoError(t, fs.Clear(ctx))
	require.NoError(t, fs.Clear(ctx))
	_, err = fs.Load(ctx)
	require.ErrorIs(t, err, ErrEmpty)
}
