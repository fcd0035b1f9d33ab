package identity_test

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"client-portal-backend/internal/apperr"
	"client-portal-backend/internal/identity"
	"client-portal-backend/internal/middleware"
	"client-portal-backend/internal/models"
)

type fakeUserStore struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*models.User)}
}

func (s *fakeUserStore) GetUserByAuthSubject(subject string) (*models.User, error) {
	for _, u := range s.users {
		if u.AuthSubject.Valid && u.AuthSubject.String == subject {
			return u, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) CreateUser(user *models.User) (*models.User, error) {
	u := *user
	s.users[u.ID] = &u
	return &u, nil
}

func (s *fakeUserStore) UpdateUserProfile(id uuid.UUID, name, email string, avatarURL sql.NullString) (*models.User, error) {
	u := s.users[id]
	u.Name = name
	u.Email = email
	u.AvatarURL = avatarURL
	return u, nil
}

func (s *fakeUserStore) LinkAuthSubject(id uuid.UUID, subject, name string, avatarURL sql.NullString) (*models.User, error) {
	u := s.users[id]
	u.AuthSubject = sql.NullString{String: subject, Valid: true}
	u.Name = name
	u.AvatarURL = avatarURL
	return u, nil
}

func (s *fakeUserStore) SetUserRole(id uuid.UUID, role models.Role) error {
	s.users[id].Role = role
	return nil
}

func TestResolveOrCreate_CreatesClientOnFirstSight(t *testing.T) {
	store := newFakeUserStore()
	resolver := identity.NewResolver(store)

	user, err := resolver.ResolveOrCreate(middleware.Identity{
		Subject: "auth-1",
		Email:   "new@example.com",
		Name:    "New User",
	})

	require.NoError(t, err)
	assert.Equal(t, models.RoleClient, user.Role)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, "auth-1", user.AuthSubject.String)
	assert.Len(t, store.users, 1)
}

func TestResolveOrCreate_SecondCallReturnsSameUser(t *testing.T) {
	store := newFakeUserStore()
	resolver := identity.NewResolver(store)
	id := middleware.Identity{Subject: "auth-1", Email: "new@example.com", Name: "New User"}

	first, err := resolver.ResolveOrCreate(id)
	require.NoError(t, err)
	second, err := resolver.ResolveOrCreate(id)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, store.users, 1)
}

func TestResolveOrCreate_LinksInvitedPlaceholderByEmail(t *testing.T) {
	store := newFakeUserStore()
	invited, _ := store.CreateUser(&models.User{
		ID:    uuid.New(),
		Email: "c@x.com",
		Name:  "Invited Client",
		Role:  models.RoleClient,
	})
	resolver := identity.NewResolver(store)

	user, err := resolver.ResolveOrCreate(middleware.Identity{
		Subject: "auth-9",
		Email:   "c@x.com",
		Name:    "Chika",
	})

	require.NoError(t, err)
	assert.Equal(t, invited.ID, user.ID)
	assert.Equal(t, "auth-9", user.AuthSubject.String)
	assert.Equal(t, "Chika", user.Name)
	assert.Len(t, store.users, 1)
}

func TestResolveOrCreate_PatchesStaleProfile(t *testing.T) {
	store := newFakeUserStore()
	resolver := identity.NewResolver(store)
	_, err := resolver.ResolveOrCreate(middleware.Identity{Subject: "auth-1", Email: "a@x.com", Name: "Old Name"})
	require.NoError(t, err)

	user, err := resolver.ResolveOrCreate(middleware.Identity{Subject: "auth-1", Email: "a@x.com", Name: "New Name"})

	require.NoError(t, err)
	assert.Equal(t, "New Name", user.Name)
}

func TestResolveOrCreate_AnonymousFallbackName(t *testing.T) {
	store := newFakeUserStore()
	resolver := identity.NewResolver(store)

	user, err := resolver.ResolveOrCreate(middleware.Identity{Subject: "auth-2"})

	require.NoError(t, err)
	assert.Equal(t, "Anonymous", user.Name)
}

func TestCurrent_NilForAnonymousAndUnknown(t *testing.T) {
	store := newFakeUserStore()
	resolver := identity.NewResolver(store)

	user, err := resolver.Current(middleware.Identity{})
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = resolver.Current(middleware.Identity{Subject: "never-seen"})
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestRequire_DistinguishesErrorKinds(t *testing.T) {
	store := newFakeUserStore()
	resolver := identity.NewResolver(store)

	_, err := resolver.Require(middleware.Identity{})
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))

	_, err = resolver.Require(middleware.Identity{Subject: "never-seen"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindUserNotFound, apperr.KindOf(err))
}

func TestElevateToAdmin_IdempotentSelfPromotion(t *testing.T) {
	store := newFakeUserStore()
	resolver := identity.NewResolver(store)
	id := middleware.Identity{Subject: "auth-1", Email: "a@x.com", Name: "A"}
	_, err := resolver.ResolveOrCreate(id)
	require.NoError(t, err)

	user, err := resolver.ElevateToAdmin(id)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)

	again, err := resolver.ElevateToAdmin(id)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, again.Role)
}
