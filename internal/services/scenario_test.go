package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"socialnet/internal/models"
	"socialnet/internal/services"
	"socialnet/internal/storage"
)

// memoryStore is an in-memory stand-in for the relationship and user
// repositories, preserving the store-level semantics the services rely on:
// pair-key uniqueness, transactional count adjustments, hard deletes.
type memoryStore struct {
	users  map[uint]*models.User
	rels   map[string]*models.Relationship
	nextID uint
}

func newMemoryStore(users ...*models.User) *memoryStore {
	s := &memoryStore{
		users: make(map[uint]*models.User),
		rels:  make(map[string]*models.Relationship),
	}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

// userRepo view

type memoryUserRepo struct{ s *memoryStore }

func (r *memoryUserRepo) Create(ctx context.Context, user *models.User) error {
	r.s.nextID++
	user.ID = r.s.nextID
	r.s.users[user.ID] = user
	return nil
}

func (r *memoryUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *memoryUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range r.s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryUserRepo) Update(ctx context.Context, user *models.User) error {
	r.s.users[user.ID] = user
	return nil
}

func (r *memoryUserRepo) SearchUsers(ctx context.Context, query string, currentUserID uint) ([]models.User, error) {
	return nil, nil
}

func (r *memoryUserRepo) GetBasicInfoByID(ctx context.Context, id uint) (*models.UserBasicInfo, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.UserBasicInfo{ID: u.ID, Username: u.Username}, nil
}

func (r *memoryUserRepo) GetMultipleBasicInfoByIDs(ctx context.Context, userIDs []uint) ([]*models.UserBasicInfo, error) {
	var infos []*models.UserBasicInfo
	for _, id := range userIDs {
		if u, ok := r.s.users[id]; ok {
			infos = append(infos, &models.UserBasicInfo{ID: u.ID, Username: u.Username})
		}
	}
	return infos, nil
}

// relRepo view

type memoryRelRepo struct{ s *memoryStore }

func (r *memoryRelRepo) adjustCounts(delta int, ids ...uint) {
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			u.FriendsCount += delta
		}
	}
}

func (r *memoryRelRepo) Create(ctx context.Context, rel *models.Relationship) error {
	rel.SetPairKey()
	if _, exists := r.s.rels[rel.PairKey]; exists {
		return gorm.ErrDuplicatedKey
	}
	r.s.nextID++
	rel.ID = r.s.nextID
	r.s.rels[rel.PairKey] = rel
	return nil
}

func (r *memoryRelRepo) FindBetween(ctx context.Context, userID1, userID2 uint) (*models.Relationship, error) {
	rel, ok := r.s.rels[models.PairKeyFor(userID1, userID2)]
	if !ok {
		return nil, nil
	}
	return rel, nil
}

func (r *memoryRelRepo) AcceptPending(ctx context.Context, requesterID, recipientID uint) (*models.Relationship, error) {
	rel, ok := r.s.rels[models.PairKeyFor(requesterID, recipientID)]
	if !ok || rel.Status != models.RelationshipStatusPending ||
		rel.RequesterID != requesterID || rel.RecipientID != recipientID {
		return nil, gorm.ErrRecordNotFound
	}
	rel.Status = models.RelationshipStatusAccepted
	r.adjustCounts(1, requesterID, recipientID)
	return rel, nil
}

func (r *memoryRelRepo) DeletePendingBetween(ctx context.Context, userID1, userID2 uint) error {
	key := models.PairKeyFor(userID1, userID2)
	rel, ok := r.s.rels[key]
	if !ok || rel.Status != models.RelationshipStatusPending {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.rels, key)
	return nil
}

func (r *memoryRelRepo) RemoveAcceptedBetween(ctx context.Context, userID1, userID2 uint) error {
	key := models.PairKeyFor(userID1, userID2)
	rel, ok := r.s.rels[key]
	if !ok || rel.Status != models.RelationshipStatusAccepted {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.rels, key)
	r.adjustCounts(-1, userID1, userID2)
	return nil
}

func (r *memoryRelRepo) Block(ctx context.Context, callerID, targetID uint) (*models.Relationship, error) {
	key := models.PairKeyFor(callerID, targetID)
	if existing, ok := r.s.rels[key]; ok {
		delete(r.s.rels, key)
		if existing.Status == models.RelationshipStatusAccepted {
			r.adjustCounts(-1, callerID, targetID)
		}
	}
	blocked := &models.Relationship{
		RequesterID: callerID,
		RecipientID: targetID,
		Status:      models.RelationshipStatusBlocked,
		PairKey:     key,
	}
	r.s.rels[key] = blocked
	return blocked, nil
}

func (r *memoryRelRepo) ListAcceptedFor(ctx context.Context, userID uint) ([]models.Relationship, error) {
	var out []models.Relationship
	for _, rel := range r.s.rels {
		if rel.Status != models.RelationshipStatusAccepted {
			continue
		}
		if rel.RequesterID == userID || rel.RecipientID == userID {
			copied := *rel
			copied.Requester = *r.s.users[rel.RequesterID]
			copied.Recipient = *r.s.users[rel.RecipientID]
			out = append(out, copied)
		}
	}
	return out, nil
}

func (r *memoryRelRepo) ListPendingForRecipient(ctx context.Context, recipientID uint) ([]models.Relationship, error) {
	var out []models.Relationship
	for _, rel := range r.s.rels {
		if rel.Status == models.RelationshipStatusPending && rel.RecipientID == recipientID {
			copied := *rel
			copied.Requester = *r.s.users[rel.RequesterID]
			out = append(out, copied)
		}
	}
	return out, nil
}

func (r *memoryRelRepo) ListAllFor(ctx context.Context, userID uint) ([]models.Relationship, error) {
	var out []models.Relationship
	for _, rel := range r.s.rels {
		if rel.RequesterID == userID || rel.RecipientID == userID {
			out = append(out, *rel)
		}
	}
	return out, nil
}

func (r *memoryRelRepo) RecountFriends(ctx context.Context) error {
	for _, u := range r.s.users {
		count := 0
		for _, rel := range r.s.rels {
			if rel.Status == models.RelationshipStatusAccepted &&
				(rel.RequesterID == u.ID || rel.RecipientID == u.ID) {
				count++
			}
		}
		u.FriendsCount = count
	}
	return nil
}

var (
	_ storage.UserRepository         = (*memoryUserRepo)(nil)
	_ storage.RelationshipRepository = (*memoryRelRepo)(nil)
)

// TestFriendshipLifecycle walks the full alice/bob story against in-memory
// storage with real store semantics.
func TestFriendshipLifecycle(t *testing.T) {
	ctx := context.Background()

	alice := &models.User{BaseModel: models.BaseModel{ID: 1}, Username: "alice"}
	bob := &models.User{BaseModel: models.BaseModel{ID: 2}, Username: "bob"}
	store := newMemoryStore(alice, bob)

	svc := services.NewRelationshipService(&memoryRelRepo{s: store}, &memoryUserRepo{s: store}, services.NoopNotifier{})

	// Alice sends Bob a request.
	_, err := svc.SendRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	status, err := svc.StatusFor(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DirectionalStatusPendingSent, status)

	status, err = svc.StatusFor(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DirectionalStatusPendingReceived, status)

	// Duplicate attempts conflict in both directions.
	_, err = svc.SendRequest(ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, services.ErrRelationshipExists)
	_, err = svc.SendRequest(ctx, bob.ID, alice.ID)
	assert.ErrorIs(t, err, services.ErrRelationshipExists)

	// Alice cannot accept her own request.
	_, err = svc.AcceptRequest(ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, services.ErrRelationshipNotFound)

	// Bob sees the pending request and accepts.
	pending, err := svc.ListPending(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "alice", pending[0].Requester.Username)

	_, err = svc.AcceptRequest(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, alice.FriendsCount)
	assert.Equal(t, 1, bob.FriendsCount)

	friends, err := svc.ListFriends(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, "bob", friends[0].Username)

	// Unfriending decrements both counts and clears the edge.
	require.NoError(t, svc.RemoveFriend(ctx, alice.ID, bob.ID))
	assert.Equal(t, 0, alice.FriendsCount)
	assert.Equal(t, 0, bob.FriendsCount)

	status, err = svc.StatusFor(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DirectionalStatusNone, status)

	// The pair can relate again after the hard delete.
	_, err = svc.SendRequest(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
}

// TestBlockSupersedesFriendship checks the count decrement when a block
// replaces an accepted friendship, and that blocked stays terminal.
func TestBlockSupersedesFriendship(t *testing.T) {
	ctx := context.Background()

	alice := &models.User{BaseModel: models.BaseModel{ID: 1}, Username: "alice"}
	bob := &models.User{BaseModel: models.BaseModel{ID: 2}, Username: "bob"}
	store := newMemoryStore(alice, bob)

	svc := services.NewRelationshipService(&memoryRelRepo{s: store}, &memoryUserRepo{s: store}, services.NoopNotifier{})

	_, err := svc.SendRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = svc.AcceptRequest(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.Equal(t, 1, alice.FriendsCount)

	// Alice blocks Bob; the friendship dissolves with the block.
	_, err = svc.Block(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, alice.FriendsCount)
	assert.Equal(t, 0, bob.FriendsCount)

	status, err := svc.StatusFor(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DirectionalStatusBlocked, status)

	// No new requests get through while blocked.
	_, err = svc.SendRequest(ctx, bob.ID, alice.ID)
	assert.ErrorIs(t, err, services.ErrRelationshipExists)
	_, err = svc.SendRequest(ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, services.ErrRelationshipExists)
}

// TestBlockFromEveryPriorState verifies block wins from absent, pending and
// accepted states.
func TestBlockFromEveryPriorState(t *testing.T) {
	ctx := context.Background()

	for _, tc := range []struct {
		name  string
		setup func(t *testing.T, svc services.RelationshipService)
	}{
		{"no prior edge", func(t *testing.T, svc services.RelationshipService) {}},
		{"pending edge", func(t *testing.T, svc services.RelationshipService) {
			_, err := svc.SendRequest(ctx, 2, 1)
			require.NoError(t, err)
		}},
		{"accepted edge", func(t *testing.T, svc services.RelationshipService) {
			_, err := svc.SendRequest(ctx, 2, 1)
			require.NoError(t, err)
			_, err = svc.AcceptRequest(ctx, 1, 2)
			require.NoError(t, err)
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			alice := &models.User{BaseModel: models.BaseModel{ID: 1}, Username: "alice"}
			bob := &models.User{BaseModel: models.BaseModel{ID: 2}, Username: "bob"}
			store := newMemoryStore(alice, bob)
			svc := services.NewRelationshipService(&memoryRelRepo{s: store}, &memoryUserRepo{s: store}, services.NoopNotifier{})

			tc.setup(t, svc)

			rel, err := svc.Block(ctx, 1, 2)
			require.NoError(t, err)
			assert.Equal(t, models.RelationshipStatusBlocked, rel.Status)
			assert.Equal(t, 0, alice.FriendsCount)
			assert.Equal(t, 0, bob.FriendsCount)
		})
	}
}
