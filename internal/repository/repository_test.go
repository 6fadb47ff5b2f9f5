package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"socialfeed/backend/internal/database/dbtest"
	"socialfeed/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, s *Store, name string) *models.User {
	t.Helper()
	u := &models.User{Username: name, Email: name + "@example.com", PasswordHash: "hash"}
	require.NoError(t, s.Users().Create(context.Background(), u))
	return u
}

func seedPosts(t *testing.T, s *Store, author *models.User, n int, base time.Time) []models.Post {
	t.Helper()
	posts := make([]models.Post, n)
	for i := 0; i < n; i++ {
		posts[i] = models.Post{UserID: author.ID, Text: fmt.Sprintf("post %02d", i)}
		posts[i].CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, s.Posts().Create(context.Background(), &posts[i]))
	}
	return posts
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, NewPage(1).Offset())
	assert.Equal(t, 15, NewPage(2).Offset())
	assert.Equal(t, 0, NewPage(0).Offset())
	assert.Equal(t, 0, NewPage(-3).Offset())
	assert.Equal(t, 0, Page(0).Offset())
}

func TestUserLookups(t *testing.T) {
	ctx := context.Background()
	s := NewStore(dbtest.New(t))
	alice := seedUser(t, s, "alice")

	got, err := s.Users().FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	got, err = s.Users().FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	_, err = s.Users().FindByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	dup := &models.User{Username: "alice", Email: "other@example.com", PasswordHash: "x"}
	assert.Error(t, s.Users().Create(ctx, dup))
}

func TestSampleExcludesSelf(t *testing.T) {
	ctx := context.Background()
	s := NewStore(dbtest.New(t))
	me := seedUser(t, s, "me")
	for i := 0; i < 12; i++ {
		seedUser(t, s, fmt.Sprintf("user%d", i))
	}

	users, err := s.Users().Sample(ctx, me.ID, 10)
	require.NoError(t, err)
	assert.Len(t, users, 10)
	for _, u := range users {
		assert.NotEqual(t, me.ID, u.ID)
	}
}

func TestFollowEdgeIsSharedByBothSides(t *testing.T) {
	ctx := context.Background()
	s := NewStore(dbtest.New(t))
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")

	created, err := s.Follows().Create(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, created)
	created, err = s.Follows().Create(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, created, "a repeated follow must not insert a second edge")

	following, err := s.Follows().FollowingIDs(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{bob.ID}, following)

	followers, err := s.Follows().FollowerIDs(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{alice.ID}, followers)

	removed, err := s.Follows().Delete(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	exists, err := s.Follows().Exists(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	following, err = s.Follows().FollowingIDs(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, following)
}

func TestListAllPaginatesNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewStore(dbtest.New(t))
	alice := seedUser(t, s, "alice")
	seedPosts(t, s, alice, 20, time.Now().Add(-time.Hour))

	first, err := s.Posts().List(ctx, PostQuery{}, NewPage(1))
	require.NoError(t, err)
	require.Len(t, first, 15)
	second, err := s.Posts().List(ctx, PostQuery{}, NewPage(2))
	require.NoError(t, err)
	require.Len(t, second, 5)

	seen := map[string]bool{}
	all := append(append([]models.Post{}, first...), second...)
	for i, p := range all {
		assert.False(t, seen[p.ID], "post %s listed twice", p.ID)
		seen[p.ID] = true
		if i > 0 {
			assert.False(t, p.CreatedAt.After(all[i-1].CreatedAt), "posts not sorted newest first")
		}
		assert.Equal(t, "alice", p.User.Username)
	}
	assert.Equal(t, "post 19", first[0].Text)
	assert.Equal(t, "post 00", second[4].Text)
}

func TestListByAuthorsAndLikes(t *testing.T) {
	ctx := context.Background()
	s := NewStore(dbtest.New(t))
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")
	base := time.Now().Add(-time.Hour)
	alicePosts := seedPosts(t, s, alice, 3, base)
	seedPosts(t, s, bob, 2, base.Add(10*time.Minute))

	byAlice, err := s.Posts().List(ctx, PostQuery{AuthorIDs: []string{alice.ID}}, NewPage(1))
	require.NoError(t, err)
	assert.Len(t, byAlice, 3)

	none, err := s.Posts().List(ctx, PostQuery{AuthorIDs: []string{}}, NewPage(1))
	require.NoError(t, err)
	assert.Empty(t, none)

	require.NoError(t, s.Likes().Create(ctx, bob.ID, alicePosts[0].ID))
	require.NoError(t, s.Likes().Create(ctx, bob.ID, alicePosts[2].ID))
	assert.Error(t, s.Likes().Create(ctx, bob.ID, alicePosts[2].ID), "duplicate like must be rejected")

	liked, err := s.Posts().List(ctx, PostQuery{LikedBy: bob.ID}, NewPage(1))
	require.NoError(t, err)
	require.Len(t, liked, 2)
	ids := []string{liked[0].ID, liked[1].ID}
	assert.ElementsMatch(t, []string{alicePosts[0].ID, alicePosts[2].ID}, ids)

	likedIDs, err := s.Likes().LikedPostIDs(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{alicePosts[0].ID, alicePosts[2].ID}, likedIDs)
}

func TestFindWithDetailsOrdersComments(t *testing.T) {
	ctx := context.Background()
	s := NewStore(dbtest.New(t))
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")
	post := seedPosts(t, s, alice, 1, time.Now())[0]

	for _, text := range []string{"first", "second", "third"} {
		require.NoError(t, s.Comments().Create(ctx, &models.Comment{PostID: post.ID, UserID: bob.ID, Text: text}))
	}
	require.NoError(t, s.Likes().Create(ctx, bob.ID, post.ID))

	got, err := s.Posts().FindWithDetails(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 3)
	assert.Equal(t, "first", got.Comments[0].Text)
	assert.Equal(t, "third", got.Comments[2].Text)
	assert.Equal(t, "bob", got.Comments[0].User.Username)
	require.Len(t, got.Likes, 1)
	assert.Equal(t, bob.ID, got.Likes[0].UserID)

	_, err = s.Posts().FindWithDetails(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNotificationsReadAndClear(t *testing.T) {
	ctx := context.Background()
	s := NewStore(dbtest.New(t))
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")

	require.NoError(t, s.Notifications().Create(ctx, &models.Notification{FromID: bob.ID, ToID: alice.ID, Type: models.NotificationFollow}))
	require.NoError(t, s.Notifications().Create(ctx, &models.Notification{FromID: bob.ID, ToID: alice.ID, Type: models.NotificationLike}))
	require.NoError(t, s.Notifications().Create(ctx, &models.Notification{FromID: alice.ID, ToID: bob.ID, Type: models.NotificationFollow}))

	list, err := s.Notifications().ListForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, n := range list {
		assert.False(t, n.Read)
		assert.Equal(t, "bob", n.From.Username)
	}

	marked, err := s.Notifications().MarkAllRead(ctx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, marked)

	deleted, err := s.Notifications().DeleteForUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	remaining, err := s.Notifications().ListForUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
	assert.False(t, remaining[0].Read)
}

func TestTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	s := NewStore(dbtest.New(t))
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")

	err := s.Transaction(ctx, func(tx *Store) error {
		if _, err := tx.Follows().Create(ctx, alice.ID, bob.ID); err != nil {
			return err
		}
		return fmt.Errorf("notification write failed")
	})
	require.Error(t, err)

	exists, err := s.Follows().Exists(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}
