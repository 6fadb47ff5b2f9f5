package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"testing"
	"time"

	"socialfeed/backend/internal/apperr"
	"socialfeed/backend/internal/database"
	"socialfeed/backend/internal/database/dbtest"
	"socialfeed/backend/internal/models"
	"socialfeed/backend/internal/repository"
	"socialfeed/backend/pkg/jwt"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	hashCost = bcrypt.MinCost
	os.Exit(m.Run())
}

type fakeBinder struct {
	uploaded   []string
	destroyed  []string
	destroyErr error
}

func (b *fakeBinder) Upload(ctx context.Context, payload string) (string, error) {
	b.uploaded = append(b.uploaded, payload)
	return fmt.Sprintf("https://img.example.com/v1/image%d.png", len(b.uploaded)), nil
}

func (b *fakeBinder) Destroy(ctx context.Context, imageURL string) error {
	b.destroyed = append(b.destroyed, imageURL)
	return b.destroyErr
}

type fixture struct {
	db     *gorm.DB
	store  *repository.Store
	issuer *jwt.Issuer
	media  *fakeBinder
	auth   *AuthService
	users  *UserService
	posts  *PostService
	notes  *NotificationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)
	store := repository.NewStore(db)
	issuer := jwt.NewIssuer("test-secret", time.Hour)
	binder := &fakeBinder{}
	return &fixture{
		db:     db,
		store:  store,
		issuer: issuer,
		media:  binder,
		auth:   NewAuthService(store, issuer),
		users:  NewUserService(store, binder, nil),
		posts:  NewPostService(store, binder, nil),
		notes:  NewNotificationService(store),
	}
}

func (f *fixture) register(t *testing.T, username string) *Profile {
	t.Helper()
	p, _, err := f.auth.Register(context.Background(), RegisterInput{
		Username: username,
		FullName: username + " Test",
		Email:    username + "@example.com",
		Password: "password1",
	})
	require.NoError(t, err)
	return p
}

func TestRegisterRejectsBadInputWithoutCreatingUser(t *testing.T) {
	tests := []struct {
		name string
		in   RegisterInput
		msg  string
	}{
		{"malformed email", RegisterInput{Username: "alice", Email: "not-an-email", Password: "password1"}, "Invalid email"},
		{"empty email", RegisterInput{Username: "alice", Email: "", Password: "password1"}, "Invalid email"},
		{"short password", RegisterInput{Username: "alice", Email: "alice@x.com", Password: "short"}, "Password is weak"},
		{"seven characters", RegisterInput{Username: "alice", Email: "alice@x.com", Password: "1234567"}, "Password is weak"},
		{"missing username", RegisterInput{Username: "  ", Email: "alice@x.com", Password: "password1"}, "Username is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, _, err := f.auth.Register(context.Background(), tt.in)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			assert.Equal(t, tt.msg, apperr.Message(err))

			_, err = f.store.Users().FindByEmail(context.Background(), "alice@x.com")
			assert.ErrorIs(t, err, repository.ErrNotFound)
		})
	}
}

func TestRegisterIssuesTokenAndHashesPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, token, err := f.auth.Register(ctx, RegisterInput{
		Username: "alice", FullName: "Alice A", Email: "alice@x.com", Password: "password1",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", p.User.Username)
	assert.Equal(t, "Alice A", p.User.FullName)
	assert.Empty(t, p.Followers)
	assert.Empty(t, p.Following)
	assert.NotNil(t, p.LikedPosts)

	sub, err := f.issuer.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, p.User.ID, sub)

	stored, err := f.store.Users().FindByID(ctx, p.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "password1", stored.PasswordHash)
	assert.True(t, checkPassword(stored.PasswordHash, "password1"))
}

func TestRegisterDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "alice")

	_, _, err := f.auth.Register(ctx, RegisterInput{Username: "alice", Email: "new@x.com", Password: "password1"})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, "Username is already taken", apperr.Message(err))

	_, _, err = f.auth.Register(ctx, RegisterInput{Username: "alice2", Email: "alice@example.com", Password: "password1"})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, "Email is already taken", apperr.Message(err))
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice")

	p, token, err := f.auth.Login(ctx, "alice", "password1")
	require.NoError(t, err)
	assert.Equal(t, alice.User.ID, p.User.ID)
	assert.NotEmpty(t, token)

	_, _, err = f.auth.Login(ctx, "alice", "wrong-password")
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))
	assert.Equal(t, "Wrong Username or Password", apperr.Message(err))

	_, _, err = f.auth.Login(ctx, "nobody", "password1")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "Wrong Username or Password", apperr.Message(err))
}

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice")

	token, err := f.issuer.GenerateToken(alice.User.ID)
	require.NoError(t, err)
	id, err := f.auth.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, alice.User.ID, id)

	_, err = f.auth.Authenticate("")
	assert.Equal(t, "Unauthorized: No Token Provided", apperr.Message(err))

	_, err = f.auth.Authenticate("not.a.token")
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))
	assert.Equal(t, "Unauthorized: Invalid Token", apperr.Message(err))

	expired, err := jwt.NewIssuer("test-secret", -time.Minute).GenerateToken(alice.User.ID)
	require.NoError(t, err)
	_, err = f.auth.Authenticate(expired)
	assert.Equal(t, "Unauthorized: Token Expired", apperr.Message(err))
}

func TestMeReusesLoadedUser(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := database.Open(postgres.New(postgres.Config{Conn: sqlDB}))
	require.NoError(t, err)
	store := repository.NewStore(db)

	// Only the edge lists are read; the user row is never fetched again.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "follower_id" FROM "follows"`)).
		WillReturnRows(sqlmock.NewRows([]string{"follower_id"}).AddRow("bob-id"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "followee_id" FROM "follows"`)).
		WillReturnRows(sqlmock.NewRows([]string{"followee_id"}))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "post_id" FROM "likes"`)).
		WillReturnRows(sqlmock.NewRows([]string{"post_id"}).AddRow("post-1"))

	user := &models.User{Username: "alice"}
	user.ID = "alice-id"
	p, err := NewAuthService(store, jwt.NewIssuer("s", time.Hour)).Me(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, "alice", p.User.Username)
	assert.Equal(t, []string{"bob-id"}, p.Followers)
	assert.Empty(t, p.Following)
	assert.Equal(t, []string{"post-1"}, p.LikedPosts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreFailureIsUnexpected(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := database.Open(postgres.New(postgres.Config{Conn: sqlDB}))
	require.NoError(t, err)
	store := repository.NewStore(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WillReturnError(errors.New("connection reset by peer"))

	_, err = NewUserService(store, &fakeBinder{}, nil).GetProfile(context.Background(), "alice")
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnexpected, apperr.KindOf(err))
	assert.Equal(t, apperr.UnexpectedMessage, apperr.Message(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
