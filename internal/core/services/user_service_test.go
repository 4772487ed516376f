package services_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/vkravets/contacts_api/internal/apperrors"
	"github.com/vkravets/contacts_api/internal/core/domain"
	portssvc "github.com/vkravets/contacts_api/internal/core/ports/services"
	"github.com/vkravets/contacts_api/internal/core/services"
	"github.com/vkravets/contacts_api/internal/dto"
	"github.com/vkravets/contacts_api/internal/utils"
)

// --- Mock email sender ---
// Sends happen in a background goroutine, so captures go through a channel.
type sentEmail struct {
	ToEmail  string
	Username string
	Token    string
	BaseURL  string
}

type mockEmailSender struct {
	sent chan sentEmail
	err  error
}

func newMockEmailSender() *mockEmailSender {
	return &mockEmailSender{sent: make(chan sentEmail, 8)}
}

func (m *mockEmailSender) SendConfirmation(_ context.Context, toEmail, username, token, baseURL string) error {
	m.sent <- sentEmail{ToEmail: toEmail, Username: username, Token: token, BaseURL: baseURL}
	return m.err
}

func (m *mockEmailSender) waitForSend(t *testing.T) sentEmail {
	t.Helper()
	select {
	case e := <-m.sent:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for confirmation email dispatch")
		return sentEmail{}
	}
}

// --- Mock avatar uploader ---
type mockUploader struct {
	url string
	err error
}

func (m *mockUploader) Upload(_ context.Context, username string, _ io.Reader) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.url + "/" + username, nil
}

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	cache        *fakeUserCache
	sender       *mockEmailSender
	uploader     *mockUploader
	tokenSvc     portssvc.TokenSvcFacade
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	cfg := newTestConfig()
	suite.mockUserRepo = new(MockUserRepository)
	suite.cache = newFakeUserCache()
	suite.sender = newMockEmailSender()
	suite.uploader = &mockUploader{url: "https://res.cloudinary.example/avatars"}
	suite.tokenSvc = services.NewTokenService(cfg, suite.mockUserRepo, suite.cache)
	suite.service = services.NewUserService(cfg, suite.mockUserRepo, suite.tokenSvc, suite.sender, suite.uploader, suite.cache, nil)
}

// --- Register Tests ---

func (suite *UserServiceTestSuite) TestRegister_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "password123"}

	suite.mockUserRepo.FindUserByUsernameFn = func(ctx context.Context, username string) (*domain.User, error) {
		return nil, apperrors.ErrNotFound
	}
	suite.mockUserRepo.FindUserByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
		return nil, apperrors.ErrNotFound
	}
	var created domain.User
	suite.mockUserRepo.CreateUserFn = func(ctx context.Context, user domain.User) error {
		created = user
		return nil
	}

	user, err := suite.service.Register(ctx, req)
	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal("alice", user.Username)
	suite.NotEmpty(user.UserID)
	suite.False(user.Confirmed)
	suite.NotEqual("password123", created.PasswordHash)
	suite.True(utils.CheckPasswordHash("password123", created.PasswordHash))

	// The confirmation email carries a valid email-scope token for the address.
	email := suite.sender.waitForSend(suite.T())
	suite.Equal("alice@example.com", email.ToEmail)
	suite.Equal("alice", email.Username)
	subject, err := suite.tokenSvc.VerifyConfirmationToken(email.Token)
	suite.Require().NoError(err)
	suite.Equal("alice@example.com", subject)
}

func (suite *UserServiceTestSuite) TestRegister_DuplicateUsername() {
	ctx := context.Background()
	req := dto.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "password123"}

	suite.mockUserRepo.FindUserByUsernameFn = func(ctx context.Context, username string) (*domain.User, error) {
		return &domain.User{UserID: uuid.NewString(), Username: "alice"}, nil
	}
	createCalled := false
	suite.mockUserRepo.CreateUserFn = func(ctx context.Context, user domain.User) error {
		createCalled = true
		return nil
	}

	user, err := suite.service.Register(ctx, req)
	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrUsernameExists)
	suite.False(createCalled)
}

func (suite *UserServiceTestSuite) TestRegister_DuplicateEmail() {
	ctx := context.Background()
	req := dto.RegisterRequest{Username: "alice", Email: "taken@example.com", Password: "password123"}

	suite.mockUserRepo.FindUserByUsernameFn = func(ctx context.Context, username string) (*domain.User, error) {
		return nil, apperrors.ErrNotFound
	}
	suite.mockUserRepo.FindUserByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
		return &domain.User{UserID: uuid.NewString(), Email: "taken@example.com"}, nil
	}
	createCalled := false
	suite.mockUserRepo.CreateUserFn = func(ctx context.Context, user domain.User) error {
		createCalled = true
		return nil
	}

	user, err := suite.service.Register(ctx, req)
	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrEmailExists)
	suite.False(createCalled)
}

// --- ConfirmEmail Tests ---

func (suite *UserServiceTestSuite) TestConfirmEmail_Success() {
	ctx := context.Background()
	token, err := suite.tokenSvc.IssueConfirmationToken("alice@example.com")
	suite.Require().NoError(err)

	user := &domain.User{UserID: uuid.NewString(), Username: "alice", Email: "alice@example.com", Confirmed: false}
	suite.mockUserRepo.FindUserByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
		suite.Equal("alice@example.com", email)
		return user, nil
	}
	confirmed := false
	suite.mockUserRepo.ConfirmEmailFn = func(ctx context.Context, email string) error {
		confirmed = true
		return nil
	}

	// A stale cached snapshot must be dropped on confirmation.
	suite.Require().NoError(suite.cache.Set(ctx, "user:alice", []byte(`{"username":"alice"}`), 0))

	alreadyConfirmed, err := suite.service.ConfirmEmail(ctx, token)
	suite.Require().NoError(err)
	suite.False(alreadyConfirmed)
	suite.True(confirmed)
	suite.False(suite.cache.contains("user:alice"))
}

func (suite *UserServiceTestSuite) TestConfirmEmail_AlreadyConfirmed() {
	ctx := context.Background()
	token, err := suite.tokenSvc.IssueConfirmationToken("alice@example.com")
	suite.Require().NoError(err)

	user := &domain.User{UserID: uuid.NewString(), Username: "alice", Email: "alice@example.com", Confirmed: true}
	suite.mockUserRepo.FindUserByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
		return user, nil
	}
	confirmCalled := false
	suite.mockUserRepo.ConfirmEmailFn = func(ctx context.Context, email string) error {
		confirmCalled = true
		return nil
	}

	alreadyConfirmed, err := suite.service.ConfirmEmail(ctx, token)
	suite.Require().NoError(err)
	suite.True(alreadyConfirmed)
	suite.False(confirmCalled)
}

func (suite *UserServiceTestSuite) TestConfirmEmail_GarbageToken() {
	_, err := suite.service.ConfirmEmail(context.Background(), "garbage")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnprocessableToken)
}

func (suite *UserServiceTestSuite) TestConfirmEmail_WrongScope() {
	token, err := suite.tokenSvc.IssueAccessToken("alice")
	suite.Require().NoError(err)

	_, err = suite.service.ConfirmEmail(context.Background(), token)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidScope)
}

// --- RequestConfirmationEmail Tests ---

func (suite *UserServiceTestSuite) TestRequestConfirmationEmail_Resends() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), Username: "alice", Email: "alice@example.com", Confirmed: false}
	suite.mockUserRepo.FindUserByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
		return user, nil
	}

	alreadyConfirmed, err := suite.service.RequestConfirmationEmail(ctx, "alice@example.com")
	suite.Require().NoError(err)
	suite.False(alreadyConfirmed)

	email := suite.sender.waitForSend(suite.T())
	suite.Equal("alice@example.com", email.ToEmail)
}

func (suite *UserServiceTestSuite) TestRequestConfirmationEmail_AlreadyConfirmed() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), Username: "alice", Email: "alice@example.com", Confirmed: true}
	suite.mockUserRepo.FindUserByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
		return user, nil
	}

	alreadyConfirmed, err := suite.service.RequestConfirmationEmail(ctx, "alice@example.com")
	suite.Require().NoError(err)
	suite.True(alreadyConfirmed)

	select {
	case e := <-suite.sender.sent:
		suite.Failf("unexpected email", "sent to %s", e.ToEmail)
	case <-time.After(100 * time.Millisecond):
	}
}

func (suite *UserServiceTestSuite) TestRequestConfirmationEmail_UnknownEmail() {
	suite.mockUserRepo.FindUserByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
		return nil, apperrors.ErrNotFound
	}

	_, err := suite.service.RequestConfirmationEmail(context.Background(), "ghost@example.com")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- UpdateAvatar Tests ---

func (suite *UserServiceTestSuite) TestUpdateAvatar_Success() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), Username: "alice", Email: "alice@example.com", Confirmed: true}

	suite.mockUserRepo.UpdateAvatarFn = func(ctx context.Context, userID string, avatarURL string) (*domain.User, error) {
		suite.Equal(user.UserID, userID)
		updated := *user
		updated.AvatarURL = avatarURL
		return &updated, nil
	}

	suite.Require().NoError(suite.cache.Set(ctx, "user:alice", []byte(`{"username":"alice"}`), 0))

	updated, err := suite.service.UpdateAvatar(ctx, user, strings.NewReader("fake-image-bytes"))
	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.Equal("https://res.cloudinary.example/avatars/alice", updated.AvatarURL)
	suite.False(suite.cache.contains("user:alice"))
}

func (suite *UserServiceTestSuite) TestUpdateAvatar_UploadError() {
	suite.uploader.err = io.ErrUnexpectedEOF

	user := &domain.User{UserID: uuid.NewString(), Username: "alice"}
	updateCalled := false
	suite.mockUserRepo.UpdateAvatarFn = func(ctx context.Context, userID string, avatarURL string) (*domain.User, error) {
		updateCalled = true
		return nil, nil
	}

	_, err := suite.service.UpdateAvatar(context.Background(), user, strings.NewReader("fake-image-bytes"))
	suite.Require().Error(err)
	suite.False(updateCalled)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
