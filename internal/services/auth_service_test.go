package services_test

import (
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"katalog/internal/apperrors"
	"katalog/internal/models"
	"katalog/internal/services"
)

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

func newAuthService(userRepo *MockUserRepository) *services.AuthService {
	return services.NewAuthService(userRepo, "test_jwt_secret", "test_refresh_secret", 15*time.Minute, 24*time.Hour)
}

func validSignupInput() models.SignupInput {
	return models.SignupInput{
		Fullname: "Jordan Tester",
		Email:    "jordan@example.com",
		Password: "password123",
	}
}

func TestAuthService_Signup_HashesPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newAuthService(mockRepo)

	input := validSignupInput()
	mockRepo.On("FindByEmail", input.Email).Return(nil, nil).Once()
	mockRepo.On("FindByFullname", input.Fullname).Return(nil, nil).Once()

	var created *models.User
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*models.User)
	}).Return(nil).Once()

	user, err := service.Signup(input)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte(input.Password)))
	// The returned record never carries the hash.
	assert.Empty(t, user.Password)
	assert.Equal(t, "user", user.Role)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Signup_EmailTaken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newAuthService(mockRepo)

	input := validSignupInput()
	mockRepo.On("FindByEmail", input.Email).Return(&models.User{ID: "u-1"}, nil).Once()

	_, err := service.Signup(input)

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_Signup_FullnameTaken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newAuthService(mockRepo)

	input := validSignupInput()
	mockRepo.On("FindByEmail", input.Email).Return(nil, nil).Once()
	mockRepo.On("FindByFullname", input.Fullname).Return(&models.User{ID: "u-2"}, nil).Once()

	_, err := service.Signup(input)

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestAuthService_Signup_StoreLevelDuplicateBecomesConflict(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newAuthService(mockRepo)

	input := validSignupInput()
	// Fast path sees nothing; the unique index still fires on insert.
	mockRepo.On("FindByEmail", input.Email).Return(nil, nil).Once()
	mockRepo.On("FindByFullname", input.Fullname).Return(nil, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(gorm.ErrDuplicatedKey).Once()

	_, err := service.Signup(input)

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestAuthService_Signup_InvalidInput(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newAuthService(mockRepo)

	input := validSignupInput()
	input.Password = "short"

	_, err := service.Signup(input)

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func storedUser(t *testing.T) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID:       "u-1",
		Fullname: "Jordan Tester",
		Email:    "jordan@example.com",
		Password: string(hash),
		Role:     "user",
	}
}

func TestAuthService_Login_IssuesTokenPair(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newAuthService(mockRepo)

	user := storedUser(t)
	mockRepo.On("FindByEmail", user.Email).Return(user, nil).Once()

	tokens, err := service.Login(models.LoginInput{Email: user.Email, Password: "password123"})

	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)
	assert.NotEqual(t, tokens.AccessToken, tokens.RefreshToken)

	claims, err := service.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims["user_id"])
	assert.Equal(t, user.Email, claims["email"])
	assert.Equal(t, user.Role, claims["role"])
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newAuthService(mockRepo)

	mockRepo.On("FindByEmail", "nobody@example.com").Return(nil, nil).Once()

	_, err := service.Login(models.LoginInput{Email: "nobody@example.com", Password: "whatever"})

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newAuthService(mockRepo)

	user := storedUser(t)
	mockRepo.On("FindByEmail", user.Email).Return(user, nil).Once()

	_, err := service.Login(models.LoginInput{Email: user.Email, Password: "wrong-password"})

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindAuthentication, apperrors.KindOf(err))
}

func TestAuthService_Refresh(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newAuthService(mockRepo)

	user := storedUser(t)
	mockRepo.On("FindByEmail", user.Email).Return(user, nil).Once()
	mockRepo.On("FindByID", user.ID).Return(user, nil).Once()

	tokens, err := service.Login(models.LoginInput{Email: user.Email, Password: "password123"})
	require.NoError(t, err)

	accessToken, err := service.Refresh(tokens.RefreshToken)
	require.NoError(t, err)

	claims, err := service.ValidateToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims["user_id"])
}

func TestAuthService_Refresh_AccessTokenRejected(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newAuthService(mockRepo)

	user := storedUser(t)
	mockRepo.On("FindByEmail", user.Email).Return(user, nil).Once()

	tokens, err := service.Login(models.LoginInput{Email: user.Email, Password: "password123"})
	require.NoError(t, err)

	// Access tokens are signed with the other secret and must not refresh.
	_, err = service.Refresh(tokens.AccessToken)
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindAuthentication, apperrors.KindOf(err))
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newAuthService(mockRepo)

	_, err := service.ValidateToken("not-a-token")

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindAuthentication, apperrors.KindOf(err))
}
