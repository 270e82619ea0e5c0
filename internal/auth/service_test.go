package auth_test

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/ErdhyErnando/moneta/internal"
	"github.com/ErdhyErnando/moneta/internal/auth"
	userDatamodel "github.com/ErdhyErnando/moneta/internal/core/datamodel/user"
)

func TestAuthService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Service Suite")
}

// Mock repository for testing. Lookups return nil for missing rows, matching
// the repository contract; the error fields simulate storage failures.
type mockAuthRepository struct {
	usersByEmail  map[string]*userDatamodel.User
	usersByID     map[int64]*userDatamodel.User
	sessions      map[string]*userDatamodel.Session
	userError     error
	sessionError  error
	getError      error
	nextSessionID int64
}

func newMockAuthRepository() *mockAuthRepository {
	return &mockAuthRepository{
		usersByEmail:  make(map[string]*userDatamodel.User),
		usersByID:     make(map[int64]*userDatamodel.User),
		sessions:      make(map[string]*userDatamodel.Session),
		nextSessionID: 1,
	}
}

func (m *mockAuthRepository) addUser(user *userDatamodel.User) {
	m.usersByEmail[user.Email] = user
	m.usersByID[user.ID] = user
}

func (m *mockAuthRepository) GetUserByEmail(email string) (*userDatamodel.User, error) {
	if m.userError != nil {
		return nil, m.userError
	}
	return m.usersByEmail[email], nil
}

func (m *mockAuthRepository) GetUserByID(id int64) (*userDatamodel.User, error) {
	if m.userError != nil {
		return nil, m.userError
	}
	return m.usersByID[id], nil
}

func (m *mockAuthRepository) CreateSession(session *userDatamodel.Session) error {
	if m.sessionError != nil {
		return m.sessionError
	}
	session.ID = m.nextSessionID
	m.nextSessionID++
	m.sessions[session.Token] = session
	return nil
}

func (m *mockAuthRepository) GetSessionByToken(token string) (*userDatamodel.Session, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	return m.sessions[token], nil
}

func (m *mockAuthRepository) DeleteSession(token string) error {
	delete(m.sessions, token)
	return nil
}

var _ = Describe("AuthService", func() {
	var (
		service  *auth.Service
		mockRepo *mockAuthRepository
		tokens   *auth.JWTTokenGenerator
		user     *userDatamodel.User
	)

	BeforeEach(func() {
		mockRepo = newMockAuthRepository()
		tokens = auth.NewJWTTokenGenerator("test-secret-0123456789-0123456789ab", 15*time.Minute)
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = auth.NewService(mockRepo, tokens, 7*24*time.Hour, logger)

		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
		Expect(err).NotTo(HaveOccurred())
		user = &userDatamodel.User{
			ID:           1,
			Email:        "demo@moneta.dev",
			Name:         "Demo User",
			PasswordHash: string(hash),
			IsActive:     true,
		}
		mockRepo.addUser(user)
	})

	Describe("Authenticate", func() {
		It("should issue a token pair for valid credentials", func() {
			result, err := service.Authenticate(auth.LoginDTO{Email: "demo@moneta.dev", Password: "password"})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.AccessToken).NotTo(BeEmpty())
			Expect(result.RefreshToken).NotTo(BeEmpty())
			Expect(mockRepo.sessions).To(HaveKey(result.RefreshToken))
		})

		It("should embed the user id in the access token", func() {
			result, err := service.Authenticate(auth.LoginDTO{Email: "demo@moneta.dev", Password: "password"})
			Expect(err).NotTo(HaveOccurred())

			claims, err := service.ValidateAccessToken(result.AccessToken)

			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID()).To(Equal(user.ID))
			Expect(claims.Email).To(Equal(user.Email))
		})

		It("should reject an unknown email", func() {
			_, err := service.Authenticate(auth.LoginDTO{Email: "nobody@moneta.dev", Password: "password"})

			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})

		It("should reject a wrong password", func() {
			_, err := service.Authenticate(auth.LoginDTO{Email: "demo@moneta.dev", Password: "wrong"})

			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})

		It("should reject an inactive user", func() {
			user.IsActive = false

			_, err := service.Authenticate(auth.LoginDTO{Email: "demo@moneta.dev", Password: "password"})

			Expect(err).To(Equal(internal.ErrUserInactive))
		})

		It("should reject an empty payload", func() {
			_, err := service.Authenticate(auth.LoginDTO{})

			Expect(err).To(HaveOccurred())
		})

		It("should report a failing user lookup as an internal error", func() {
			mockRepo.userError = errors.New("connection refused")

			_, err := service.Authenticate(auth.LoginDTO{Email: "demo@moneta.dev", Password: "password"})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusInternalServerError))
		})
	})

	Describe("RefreshTokens", func() {
		var initial auth.AuthTokens

		BeforeEach(func() {
			var err error
			initial, err = service.Authenticate(auth.LoginDTO{Email: "demo@moneta.dev", Password: "password"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should rotate the refresh token", func() {
			result, err := service.RefreshTokens(initial.RefreshToken)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.RefreshToken).NotTo(Equal(initial.RefreshToken))
			Expect(mockRepo.sessions).NotTo(HaveKey(initial.RefreshToken))
			Expect(mockRepo.sessions).To(HaveKey(result.RefreshToken))
		})

		It("should reject an unknown refresh token", func() {
			_, err := service.RefreshTokens("not-a-token")

			Expect(err).To(Equal(internal.ErrSessionNotFound))
		})

		It("should reject a rotated-out refresh token", func() {
			_, err := service.RefreshTokens(initial.RefreshToken)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.RefreshTokens(initial.RefreshToken)

			Expect(err).To(Equal(internal.ErrSessionNotFound))
		})

		It("should reject an expired session and revoke it", func() {
			mockRepo.sessions[initial.RefreshToken].ExpiresAt = time.Now().Add(-time.Hour)

			_, err := service.RefreshTokens(initial.RefreshToken)

			Expect(err).To(Equal(internal.ErrTokenExpired))
			Expect(mockRepo.sessions).NotTo(HaveKey(initial.RefreshToken))
		})

		It("should reject a session for a deactivated user", func() {
			user.IsActive = false

			_, err := service.RefreshTokens(initial.RefreshToken)

			Expect(err).To(Equal(internal.ErrUserInactive))
		})

		It("should report a failing session lookup as an internal error", func() {
			mockRepo.getError = errors.New("connection refused")

			_, err := service.RefreshTokens(initial.RefreshToken)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusInternalServerError))
		})
	})

	Describe("Logout", func() {
		It("should revoke the session", func() {
			result, err := service.Authenticate(auth.LoginDTO{Email: "demo@moneta.dev", Password: "password"})
			Expect(err).NotTo(HaveOccurred())

			err = service.Logout(result.RefreshToken)

			Expect(err).NotTo(HaveOccurred())
			Expect(mockRepo.sessions).NotTo(HaveKey(result.RefreshToken))
		})

		It("should report unknown tokens", func() {
			err := service.Logout("not-a-token")

			Expect(err).To(Equal(internal.ErrSessionNotFound))
		})
	})

	Describe("ValidateAccessToken", func() {
		It("should reject a forged token", func() {
			other := auth.NewJWTTokenGenerator("another-secret-entirely-0123456789", 15*time.Minute)
			forged, err := other.GenerateAccessToken(user.ID, user.Email)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.ValidateAccessToken(forged)

			Expect(err).To(Equal(internal.ErrInvalidToken))
		})

		It("should reject an expired token", func() {
			shortLived := auth.NewJWTTokenGenerator("test-secret-0123456789-0123456789ab", time.Nanosecond)
			expired, err := shortLived.GenerateAccessToken(user.ID, user.Email)
			Expect(err).NotTo(HaveOccurred())
			time.Sleep(10 * time.Millisecond)

			_, err = shortLived.ValidateAccessToken(expired)

			Expect(err).To(Equal(internal.ErrTokenExpired))
		})

		It("should reject garbage", func() {
			_, err := service.ValidateAccessToken("garbage")

			Expect(err).To(Equal(internal.ErrInvalidToken))
		})
	})

	Describe("GetUser", func() {
		It("should return the owner view", func() {
			result, err := service.GetUser(user.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Email).To(Equal("demo@moneta.dev"))
			Expect(result.Name).To(Equal("Demo User"))
		})

		It("should reject an unknown user id", func() {
			_, err := service.GetUser(999)

			Expect(err).To(Equal(internal.ErrInvalidToken))
		})
	})
})
