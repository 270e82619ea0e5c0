package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ErdhyErnando/moneta/internal/auth"
	authPostgres "github.com/ErdhyErnando/moneta/internal/auth/postgres"
	userDatamodel "github.com/ErdhyErnando/moneta/internal/core/datamodel/user"
)

func TestAuthPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Postgres Suite")
}

var _ = Describe("Auth Repository", func() {
	var (
		db   *gorm.DB
		repo auth.Repository
	)

	BeforeEach(func() {
		var err error
		// SQLite in-memory database stands in for Postgres
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&userDatamodel.User{}, &userDatamodel.Session{})
		Expect(err).NotTo(HaveOccurred())

		repo = authPostgres.NewAuthRepository(db)
	})

	seedUser := func(email string) *userDatamodel.User {
		u := &userDatamodel.User{
			Email:        email,
			Name:         "Demo User",
			PasswordHash: "hash",
			IsActive:     true,
		}
		Expect(db.Create(u).Error).To(Succeed())
		return u
	}

	Describe("GetUserByEmail", func() {
		It("should retrieve a user by email", func() {
			seeded := seedUser("demo@moneta.dev")

			result, err := repo.GetUserByEmail("demo@moneta.dev")

			Expect(err).NotTo(HaveOccurred())
			Expect(result).NotTo(BeNil())
			Expect(result.ID).To(Equal(seeded.ID))
		})

		It("should return nil for an unknown email", func() {
			result, err := repo.GetUserByEmail("nobody@moneta.dev")

			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(BeNil())
		})
	})

	Describe("GetUserByID", func() {
		It("should return nil for an unknown id", func() {
			result, err := repo.GetUserByID(999)

			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(BeNil())
		})
	})

	Describe("Sessions", func() {
		It("should persist and retrieve a session by token", func() {
			u := seedUser("demo@moneta.dev")
			session := &userDatamodel.Session{
				UserID:    u.ID,
				Token:     "refresh-token",
				ExpiresAt: time.Now().Add(time.Hour),
				CreatedAt: time.Now(),
			}
			Expect(repo.CreateSession(session)).To(Succeed())

			result, err := repo.GetSessionByToken("refresh-token")

			Expect(err).NotTo(HaveOccurred())
			Expect(result).NotTo(BeNil())
			Expect(result.UserID).To(Equal(u.ID))
		})

		It("should return nil for an unknown token", func() {
			result, err := repo.GetSessionByToken("not-a-token")

			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(BeNil())
		})

		It("should delete a session by token", func() {
			u := seedUser("demo@moneta.dev")
			session := &userDatamodel.Session{
				UserID:    u.ID,
				Token:     "refresh-token",
				ExpiresAt: time.Now().Add(time.Hour),
				CreatedAt: time.Now(),
			}
			Expect(repo.CreateSession(session)).To(Succeed())

			Expect(repo.DeleteSession("refresh-token")).To(Succeed())

			result, err := repo.GetSessionByToken("refresh-token")
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(BeNil())
		})
	})
})
