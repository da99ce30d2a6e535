package user_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/rosterguard/roster-guardian/internal"
	userDatamodel "github.com/rosterguard/roster-guardian/internal/core/datamodel/user"
	"github.com/rosterguard/roster-guardian/internal/user"
)

func TestUserService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Service Suite")
}

// MockRepository implements user.Repository for testing
type MockRepository struct {
	users      map[int64]*userDatamodel.User
	referenced map[int64]bool
	nextID     int64
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		users:      make(map[int64]*userDatamodel.User),
		referenced: make(map[int64]bool),
		nextID:     1,
	}
}

func (m *MockRepository) Create(row *userDatamodel.User) error {
	if m.shouldFail {
		return m.failError
	}
	for _, u := range m.users {
		if u.Email == row.Email {
			return internal.ErrDuplicateEmail
		}
	}
	row.ID = m.nextID
	m.nextID++
	m.users[row.ID] = row
	return nil
}

func (m *MockRepository) GetByID(userID int64) (*userDatamodel.User, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.users[userID], nil
}

func (m *MockRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) List() ([]*userDatamodel.User, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*userDatamodel.User
	for id := int64(1); id < m.nextID; id++ {
		if u, ok := m.users[id]; ok {
			result = append(result, u)
		}
	}
	return result, nil
}

func (m *MockRepository) Update(userID int64, fields map[string]interface{}) error {
	if m.shouldFail {
		return m.failError
	}
	row, ok := m.users[userID]
	if !ok {
		return internal.ErrUserNotFound
	}
	if v, ok := fields["name"]; ok {
		row.Name = v.(string)
	}
	if v, ok := fields["role"]; ok {
		row.Role = v.(string)
	}
	if v, ok := fields["profile_image"]; ok {
		img := v.(string)
		row.ProfileImage = &img
	}
	if v, ok := fields["contact_number"]; ok {
		num := v.(string)
		row.ContactNumber = &num
	}
	if v, ok := fields["bio"]; ok {
		bio := v.(string)
		row.Bio = &bio
	}
	return nil
}

func (m *MockRepository) DeleteIfUnreferenced(userID int64) error {
	if m.shouldFail {
		return m.failError
	}
	if m.referenced[userID] {
		return internal.ErrUserReferenced
	}
	if _, ok := m.users[userID]; !ok {
		return internal.ErrUserNotFound
	}
	delete(m.users, userID)
	return nil
}

var _ = Describe("User Service", func() {
	var (
		mockRepo *MockRepository
		service  *user.Service
		logger   *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = user.NewService(mockRepo, bcrypt.MinCost, logger)
	})

	Describe("Register", func() {
		It("should create a user with a bcrypt hash", func() {
			created, err := service.Register(user.RegisterDTO{
				Email:    "ann@example.com",
				Password: "correct-horse",
				Name:     "Ann",
				Role:     user.RoleSupport,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).To(BeNumerically(">", 0))

			stored := mockRepo.users[created.ID]
			Expect(stored.PasswordHash).NotTo(Equal("correct-horse"))
			Expect(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct-horse"))).To(Succeed())
		})

		It("should reject a duplicate email", func() {
			_, err := service.Register(user.RegisterDTO{
				Email:    "ann@example.com",
				Password: "correct-horse",
				Name:     "Ann",
				Role:     user.RoleSupport,
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Register(user.RegisterDTO{
				Email:    "ann@example.com",
				Password: "another-pass",
				Name:     "Ann Again",
				Role:     user.RoleQA,
			})
			Expect(err).To(Equal(internal.ErrDuplicateEmail))
		})

		It("should reject a role outside the closed set", func() {
			_, err := service.Register(user.RegisterDTO{
				Email:    "bob@example.com",
				Password: "correct-horse",
				Name:     "Bob",
				Role:     "superuser",
			})
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidRole))
		})

		It("should reject a short password", func() {
			_, err := service.Register(user.RegisterDTO{
				Email:    "bob@example.com",
				Password: "short",
				Name:     "Bob",
				Role:     user.RoleQA,
			})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Update", func() {
		var userID int64

		BeforeEach(func() {
			created, err := service.Register(user.RegisterDTO{
				Email:    "ann@example.com",
				Password: "correct-horse",
				Name:     "Ann",
				Role:     user.RoleSupport,
			})
			Expect(err).NotTo(HaveOccurred())
			userID = created.ID
		})

		It("should apply only the provided fields", func() {
			bio := "on-call lead"
			updated, err := service.Update(userID, user.UpdateDTO{Bio: &bio})
			Expect(err).NotTo(HaveOccurred())
			Expect(*updated.Bio).To(Equal("on-call lead"))
			Expect(updated.Name).To(Equal("Ann"))
			Expect(updated.Role).To(Equal(user.RoleSupport))
		})

		It("should return the profile unchanged for an empty update", func() {
			updated, err := service.Update(userID, user.UpdateDTO{})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("Ann"))
		})

		It("should fail for an unknown user", func() {
			name := "Ghost"
			_, err := service.Update(99, user.UpdateDTO{Name: &name})
			Expect(err).To(Equal(internal.ErrUserNotFound))
		})

		It("should reject an invalid role", func() {
			role := "superuser"
			_, err := service.Update(userID, user.UpdateDTO{Role: &role})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Delete", func() {
		var userID int64

		BeforeEach(func() {
			created, err := service.Register(user.RegisterDTO{
				Email:    "ann@example.com",
				Password: "correct-horse",
				Name:     "Ann",
				Role:     user.RoleSupport,
			})
			Expect(err).NotTo(HaveOccurred())
			userID = created.ID
		})

		It("should delete an unreferenced user", func() {
			Expect(service.Delete(userID)).To(Succeed())
			Expect(mockRepo.users).To(BeEmpty())
		})

		It("should refuse to delete a user with authored history", func() {
			mockRepo.referenced[userID] = true

			err := service.Delete(userID)
			Expect(err).To(Equal(internal.ErrUserReferenced))
			Expect(mockRepo.users).To(HaveKey(userID))
		})

		It("should fail for an unknown user", func() {
			Expect(service.Delete(99)).To(Equal(internal.ErrUserNotFound))
		})
	})

	Describe("List", func() {
		It("should return all users", func() {
			for _, email := range []string{"a@example.com", "b@example.com"} {
				_, err := service.Register(user.RegisterDTO{
					Email:    email,
					Password: "correct-horse",
					Name:     "User",
					Role:     user.RoleDeveloper,
				})
				Expect(err).NotTo(HaveOccurred())
			}

			users, err := service.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(HaveLen(2))
		})
	})
})
