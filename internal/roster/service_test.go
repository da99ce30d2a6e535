package roster_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rosterguard/roster-guardian/internal"
	rosterDatamodel "github.com/rosterguard/roster-guardian/internal/core/datamodel/roster"
	"github.com/rosterguard/roster-guardian/internal/roster"
)

func TestRosterService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Roster Service Suite")
}

// MockRepository implements roster.Repository for testing
type MockRepository struct {
	users      map[int64]string
	entries    map[int64]*rosterDatamodel.Entry
	nextID     int64
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		users:   make(map[int64]string),
		entries: make(map[int64]*rosterDatamodel.Entry),
		nextID:  1,
	}
}

func (m *MockRepository) UserExists(userID int64) (bool, error) {
	if m.shouldFail {
		return false, m.failError
	}
	_, ok := m.users[userID]
	return ok, nil
}

func (m *MockRepository) taken(userID int64, date string, exceptID int64) bool {
	for id, e := range m.entries {
		if id != exceptID && e.UserID == userID && e.Date == date {
			return true
		}
	}
	return false
}

func (m *MockRepository) Create(entry *rosterDatamodel.Entry) error {
	if m.shouldFail {
		return m.failError
	}
	if m.taken(entry.UserID, entry.Date, 0) {
		return internal.ErrRosterConflict
	}
	entry.ID = m.nextID
	m.nextID++
	m.entries[entry.ID] = entry
	return nil
}

func (m *MockRepository) Update(entryID, userID int64, date string) error {
	if m.shouldFail {
		return m.failError
	}
	entry, ok := m.entries[entryID]
	if !ok {
		return internal.ErrRosterNotFound
	}
	if m.taken(userID, date, entryID) {
		return internal.ErrRosterConflict
	}
	entry.UserID = userID
	entry.Date = date
	return nil
}

func (m *MockRepository) Delete(entryID int64) error {
	if m.shouldFail {
		return m.failError
	}
	if _, ok := m.entries[entryID]; !ok {
		return internal.ErrRosterNotFound
	}
	delete(m.entries, entryID)
	return nil
}

func (m *MockRepository) ListRange(startDate, endDate string) ([]*roster.Assignment, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*roster.Assignment
	for id := int64(1); id < m.nextID; id++ {
		e, ok := m.entries[id]
		if !ok || e.Date < startDate || e.Date > endDate {
			continue
		}
		result = append(result, &roster.Assignment{
			Entry:    *roster.FromDataModel(e),
			UserName: m.users[e.UserID],
		})
	}
	return result, nil
}

var _ = Describe("Roster Service", func() {
	var (
		mockRepo *MockRepository
		service  *roster.Service
		logger   *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		mockRepo.users[1] = "Ann"
		mockRepo.users[2] = "Bob"
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = roster.NewService(mockRepo, logger)
	})

	Describe("Assign", func() {
		It("should create an entry", func() {
			entry, err := service.Assign(roster.AssignDTO{UserID: 1, Date: "2025-03-10"})
			Expect(err).NotTo(HaveOccurred())
			Expect(entry.ID).To(BeNumerically(">", 0))
			Expect(entry.Date).To(Equal("2025-03-10"))
		})

		It("should reject a duplicate (user, date) pair", func() {
			_, err := service.Assign(roster.AssignDTO{UserID: 1, Date: "2025-03-10"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Assign(roster.AssignDTO{UserID: 1, Date: "2025-03-10"})
			Expect(err).To(Equal(internal.ErrRosterConflict))
		})

		It("should allow the same user on another date", func() {
			_, err := service.Assign(roster.AssignDTO{UserID: 1, Date: "2025-03-10"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Assign(roster.AssignDTO{UserID: 1, Date: "2025-03-11"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should allow two users on the same date", func() {
			_, err := service.Assign(roster.AssignDTO{UserID: 1, Date: "2025-03-10"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Assign(roster.AssignDTO{UserID: 2, Date: "2025-03-10"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should fail for an unknown user", func() {
			_, err := service.Assign(roster.AssignDTO{UserID: 99, Date: "2025-03-10"})
			Expect(err).To(Equal(internal.ErrUserNotFound))
		})

		It("should reject a malformed date", func() {
			_, err := service.Assign(roster.AssignDTO{UserID: 1, Date: "March 10"})
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("Reassign", func() {
		var entryID int64

		BeforeEach(func() {
			entry, err := service.Assign(roster.AssignDTO{UserID: 1, Date: "2025-03-10"})
			Expect(err).NotTo(HaveOccurred())
			entryID = entry.ID
		})

		It("should replace both fields", func() {
			Expect(service.Reassign(entryID, roster.ReassignDTO{UserID: 2, Date: "2025-03-11"})).To(Succeed())
			Expect(mockRepo.entries[entryID].UserID).To(Equal(int64(2)))
			Expect(mockRepo.entries[entryID].Date).To(Equal("2025-03-11"))
		})

		It("should fail for an unknown entry", func() {
			err := service.Reassign(99, roster.ReassignDTO{UserID: 2, Date: "2025-03-11"})
			Expect(err).To(Equal(internal.ErrRosterNotFound))
		})

		It("should reject moving onto a taken (user, date) pair", func() {
			_, err := service.Assign(roster.AssignDTO{UserID: 2, Date: "2025-03-11"})
			Expect(err).NotTo(HaveOccurred())

			err = service.Reassign(entryID, roster.ReassignDTO{UserID: 2, Date: "2025-03-11"})
			Expect(err).To(Equal(internal.ErrRosterConflict))
		})
	})

	Describe("Unassign", func() {
		It("should delete an entry", func() {
			entry, err := service.Assign(roster.AssignDTO{UserID: 1, Date: "2025-03-10"})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Unassign(entry.ID)).To(Succeed())
			Expect(mockRepo.entries).To(BeEmpty())
		})

		It("should fail for an unknown entry", func() {
			Expect(service.Unassign(99)).To(Equal(internal.ErrRosterNotFound))
		})
	})

	Describe("ListRange", func() {
		BeforeEach(func() {
			_, err := service.Assign(roster.AssignDTO{UserID: 1, Date: "2025-03-10"})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Assign(roster.AssignDTO{UserID: 2, Date: "2025-03-10"})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Assign(roster.AssignDTO{UserID: 1, Date: "2025-03-12"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should group assignments by date", func() {
			grouped, err := service.ListRange("2025-03-10", "2025-03-12")
			Expect(err).NotTo(HaveOccurred())
			Expect(grouped).To(HaveLen(2))
			Expect(grouped["2025-03-10"]).To(HaveLen(2))
			Expect(grouped["2025-03-12"]).To(HaveLen(1))
		})

		It("should treat the range as inclusive", func() {
			grouped, err := service.ListRange("2025-03-12", "2025-03-12")
			Expect(err).NotTo(HaveOccurred())
			Expect(grouped).To(HaveLen(1))
			Expect(grouped["2025-03-12"][0].UserName).To(Equal("Ann"))
		})

		It("should return an empty map for an empty window", func() {
			grouped, err := service.ListRange("2025-04-01", "2025-04-30")
			Expect(err).NotTo(HaveOccurred())
			Expect(grouped).To(BeEmpty())
		})
	})
})
