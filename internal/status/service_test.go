package status_test

import (
	"errors"
	"log/slog"
	"os"
	"sort"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rosterguard/roster-guardian/internal"
	statusDatamodel "github.com/rosterguard/roster-guardian/internal/core/datamodel/status"
	"github.com/rosterguard/roster-guardian/internal/status"
)

func TestStatusService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Status Service Suite")
}

// MockRepository implements status.RepositoryAPI for testing
type MockRepository struct {
	statuses   map[int64]*statusDatamodel.IssueStatus
	nextID     int64
	references map[int64]int
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		statuses:   make(map[int64]*statusDatamodel.IssueStatus),
		references: make(map[int64]int),
		nextID:     1,
	}
}

func (m *MockRepository) GetActive() ([]*statusDatamodel.IssueStatus, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*statusDatamodel.IssueStatus
	for _, s := range m.statuses {
		if s.IsActive {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SortOrder < result[j].SortOrder
	})
	return result, nil
}

func (m *MockRepository) GetByID(id int64) (*statusDatamodel.IssueStatus, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.statuses[id], nil
}

func (m *MockRepository) GetByName(name string) (*statusDatamodel.IssueStatus, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, s := range m.statuses {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) GetDefault() (*statusDatamodel.IssueStatus, error) {
	active, err := m.GetActive()
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, nil
	}
	return active[0], nil
}

func (m *MockRepository) Create(row *statusDatamodel.IssueStatus) error {
	if m.shouldFail {
		return m.failError
	}
	row.ID = m.nextID
	m.nextID++
	m.statuses[row.ID] = row
	return nil
}

func (m *MockRepository) Update(row *statusDatamodel.IssueStatus) error {
	if m.shouldFail {
		return m.failError
	}
	m.statuses[row.ID] = row
	return nil
}

func (m *MockRepository) DeleteIfUnreferenced(id int64) error {
	if m.shouldFail {
		return m.failError
	}
	if m.references[id] > 0 {
		return internal.ErrStatusInUse
	}
	if _, ok := m.statuses[id]; !ok {
		return internal.ErrStatusNotFound
	}
	delete(m.statuses, id)
	return nil
}

func (m *MockRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

func (m *MockRepository) SetReferenceCount(id int64, count int) {
	m.references[id] = count
}

var _ = Describe("Status Service", func() {
	var (
		mockRepo *MockRepository
		service  *status.Service
		logger   *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = status.NewService(mockRepo, logger)
	})

	Describe("ListActive", func() {
		BeforeEach(func() {
			Expect(service.EnsureDefaults()).To(Succeed())
		})

		It("should return statuses ordered by sort order", func() {
			statuses, err := service.ListActive()
			Expect(err).NotTo(HaveOccurred())
			Expect(statuses).To(HaveLen(4))
			Expect(statuses[0].Name).To(Equal("open"))
			Expect(statuses[3].Name).To(Equal("closed"))
		})

		It("should exclude deactivated statuses", func() {
			closed, err := service.ListActive()
			Expect(err).NotTo(HaveOccurred())

			last := closed[len(closed)-1]
			_, err = service.Update(last.ID, status.UpdateStatusDTO{
				Name:      last.Name,
				Color:     last.Color,
				SortOrder: last.SortOrder,
				IsActive:  false,
			})
			Expect(err).NotTo(HaveOccurred())

			statuses, err := service.ListActive()
			Expect(err).NotTo(HaveOccurred())
			Expect(statuses).To(HaveLen(3))
		})
	})

	Describe("Default", func() {
		It("should resolve the lowest sort order entry, not a fixed id", func() {
			// Seed in reverse order so id 1 is not the lowest sort order.
			mockRepo.Create(&statusDatamodel.IssueStatus{Name: "closed", SortOrder: 4, IsActive: true})
			mockRepo.Create(&statusDatamodel.IssueStatus{Name: "open", SortOrder: 1, IsActive: true})

			def, err := service.Default()
			Expect(err).NotTo(HaveOccurred())
			Expect(def.Name).To(Equal("open"))
			Expect(def.ID).To(Equal(int64(2)))
		})

		It("should fail when the catalog is empty", func() {
			_, err := service.Default()
			Expect(err).To(Equal(internal.ErrStatusNotFound))
		})
	})

	Describe("Create", func() {
		It("should create a status with the neutral default color", func() {
			created, err := service.Create(status.CreateStatusDTO{Name: "blocked"})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.Color).To(Equal(status.DefaultColor))
			Expect(created.IsActive).To(BeTrue())
		})

		It("should reject a duplicate name", func() {
			_, err := service.Create(status.CreateStatusDTO{Name: "blocked"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(status.CreateStatusDTO{Name: "blocked"})
			Expect(err).To(Equal(internal.ErrDuplicateStatus))
		})

		It("should reject an empty name", func() {
			_, err := service.Create(status.CreateStatusDTO{})
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("Update", func() {
		BeforeEach(func() {
			Expect(service.EnsureDefaults()).To(Succeed())
		})

		It("should replace all mutable fields", func() {
			updated, err := service.Update(1, status.UpdateStatusDTO{
				Name:      "triage",
				Color:     "#123456",
				SortOrder: 9,
				IsActive:  true,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("triage"))
			Expect(updated.Color).To(Equal("#123456"))
			Expect(updated.SortOrder).To(Equal(9))
		})

		It("should fail for an unknown id", func() {
			_, err := service.Update(99, status.UpdateStatusDTO{Name: "x", Color: "#000000"})
			Expect(err).To(Equal(internal.ErrStatusNotFound))
		})

		It("should reject renaming onto an existing name", func() {
			_, err := service.Update(1, status.UpdateStatusDTO{Name: "closed", Color: "#000000"})
			Expect(err).To(Equal(internal.ErrDuplicateStatus))
		})
	})

	Describe("Delete", func() {
		BeforeEach(func() {
			Expect(service.EnsureDefaults()).To(Succeed())
		})

		It("should delete an unreferenced status", func() {
			Expect(service.Delete(1)).To(Succeed())
			_, err := service.GetByID(1)
			Expect(err).To(Equal(internal.ErrStatusNotFound))
		})

		It("should refuse to delete a referenced status", func() {
			mockRepo.SetReferenceCount(1, 3)
			err := service.Delete(1)
			Expect(err).To(Equal(internal.ErrStatusInUse))
		})

		It("should fail for an unknown id", func() {
			err := service.Delete(99)
			Expect(err).To(Equal(internal.ErrStatusNotFound))
		})
	})

	Describe("EnsureDefaults", func() {
		It("should seed the four canonical statuses", func() {
			Expect(service.EnsureDefaults()).To(Succeed())

			statuses, err := service.ListActive()
			Expect(err).NotTo(HaveOccurred())
			Expect(statuses).To(HaveLen(4))
			Expect(statuses[0].Color).To(Equal("#EF4444"))
		})

		It("should be idempotent across repeated runs", func() {
			Expect(service.EnsureDefaults()).To(Succeed())
			Expect(service.EnsureDefaults()).To(Succeed())

			statuses, err := service.ListActive()
			Expect(err).NotTo(HaveOccurred())
			Expect(statuses).To(HaveLen(4))
		})

		It("should propagate repository errors", func() {
			mockRepo.SetShouldFail(true, errors.New("database error"))
			Expect(service.EnsureDefaults()).NotTo(Succeed())
		})
	})
})
