package postgres_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rosterguard/roster-guardian/internal"
	commentDatamodel "github.com/rosterguard/roster-guardian/internal/core/datamodel/comment"
	issueDatamodel "github.com/rosterguard/roster-guardian/internal/core/datamodel/issue"
	statusDatamodel "github.com/rosterguard/roster-guardian/internal/core/datamodel/status"
	userDatamodel "github.com/rosterguard/roster-guardian/internal/core/datamodel/user"
	"github.com/rosterguard/roster-guardian/internal/status"
	statusPostgres "github.com/rosterguard/roster-guardian/internal/status/postgres"
)

func TestStatusPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Status Postgres Suite")
}

var _ = Describe("Status Repository", func() {
	var (
		db   *gorm.DB
		repo status.RepositoryAPI
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&userDatamodel.User{},
			&statusDatamodel.IssueStatus{},
			&issueDatamodel.Issue{},
			&commentDatamodel.Comment{},
		)
		Expect(err).NotTo(HaveOccurred())

		repo = statusPostgres.NewStatusRepository(db)
	})

	seed := func(name string, sortOrder int, active bool) *statusDatamodel.IssueStatus {
		row := &statusDatamodel.IssueStatus{Name: name, Color: "#6B7280", SortOrder: sortOrder, IsActive: active}
		Expect(repo.Create(row)).To(Succeed())
		return row
	}

	Describe("GetActive", func() {
		It("should return active rows ordered by sort order", func() {
			seed("closed", 4, true)
			seed("open", 1, true)
			seed("hidden", 2, false)

			rows, err := repo.GetActive()
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
			Expect(rows[0].Name).To(Equal("open"))
			Expect(rows[1].Name).To(Equal("closed"))
		})
	})

	Describe("GetDefault", func() {
		It("should return the lowest sort order active row", func() {
			seed("closed", 4, true)
			seed("open", 1, true)

			row, err := repo.GetDefault()
			Expect(err).NotTo(HaveOccurred())
			Expect(row.Name).To(Equal("open"))
		})

		It("should skip inactive rows", func() {
			seed("hidden", 1, false)
			seed("open", 2, true)

			row, err := repo.GetDefault()
			Expect(err).NotTo(HaveOccurred())
			Expect(row.Name).To(Equal("open"))
		})

		It("should return nil for an empty catalog", func() {
			row, err := repo.GetDefault()
			Expect(err).NotTo(HaveOccurred())
			Expect(row).To(BeNil())
		})
	})

	Describe("DeleteIfUnreferenced", func() {
		It("should delete an unreferenced status", func() {
			row := seed("open", 1, true)

			Expect(repo.DeleteIfUnreferenced(row.ID)).To(Succeed())

			got, err := repo.GetByID(row.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeNil())
		})

		It("should refuse to delete a status referenced by an issue", func() {
			row := seed("open", 1, true)

			u := &userDatamodel.User{Email: "ann@example.com", PasswordHash: "x", Name: "Ann", Role: "support"}
			Expect(db.Create(u).Error).To(Succeed())
			Expect(db.Create(&issueDatamodel.Issue{
				Title:       "VPN down",
				Description: "Tunnel flapping",
				Date:        "2025-03-10",
				CreatedBy:   u.ID,
				StatusID:    row.ID,
			}).Error).To(Succeed())

			err := repo.DeleteIfUnreferenced(row.ID)
			Expect(err).To(Equal(internal.ErrStatusInUse))

			got, err := repo.GetByID(row.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).NotTo(BeNil())
		})

		It("should delete a status only audit comments reference and detach them", func() {
			open := seed("open", 1, true)
			resolved := seed("resolved", 3, true)

			u := &userDatamodel.User{Email: "ann@example.com", PasswordHash: "x", Name: "Ann", Role: "support"}
			Expect(db.Create(u).Error).To(Succeed())
			iss := &issueDatamodel.Issue{
				Title:       "VPN down",
				Description: "Tunnel flapping",
				Date:        "2025-03-10",
				CreatedBy:   u.ID,
				StatusID:    resolved.ID,
			}
			Expect(db.Create(iss).Error).To(Succeed())

			audit := &commentDatamodel.Comment{
				IssueID:     iss.ID,
				UserID:      u.ID,
				Content:     `Status changed from "open" to "resolved"`,
				CommentType: commentDatamodel.TypeStatusChange,
				OldStatusID: &open.ID,
				NewStatusID: &resolved.ID,
			}
			Expect(db.Create(audit).Error).To(Succeed())

			Expect(repo.DeleteIfUnreferenced(open.ID)).To(Succeed())

			var got commentDatamodel.Comment
			Expect(db.First(&got, audit.ID).Error).To(Succeed())
			Expect(got.OldStatusID).To(BeNil())
			Expect(got.NewStatusID).To(Equal(&resolved.ID))
			Expect(got.Content).To(ContainSubstring(`from "open"`))
		})

		It("should fail for an unknown id", func() {
			err := repo.DeleteIfUnreferenced(99)
			Expect(err).To(Equal(internal.ErrStatusNotFound))
		})
	})
})
