package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/rosterguard/roster-guardian/internal/status"
	statusPostgres "github.com/rosterguard/roster-guardian/internal/status/postgres"
	"github.com/rosterguard/roster-guardian/internal/user"
	"github.com/rosterguard/roster-guardian/pkg/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the admin account and status catalog",
	Long:  `Seed the canonical issue statuses and an initial admin user. Safe to run repeatedly.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		logger.Init(os.Getenv("APP_ENV"))
		lg := logger.LoggerWrapper()

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gormDB, err := initGorm(db)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		statusService := status.NewService(statusPostgres.NewStatusRepository(gormDB), lg)
		if err := statusService.EnsureDefaults(); err != nil {
			log.Fatalf("failed to seed statuses: %v", err)
		}
		fmt.Println("Seeded canonical issue statuses")

		adminEmail := os.Getenv("SEED_ADMIN_EMAIL")
		if adminEmail == "" {
			adminEmail = "admin@rosterguard.local"
		}
		adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
		if adminPassword == "" {
			adminPassword = "changeme-now"
		}

		var exists int
		row := db.QueryRow("SELECT 1 FROM users WHERE email = $1", adminEmail)
		if err := row.Scan(&exists); err == nil {
			fmt.Println("Admin user already exists:", adminEmail)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash admin password: %v", err)
		}

		_, err = db.Exec(
			"INSERT INTO users (email, name, password_hash, role, created_at) VALUES ($1, $2, $3, $4, now())",
			adminEmail, "Administrator", string(hash), user.RoleAdmin,
		)
		if err != nil {
			log.Fatalf("failed to insert admin user: %v", err)
		}
		fmt.Println("Seeded admin user:", adminEmail)
	},
}
