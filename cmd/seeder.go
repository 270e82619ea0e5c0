package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with default categories and a demo user",
	Long:  `Seed the database with the default category set and a demo user for development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		defaultCategories := []struct {
			Name string
			Type string
		}{
			{"Salary", "income"},
			{"Freelance", "income"},
			{"Investments", "income"},
			{"Gift", "income"},
			{"Other Income", "income"},
			{"Rent", "expense"},
			{"Groceries", "expense"},
			{"Utilities", "expense"},
			{"Transportation", "expense"},
			{"Entertainment", "expense"},
			{"Healthcare", "expense"},
			{"Shopping", "expense"},
			{"Dining Out", "expense"},
			{"Travel", "expense"},
			{"Education", "expense"},
			{"Other Expense", "expense"},
			{"Opening Balance", "starting_balance"},
		}

		for _, c := range defaultCategories {
			if _, err := db.Exec(
				"INSERT INTO categories (name, type) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING",
				c.Name, c.Type,
			); err != nil {
				log.Fatalf("failed to seed category %s: %v", c.Name, err)
			}
		}
		fmt.Println("Seeded default categories")

		demoEmail := "demo@moneta.dev"
		var exists int
		demoExists := false
		if err := db.QueryRow("SELECT 1 FROM users WHERE email = $1", demoEmail).Scan(&exists); err == nil {
			fmt.Println("demo user already exists")
			demoExists = true
		}

		if !demoExists {
			hash, err := bcrypt.GenerateFromPassword([]byte("password"), cfg.Security.BCryptCost)
			if err != nil {
				log.Fatalf("failed to hash demo password: %v", err)
			}
			if _, err := db.Exec(
				"INSERT INTO users (email, name, password_hash, is_active, created_at, updated_at) VALUES ($1, $2, $3, true, now(), now())",
				demoEmail, "Demo User", string(hash),
			); err != nil {
				log.Fatalf("failed to insert demo user: %v", err)
			}
			fmt.Println("Seeded demo user:", demoEmail)
		}
	},
}
