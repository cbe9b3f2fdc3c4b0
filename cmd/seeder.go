package cmd

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

type seedEmployee struct {
	Name        string
	IsManager   bool
	ManagerName string
	Password    string
}

var seedEmployees = []seedEmployee{
	{Name: "Priya Sharma", IsManager: true, Password: "password"},
	{Name: "Arjun Mehta", ManagerName: "Priya Sharma", Password: "password"},
	{Name: "Sana Kapoor", ManagerName: "Priya Sharma", Password: "password"},
	{Name: "Dev Patel", ManagerName: "Priya Sharma", Password: "password"},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
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

		if clearData {
			for _, table := range []string{"logins", "attendance_records", "leave_requests", "employees"} {
				if _, err := db.Exec("DELETE FROM " + table); err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		seedPolicy(db)

		for _, emp := range seedEmployees {
			seedOneEmployee(db, cfg.Security.BCryptCost, emp)
		}

		fmt.Println("Seeding complete")
	},
}

func seedPolicy(db *sqlx.DB) {
	var exists int
	err := db.QueryRow("SELECT 1 FROM leave_policies WHERE policy_key = $1", "default").Scan(&exists)
	if err == nil {
		fmt.Println("leave policy already exists")
		return
	}

	_, err = db.Exec(
		"INSERT INTO leave_policies (policy_key, sick_total, casual_total, created_at, updated_at) VALUES ($1, $2, $3, now(), now())",
		"default", 12, 10)
	if err != nil {
		log.Fatalf("failed to insert leave policy: %v", err)
	}
	fmt.Println("Seeded default leave policy: 12 sick, 10 casual")
}

func seedOneEmployee(db *sqlx.DB, bcryptCost int, emp seedEmployee) {
	var id int64
	err := db.QueryRow("SELECT id FROM employees WHERE emp_name = $1", emp.Name).Scan(&id)
	if err == nil {
		fmt.Println("employee already exists:", emp.Name)
		return
	}

	err = db.QueryRow(
		"INSERT INTO employees (emp_name, is_manager, manager_name, total_sick_leave_taken, total_casual_leave_taken, created_at, updated_at) VALUES ($1, $2, $3, 0, 0, now(), now()) RETURNING id",
		emp.Name, emp.IsManager, emp.ManagerName).Scan(&id)
	if err != nil {
		log.Fatalf("failed to insert employee %s: %v", emp.Name, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(emp.Password), bcryptCost)
	if err != nil {
		log.Fatalf("failed to hash password for %s: %v", emp.Name, err)
	}

	_, err = db.Exec(
		"INSERT INTO logins (employee_id, password_hash, created_at, updated_at) VALUES ($1, $2, now(), now())",
		id, string(hash))
	if err != nil {
		log.Fatalf("failed to insert login for %s: %v", emp.Name, err)
	}

	fmt.Printf("Seeded employee %s (id=%d)\n", emp.Name, id)
}
