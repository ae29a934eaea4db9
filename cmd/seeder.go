package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with an admin user, a view-only user, the permission set and a few sample staff records.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm: %v", err)
		}

		if clearData {
			if err := db.Exec("DELETE FROM staff_records").Error; err != nil {
				log.Fatalf("failed to clear staff records: %v", err)
			}
			fmt.Println("Cleared staff records")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.BCryptCost)

		seedUser(db, "admin@mail.com", "Compliance Admin", string(hash))
		seedUser(db, "viewer@mail.com", "Read Only", string(hash))

		permissions := []struct {
			Name string
			Desc string
		}{
			{"admin", "full administrator"},
			{"manage_records", "Can create, edit and delete staff records"},
			{"import_records", "Can bulk-import spreadsheets"},
			{"manage_departments", "Can create departments and move staff"},
			{"wipe_database", "Can wipe the whole registry"},
			{"view_audit_logs", "Can read the audit trail"},
		}

		for _, p := range permissions {
			var pid int64
			row := db.Raw("SELECT id FROM permissions WHERE name = ?", p.Name).Row()
			if err := row.Scan(&pid); err != nil {
				if err := db.Exec("INSERT INTO permissions (name, description, created_at) VALUES (?, ?, now())", p.Name, p.Desc).Error; err != nil {
					log.Fatalf("failed to insert permission %s: %v", p.Name, err)
				}
			}
		}

		var adminUserID int64
		if err := db.Raw("SELECT id FROM users WHERE email = ?", "admin@mail.com").Row().Scan(&adminUserID); err != nil {
			log.Fatalf("failed to lookup admin user id: %v", err)
		}

		for _, p := range permissions {
			var pid int64
			if err := db.Raw("SELECT id FROM permissions WHERE name = ?", p.Name).Row().Scan(&pid); err != nil {
				log.Fatalf("permission not found after insert %s: %v", p.Name, err)
			}

			var exists int
			if err := db.Raw("SELECT 1 FROM user_permissions WHERE user_id = ? AND permission_id = ?", adminUserID, pid).Row().Scan(&exists); err == nil {
				continue
			}

			if err := db.Exec("INSERT INTO user_permissions (user_id, permission_id, created_at) VALUES (?, ?, now())", adminUserID, pid).Error; err != nil {
				log.Fatalf("failed to grant permission %s to admin user: %v", p.Name, err)
			}
		}
		fmt.Println("Granted all permissions to admin@mail.com; viewer@mail.com stays view-only")

		sampleStaff := []struct {
			SrNo, First, Last, Email, Department string
		}{
			{"1", "Aisha", "Rahman", "aisha.rahman@hospital.example", "Cardiology"},
			{"2", "Budi", "Santoso", "budi.santoso@hospital.example", "Radiology"},
			{"3", "Clara", "Wijaya", "clara.wijaya@hospital.example", ""},
		}
		for _, s := range sampleStaff {
			var exists int
			if err := db.Raw("SELECT 1 FROM staff_records WHERE LOWER(email) = LOWER(?)", s.Email).Row().Scan(&exists); err == nil {
				continue
			}
			dept := s.Department
			if dept == "" {
				dept = "Unassigned"
			}
			if err := db.Exec(`INSERT INTO staff_records
				(email, sr_no, first_name, last_name, department, status, notification_sent, undertaking_received, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, 'Pending', false, false, now(), now())`,
				s.Email, s.SrNo, s.First, s.Last, dept).Error; err != nil {
				log.Fatalf("failed to insert sample staff %s: %v", s.Email, err)
			}
		}
		fmt.Println("Seeded sample staff records")
	},
}

func seedUser(db *gorm.DB, email, name, passwordHash string) {
	var exists int
	if err := db.Raw("SELECT 1 FROM users WHERE email = ?", email).Row().Scan(&exists); err == nil {
		fmt.Printf("user %s already exists\n", email)
		return
	}

	if err := db.Exec("INSERT INTO users (email, name, password_hash, is_active, created_at, updated_at) VALUES (?, ?, ?, true, now(), now())", email, name, passwordHash).Error; err != nil {
		log.Fatalf("failed to insert user %s: %v", email, err)
	}
	fmt.Println("Seeded user:", email)
}
