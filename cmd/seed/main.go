package main

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"crmhub/internal/auth"
	"crmhub/internal/config"
	"crmhub/internal/db"
	"crmhub/internal/model"
	"crmhub/internal/repository"
)

// Seed data for a fresh workspace: one admin, one manager, a few customers
// and an example appointment so the dashboard is not empty on first login.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Customer{},
		&model.Appointment{},
		&model.Task{},
		&model.AuditLog{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	customerRepo := repository.NewCustomerRepository(gormDB)
	appointmentRepo := repository.NewAppointmentRepository(gormDB)

	users := []struct {
		email, password, firstName, lastName, role string
	}{
		{"admin@example.com", "admin-change-me", "Ada", "Admin", model.RoleAdmin},
		{"manager@example.com", "manager-change-me", "Mia", "Manager", model.RoleManager},
		{"staff@example.com", "staff-change-me", "Sam", "Staff", model.RoleStaff},
	}

	for _, u := range users {
		if _, err := userRepo.FindByEmail(ctx, u.email); err == nil {
			log.Printf("User %s already exists, skipping", u.email)
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to check user %s: %v", u.email, err)
		}

		hash, err := auth.HashPassword(u.password)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		if err := userRepo.Create(ctx, &model.User{
			Email:        u.email,
			PasswordHash: hash,
			FirstName:    u.firstName,
			LastName:     u.lastName,
			Role:         u.role,
			IsActive:     true,
		}); err != nil {
			log.Fatalf("Failed to create user %s: %v", u.email, err)
		}
		log.Printf("Created user %s (%s)", u.email, u.role)
	}

	customers := []model.Customer{
		{FirstName: "Grace", LastName: "Hopper", Email: "grace@acme.test", Company: "Acme Corp", Status: model.CustomerStatusActive},
		{FirstName: "Alan", LastName: "Turing", Email: "alan@globex.test", Company: "Globex", Status: model.CustomerStatusLead},
		{FirstName: "Katherine", LastName: "Johnson", Email: "katherine@initech.test", Company: "Initech", Status: model.CustomerStatusActive},
	}

	created := 0
	for i := range customers {
		existing, _, err := customerRepo.List(ctx, repository.CustomerFilter{Search: customers[i].Email}, 1, 1)
		if err != nil {
			log.Fatalf("Failed to check customer %s: %v", customers[i].Email, err)
		}
		if len(existing) > 0 {
			continue
		}
		if err := customerRepo.Create(ctx, &customers[i]); err != nil {
			log.Fatalf("Failed to create customer %s: %v", customers[i].Email, err)
		}
		created++
	}
	log.Printf("Created %d customers", created)

	if created > 0 {
		start := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
		appt := &model.Appointment{
			CustomerID: customers[0].ID,
			EmployeeID: "emp-demo",
			Title:      "Onboarding call",
			StartTime:  start,
			EndTime:    start.Add(time.Hour),
			Status:     model.AppointmentStatusScheduled,
		}
		if err := appointmentRepo.CreateIfFree(ctx, appt); err != nil {
			if errors.Is(err, repository.ErrSlotTaken) {
				log.Println("Example appointment slot already taken, skipping")
			} else {
				log.Fatalf("Failed to create appointment: %v", err)
			}
		} else {
			log.Printf("Created example appointment %s", appt.ID)
		}
	}

	log.Println("Seed complete")
}
