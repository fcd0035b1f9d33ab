// Seeds a local database with demo data: one admin, one client, a project
// with a populated task board, a couple of files, and a pending invoice.
// Idempotent on the users (insert-or-get by email); safe to re-run against a
// fresh database, additive against an existing one.
package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"client-portal-backend/internal/config"
	"client-portal-backend/internal/database"
	"client-portal-backend/internal/models"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	admin, err := db.InsertOrGetUserByEmail("admin@example.com", "Studio Admin", models.RoleAdmin)
	if err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}
	if admin.Role != models.RoleAdmin {
		if err := db.SetUserRole(admin.ID, models.RoleAdmin); err != nil {
			log.Fatalf("Failed to promote admin: %v", err)
		}
	}

	client, err := db.InsertOrGetUserByEmail("client@example.com", "Demo Client", models.RoleClient)
	if err != nil {
		log.Fatalf("Failed to seed client: %v", err)
	}

	project, err := db.CreateProject(client.ID, "Corporate Site Redesign", models.ProjectStatusConcept)
	if err != nil {
		log.Fatalf("Failed to seed project: %v", err)
	}

	tasks := []struct {
		title  string
		status models.TaskStatus
		tags   []string
		order  int64
	}{
		{"Kickoff hearing notes", models.TaskStatusDone, []string{"hearing"}, 1},
		{"Sitemap draft", models.TaskStatusInProgress, []string{"concept", "ia"}, 2},
		{"Wireframes: top page", models.TaskStatusTodo, []string{"wireframe"}, 3},
		{"Visual design direction", models.TaskStatusTodo, []string{"design"}, 4},
	}
	for _, t := range tasks {
		due := time.Now().AddDate(0, 0, 14)
		_, err := db.CreateTask(&models.Task{
			ID:        uuid.New(),
			ProjectID: project.ID,
			Title:     t.title,
			Status:    t.status,
			Tags:      pq.StringArray(t.tags),
			DueDate:   sql.NullTime{Time: due, Valid: true},
			SortOrder: sql.NullInt64{Int64: t.order, Valid: true},
		})
		if err != nil {
			log.Fatalf("Failed to seed task %q: %v", t.title, err)
		}
	}

	_, err = db.CreateFile(&models.File{
		ID:          uuid.New(),
		ProjectID:   project.ID,
		Name:        "brand-guidelines.pdf",
		ExternalURL: sql.NullString{String: "https://example.com/brand-guidelines.pdf", Valid: true},
		MimeType:    "application/pdf",
		Category:    models.FileCategoryGeneral,
		UploadedBy:  client.ID,
	})
	if err != nil {
		log.Fatalf("Failed to seed file: %v", err)
	}

	_, err = db.CreateFile(&models.File{
		ID:            uuid.New(),
		ProjectID:     project.ID,
		Name:          "concept-board-v1.png",
		StorageHandle: sql.NullString{String: "projects/" + project.ID.String() + "/concept-board-v1.png", Valid: true},
		MimeType:      "image/png",
		Category:      models.FileCategoryArtifact,
		Status:        sql.NullString{String: string(models.FileStatusPending), Valid: true},
		UploadedBy:    admin.ID,
	})
	if err != nil {
		log.Fatalf("Failed to seed artifact: %v", err)
	}

	if _, err := db.CreateInvoice(project.ID, 350000, models.CurrencyJPY); err != nil {
		log.Fatalf("Failed to seed invoice: %v", err)
	}
	if err := db.SetProjectPaymentPending(project.ID, true); err != nil {
		log.Fatalf("Failed to flag payment pending: %v", err)
	}

	log.Printf("Seeded project %s for %s", project.ID, client.Email)
}
