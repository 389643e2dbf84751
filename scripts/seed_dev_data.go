package main

import (
	"log"
	"time"

	"github.com/ecstasyholdings/meeting-brain/internal/domain/entities"
	"github.com/ecstasyholdings/meeting-brain/internal/infrastructure/database"
	"github.com/ecstasyholdings/meeting-brain/pkg/config"
)

func main() {
	log.Println("🚀 Seeding development data...")

	// Load configuration from .env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	log.Println("✅ Database connected successfully")

	testUsers := []struct {
		Email string
		Name  string
	}{
		{Email: "alice@ecstasyholdings.com", Name: "Alice"},
		{Email: "bob@ecstasyholdings.com", Name: "Bob"},
		{Email: "charlie@ecstasyholdings.com", Name: "Charlie"},
	}

	log.Println("🗑️  Cleaning up existing seed data...")
	db.Where("email LIKE ?", "%@ecstasyholdings.com").Delete(&entities.User{})
	db.Where("meeting_id = ?", "dev-meeting-1").Delete(&entities.ScheduledMeeting{})

	log.Println("👥 Creating internal users...")
	for _, testUser := range testUsers {
		user := entities.NewUser(testUser.Email, testUser.Name)
		if err := db.Create(user).Error; err != nil {
			log.Printf("❌ Failed to create user %s: %v", testUser.Email, err)
			continue
		}
		log.Printf("   %s (%s)", user.Email, user.ID)
	}

	log.Println("📅 Creating a scheduled meeting manifest...")
	manifest := &entities.ScheduledMeeting{
		MeetingID: "dev-meeting-1",
		Topic:     "Weekly Operations Sync",
		StartTime: time.Now().Add(time.Hour),
		Duration:  30,
		Participants: []string{
			"alice@ecstasyholdings.com",
			"bob@ecstasyholdings.com",
			"guest@example.com",
		},
		HostEmail:      "alice@ecstasyholdings.com",
		CreatedByEmail: "alice@ecstasyholdings.com",
	}
	if err := db.Create(manifest).Error; err != nil {
		log.Fatalf("❌ Failed to create scheduled meeting: %v", err)
	}

	log.Println("✅ Seed data created")
	log.Println("💡 Post a recording.completed webhook with meeting id dev-meeting-1 to exercise the full pipeline")
}
