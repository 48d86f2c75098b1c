// cmd/seed-admin - creates or promotes the first administrator account
package main

import (
	"flag"
	"log"

	"coringas/database"
	"coringas/models"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	name := flag.String("name", "", "Administrator name")
	email := flag.String("email", "", "Administrator email")
	password := flag.String("password", "", "Administrator password (min 8 chars)")
	flag.Parse()

	if *email == "" || len(*password) < 8 {
		log.Fatal("Usage: seed-admin -name NAME -email EMAIL -password PASSWORD (min 8 chars)")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	var member models.Member
	err = db.Where("email = ?", *email).First(&member).Error
	if err == nil {
		// Promote the existing account
		member.IsAdmin = true
		member.Status = models.MemberApproved
		member.Password = string(hash)
		if err := db.Save(&member).Error; err != nil {
			log.Fatalf("Failed to promote member: %v", err)
		}
		log.Printf("✅ Promoted %s to administrator", member.Email)
		return
	}

	adminName := *name
	if adminName == "" {
		adminName = "Administrador"
	}

	member = models.Member{
		Name:     adminName,
		Email:    *email,
		Password: string(hash),
		Status:   models.MemberApproved,
		IsAdmin:  true,
	}
	if err := db.Create(&member).Error; err != nil {
		log.Fatalf("Failed to create administrator: %v", err)
	}

	log.Printf("✅ Administrator %s created", member.Email)
}
