package services

import (
	"testing"

	"coringas/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a fresh in-memory database per test.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Member{},
		&models.Game{},
		&models.Quest{},
		&models.Team{},
		&models.TeamMember{},
		&models.TeamQuest{},
		&models.WhatsAppSettings{},
		&models.BillingSettings{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

func seedGame(t *testing.T, db *gorm.DB) *models.Game {
	t.Helper()

	admin := models.Member{Name: "Admin", Email: "admin@coringas.test", Password: "x", Status: models.MemberApproved, IsAdmin: true}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	game := models.Game{Title: "Gincana", Slug: "gincana", Status: models.GameActive, CreatedBy: admin.ID}
	if err := db.Create(&game).Error; err != nil {
		t.Fatalf("seed game: %v", err)
	}
	return &game
}

func seedQuest(t *testing.T, db *gorm.DB, game *models.Game, points int, status models.QuestStatus, visible bool) *models.Quest {
	t.Helper()

	quest := models.Quest{
		GameID:  game.ID,
		Title:   "Quest",
		Points:  points,
		Status:  status,
		Visible: visible,
	}
	if err := db.Create(&quest).Error; err != nil {
		t.Fatalf("seed quest: %v", err)
	}
	return &quest
}

func seedTeam(t *testing.T, db *gorm.DB, game *models.Game, name string, status models.TeamStatus) *models.Team {
	t.Helper()

	leader := models.Member{Name: name + " leader", Email: name + "@coringas.test", Password: "x", Status: models.MemberApproved}
	if err := db.Create(&leader).Error; err != nil {
		t.Fatalf("seed leader: %v", err)
	}

	team := models.Team{GameID: game.ID, Name: name, Status: status, LeaderID: leader.ID}
	if err := db.Create(&team).Error; err != nil {
		t.Fatalf("seed team: %v", err)
	}

	membership := models.TeamMember{TeamID: team.ID, MemberID: leader.ID, Status: models.TeamMemberActive, IsOwner: true}
	if err := db.Create(&membership).Error; err != nil {
		t.Fatalf("seed leader membership: %v", err)
	}

	return &team
}

func seedProgress(t *testing.T, db *gorm.DB, team *models.Team, quest *models.Quest) *models.TeamQuest {
	t.Helper()

	record := models.TeamQuest{TeamID: team.ID, QuestID: quest.ID, Status: models.TeamQuestPending}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("seed progress record: %v", err)
	}
	return &record
}
