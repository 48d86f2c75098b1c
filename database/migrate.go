// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"coringas/models"

	"gorm.io/gorm"
)

// Migrate runs all schema migrations.
func Migrate(db *gorm.DB) error {
	log.Println("🔄 Running database migrations...")

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
		return err
	}

	createIndexes(db)

	log.Println("✅ All migrations completed successfully")
	return nil
}

// createIndexes creates indexes AutoMigrate does not cover.
func createIndexes(db *gorm.DB) {
	// Member indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_members_status ON members(status)")

	// Game / quest indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_games_status ON games(status)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_quests_game ON quests(game_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_quests_game_status ON quests(game_id, status)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_quests_window ON quests(start_date, end_date)")

	// Team indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_teams_game ON teams(game_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_teams_game_status ON teams(game_id, status)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_team_members_team ON team_members(team_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_team_members_member ON team_members(member_id)")

	// Progress record indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_team_quests_quest ON team_quests(quest_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_team_quests_status ON team_quests(status)")
}
