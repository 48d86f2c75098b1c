// models/game.go
package models

import "time"

type GameStatus string

const (
	GamePending GameStatus = "pendente"
	GameActive  GameStatus = "ativo"
	GameClosed  GameStatus = "encerrado"
)

type Game struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"not null;size:150"`
	Description string     `json:"description" gorm:"type:text"`
	Slug        string     `json:"slug" gorm:"uniqueIndex;size:160"`
	Status      GameStatus `json:"status" gorm:"not null;default:'pendente';index"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	CreatedBy   uint       `json:"created_by" gorm:"not null"`
	Creator     *Member    `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	Quests      []Quest    `json:"quests,omitempty" gorm:"foreignKey:GameID"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Game) TableName() string {
	return "games"
}
