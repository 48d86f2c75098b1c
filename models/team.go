// models/team.go
package models

import "time"

type TeamStatus string

const (
	TeamPending  TeamStatus = "pendente"
	TeamActive   TeamStatus = "ativa"
	TeamRejected TeamStatus = "rejeitada"
)

type Team struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	GameID    uint         `json:"game_id" gorm:"not null;index"`
	Game      *Game        `json:"game,omitempty" gorm:"foreignKey:GameID"`
	Name      string       `json:"name" gorm:"not null;size:100"`
	Status    TeamStatus   `json:"status" gorm:"not null;default:'pendente';index"`
	LeaderID  uint         `json:"leader_id" gorm:"not null"`
	Leader    *Member      `json:"leader,omitempty" gorm:"foreignKey:LeaderID"`
	Members   []TeamMember `json:"members,omitempty" gorm:"foreignKey:TeamID"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (Team) TableName() string {
	return "teams"
}
