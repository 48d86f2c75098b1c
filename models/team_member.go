// models/team_member.go
package models

import "time"

type TeamMemberStatus string

const (
	TeamMemberPending TeamMemberStatus = "pendente"
	TeamMemberActive  TeamMemberStatus = "ativo"
)

type TeamMember struct {
	ID       uint             `json:"id" gorm:"primaryKey"`
	TeamID   uint             `json:"team_id" gorm:"not null;index"`
	Team     *Team            `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	MemberID uint             `json:"member_id" gorm:"not null;index"`
	Member   *Member          `json:"member,omitempty" gorm:"foreignKey:MemberID"`
	Status   TeamMemberStatus `json:"status" gorm:"not null;default:'pendente';index"`

	// IsOwner is true only for the team's leader.
	IsOwner bool `json:"is_owner" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TeamMember) TableName() string {
	return "team_members"
}
