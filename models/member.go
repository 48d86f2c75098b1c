// models/member.go
package models

import "time"

type MemberStatus string

const (
	MemberPending  MemberStatus = "pendente"
	MemberApproved MemberStatus = "aprovado"
	MemberRejected MemberStatus = "rejeitado"
)

type Member struct {
	ID       uint         `json:"id" gorm:"primaryKey"`
	Name     string       `json:"name" gorm:"not null;size:100"`
	Email    string       `json:"email" gorm:"uniqueIndex;not null"`
	Password string       `json:"-" gorm:"not null"`
	Phone    string       `json:"phone" gorm:"size:20"`
	Nickname string       `json:"nickname" gorm:"size:50"`
	Status   MemberStatus `json:"status" gorm:"not null;default:'pendente';index"`
	IsAdmin  bool         `json:"is_admin" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	LastLogin time.Time `json:"last_login"`
}

func (Member) TableName() string {
	return "members"
}
