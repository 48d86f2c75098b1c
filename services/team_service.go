// services/team_service.go - Team Formation Business Logic
package services

import (
	"errors"
	"time"

	"coringas/models"

	"gorm.io/gorm"
)

type TeamService struct {
	db     *gorm.DB
	quests *QuestService
}

func NewTeamService(db *gorm.DB, quests *QuestService) *TeamService {
	return &TeamService{db: db, quests: quests}
}

// ================== TEAM FORMATION ==================

// CreateTeam opens a team formation request. The team starts pendente
// and the creator becomes its leader.
func (s *TeamService) CreateTeam(gameID uint, name string, creatorID uint) (*models.Team, error) {
	if name == "" {
		return nil, errors.New("team name is required")
	}

	var game models.Game
	if err := s.db.First(&game, gameID).Error; err != nil {
		return nil, errors.New("game not found")
	}

	if active, err := s.memberActiveTeam(gameID, creatorID); err != nil {
		return nil, err
	} else if active != nil {
		return nil, errors.New("member already belongs to an active team in this game")
	}

	team := &models.Team{
		GameID:    gameID,
		Name:      name,
		Status:    models.TeamPending,
		LeaderID:  creatorID,
		CreatedAt: time.Now(),
	}

	// Create team and add creator as leader in a transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}

		member := &models.TeamMember{
			TeamID:   team.ID,
			MemberID: creatorID,
			Status:   models.TeamMemberActive,
			IsOwner:  true,
		}

		return tx.Create(member).Error
	})
	if err != nil {
		return nil, err
	}

	return team, nil
}

// GetTeamByID retrieves a team with members preloaded.
func (s *TeamService) GetTeamByID(teamID uint) (*models.Team, error) {
	var team models.Team
	err := s.db.Preload("Members").
		Preload("Members.Member").
		First(&team, teamID).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// GetMemberTeam returns the member's active team for a game, or nil.
func (s *TeamService) GetMemberTeam(gameID, memberID uint) (*models.Team, error) {
	return s.memberActiveTeam(gameID, memberID)
}

// memberActiveTeam resolves the single active team a member belongs to
// in a game. The one-active-team rule is enforced here at query time,
// not by a database constraint.
func (s *TeamService) memberActiveTeam(gameID, memberID uint) (*models.Team, error) {
	var team models.Team
	err := s.db.Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("teams.game_id = ? AND teams.status = ? AND team_members.member_id = ? AND team_members.status = ?",
			gameID, models.TeamActive, memberID, models.TeamMemberActive).
		First(&team).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// ListTeamsByGame returns the teams of a game, optionally by status.
func (s *TeamService) ListTeamsByGame(gameID uint, status models.TeamStatus) ([]models.Team, error) {
	query := s.db.Where("game_id = ?", gameID).Preload("Leader")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var teams []models.Team
	err := query.Order("created_at ASC").Find(&teams).Error
	return teams, err
}

// ================== ADMIN WORKFLOW ==================

// ActivateTeam approves a pending team and provisions its progress
// rows against any quests already active in the game.
func (s *TeamService) ActivateTeam(teamID uint) (*models.Team, error) {
	var team models.Team
	if err := s.db.First(&team, teamID).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Team{}).Where("id = ?", teamID).
		Updates(map[string]interface{}{"status": models.TeamActive, "updated_at": time.Now()}).Error; err != nil {
		return nil, err
	}
	team.Status = models.TeamActive

	if s.quests != nil {
		if err := s.quests.ProvisionTeam(&team); err != nil {
			return nil, err
		}
	}

	return &team, nil
}

// RejectTeam refuses a team formation request.
func (s *TeamService) RejectTeam(teamID uint) error {
	return s.db.Model(&models.Team{}).Where("id = ?", teamID).
		Updates(map[string]interface{}{"status": models.TeamRejected, "updated_at": time.Now()}).Error
}

// ================== MEMBERSHIP ==================

// RequestJoin files a pendente membership for the leader to review.
func (s *TeamService) RequestJoin(teamID, memberID uint) (*models.TeamMember, error) {
	var team models.Team
	if err := s.db.First(&team, teamID).Error; err != nil {
		return nil, errors.New("team not found")
	}

	if team.Status == models.TeamRejected {
		return nil, errors.New("team was rejected")
	}

	if active, err := s.memberActiveTeam(team.GameID, memberID); err != nil {
		return nil, err
	} else if active != nil {
		return nil, errors.New("member already belongs to an active team in this game")
	}

	var existing models.TeamMember
	err := s.db.Where("team_id = ? AND member_id = ?", teamID, memberID).First(&existing).Error
	if err == nil {
		return nil, errors.New("join request already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	membership := &models.TeamMember{
		TeamID:   teamID,
		MemberID: memberID,
		Status:   models.TeamMemberPending,
	}
	if err := s.db.Create(membership).Error; err != nil {
		return nil, err
	}

	return membership, nil
}

// ApproveJoiner lets the team leader activate a pending membership.
func (s *TeamService) ApproveJoiner(teamID, membershipID, leaderID uint) error {
	if err := s.requireLeader(teamID, leaderID); err != nil {
		return err
	}

	result := s.db.Model(&models.TeamMember{}).
		Where("id = ? AND team_id = ? AND status = ?", membershipID, teamID, models.TeamMemberPending).
		Updates(map[string]interface{}{"status": models.TeamMemberActive, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("pending membership not found")
	}
	return nil
}

// RejectJoiner removes a pending membership request.
func (s *TeamService) RejectJoiner(teamID, membershipID, leaderID uint) error {
	if err := s.requireLeader(teamID, leaderID); err != nil {
		return err
	}

	result := s.db.Where("id = ? AND team_id = ? AND status = ?",
		membershipID, teamID, models.TeamMemberPending).
		Delete(&models.TeamMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("pending membership not found")
	}
	return nil
}

// RemoveMember removes an active member from the team. The leader can
// never be removed through this path.
func (s *TeamService) RemoveMember(teamID, membershipID, leaderID uint) error {
	if err := s.requireLeader(teamID, leaderID); err != nil {
		return err
	}

	var membership models.TeamMember
	if err := s.db.Where("id = ? AND team_id = ?", membershipID, teamID).
		First(&membership).Error; err != nil {
		return errors.New("membership not found")
	}

	if membership.IsOwner {
		return errors.New("team leader cannot be removed")
	}

	return s.db.Delete(&membership).Error
}

// requireLeader verifies the acting member is the team's leader.
func (s *TeamService) requireLeader(teamID, memberID uint) error {
	var count int64
	if err := s.db.Model(&models.TeamMember{}).
		Where("team_id = ? AND member_id = ? AND is_owner = ?", teamID, memberID, true).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errors.New("only the team leader can manage members")
	}
	return nil
}
