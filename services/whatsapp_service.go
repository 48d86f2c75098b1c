// services/whatsapp_service.go - outbound WhatsApp gateway client
package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"coringas/models"

	"gorm.io/gorm"
)

// WhatsAppService posts notification messages to the configured
// gateway. Settings live in the whatsapp_settings row so admins can
// change the gateway without a redeploy. Send failures are logged by
// callers and never abort the triggering operation.
type WhatsAppService struct {
	db     *gorm.DB
	client *http.Client
}

func NewWhatsAppService(db *gorm.DB) *WhatsAppService {
	return &WhatsAppService{
		db: db,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Settings returns the current gateway configuration, creating the
// default row on first access.
func (s *WhatsAppService) Settings() (*models.WhatsAppSettings, error) {
	var settings models.WhatsAppSettings
	err := s.db.First(&settings, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.WhatsAppSettings{ID: 1}
		if err := s.db.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// SendMessage delivers one text message to a phone number through the
// gateway. A disabled or unconfigured gateway is reported as an error
// so callers can decide to log and move on.
func (s *WhatsAppService) SendMessage(phone, text string) error {
	settings, err := s.Settings()
	if err != nil {
		return err
	}

	if !settings.Enabled || settings.GatewayURL == "" {
		return errors.New("whatsapp gateway is not configured")
	}
	if phone == "" {
		return errors.New("recipient phone is empty")
	}

	reqBody := map[string]interface{}{
		"to":     phone,
		"text":   text,
		"sender": settings.SenderID,
	}
	jsonData, _ := json.Marshal(reqBody)

	req, err := http.NewRequest("POST", settings.GatewayURL+"/messages", bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+settings.APIToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("WhatsApp gateway returned %d: %s", resp.StatusCode, string(body))
		return fmt.Errorf("whatsapp send failed: %d", resp.StatusCode)
	}

	return nil
}

// NotifyMemberApproved greets a newly approved member.
func (s *WhatsAppService) NotifyMemberApproved(member *models.Member) error {
	text := fmt.Sprintf("Olá %s! Seu cadastro no Sistema Coringas foi aprovado. Bem-vindo!", member.Name)
	return s.SendMessage(member.Phone, text)
}

// NotifyQuestActivated broadcasts a quest opening to the leaders of
// the game's active teams.
func (s *WhatsAppService) NotifyQuestActivated(quest *models.Quest) {
	var leaders []models.Member
	err := s.db.Joins("JOIN teams ON teams.leader_id = members.id").
		Where("teams.game_id = ? AND teams.status = ?", quest.GameID, models.TeamActive).
		Find(&leaders).Error
	if err != nil {
		log.Printf("Failed to load team leaders for quest notification: %v", err)
		return
	}

	text := fmt.Sprintf("Nova quest liberada: %s. Boa sorte!", quest.Title)
	for _, leader := range leaders {
		if err := s.SendMessage(leader.Phone, text); err != nil {
			log.Printf("WhatsApp notify failed for member %d: %v", leader.ID, err)
		}
	}
}
