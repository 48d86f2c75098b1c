// models/settings.go - singleton configuration rows managed by admins
package models

import "time"

// WhatsAppSettings configures the outbound notification gateway.
// A single row (ID 1) is kept.
type WhatsAppSettings struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Enabled    bool      `json:"enabled" gorm:"default:false"`
	GatewayURL string    `json:"gateway_url"`
	APIToken   string    `json:"api_token"`
	SenderID   string    `json:"sender_id" gorm:"size:50"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (WhatsAppSettings) TableName() string {
	return "whatsapp_settings"
}

// BillingSettings holds membership payment instructions. Display-only
// configuration; no payment processing happens here.
type BillingSettings struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	PixKey       string    `json:"pix_key" gorm:"size:140"`
	PriceCents   int       `json:"price_cents" gorm:"default:0"`
	DueDay       int       `json:"due_day" gorm:"default:10"`
	Instructions string    `json:"instructions" gorm:"type:text"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (BillingSettings) TableName() string {
	return "billing_settings"
}
