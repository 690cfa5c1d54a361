package models

import "time"

// AuditLog registra as ações feitas por esta aplicação em nome do
// usuário. Os dados de negócio continuam no backend.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UsuarioID string `gorm:"size:64;index" json:"usuario_id"`
	Login     string `gorm:"size:100;index" json:"login"`
	Permissao string `gorm:"size:20" json:"permissao"`
	Action    string `gorm:"size:50;not null;index" json:"action"`

	Entity    string `gorm:"size:50" json:"entity"`
	EntityID  string `gorm:"size:64" json:"entity_id"`
	Metadata  string `gorm:"type:text" json:"metadata"`
	RequestID string `gorm:"size:64" json:"request_id"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
