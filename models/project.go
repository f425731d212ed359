package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project owns zero-or-more daily reports. Membership is tracked in
// project_users; the creator gets an "owner" row.
type Project struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	StartDate    DateOnly  `gorm:"not null" json:"start_date"`
	EndDate      DateOnly  `gorm:"not null" json:"end_date"`
	ContactName  string    `gorm:"size:100" json:"contact_name,omitempty"`
	ContactPhone string    `gorm:"size:30" json:"contact_phone,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Reports      []Report      `gorm:"foreignKey:ProjectID" json:"reports,omitempty"`
	ProjectUsers []ProjectUser `gorm:"foreignKey:ProjectID" json:"project_users,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}

// ProjectUser links a user to a project with a role. Deleting a project
// removes its join rows first, then the project itself.
type ProjectUser struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Role      string    `gorm:"size:50;not null;default:'owner'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (ProjectUser) TableName() string {
	return "project_users"
}

func (pu *ProjectUser) BeforeCreate(tx *gorm.DB) (err error) {
	if pu.ID == uuid.Nil {
		pu.ID = uuid.New()
	}
	return
}
