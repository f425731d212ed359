package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company groups users and their employee roster. Employees hang off the
// company, not off individual projects.
type Company struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Users     []User     `gorm:"foreignKey:CompanyID" json:"users,omitempty"`
	Employees []Employee `gorm:"foreignKey:CompanyID" json:"employees,omitempty"`
}

func (Company) TableName() string {
	return "companies"
}

func (c *Company) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
