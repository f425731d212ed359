package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscription statuses the dashboard gate accepts.
const (
	SubscriptionActive   = "active"
	SubscriptionTrialing = "trialing"
	SubscriptionCanceled = "canceled"
	SubscriptionPastDue  = "past_due"
)

// Subscription mirrors what the billing provider reports for a user. The
// dashboard only cares whether the status is active or trialing.
type Subscription struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	PlanCode         string     `gorm:"size:50;not null" json:"plan_code"`
	Status           string     `gorm:"size:30;not null;index" json:"status"`
	CurrentPeriodEnd *time.Time `json:"current_period_end,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// IsValid reports whether the subscription lets the user into the dashboard.
func (s *Subscription) IsValid() bool {
	if s == nil {
		return false
	}
	return s.Status == SubscriptionActive || s.Status == SubscriptionTrialing
}

// Trial is the free-trial window granted at signup, checked independently of
// the subscription record.
type Trial struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	StartedAt time.Time `gorm:"not null" json:"started_at"`
	EndsAt    time.Time `gorm:"not null" json:"ends_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (Trial) TableName() string {
	return "trials"
}

// InTrial reports whether now falls inside the trial window.
func (t *Trial) InTrial(now time.Time) bool {
	if t == nil {
		return false
	}
	return !now.Before(t.StartedAt) && now.Before(t.EndsAt)
}

// SubscriptionPlan is a seeded catalog row; the marketing pricing page reads
// these.
type SubscriptionPlan struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Code        string    `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	PriceCents  int       `gorm:"not null" json:"price_cents"`
	Currency    string    `gorm:"size:10;default:'USD'" json:"currency"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}
