package config

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/sitevoice/backend/models"
)

// SeedSubscriptionPlans creates the plan catalog if it is empty. Safe to run
// on every boot.
func SeedSubscriptionPlans() {
	plans := []models.SubscriptionPlan{
		{Code: "starter", Name: "Starter", Description: "1 project, voice notes, daily reports", PriceCents: 0},
		{Code: "crew", Name: "Crew", Description: "Unlimited projects and employees", PriceCents: 2900},
		{Code: "company", Name: "Company", Description: "Crew plus exports and priority support", PriceCents: 9900},
	}

	for _, plan := range plans {
		var existing models.SubscriptionPlan
		err := DB.Where("code = ?", plan.Code).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := DB.Create(&plan).Error; err != nil {
				log.Printf("Warning: could not seed plan %s: %v", plan.Code, err)
				continue
			}
			log.Printf("Seeded subscription plan %s", plan.Code)
		} else if err != nil {
			log.Printf("Warning: plan lookup failed for %s: %v", plan.Code, err)
		}
	}
}
