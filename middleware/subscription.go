package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/sitevoice/backend/config"
	"github.com/sitevoice/backend/models"
)

// VerifyTimeout bounds the billing-status lookups. The dashboard shows a
// "still verifying your account" message past this point instead of spinning
// forever.
const VerifyTimeout = 5 * time.Second

// GateStatus is what the billing gate decided for a request. The dashboard
// handler also embeds it in its payload so the client can render the banner
// without a second round trip.
type GateStatus struct {
	HasSubscription bool   `json:"has_subscription"`
	InTrial         bool   `json:"in_trial"`
	Redirect        string `json:"redirect,omitempty"`
}

// CheckGate resolves the subscription/trial status for the authenticated
// user. Both lookups are independent one-shot queries.
func CheckGate(ctx context.Context, r *http.Request) (*GateStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, VerifyTimeout)
	defer cancel()

	userID := GetUserID(r)
	status := &GateStatus{}

	var sub models.Subscription
	err := config.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&sub).Error
	if err == nil {
		status.HasSubscription = sub.IsValid()
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var trial models.Trial
	err = config.DB.WithContext(ctx).Where("user_id = ?", userID).First(&trial).Error
	if err == nil {
		status.InTrial = trial.InTrial(time.Now())
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if !status.HasSubscription && !status.InTrial {
		status.Redirect = "/profile"
	}
	return status, nil
}

// SubscriptionGate blocks dashboard routes for users with neither an active
// subscription nor a running trial. The client is told where to go instead.
func SubscriptionGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status, err := CheckGate(r.Context(), r)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				http.Error(w, "still verifying your account, try again", http.StatusServiceUnavailable)
				return
			}
			log.Printf("subscription gate: %v", err)
			http.Error(w, "could not verify subscription", http.StatusInternalServerError)
			return
		}
		if status.Redirect != "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusPaymentRequired)
			json.NewEncoder(w).Encode(status)
			return
		}
		next.ServeHTTP(w, r)
	})
}
