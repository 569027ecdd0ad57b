package storeclient

import (
	"time"

	"github.com/magabrotheeeer/locadora-backend/internal/entitlement"
)

// subscriptionResponse ответ магазина с состоянием подписки.
type subscriptionResponse struct {
	IsActive       bool       `json:"is_active"`
	ProductID      string     `json:"product_id"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	WillRenew      bool       `json:"will_renew"`
	IsInTrial      bool       `json:"is_in_trial"`
	TrialEndDate   *time.Time `json:"trial_end_date,omitempty"`
}

func (r subscriptionResponse) toInfo() *entitlement.SubscriptionInfo {
	return &entitlement.SubscriptionInfo{
		IsActive:       r.IsActive,
		ProductID:      r.ProductID,
		ExpirationDate: r.ExpirationDate,
		WillRenew:      r.WillRenew,
		IsInTrial:      r.IsInTrial,
		TrialEndDate:   r.TrialEndDate,
	}
}

// productsResponse ответ магазина со списком планов.
type productsResponse struct {
	Products []productItem `json:"products"`
}

type productItem struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	DisplayPrice    string `json:"display_price"`
	PriceMicros     int64  `json:"price_micros"`
	CurrencyCode    string `json:"currency_code"`
	HasFreeTrial    bool   `json:"has_free_trial"`
	FreeTrialPeriod string `json:"free_trial_period,omitempty"`
}

// purchaseRequest запрос на инициацию покупки плана.
type purchaseRequest struct {
	PlanID string `json:"plan_id"`
}

// apiError структура ошибки в теле ответа магазина.
type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
