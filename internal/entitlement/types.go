// Package entitlement владеет каноничным ответом на вопрос "есть ли у
// аккаунта премиум". Локальный снимок подписки сверяется с внешним
// магазином, операции покупки и восстановления применяются атомарно,
// ошибки платежей классифицируются в закрытый набор кодов.
package entitlement

import "time"

// SubscriptionInfo последний известный снимок подписки аккаунта.
// Значение неизменяемо: каждое обновление заменяет снимок целиком,
// частичных мутаций не бывает.
type SubscriptionInfo struct {
	IsActive       bool       `json:"is_active"`
	ProductID      string     `json:"product_id,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	WillRenew      bool       `json:"will_renew"`
	IsInTrial      bool       `json:"is_in_trial"`
	TrialEndDate   *time.Time `json:"trial_end_date,omitempty"`
}

// Product позиция каталога магазина. Только для чтения,
// кешируется на время сессии.
type Product struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	DisplayPrice    string `json:"display_price"`
	PriceMicros     int64  `json:"price_micros"`
	CurrencyCode    string `json:"currency_code"`
	HasFreeTrial    bool   `json:"has_free_trial"`
	FreeTrialPeriod string `json:"free_trial_period,omitempty"`
}

// PurchaseErrorCode закрытый набор кодов ошибок платежей.
// Используется для пользовательских сообщений и политики ретраев,
// не для ветвления бизнес-логики.
type PurchaseErrorCode string

const (
	CodeNetworkError    PurchaseErrorCode = "network_error"
	CodeStoreError      PurchaseErrorCode = "store_error"
	CodeProductNotFound PurchaseErrorCode = "product_not_found"
	CodePaymentPending  PurchaseErrorCode = "payment_pending"
	CodePaymentDeclined PurchaseErrorCode = "payment_declined"
	CodeAlreadyOwned    PurchaseErrorCode = "already_owned"
	CodeUnknown         PurchaseErrorCode = "unknown"
)

// OutcomeStatus тег варианта результата покупки или восстановления.
type OutcomeStatus string

const (
	OutcomeSuccess     OutcomeStatus = "success"
	OutcomeError       OutcomeStatus = "error"
	OutcomeCancelled   OutcomeStatus = "cancelled"
	OutcomeNoPurchases OutcomeStatus = "no_purchases"
)

// PurchaseOutcome терминальный результат одной попытки покупки.
// При Error и Cancelled снимок подписки остаётся нетронутым.
type PurchaseOutcome struct {
	Status    OutcomeStatus
	Info      *SubscriptionInfo
	ErrorCode PurchaseErrorCode
	Message   string
}

// RestoreOutcome результат восстановления покупок.
// NoPurchases означает подтверждённое отсутствие покупок, это не ошибка.
type RestoreOutcome struct {
	Status  OutcomeStatus
	Info    *SubscriptionInfo
	Message string
}
