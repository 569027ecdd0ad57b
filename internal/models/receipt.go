package models

import "time"

// CompanyInfo реквизиты компании, печатаемые в шапке квитанции.
type CompanyInfo struct {
	Name    string
	Phone   string
	Address string
}

// ReceiptLine одна строка квитанции: оборудование и его стоимость.
type ReceiptLine struct {
	EquipmentName  string
	Quantity       int
	DailyRateCents int64
	SubtotalCents  int64
}

// Receipt значение-объект квитанции по аренде: данные аренды,
// клиента, список оборудования и реквизиты компании.
// Передаётся генератору документов как единое целое.
type Receipt struct {
	RentalID       string
	ClientName     string
	ClientPhone    string
	StartDate      time.Time
	EndDate        time.Time
	ChargeableDays int
	Lines          []ReceiptLine
	TotalCents     int64
	Company        CompanyInfo
	IssuedAt       time.Time
}
