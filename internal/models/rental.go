// Package models содержит доменные структуры проката оборудования:
// клиенты, оборудование, аренды, а также вспомогательные типы
// для приёма данных из JSON-запросов.
package models

import "time"

// Client представляет клиента проката.
type Client struct {
	ID        string    // Уникальный идентификатор (uuid)
	Name      string    // Имя клиента
	Phone     string    // Телефон
	Email     string    // Электронная почта
	CreatedAt time.Time // Дата создания записи
}

// DummyClient используется для приёма данных клиента из JSON-запроса.
type DummyClient struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

// Equipment представляет единицу оборудования для аренды.
// Цена хранится в центах за один оплачиваемый день.
type Equipment struct {
	ID             string    // Уникальный идентификатор (uuid)
	Name           string    // Название оборудования
	DailyRateCents int64     // Цена за день в центах
	CreatedAt      time.Time // Дата создания записи
}

// DummyEquipment используется для приёма данных оборудования из JSON-запроса.
type DummyEquipment struct {
	Name           string `json:"name" validate:"required"`
	DailyRateCents int64  `json:"daily_rate_cents" validate:"required,gt=0"`
}

// Rental представляет аренду оборудования клиентом.
// Даты хранятся как полночь локального календарного дня,
// период оплачивается по полуинтервалу [StartDate, EndDate).
type Rental struct {
	ID              string    // Уникальный идентификатор (uuid)
	ClientID        string    // Идентификатор клиента
	StartDate       time.Time // Дата начала аренды
	EndDate         time.Time // Дата окончания аренды (не оплачивается)
	IncludeSaturday bool      // Считать ли субботы оплачиваемыми
	IncludeSunday   bool      // Считать ли воскресенья оплачиваемыми
	ChargeableDays  int       // Количество оплачиваемых дней
	TotalCents      int64     // Итоговая стоимость в центах
	Returned        bool      // Возвращено ли оборудование
	CreatedAt       time.Time // Дата создания записи
	Items           []RentalItem
}

// RentalItem связывает аренду с единицей оборудования.
type RentalItem struct {
	EquipmentID string // Идентификатор оборудования
	Quantity    int    // Количество единиц
}

// DummyRental используется для приёма данных аренды из JSON-запроса.
// Даты приходят как миллисекунды UTC-полуночи из виджета выбора даты
// и нормализуются в локальную полночь при создании.
type DummyRental struct {
	ClientID        string            `json:"client_id" validate:"required,uuid"`
	StartPickerMs   int64             `json:"start_picker_ms" validate:"required"`
	EndPickerMs     int64             `json:"end_picker_ms" validate:"required"`
	IncludeSaturday bool              `json:"include_saturday"`
	IncludeSunday   bool              `json:"include_sunday"`
	Items           []DummyRentalItem `json:"items" validate:"required,min=1,dive"`
}

// DummyRentalItem одна позиция оборудования в запросе на аренду.
type DummyRentalItem struct {
	EquipmentID string `json:"equipment_id" validate:"required,uuid"`
	Quantity    int    `json:"quantity" validate:"required,gt=0"`
}

// DummyQuote используется для предварительного расчёта стоимости
// без сохранения аренды.
type DummyQuote struct {
	StartPickerMs   int64             `json:"start_picker_ms" validate:"required"`
	EndPickerMs     int64             `json:"end_picker_ms" validate:"required"`
	IncludeSaturday bool              `json:"include_saturday"`
	IncludeSunday   bool              `json:"include_sunday"`
	Items           []DummyRentalItem `json:"items" validate:"omitempty,dive"`
}
