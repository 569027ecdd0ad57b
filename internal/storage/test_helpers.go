package storage

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/locadora-backend/internal/models"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateClient создаёт тестового клиента и возвращает его ID.
func (f *TestDataFactory) CreateClient(t *testing.T, name, phone string) string {
	id := uuid.New().String()
	_, err := f.storage.DB.Exec(`INSERT INTO clients (id, name, phone, email)
		VALUES ($1, $2, $3, $4)`,
		id, name, phone, name+"@example.com")
	require.NoError(t, err)
	return id
}

// CreateEquipment создаёт тестовую единицу оборудования и возвращает её ID.
func (f *TestDataFactory) CreateEquipment(t *testing.T, name string, dailyRateCents int64) string {
	id := uuid.New().String()
	_, err := f.storage.DB.Exec(`INSERT INTO equipment (id, name, daily_rate_cents)
		VALUES ($1, $2, $3)`,
		id, name, dailyRateCents)
	require.NoError(t, err)
	return id
}

// BuildRental собирает аренду с одной позицией оборудования.
func (f *TestDataFactory) BuildRental(clientID, equipmentID string, start, end time.Time) models.Rental {
	return models.Rental{
		ID:             uuid.New().String(),
		ClientID:       clientID,
		StartDate:      start,
		EndDate:        end,
		ChargeableDays: 4,
		TotalCents:     20000,
		Items: []models.RentalItem{
			{EquipmentID: equipmentID, Quantity: 1},
		},
	}
}
