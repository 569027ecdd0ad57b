// Package receipt собирает данные квитанции по аренде и передаёт их
// генератору документов. Генерация и нативный шаринг — платформенные
// сервисы: на платформе без реализации они возвращают ErrNotSupported,
// это восстановимая ошибка, не сбой.
package receipt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/locadora-backend/internal/models"
)

// ErrNotSupported возвращается платформой без генератора документов.
var ErrNotSupported = errors.New("operation not supported on this platform")

// Repository определяет методы чтения данных для квитанции.
type Repository interface {
	ReadRental(ctx context.Context, id string) (*models.Rental, error)
	GetClient(ctx context.Context, id string) (*models.Client, error)
	GetEquipment(ctx context.Context, id string) (*models.Equipment, error)
}

// Generator определяет платформенный генератор документов.
type Generator interface {
	// Generate создаёт файл квитанции и возвращает путь к нему.
	Generate(ctx context.Context, receipt models.Receipt) (string, error)
	// Share передаёт файл в нативный механизм шаринга платформы.
	Share(ctx context.Context, path string) error
}

// UnsupportedGenerator заглушка для платформ без генерации документов.
type UnsupportedGenerator struct{}

// Generate всегда возвращает ErrNotSupported.
func (UnsupportedGenerator) Generate(_ context.Context, _ models.Receipt) (string, error) {
	return "", ErrNotSupported
}

// Share всегда возвращает ErrNotSupported.
func (UnsupportedGenerator) Share(_ context.Context, _ string) error {
	return ErrNotSupported
}

// Service собирает квитанции и выдаёт их генератору.
type Service struct {
	repo      Repository
	generator Generator
	company   models.CompanyInfo
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, generator Generator, company models.CompanyInfo, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		generator: generator,
		company:   company,
		log:       log,
	}
}

// BuildReceipt собирает значение-объект квитанции: аренда, клиент,
// строки оборудования и реквизиты компании.
func (s *Service) BuildReceipt(ctx context.Context, rentalID string) (*models.Receipt, error) {
	const op = "receipt.BuildReceipt"

	rental, err := s.repo.ReadRental(ctx, rentalID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	client, err := s.repo.GetClient(ctx, rental.ClientID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	receipt := models.Receipt{
		RentalID:       rental.ID,
		ClientName:     client.Name,
		ClientPhone:    client.Phone,
		StartDate:      rental.StartDate,
		EndDate:        rental.EndDate,
		ChargeableDays: rental.ChargeableDays,
		TotalCents:     rental.TotalCents,
		Company:        s.company,
		IssuedAt:       time.Now(),
	}

	for _, item := range rental.Items {
		equipment, err := s.repo.GetEquipment(ctx, item.EquipmentID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		receipt.Lines = append(receipt.Lines, models.ReceiptLine{
			EquipmentName:  equipment.Name,
			Quantity:       item.Quantity,
			DailyRateCents: equipment.DailyRateCents,
			SubtotalCents:  equipment.DailyRateCents * int64(item.Quantity) * int64(rental.ChargeableDays),
		})
	}

	return &receipt, nil
}

// Generate собирает квитанцию и генерирует файл документа.
// ErrNotSupported пробрасывается вызывающему как восстановимая ошибка.
func (s *Service) Generate(ctx context.Context, rentalID string) (string, error) {
	const op = "receipt.Generate"

	receipt, err := s.BuildReceipt(ctx, rentalID)
	if err != nil {
		return "", err
	}

	path, err := s.generator.Generate(ctx, *receipt)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("receipt generated",
		slog.String("rental_id", rentalID),
		slog.String("path", path))
	return path, nil
}

// Share передаёт сгенерированный файл нативному механизму шаринга.
func (s *Service) Share(ctx context.Context, path string) error {
	const op = "receipt.Share"
	if err := s.generator.Share(ctx, path); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
