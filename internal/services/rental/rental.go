// Package rental содержит бизнес-логику проката: расчёт стоимости
// аренды через календарь оплачиваемых дней, учёт клиентов
// и оборудования, кеширование горячих чтений.
package rental

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/locadora-backend/internal/lib/sl"
	"github.com/magabrotheeeer/locadora-backend/internal/models"
	"github.com/magabrotheeeer/locadora-backend/internal/rentalperiod"
)

// Repository определяет методы для работы с прокатом в хранилище.
type Repository interface {
	CreateClient(ctx context.Context, client models.Client) error
	GetClient(ctx context.Context, id string) (*models.Client, error)
	ListClients(ctx context.Context, limit, offset int) ([]*models.Client, error)
	CreateEquipment(ctx context.Context, equipment models.Equipment) error
	GetEquipment(ctx context.Context, id string) (*models.Equipment, error)
	ListEquipment(ctx context.Context, limit, offset int) ([]*models.Equipment, error)
	CreateRental(ctx context.Context, rental models.Rental) error
	ReadRental(ctx context.Context, id string) (*models.Rental, error)
	ListRentals(ctx context.Context, limit, offset int) ([]*models.Rental, error)
	MarkReturned(ctx context.Context, id string) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Quote результат предварительного расчёта стоимости аренды.
type Quote struct {
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	ChargeableDays int       `json:"chargeable_days"`
	TotalCents     int64     `json:"total_cents"`
}

// Service реализует бизнес-логику проката.
type Service struct {
	repo  Repository
	cache Cache
	calc  *rentalperiod.Calculator
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, calc *rentalperiod.Calculator, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		calc:  calc,
		log:   log,
	}
}

// QuoteRental считает количество оплачиваемых дней и стоимость
// без сохранения аренды. Метки времени приходят из виджета выбора
// даты и нормализуются в локальные календарные дни.
func (s *Service) QuoteRental(ctx context.Context, req models.DummyQuote) (*Quote, error) {
	const op = "rental.QuoteRental"

	start := s.calc.LocalDate(s.calc.NormalizeToLocalMidnight(req.StartPickerMs))
	end := s.calc.LocalDate(s.calc.NormalizeToLocalMidnight(req.EndPickerMs))

	days := s.calc.ChargeableDays(
		rentalperiod.DateRange{Start: start, End: end},
		rentalperiod.WeekendPolicy{
			IncludeSaturday: req.IncludeSaturday,
			IncludeSunday:   req.IncludeSunday,
		},
	)

	var total int64
	for _, item := range req.Items {
		equipment, err := s.repo.GetEquipment(ctx, item.EquipmentID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		total += equipment.DailyRateCents * int64(item.Quantity) * int64(days)
	}

	return &Quote{
		StartDate:      start,
		EndDate:        end,
		ChargeableDays: days,
		TotalCents:     total,
	}, nil
}

// CreateRental создаёт аренду: проверяет клиента, считает стоимость
// и сохраняет аренду с позициями оборудования.
func (s *Service) CreateRental(ctx context.Context, req models.DummyRental) (*models.Rental, error) {
	const op = "rental.CreateRental"

	if _, err := s.repo.GetClient(ctx, req.ClientID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	quote, err := s.QuoteRental(ctx, models.DummyQuote{
		StartPickerMs:   req.StartPickerMs,
		EndPickerMs:     req.EndPickerMs,
		IncludeSaturday: req.IncludeSaturday,
		IncludeSunday:   req.IncludeSunday,
		Items:           req.Items,
	})
	if err != nil {
		return nil, err
	}

	rental := models.Rental{
		ID:              uuid.New().String(),
		ClientID:        req.ClientID,
		StartDate:       quote.StartDate,
		EndDate:         quote.EndDate,
		IncludeSaturday: req.IncludeSaturday,
		IncludeSunday:   req.IncludeSunday,
		ChargeableDays:  quote.ChargeableDays,
		TotalCents:      quote.TotalCents,
	}
	for _, item := range req.Items {
		rental.Items = append(rental.Items, models.RentalItem{
			EquipmentID: item.EquipmentID,
			Quantity:    item.Quantity,
		})
	}

	if err := s.repo.CreateRental(ctx, rental); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created new rental",
		slog.String("id", rental.ID),
		slog.Int("chargeable_days", rental.ChargeableDays))

	cacheKey := "rental:" + rental.ID
	if err := s.cache.Set(cacheKey, rental, time.Hour); err != nil {
		s.log.Warn("failed to cache rental", slog.String("key", cacheKey), sl.Err(err))
	}

	return &rental, nil
}

// ReadRental возвращает аренду по ID, используя кеш или репозиторий.
func (s *Service) ReadRental(ctx context.Context, id string) (*models.Rental, error) {
	var result *models.Rental
	cacheKey := "rental:" + id
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ReadRental(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}

// ListRentals возвращает список аренд с пагинацией.
func (s *Service) ListRentals(ctx context.Context, limit, offset int) ([]*models.Rental, error) {
	return s.repo.ListRentals(ctx, limit, offset)
}

// ReturnRental помечает аренду завершённой и инвалидирует кеш.
func (s *Service) ReturnRental(ctx context.Context, id string) (int, error) {
	cacheKey := "rental:" + id
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	return s.repo.MarkReturned(ctx, id)
}

// CreateClient создаёт нового клиента проката.
func (s *Service) CreateClient(ctx context.Context, req models.DummyClient) (*models.Client, error) {
	const op = "rental.CreateClient"

	client := models.Client{
		ID:    uuid.New().String(),
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	}
	if err := s.repo.CreateClient(ctx, client); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created new client", slog.String("id", client.ID))
	return &client, nil
}

// ListClients возвращает список клиентов с пагинацией.
func (s *Service) ListClients(ctx context.Context, limit, offset int) ([]*models.Client, error) {
	return s.repo.ListClients(ctx, limit, offset)
}

// CreateEquipment создаёт новую единицу оборудования.
func (s *Service) CreateEquipment(ctx context.Context, req models.DummyEquipment) (*models.Equipment, error) {
	const op = "rental.CreateEquipment"

	equipment := models.Equipment{
		ID:             uuid.New().String(),
		Name:           req.Name,
		DailyRateCents: req.DailyRateCents,
	}
	if err := s.repo.CreateEquipment(ctx, equipment); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created new equipment", slog.String("id", equipment.ID))
	return &equipment, nil
}

// ListEquipment возвращает список оборудования с пагинацией.
func (s *Service) ListEquipment(ctx context.Context, limit, offset int) ([]*models.Equipment, error) {
	return s.repo.ListEquipment(ctx, limit, offset)
}
