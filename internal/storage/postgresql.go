// Package storage реализует хранилище данных на основе PostgreSQL
// для учёта клиентов, оборудования и аренд проката.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/locadora-backend/internal/models"
)

// ErrNotFound возвращается при отсутствии запрошенной записи.
var ErrNotFound = errors.New("record not found")

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{DB: db}, nil
}

// ===== CLIENT METHODS =====

// CreateClient вставляет нового клиента.
func (s *Storage) CreateClient(ctx context.Context, client models.Client) error {
	const op = "storage.CreateClient"

	query := `INSERT INTO clients (id, name, phone, email)
			  VALUES ($1, $2, $3, $4)`
	if _, err := s.DB.ExecContext(ctx, query,
		client.ID, client.Name, client.Phone, client.Email); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetClient возвращает клиента по ID.
func (s *Storage) GetClient(ctx context.Context, id string) (*models.Client, error) {
	const op = "storage.GetClient"

	query := `SELECT id, name, phone, email, created_at FROM clients WHERE id = $1`
	var client models.Client
	err := s.DB.QueryRowContext(ctx, query, id).Scan(
		&client.ID, &client.Name, &client.Phone, &client.Email, &client.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &client, nil
}

// ListClients возвращает список клиентов с пагинацией.
func (s *Storage) ListClients(ctx context.Context, limit, offset int) ([]*models.Client, error) {
	const op = "storage.ListClients"

	query := `SELECT id, name, phone, email, created_at FROM clients
			  ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		var client models.Client
		if err := rows.Scan(&client.ID, &client.Name, &client.Phone,
			&client.Email, &client.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		clients = append(clients, &client)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return clients, nil
}

// ===== EQUIPMENT METHODS =====

// CreateEquipment вставляет новую единицу оборудования.
func (s *Storage) CreateEquipment(ctx context.Context, equipment models.Equipment) error {
	const op = "storage.CreateEquipment"

	query := `INSERT INTO equipment (id, name, daily_rate_cents)
			  VALUES ($1, $2, $3)`
	if _, err := s.DB.ExecContext(ctx, query,
		equipment.ID, equipment.Name, equipment.DailyRateCents); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetEquipment возвращает единицу оборудования по ID.
func (s *Storage) GetEquipment(ctx context.Context, id string) (*models.Equipment, error) {
	const op = "storage.GetEquipment"

	query := `SELECT id, name, daily_rate_cents, created_at FROM equipment WHERE id = $1`
	var equipment models.Equipment
	err := s.DB.QueryRowContext(ctx, query, id).Scan(
		&equipment.ID, &equipment.Name, &equipment.DailyRateCents, &equipment.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &equipment, nil
}

// ListEquipment возвращает список оборудования с пагинацией.
func (s *Storage) ListEquipment(ctx context.Context, limit, offset int) ([]*models.Equipment, error) {
	const op = "storage.ListEquipment"

	query := `SELECT id, name, daily_rate_cents, created_at FROM equipment
			  ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var equipmentList []*models.Equipment
	for rows.Next() {
		var equipment models.Equipment
		if err := rows.Scan(&equipment.ID, &equipment.Name,
			&equipment.DailyRateCents, &equipment.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		equipmentList = append(equipmentList, &equipment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return equipmentList, nil
}

// ===== RENTAL METHODS =====

// CreateRental вставляет аренду вместе с позициями оборудования
// в одной транзакции.
func (s *Storage) CreateRental(ctx context.Context, rental models.Rental) error {
	const op = "storage.CreateRental"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `INSERT INTO rentals (id, client_id, start_date, end_date,
				  include_saturday, include_sunday, chargeable_days, total_cents, returned)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	if _, err := tx.ExecContext(ctx, query,
		rental.ID, rental.ClientID, rental.StartDate, rental.EndDate,
		rental.IncludeSaturday, rental.IncludeSunday,
		rental.ChargeableDays, rental.TotalCents, rental.Returned); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	itemQuery := `INSERT INTO rental_items (rental_id, equipment_id, quantity)
				  VALUES ($1, $2, $3)`
	for _, item := range rental.Items {
		if _, err := tx.ExecContext(ctx, itemQuery,
			rental.ID, item.EquipmentID, item.Quantity); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ReadRental возвращает аренду с позициями оборудования.
func (s *Storage) ReadRental(ctx context.Context, id string) (*models.Rental, error) {
	const op = "storage.ReadRental"

	query := `SELECT id, client_id, start_date, end_date, include_saturday,
				  include_sunday, chargeable_days, total_cents, returned, created_at
			  FROM rentals WHERE id = $1`
	var rental models.Rental
	err := s.DB.QueryRowContext(ctx, query, id).Scan(
		&rental.ID, &rental.ClientID, &rental.StartDate, &rental.EndDate,
		&rental.IncludeSaturday, &rental.IncludeSunday,
		&rental.ChargeableDays, &rental.TotalCents, &rental.Returned, &rental.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	itemQuery := `SELECT equipment_id, quantity FROM rental_items WHERE rental_id = $1`
	rows, err := s.DB.QueryContext(ctx, itemQuery, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.RentalItem
		if err := rows.Scan(&item.EquipmentID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		rental.Items = append(rental.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &rental, nil
}

// ListRentals возвращает аренды с пагинацией, без позиций оборудования.
func (s *Storage) ListRentals(ctx context.Context, limit, offset int) ([]*models.Rental, error) {
	const op = "storage.ListRentals"

	query := `SELECT id, client_id, start_date, end_date, include_saturday,
				  include_sunday, chargeable_days, total_cents, returned, created_at
			  FROM rentals ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var rentals []*models.Rental
	for rows.Next() {
		var rental models.Rental
		if err := rows.Scan(&rental.ID, &rental.ClientID, &rental.StartDate,
			&rental.EndDate, &rental.IncludeSaturday, &rental.IncludeSunday,
			&rental.ChargeableDays, &rental.TotalCents, &rental.Returned,
			&rental.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		rentals = append(rentals, &rental)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rentals, nil
}

// MarkReturned помечает аренду завершённой, возвращает количество
// обновлённых записей.
func (s *Storage) MarkReturned(ctx context.Context, id string) (int, error) {
	const op = "storage.MarkReturned"

	res, err := s.DB.ExecContext(ctx, `UPDATE rentals SET returned = TRUE WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(count), nil
}
