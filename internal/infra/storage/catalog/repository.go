package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
	"github.com/m04kA/SMC-StudioReservations/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioReservations/pkg/psqlbuilder"
)

var roomColumns = []string{
	"r.id",
	"r.studio_id",
	"s.owner_id",
	"r.name",
	"r.hourly_rate",
	"r.active",
	"r.created_at",
	"r.updated_at",
}

// Repository репозиторий каталога: комнаты, часы работы, исключения, спеццены и политики отмены
// Каталог ведётся внешним сервисом, здесь только чтение
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetRoom получает комнату вместе с владельцем студии
func (r *Repository) GetRoom(ctx context.Context, roomID int64) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(roomColumns...).
		From("rooms r").
		Join("studios s ON s.id = r.studio_id").
		Where(squirrel.Eq{"r.id": roomID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRoom - build select query: %v", ErrBuildQuery, err)
	}

	room, err := scanRoom(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoom - scan room: %v", ErrScanRow, err)
	}

	return room, nil
}

// LockRoom блокирует строку комнаты до конца транзакции
// Все создания бронирований одной комнаты выстраиваются в очередь на этой блокировке
func (r *Repository) LockRoom(ctx context.Context, roomID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("rooms").
		Where(squirrel.Eq{"id": roomID}).
		Suffix("FOR UPDATE").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: LockRoom - build select query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if err == sql.ErrNoRows {
		return ErrRoomNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: LockRoom - execute query: %v", ErrExecQuery, err)
	}

	return nil
}

// GetActiveRoomsByOwner получает активные комнаты всех студий владельца
func (r *Repository) GetActiveRoomsByOwner(ctx context.Context, ownerID int64) ([]*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(roomColumns...).
		From("rooms r").
		Join("studios s ON s.id = r.studio_id").
		Where(squirrel.Eq{"s.owner_id": ownerID}).
		Where(squirrel.Eq{"r.active": true}).
		OrderBy("r.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveRoomsByOwner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveRoomsByOwner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rooms := make([]*domain.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveRoomsByOwner - scan room: %v", ErrScanRow, err)
		}
		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveRoomsByOwner - rows error: %v", ErrScanRow, err)
	}

	return rooms, nil
}

// GetOperatingRules получает правила работы комнаты и её студии
// Выбор между правилами комнаты и студии делает domain.NewSchedule
func (r *Repository) GetOperatingRules(ctx context.Context, roomID int64) ([]domain.OperatingHoursRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"studio_id",
		"room_id",
		"day_of_week",
		"open_minute",
		"close_minute",
	).
		From("operating_hours").
		Where("studio_id = (SELECT studio_id FROM rooms WHERE id = ?)", roomID).
		Where(squirrel.Or{
			squirrel.Eq{"room_id": nil},
			squirrel.Eq{"room_id": roomID},
		}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOperatingRules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOperatingRules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]domain.OperatingHoursRule, 0)
	for rows.Next() {
		var rule domain.OperatingHoursRule
		var day, openMin, closeMin int

		if err := rows.Scan(&rule.ID, &rule.StudioID, &rule.RoomID, &day, &openMin, &closeMin); err != nil {
			return nil, fmt.Errorf("%w: GetOperatingRules - scan rule: %v", ErrScanRow, err)
		}

		rule.DayOfWeek = time.Weekday(day)
		rule.OpenTime = domain.ClockTime(openMin)
		rule.CloseTime = domain.ClockTime(closeMin)
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOperatingRules - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// GetExceptions получает исключения комнаты, пересекающие [from, to)
func (r *Repository) GetExceptions(ctx context.Context, roomID int64, from, to time.Time) ([]domain.AvailabilityException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"room_id",
		"start_at",
		"end_at",
		"blocked",
		"reason",
	).
		From("availability_exceptions").
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetExceptions - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetExceptions - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	exceptions := make([]domain.AvailabilityException, 0)
	for rows.Next() {
		var exc domain.AvailabilityException
		if err := rows.Scan(&exc.ID, &exc.RoomID, &exc.Start, &exc.End, &exc.Blocked, &exc.Reason); err != nil {
			return nil, fmt.Errorf("%w: GetExceptions - scan exception: %v", ErrScanRow, err)
		}
		exceptions = append(exceptions, exc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetExceptions - rows error: %v", ErrScanRow, err)
	}

	return exceptions, nil
}

// GetSpecialPrices получает активные спеццены комнаты, пересекающие [from, to)
func (r *Repository) GetSpecialPrices(ctx context.Context, roomID int64, from, to time.Time) ([]domain.SpecialPriceRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"room_id",
		"start_at",
		"end_at",
		"rate",
		"multiplier",
		"description",
		"active",
		"created_at",
	).
		From("special_prices").
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.Eq{"active": true}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecialPrices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecialPrices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]domain.SpecialPriceRule, 0)
	for rows.Next() {
		var rule domain.SpecialPriceRule
		err := rows.Scan(
			&rule.ID,
			&rule.RoomID,
			&rule.Start,
			&rule.End,
			&rule.Rate,
			&rule.Multiplier,
			&rule.Description,
			&rule.Active,
			&rule.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetSpecialPrices - scan rule: %v", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetSpecialPrices - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// GetCancellationPolicy получает политику отмены студии с порогами
// Возвращает nil, nil, если политика не задана
func (r *Repository) GetCancellationPolicy(ctx context.Context, studioID int64) (*domain.CancellationPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name").
		From("cancellation_policies").
		Where(squirrel.Eq{"studio_id": studioID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCancellationPolicy - build select query: %v", ErrBuildQuery, err)
	}

	var policyID int64
	var name string
	err = executor.QueryRowContext(ctx, query, args...).Scan(&policyID, &name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCancellationPolicy - scan policy: %v", ErrScanRow, err)
	}

	query, args, err = psqlbuilder.Select("min_hours_before", "refund_percentage").
		From("cancellation_policy_thresholds").
		Where(squirrel.Eq{"policy_id": policyID}).
		OrderBy("min_hours_before DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCancellationPolicy - build thresholds query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetCancellationPolicy - execute thresholds query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	thresholds := make([]domain.RefundThreshold, 0)
	for rows.Next() {
		var t domain.RefundThreshold
		if err := rows.Scan(&t.MinHoursBefore, &t.RefundPercentage); err != nil {
			return nil, fmt.Errorf("%w: GetCancellationPolicy - scan threshold: %v", ErrScanRow, err)
		}
		thresholds = append(thresholds, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetCancellationPolicy - rows error: %v", ErrScanRow, err)
	}

	policy, err := domain.NewCancellationPolicy(policyID, studioID, name, thresholds)
	if err != nil {
		return nil, fmt.Errorf("%w: studio=%d: %v", ErrInvalidPolicy, studioID, err)
	}

	return policy, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRoom(row rowScanner) (*domain.Room, error) {
	var room domain.Room
	err := row.Scan(
		&room.ID,
		&room.StudioID,
		&room.OwnerID,
		&room.Name,
		&room.HourlyRate,
		&room.Active,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &room, nil
}
