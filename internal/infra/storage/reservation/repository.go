package reservation

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

const table = "reservations"

var columns = []string{
	"id",
	"room_id",
	"studio_id",
	"customer_id",
	"start_at",
	"end_at",
	"status",
	"total_price",
	"notes",
	"artist_name",
	"instruments",
	"confirmed_by",
	"cancel_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// prefixed возвращает колонки с алиасом таблицы для запросов с JOIN
func prefixed(alias string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return out
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Пересечение с активным бронированием той же комнаты отклоняется exclusion-ограничением
// и возвращается как ErrOverlap
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"room_id",
			"studio_id",
			"customer_id",
			"start_at",
			"end_at",
			"status",
			"total_price",
			"notes",
			"artist_name",
			"instruments",
			"created_at",
			"updated_at",
		).
		Values(
			res.RoomID,
			res.StudioID,
			res.CustomerID,
			res.Start,
			res.End,
			res.Status,
			res.TotalPrice,
			res.Notes,
			res.ArtistName,
			res.Instruments,
			res.CreatedAt,
			res.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&res.ID); err != nil {
		if IsConflict(err) {
			return nil, ErrOverlap
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// GetActiveByRoom получает активные бронирования комнаты, пересекающие [from, to)
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы проверка пересечений
// и вставка выполнялись над согласованным снимком
func (r *Repository) GetActiveByRoom(ctx context.Context, roomID int64, from, to time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.Eq{"status": domain.StatusStrings(domain.ActiveStatuses)}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("start_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByRoom - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByRoom - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// List получает бронирования по фильтру
// Период фильтрует по пересечению окна бронирования с [From, To)
func (r *Repository) List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("start_at ASC")

	if filter.RoomID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"room_id": *filter.RoomID})
	}
	if filter.StudioID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"studio_id": *filter.StudioID})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_at": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": *filter.To})
	}
	if len(filter.Statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.StatusStrings(filter.Statuses)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetPendingOlderThan получает PENDING бронирования, созданные не позже cutoff,
// с id больше afterID, по возрастанию id (постраничный обход); limit <= 0 снимает ограничение
func (r *Repository) GetPendingOlderThan(ctx context.Context, cutoff time.Time, afterID int64, limit int) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"status": string(domain.StatusPending)}).
		Where(squirrel.LtOrEq{"created_at": cutoff}).
		Where(squirrel.Gt{"id": afterID}).
		OrderBy("id ASC")

	if limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(limit))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingOlderThan - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingOlderThan - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetSettledByOwner получает учитываемые в статистике бронирования всех комнат владельца,
// пересекающие [from, to)
func (r *Repository) GetSettledByOwner(ctx context.Context, ownerID int64, from, to time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(prefixed("res")...).
		From(table + " res").
		Join("studios s ON s.id = res.studio_id").
		Where(squirrel.Eq{"s.owner_id": ownerID}).
		Where(squirrel.Eq{"res.status": domain.StatusStrings(domain.SettledStatuses)}).
		Where(squirrel.Lt{"res.start_at": to}).
		Where(squirrel.Gt{"res.end_at": from}).
		OrderBy("res.start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSettledByOwner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSettledByOwner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// UpdateStatus переводит бронирование из update.From в update.To (compare-and-swap)
// Если статус уже не равен update.From, возвращает ErrStatusChanged
func (r *Repository) UpdateStatus(ctx context.Context, id int64, update domain.StatusUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(table).
		Set("status", string(update.To)).
		Set("updated_at", update.UpdatedAt).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": string(update.From)})

	if update.ConfirmedBy != nil {
		updateBuilder = updateBuilder.Set("confirmed_by", *update.ConfirmedBy)
	}
	if update.CancelledAt != nil {
		updateBuilder = updateBuilder.Set("cancelled_at", *update.CancelledAt)
	}
	if update.CancelReason != nil {
		updateBuilder = updateBuilder.Set("cancel_reason", *update.CancelReason)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusChanged
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var status string

	err := row.Scan(
		&res.ID,
		&res.RoomID,
		&res.StudioID,
		&res.CustomerID,
		&res.Start,
		&res.End,
		&status,
		&res.TotalPrice,
		&res.Notes,
		&res.ArtistName,
		&res.Instruments,
		&res.ConfirmedBy,
		&res.CancelReason,
		&res.CancelledAt,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.Status = domain.ReservationStatus(status)
	if !res.Status.IsValid() {
		return nil, fmt.Errorf("unknown status %q for reservation id=%d", status, res.ID)
	}
	return &res, nil
}

func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	list := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan reservation: %v", ErrScanRow, err)
		}
		list = append(list, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}

	return list, nil
}
