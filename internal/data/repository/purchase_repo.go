package repository

import (
	"context"
	"fmt"
	"time"

	"cinema-manager/internal/data/entity"
	"cinema-manager/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Purchase, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Purchase, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Purchase, error)
	CountAll(ctx context.Context) (int64, error)
	// FindTakenSeats is the committed-seat read model for a showtime: the
	// union of chosen_seats over purchases whose hold still counts - created
	// or executed always, initiated only while unexpired. Expired initiated
	// purchases drop out of the result without any sweeper touching them.
	FindTakenSeats(ctx context.Context, showtimeID uuid.UUID, now time.Time) ([]string, error)
	Update(ctx context.Context, purchase *entity.Purchase) error
}

type purchaseRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPurchaseRepository(db database.PgxIface, log *zap.Logger) PurchaseRepository {
	return &purchaseRepository{
		db:  db,
		log: log.With(zap.String("repository", "purchase")),
	}
}

func (r *purchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	query := `
		INSERT INTO purchases (id, purchase_code, user_id, showtime_id, number_tickets,
		                      chosen_seats, status, original_amount, discount_type,
		                      discount_amount, payment_method, payment_amount, payment_date,
		                      expired_seat_selection_at, qrcode_image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.db.Exec(ctx, query,
		purchase.ID,
		purchase.PurchaseCode,
		purchase.UserID,
		purchase.ShowtimeID,
		purchase.NumberTickets,
		purchase.ChosenSeats,
		purchase.Status,
		purchase.OriginalAmount,
		purchase.DiscountType,
		purchase.DiscountAmount,
		purchase.PaymentMethod,
		purchase.PaymentAmount,
		purchase.PaymentDate,
		purchase.ExpiredSeatSelectionAt,
		purchase.QRCodeImage,
		purchase.CreatedAt,
		purchase.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create purchase",
			zap.Error(err),
			zap.String("user_id", purchase.UserID.String()),
			zap.String("showtime_id", purchase.ShowtimeID.String()),
		)
		return fmt.Errorf("create purchase for showtime %s: %w", purchase.ShowtimeID.String(), err)
	}

	return nil
}

func (r *purchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	query := purchaseSelect + ` WHERE id = $1 AND deleted_at IS NULL`

	var purchase entity.Purchase
	err := r.db.QueryRow(ctx, query, id).Scan(purchaseScanTargets(&purchase)...)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find purchase by ID",
			zap.Error(err),
			zap.String("purchase_id", id.String()),
		)
		return nil, fmt.Errorf("find purchase by ID %s: %w", id.String(), err)
	}

	return &purchase, nil
}

func (r *purchaseRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Purchase, error) {
	query := purchaseSelect + `
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find purchases by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find purchases by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return scanPurchaseRows(rows, r.log)
}

func (r *purchaseRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM purchases WHERE user_id = $1 AND deleted_at IS NULL`

	var total int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&total); err != nil {
		r.log.Error("Failed to count purchases by user ID", zap.Error(err))
		return 0, fmt.Errorf("count purchases by user ID %s: %w", userID.String(), err)
	}

	return total, nil
}

func (r *purchaseRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Purchase, error) {
	query := purchaseSelect + `
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find purchases", zap.Error(err))
		return nil, fmt.Errorf("find purchases: %w", err)
	}
	defer rows.Close()

	return scanPurchaseRows(rows, r.log)
}

func (r *purchaseRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM purchases WHERE deleted_at IS NULL`

	var total int64
	if err := r.db.QueryRow(ctx, query).Scan(&total); err != nil {
		r.log.Error("Failed to count purchases", zap.Error(err))
		return 0, fmt.Errorf("count purchases: %w", err)
	}

	return total, nil
}

func (r *purchaseRepository) FindTakenSeats(ctx context.Context, showtimeID uuid.UUID, now time.Time) ([]string, error) {
	query := `
		SELECT DISTINCT seat
		FROM purchases, unnest(chosen_seats) AS seat
		WHERE showtime_id = $1
		  AND deleted_at IS NULL
		  AND (status <> 'initiated' OR expired_seat_selection_at > $2)
	`

	rows, err := r.db.Query(ctx, query, showtimeID, now)
	if err != nil {
		r.log.Error("Failed to find taken seats",
			zap.Error(err),
			zap.String("showtime_id", showtimeID.String()),
		)
		return nil, fmt.Errorf("find taken seats for showtime %s: %w", showtimeID.String(), err)
	}
	defer rows.Close()

	var seats []string
	for rows.Next() {
		var seat string
		if err := rows.Scan(&seat); err != nil {
			r.log.Error("Failed to scan seat label", zap.Error(err))
			return nil, fmt.Errorf("scan seat label: %w", err)
		}
		seats = append(seats, seat)
	}

	return seats, nil
}

func (r *purchaseRepository) Update(ctx context.Context, purchase *entity.Purchase) error {
	query := `
		UPDATE purchases
		SET chosen_seats = $2, status = $3, discount_type = $4, discount_amount = $5,
		    payment_method = $6, payment_amount = $7, payment_date = $8, qrcode_image = $9,
		    updated_at = $10
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		purchase.ID,
		purchase.ChosenSeats,
		purchase.Status,
		purchase.DiscountType,
		purchase.DiscountAmount,
		purchase.PaymentMethod,
		purchase.PaymentAmount,
		purchase.PaymentDate,
		purchase.QRCodeImage,
		purchase.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update purchase",
			zap.Error(err),
			zap.String("purchase_id", purchase.ID.String()),
		)
		return fmt.Errorf("update purchase %s: %w", purchase.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("purchase %s not found", purchase.ID.String())
	}

	return nil
}

const purchaseSelect = `
	SELECT id, purchase_code, user_id, showtime_id, number_tickets, chosen_seats,
	       status, original_amount, discount_type, discount_amount, payment_method,
	       payment_amount, payment_date, expired_seat_selection_at, qrcode_image,
	       created_at, updated_at, deleted_at
	FROM purchases
`

func purchaseScanTargets(p *entity.Purchase) []interface{} {
	return []interface{}{
		&p.ID,
		&p.PurchaseCode,
		&p.UserID,
		&p.ShowtimeID,
		&p.NumberTickets,
		&p.ChosenSeats,
		&p.Status,
		&p.OriginalAmount,
		&p.DiscountType,
		&p.DiscountAmount,
		&p.PaymentMethod,
		&p.PaymentAmount,
		&p.PaymentDate,
		&p.ExpiredSeatSelectionAt,
		&p.QRCodeImage,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.DeletedAt,
	}
}

func scanPurchaseRows(rows pgx.Rows, log *zap.Logger) ([]*entity.Purchase, error) {
	var purchases []*entity.Purchase
	for rows.Next() {
		var purchase entity.Purchase
		if err := rows.Scan(purchaseScanTargets(&purchase)...); err != nil {
			log.Error("Failed to scan purchase row", zap.Error(err))
			return nil, fmt.Errorf("scan purchase row: %w", err)
		}
		purchases = append(purchases, &purchase)
	}

	return purchases, nil
}
