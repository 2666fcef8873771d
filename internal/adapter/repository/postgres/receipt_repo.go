package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/finwise/internal/domain"
	"github.com/iho/finwise/internal/usecase"
)

// ReceiptRepository implements usecase.ReceiptRepository.
type ReceiptRepository struct{}

// NewReceiptRepository creates a new ReceiptRepository.
func NewReceiptRepository() *ReceiptRepository {
	return &ReceiptRepository{}
}

// Create stores a receipt. Item order is preserved.
func (r *ReceiptRepository) Create(ctx context.Context, tx usecase.Transaction, in domain.NewReceipt) (*domain.Receipt, error) {
	q, err := pgxTx(tx)
	if err != nil {
		return nil, err
	}

	items := in.Items
	if items == nil {
		items = []string{}
	}

	query := `
		INSERT INTO receipts (payment_method, party_id, receipt_date, receipt_time, items)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	receipt := &domain.Receipt{
		PaymentMethod: in.PaymentMethod,
		PartyID:       in.PartyID,
		Date:          in.Date,
		Time:          in.Time,
		Items:         items,
	}
	err = q.QueryRow(ctx, query,
		string(in.PaymentMethod), in.PartyID, dateToPg(in.Date), timeToPg(in.Time), items,
	).Scan(&receipt.ID)
	if err != nil {
		return nil, mapConstraintError(err)
	}
	return receipt, nil
}

// GetByID retrieves a receipt by ID.
func (r *ReceiptRepository) GetByID(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Receipt, error) {
	q, err := pgxTx(tx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, payment_method, party_id, receipt_date, receipt_time, items
		FROM receipts WHERE id = $1
	`
	var (
		receipt domain.Receipt
		method  string
		date    pgtype.Date
		clock   pgtype.Time
		items   []string
	)
	err = q.QueryRow(ctx, query, id).Scan(&receipt.ID, &method, &receipt.PartyID, &date, &clock, &items)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReceiptNotFound
		}
		return nil, err
	}

	receipt.PaymentMethod = domain.PaymentMethod(method)
	receipt.Date = dateFromPg(date)
	receipt.Time = timeFromPg(clock)
	receipt.Items = items
	if receipt.Items == nil {
		receipt.Items = []string{}
	}
	return &receipt, nil
}

// Delete removes a receipt.
func (r *ReceiptRepository) Delete(ctx context.Context, tx usecase.Transaction, id int64) (int64, error) {
	q, err := pgxTx(tx)
	if err != nil {
		return 0, err
	}

	tag, err := q.Exec(ctx, `DELETE FROM receipts WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
