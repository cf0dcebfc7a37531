package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrDuplicateOrder is returned when an order id is recorded twice.
var ErrDuplicateOrder = errors.New("order already recorded")

// OrderRecord is one dispatched checkout.
type OrderRecord struct {
	Seq           int64  `json:"seq"`
	ID            string `json:"id"`
	Channel       string `json:"channel"`
	Link          string `json:"link"`
	Transcript    string `json:"transcript"`
	ItemCount     int    `json:"item_count"`
	Total         string `json:"total"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
}

// RecordOrder appends an order to the log and returns its sequence number.
func (s *SQLite) RecordOrder(ctx context.Context, rec OrderRecord) (int64, error) {
	var exists int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders WHERE id = ?`, rec.ID).Scan(&exists); err != nil {
		return 0, fmt.Errorf("record order %s: %w", rec.ID, err)
	}
	if exists > 0 {
		return 0, fmt.Errorf("%w: %s", ErrDuplicateOrder, rec.ID)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO orders (id, channel, link, transcript, item_count, total, customer_name, customer_phone)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Channel, rec.Link, rec.Transcript, rec.ItemCount, rec.Total, rec.CustomerName, rec.CustomerPhone)
	if err != nil {
		return 0, fmt.Errorf("record order %s: %w", rec.ID, err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("record order %s: %w", rec.ID, err)
	}
	return seq, nil
}

// ListOrders returns recorded orders oldest first. A positive limit keeps
// only the most recent limit orders; limit <= 0 returns all.
func (s *SQLite) ListOrders(ctx context.Context, limit int) ([]OrderRecord, error) {
	query := `
		SELECT seq, id, channel, link, transcript, item_count, total, customer_name, customer_phone
		FROM orders
		ORDER BY seq ASC, id ASC COLLATE BINARY
	`
	args := []any{}
	if limit > 0 {
		query = `
		SELECT seq, id, channel, link, transcript, item_count, total, customer_name, customer_phone
		FROM (
			SELECT * FROM orders
			ORDER BY seq DESC, id DESC COLLATE BINARY
			LIMIT ?
		)
		ORDER BY seq ASC, id ASC COLLATE BINARY
	`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []OrderRecord
	for rows.Next() {
		var rec OrderRecord
		if err := rows.Scan(&rec.Seq, &rec.ID, &rec.Channel, &rec.Link, &rec.Transcript,
			&rec.ItemCount, &rec.Total, &rec.CustomerName, &rec.CustomerPhone); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return out, nil
}
