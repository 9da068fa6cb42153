package model

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

type MintStatus string

const (
	MintStatusPrepared MintStatus = "PREPARED"
	MintStatusSigned   MintStatus = "SIGNED"
	MintStatusPending  MintStatus = "PENDING"
	MintStatusSuccess  MintStatus = "SUCCESS"
	MintStatusFailed   MintStatus = "FAILED"
)

// Mint is one launch carried across the prepare, sign and submit steps.
type Mint struct {
	Id          string
	Network     string
	PairId      string
	Name        string
	Symbol      string
	Creator     string
	Token       string
	UnsignedTx  string
	SignedTx    string
	TxSignature string
	Status      MintStatus
	CreateTime  time.Time
	UpdateTime  time.Time
}

type MintModel struct {
	db  *sql.DB
	now func() time.Time
}

func NewMintModel(db *sql.DB) *MintModel {
	return &MintModel{db: db, now: time.Now}
}

const mintColumns = `id, network, pair_id, name, symbol, creator, token, unsigned_tx, signed_tx, tx_signature, status, create_time, update_time`

func (m *MintModel) Save(ctx context.Context, args Mint) (*Mint, error) {
	now := m.now()
	args.Id = uuid.NewString()
	args.CreateTime = now
	args.UpdateTime = now
	if args.Status == "" {
		args.Status = MintStatusPrepared
	}

	_, err := m.db.ExecContext(ctx,
		`INSERT INTO mints (`+mintColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		args.Id, args.Network, args.PairId, args.Name, args.Symbol, args.Creator, args.Token,
		args.UnsignedTx, args.SignedTx, args.TxSignature, string(args.Status),
		now.UnixMilli(), now.UnixMilli(),
	)
	if err != nil {
		return nil, err
	}
	return &args, nil
}

func (m *MintModel) FindOne(ctx context.Context, id string) (*Mint, error) {
	row := m.db.QueryRowContext(ctx, `SELECT `+mintColumns+` FROM mints WHERE id = ?`, id)
	mint, err := scanMint(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return mint, err
}

// FindAll returns mints newest first.
func (m *MintModel) FindAll(ctx context.Context, offset, limit int) ([]*Mint, error) {
	rows, err := m.db.QueryContext(ctx,
		`SELECT `+mintColumns+` FROM mints ORDER BY create_time DESC, id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*Mint
	for rows.Next() {
		mint, err := scanMint(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, mint)
	}
	return list, rows.Err()
}

func (m *MintModel) UpdateSigned(ctx context.Context, id string, signedTx string) error {
	return m.update(ctx, `UPDATE mints SET signed_tx = ?, status = ?, update_time = ? WHERE id = ?`,
		signedTx, string(MintStatusSigned), m.now().UnixMilli(), id)
}

func (m *MintModel) UpdateSubmitted(ctx context.Context, id string, txSignature string, status MintStatus) error {
	return m.update(ctx, `UPDATE mints SET tx_signature = ?, status = ?, update_time = ? WHERE id = ?`,
		txSignature, string(status), m.now().UnixMilli(), id)
}

func (m *MintModel) update(ctx context.Context, query string, args ...any) error {
	res, err := m.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMint(row rowScanner) (*Mint, error) {
	var (
		mint       Mint
		status     string
		createTime int64
		updateTime int64
	)
	err := row.Scan(&mint.Id, &mint.Network, &mint.PairId, &mint.Name, &mint.Symbol, &mint.Creator,
		&mint.Token, &mint.UnsignedTx, &mint.SignedTx, &mint.TxSignature, &status, &createTime, &updateTime)
	if err != nil {
		return nil, err
	}

	mint.Status = MintStatus(status)
	mint.CreateTime = time.UnixMilli(createTime)
	mint.UpdateTime = time.UnixMilli(updateTime)
	return &mint, nil
}
