package db

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct {
	pgx.Tx

	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Commit(ctx context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx       *fakeTx
	beginErr error
	opts     pgx.TxOptions
}

func (b *fakeBeginner) BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	b.opts = opts
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	return b.tx, nil
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	pool := &fakeBeginner{tx: &fakeTx{}}

	err := WithTx(context.Background(), pool, func(tx pgx.Tx) error {
		return nil
	})

	require.NoError(t, err)
	assert.True(t, pool.tx.committed)
	assert.False(t, pool.tx.rolledBack)
	assert.Equal(t, pgx.RepeatableRead, pool.opts.IsoLevel)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	pool := &fakeBeginner{tx: &fakeTx{}}
	boom := errors.New("boom")

	err := WithTx(context.Background(), pool, func(tx pgx.Tx) error {
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.False(t, pool.tx.committed)
	assert.True(t, pool.tx.rolledBack)
}

func TestWithTxBeginFailure(t *testing.T) {
	boom := errors.New("connection refused")
	pool := &fakeBeginner{beginErr: boom}

	err := WithTx(context.Background(), pool, func(tx pgx.Tx) error {
		t.Fatal("fn must not run when begin fails")
		return nil
	})

	require.ErrorIs(t, err, boom)
}

func TestWithTxCommitFailure(t *testing.T) {
	boom := errors.New("serialization failure")
	pool := &fakeBeginner{tx: &fakeTx{commitErr: boom}}

	err := WithTx(context.Background(), pool, func(tx pgx.Tx) error {
		return nil
	})

	require.ErrorIs(t, err, boom)
}
