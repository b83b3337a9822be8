// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"fmt"
)

// TxManager runs callbacks inside a single database transaction. The
// transaction travels through the callback's context and is picked up by
// [QuerierFromCtx].
type TxManager struct {
	pool Pool
}

// NewTxManager creates a new TxManager.
func NewTxManager(pool Pool) *TxManager {
	return &TxManager{pool: pool}
}

/*
RunInTx executes fn within a database transaction (Read Committed).

A call made while ctx already carries a transaction joins it instead of
opening a second one, so services can compose transactional helpers.

Returns:
  - error: fn's error after rollback, or a begin/commit failure
*/
func (manager *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {

	// Join the outer transaction
	if InTx(ctx) {
		return fn(ctx)
	}

	tx, err := manager.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback failed: %w (original error: %v)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
