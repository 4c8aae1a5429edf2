package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"checkout-service/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTransact_RollsBackOnError(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	store := repository.NewGormCheckoutStore(gormDB)

	sentinel := errors.New("validation failed")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := store.Transact(context.Background(), func(tx repository.CheckoutTx) error {
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockProducts_UsesRowLocks(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	store := repository.NewGormCheckoutStore(gormDB)

	productID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id IN .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "price", "stock", "status"}).
			AddRow(productID, "Gadget", "20.00", 3, "approved"))
	mock.ExpectCommit()

	err := store.Transact(context.Background(), func(tx repository.CheckoutTx) error {
		products, err := tx.LockProducts([]uuid.UUID{productID})
		assert.NoError(t, err)
		assert.Len(t, products, 1)
		assert.Equal(t, 3, products[0].Stock)
		return nil
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementStock_GuardHolds(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	store := repository.NewGormCheckoutStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.Transact(context.Background(), func(tx repository.CheckoutTx) error {
		ok, err := tx.DecrementStock(uuid.New(), 2)
		assert.NoError(t, err)
		assert.True(t, ok)
		return nil
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementStock_GuardLost(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	store := repository.NewGormCheckoutStore(gormDB)

	conflict := errors.New("conflict")

	mock.ExpectBegin()
	// Zero rows affected: a concurrent checkout drained the stock first.
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := store.Transact(context.Background(), func(tx repository.CheckoutTx) error {
		ok, err := tx.DecrementStock(uuid.New(), 2)
		assert.NoError(t, err)
		if !ok {
			return conflict
		}
		return nil
	})
	assert.ErrorIs(t, err, conflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClearCart(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	store := repository.NewGormCheckoutStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "cart_items"`)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := store.Transact(context.Background(), func(tx repository.CheckoutTx) error {
		return tx.ClearCart(uuid.New())
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
