package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTx(t *testing.T) {
	t.Run("коммит", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		err := WithTx(context.Background(), db, nil, func(tx Querier) error { return nil })
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("откат при ошибке", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		boom := errors.New("boom")
		err := WithTx(context.Background(), db, nil, func(tx Querier) error { return boom })
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("откат при панике", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.Panics(t, func() {
			_ = WithTx(context.Background(), db, nil, func(tx Querier) error { panic("oops") })
		})
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ошибка начала транзакции", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectBegin().WillReturnError(errors.New("no conn"))

		called := false
		err := WithTx(context.Background(), db, nil, func(tx Querier) error { called = true; return nil })
		assert.Error(t, err)
		assert.False(t, called)
	})
}
