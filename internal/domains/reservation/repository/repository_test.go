package repository_test

import (
	"context"
	"dinebook/infras/otel/mocks"
	"dinebook/infras/postgres"
	"dinebook/internal/domains/reservation/model"
	"dinebook/internal/domains/reservation/repository"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const transitionSQL = "UPDATE reservations SET guest_count = $1 WHERE (reservations.id = $2 AND reservations.status IN ($3, $4))"

func TestTransitionTx(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{"active reservation is updated", 1, true},
		{"reservation left the active states", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			t.Cleanup(func() { _ = db.Close() })

			conn := sqlx.NewDb(db, "postgres")
			repo := repository.New(&postgres.Connection{Read: conn, Write: conn}, mocks.NewOtel())

			mock.ExpectBegin()
			mock.ExpectExec(regexp.QuoteMeta(transitionSQL)).
				WithArgs(3, "res-1", model.StatusPending, model.StatusConfirmed).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))
			mock.ExpectRollback()

			tx, err := conn.Beginx()
			require.NoError(t, err)

			changed, err := repo.TransitionTx(context.Background(), tx, "res-1", model.ActiveStatuses, map[string]any{model.FieldGuestCount: 3})

			require.NoError(t, err)
			assert.Equal(t, tt.want, changed)
			require.NoError(t, tx.Rollback())
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
