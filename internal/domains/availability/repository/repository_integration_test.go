//go:build integration

package repository_test

import (
	"context"
	"dinebook/config"
	"dinebook/infras/otel/mocks"
	"dinebook/infras/postgres"
	"dinebook/internal/domains/availability/model"
	"dinebook/internal/domains/availability/repository"
	"dinebook/internal/domains/availability/service"
	"dinebook/migrations"
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	day         = "2025-06-01"
	otherRestID = "6c1f4f1e-3e67-4d9f-8b64-7a6e9e2a1b02"
	userID      = "1a2b3c4d-5e6f-4a1b-8c2d-3e4f5a6b7c8d"

	tableA1 = tableID
	tableA2 = "9d2e3f4a-5b6c-4d7e-8f90-a1b2c3d4e5f6"
	tableB1 = "ae3f4a5b-6c7d-4e8f-90a1-b2c3d4e5f607"
	tableC1 = "bf4a5b6c-7d8e-4f90-a1b2-c3d4e5f60718"

	bookingA1     = bookingID
	bookingA2Gone = "1f7e6d5c-4b3a-4291-9f8e-7d6c5b4a3b21"
	bookingC1     = "2a8f7e6d-5c4b-4392-a09f-8e7d6c5b4c32"
)

func startPostgres(t *testing.T) *sqlx.DB {
	t.Helper()

	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("dinebook"),
		tcpostgres.WithUsername("dinebook"),
		tcpostgres.WithPassword("dinebook"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	source, err := iofs.New(migrations.Postgres, "postgres")
	require.NoError(t, err)

	mig, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	require.NoError(t, err)

	if err = mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		require.NoError(t, err)
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	seed(t, db)

	return db
}

// seed lays out two restaurants. Table A1 is booked 18:00-20:00, A2 only holds a
// cancelled booking, B1 is inactive and C1 belongs to the other restaurant.
func seed(t *testing.T, db *sqlx.DB) {
	t.Helper()

	statements := []string{
		`INSERT INTO users (id, email, password) VALUES ('` + userID + `', 'guest@example.com', 'x')`,
		`INSERT INTO restaurants (id, name) VALUES ('` + restaurantID + `', 'Sea Breeze'), ('` + otherRestID + `', 'Hill Top')`,
		`INSERT INTO restaurant_tables (id, restaurant_id, table_number, capacity, is_active) VALUES
			('` + tableA1 + `', '` + restaurantID + `', 'A1', 2, TRUE),
			('` + tableA2 + `', '` + restaurantID + `', 'A2', 4, TRUE),
			('` + tableB1 + `', '` + restaurantID + `', 'B1', 6, FALSE),
			('` + tableC1 + `', '` + otherRestID + `', 'C1', 4, TRUE)`,
		`INSERT INTO reservations (id, user_id, restaurant_id, table_id, reservation_date, start_time, end_time, guest_count, status) VALUES
			('` + bookingA1 + `', '` + userID + `', '` + restaurantID + `', '` + tableA1 + `', '` + day + `', '18:00', '20:00', 2, 'confirmed'),
			('` + bookingA2Gone + `', '` + userID + `', '` + restaurantID + `', '` + tableA2 + `', '` + day + `', '18:00', '20:00', 4, 'cancelled'),
			('` + bookingC1 + `', '` + userID + `', '` + otherRestID + `', '` + tableC1 + `', '` + day + `', '17:00', '19:00', 3, 'pending')`,
	}

	for _, stmt := range statements {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
}

func TestAvailabilityAgainstPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("needs docker")
	}

	db := startPostgres(t)
	repo := repository.New(&postgres.Connection{Read: db, Write: db}, mocks.NewOtel())
	ctx := context.Background()

	t.Run("conflicts", func(t *testing.T) {
		tests := []struct {
			name       string
			table      string
			start, end string
			exclude    string
			want       int
		}{
			{"same window", tableA1, "18:00", "20:00", "", 1},
			{"partial overlap", tableA1, "19:30", "21:00", "", 1},
			{"touching after", tableA1, "20:00", "22:00", "", 0},
			{"touching before", tableA1, "16:00", "18:00", "", 0},
			{"own booking excluded", tableA1, "19:00", "21:00", bookingA1, 0},
			{"cancelled booking never blocks", tableA2, "18:00", "20:00", "", 0},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				count, err := repo.CountConflicts(ctx, model.Query{
					TableID:              tt.table,
					Date:                 day,
					StartTime:            tt.start,
					EndTime:              tt.end,
					ExcludeReservationID: tt.exclude,
				})

				require.NoError(t, err)
				assert.Equal(t, tt.want, count)
			})
		}
	})

	t.Run("available tables", func(t *testing.T) {
		evening := model.Query{RestaurantID: restaurantID, Date: day, StartTime: "18:30", EndTime: "19:30"}

		ids, err := repo.AvailableTableIDs(ctx, evening)
		require.NoError(t, err)
		assert.Equal(t, []string{tableA2}, ids)

		evening.MinCapacity = 5
		ids, err = repo.AvailableTableIDs(ctx, evening)
		require.NoError(t, err)
		assert.Empty(t, ids)

		late := model.Query{RestaurantID: restaurantID, Date: day, StartTime: "20:00", EndTime: "21:00"}
		ids, err = repo.AvailableTableIDs(ctx, late)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{tableA1, tableA2}, ids)
	})

	t.Run("tables flagged with availability", func(t *testing.T) {
		tables, err := repo.TablesWithAvailability(ctx, model.Query{RestaurantID: restaurantID, Date: day, StartTime: "18:30", EndTime: "19:30"})
		require.NoError(t, err)
		require.Len(t, tables, 3)

		available := map[string]bool{}
		for _, table := range tables {
			available[table.TableNumber] = table.IsAvailable
		}

		assert.Equal(t, map[string]bool{"A1": false, "A2": true, "B1": false}, available)
	})

	t.Run("restaurants with a free table", func(t *testing.T) {
		ids, err := repo.RestaurantIDsWithFreeTable(ctx, model.Query{Date: day, StartTime: "17:30", EndTime: "18:30", MinCapacity: 4})
		require.NoError(t, err)
		assert.Equal(t, []string{restaurantID}, ids)
	})

	t.Run("floor plan", func(t *testing.T) {
		svc := service.New(repo, &config.Config{}, nil, mocks.NewOtel())

		tables, err := svc.TablesWithReservations(ctx, model.Query{RestaurantID: restaurantID, Date: day, StartTime: "19:30", EndTime: "21:00"})
		require.NoError(t, err)
		require.Len(t, tables, 3)

		assert.Equal(t, "A1", tables[0].TableNumber)
		require.Len(t, tables[0].Reservations, 1)
		assert.Equal(t, bookingA1, tables[0].Reservations[0].ID)
		assert.True(t, tables[0].Reservations[0].OverlapsWindow)
		assert.Empty(t, tables[1].Reservations)
		assert.Empty(t, tables[2].Reservations)
	})
}
