package postgres

//nolint:revive
import (
	"context"
	"database/sql"
	"dinebook/config"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// Connection splits reads (catalog, availability, listings) from writes (reservations, transitions).
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(config *config.Config) *Connection {
	return &Connection{
		Read:  connect(config, "read", config.DB.Postgres.Read),
		Write: connect(config, "write", config.DB.Postgres.Write),
	}
}

// DSN renders a postgres url for the endpoint. Extra query values (x-migrations-table) are appended.
func DSN(config *config.Config, endpoint config.PostgresEndpoint, extra url.Values) string {
	query := url.Values{}
	if endpoint.SSLMode != "" {
		query.Set("sslmode", endpoint.SSLMode)
	}

	if endpoint.Timezone != "" {
		query.Set("timezone", endpoint.Timezone)
	}

	for key, values := range extra {
		query[key] = values
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(endpoint.Username, endpoint.Password),
		Host:     net.JoinHostPort(endpoint.Host, endpoint.Port),
		Path:     "/" + config.DB.Postgres.Prefix + endpoint.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func connect(config *config.Config, name string, endpoint config.PostgresEndpoint) *sqlx.DB {
	pg := config.DB.Postgres
	attempts := max(pg.MaxRetry, 1)

	for attempt := range attempts {
		db, err := sqlx.Connect("postgres", DSN(config, endpoint, nil))
		if err == nil {
			db.SetMaxOpenConns(pg.MaxOpenConns)
			db.SetMaxIdleConns(pg.MaxIdleConns)
			db.SetConnMaxLifetime(time.Duration(pg.ConnMaxLifetimeSeconds) * time.Second)

			log.Info().
				Str("name", name).
				Str("host", endpoint.Host).
				Str("dbName", pg.Prefix+endpoint.Name).
				Msg("Connected to database")

			return db
		}

		log.Error().
			Err(err).
			Str("name", name).
			Str("host", endpoint.Host).
			Int("attempt", attempt+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(pg.RetryWaitTime) * time.Second)
	}

	log.Fatal().Str("name", name).Int("attempts", attempts).Msg("Giving up connecting to database")

	return nil
}

func rollback(tx *sqlx.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		log.Error().Err(err).Msg("failed to rollback transaction")
	}
}

// Transact runs fn inside a write transaction, committing when it returns nil and rolling back
// when it fails or panics. A panic is re-raised after the rollback.
func (c *Connection) Transact(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := c.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			rollback(tx)
			panic(p)
		}

		if err != nil {
			rollback(tx)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (c *Connection) Close() error {
	return errors.Join(c.Read.Close(), c.Write.Close())
}
