// MIT License

// Copyright (c) 2023 anagilda

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package mobilestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
)

var storeLog *logrus.Entry = GetLogger("store")

// PostgresStore catalog store against the phones_phone and
// phones_company tables of the CRUD backend
// One connection is opened at run start and held for the whole run
type PostgresStore struct {
	conn *pgx.Conn
}

// NewPostgresStore open the catalog connection
// A connect failure here is fatal to the whole run, nothing can be
// persisted without it
func NewPostgresStore(ctx context.Context, cfg *DatabaseConfig) (*PostgresStore, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name,
	)
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to the database: %w", err)
	}
	storeLog.Info("Successful connection to DB")
	return &PostgresStore{conn: conn}, nil
}

func (s *PostgresStore) PhoneExists(ctx context.Context, model string) (bool, error) {
	var id int64
	err := s.conn.QueryRow(ctx,
		"SELECT id FROM phones_phone WHERE model=$1;", model,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("phone existence check for %q: %v: %w", model, err, ErrPersistence)
	}
	return true, nil
}

func (s *PostgresStore) CompanyIDByName(ctx context.Context, name string) (int64, bool, error) {
	var id int64
	err := s.conn.QueryRow(ctx,
		"SELECT id FROM phones_company WHERE name=$1;", name,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("company lookup for %q: %v: %w", name, err, ErrPersistence)
	}
	return id, true, nil
}

// CreateCompany insert one company
// ON CONFLICT DO NOTHING plus a reselect turns a lost creation race into
// "company already exists, reuse its id"
func (s *PostgresStore) CreateCompany(ctx context.Context, name string) (int64, error) {
	id, err := s.createCompany(ctx, s.conn, name)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// rowQuerier both *pgx.Conn and pgx.Tx satisfy it
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (s *PostgresStore) createCompany(ctx context.Context, q rowQuerier, name string) (int64, error) {
	var id int64
	err := q.QueryRow(ctx,
		"INSERT INTO phones_company (name) VALUES ($1) ON CONFLICT (name) DO NOTHING RETURNING id;",
		name,
	).Scan(&id)
	if err == nil {
		storeLog.Infof("New company added to db (%s)", name)
		return id, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		// lost the race, the row exists already
		err = q.QueryRow(ctx,
			"SELECT id FROM phones_company WHERE name=$1;", name,
		).Scan(&id)
	}
	if err != nil {
		return 0, fmt.Errorf("create company %q: %v: %w", name, err, ErrPersistence)
	}
	return id, nil
}

// SavePhone persist one record inside a single transaction, company
// creation strictly before the phone insert, rollback on any failure
func (s *PostgresStore) SavePhone(ctx context.Context, record *PhoneRecord) error {
	specs, err := record.Specs.JSON()
	if err != nil {
		return fmt.Errorf("serialize specs of %q: %v: %w", record.Model, err, ErrPersistence)
	}
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction for %q: %v: %w", record.Model, err, ErrPersistence)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var companyID int64
	lookupErr := tx.QueryRow(ctx,
		"SELECT id FROM phones_company WHERE name=$1;", record.Manufacturer,
	).Scan(&companyID)
	if errors.Is(lookupErr, pgx.ErrNoRows) {
		companyID, err = s.createCompany(ctx, tx, record.Manufacturer)
		if err != nil {
			return err
		}
	} else if lookupErr != nil {
		err = fmt.Errorf("company lookup for %q: %v: %w", record.Manufacturer, lookupErr, ErrPersistence)
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO phones_phone
		(model, image, manufacturer_id, price, description, battery, features, specs, stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
		record.Model, record.Image, companyID, record.Price,
		record.Description, record.Battery, record.Features, specs, record.Stock,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			err = fmt.Errorf("%s: %w", record.Model, ErrDuplicateRecord)
			return err
		}
		err = fmt.Errorf("insert phone %q: %v: %w", record.Model, err, ErrPersistence)
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		err = fmt.Errorf("commit phone %q: %v: %w", record.Model, err, ErrPersistence)
		return err
	}
	storeLog.Infof("New phone added to the db (%s)", record.Model)
	return nil
}

func (s *PostgresStore) Close(ctx context.Context) error {
	err := s.conn.Close(ctx)
	if err == nil {
		storeLog.Info("Connection to db terminated safely")
	}
	return err
}

// EnsureSchema create the catalog tables when they are absent
// The unique constraints back the natural key invariants of the pipeline
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.conn.Exec(ctx, `
CREATE TABLE IF NOT EXISTS phones_company (
	id   BIGSERIAL PRIMARY KEY,
	name VARCHAR(100) NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS phones_phone (
	id              BIGSERIAL PRIMARY KEY,
	model           VARCHAR(100) NOT NULL UNIQUE,
	image           TEXT NOT NULL DEFAULT '',
	manufacturer_id BIGINT NOT NULL REFERENCES phones_company (id),
	price           NUMERIC(10,2) NOT NULL CHECK (price >= 0),
	description     TEXT NOT NULL DEFAULT '',
	battery         VARCHAR(200) NOT NULL DEFAULT '',
	features        TEXT NOT NULL DEFAULT '',
	specs           JSONB NOT NULL DEFAULT '{}',
	stock           INTEGER NOT NULL CHECK (stock >= 0)
);`)
	if err != nil {
		return fmt.Errorf("ensure catalog schema: %v: %w", err, ErrPersistence)
	}
	return nil
}
