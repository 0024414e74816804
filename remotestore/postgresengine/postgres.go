// Package postgresengine implements the remotestore contract on Postgres.
//
// SQL is built with goqu and executed through a small adapter layer, so the
// engine works unchanged on top of a pgxpool.Pool, a database/sql DB (lib/pq)
// or a sqlx.DB.
package postgresengine

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/shelfwise/circulation/core"
	"github.com/shelfwise/circulation/remotestore"
	"github.com/shelfwise/circulation/remotestore/postgresengine/internal/adapters"
)

const (
	logMsgBuildQueryFailed = "failed to build query"
	logMsgDBExecFailed     = "database execution failed"
	logMsgDBQueryFailed    = "database query execution failed"
	logMsgScanRowFailed    = "failed to scan database row"
	logMsgCloseRowsFailed  = "failed to close database rows"
	logMsgRecordNotFound   = "no record matched the given id"
	logMsgOperationDone    = "remote store operation completed"
	logAttrError           = "error"
	logAttrEntity          = "entity"
	logAttrRecordID        = "record_id"
	logAttrDurationMS      = "duration_ms"
	logAttrOperation       = "operation"
	opInsert               = "insert"
	opUpdate               = "update"
	opDelete               = "delete"
	opFetch                = "fetch"
)

var (
	// ErrBuildingQueryFailed is returned when goqu cannot render the statement.
	ErrBuildingQueryFailed = errors.New("building sql query failed")

	// ErrExecutingQueryFailed is returned when the database rejects a statement.
	ErrExecutingQueryFailed = errors.New("executing sql query failed")

	// ErrScanningRowFailed is returned when a result row does not scan.
	ErrScanningRowFailed = errors.New("scanning database row failed")
)

// Logger interface for SQL logging, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// EntityStore implements remotestore.Store on a Postgres database.
type EntityStore struct {
	db          adapters.DBAdapter
	tablePrefix string
	logger      Logger
}

// NewEntityStoreFromPGXPool creates an EntityStore using a pgx pool.
func NewEntityStoreFromPGXPool(pool *pgxpool.Pool, options ...Option) (EntityStore, error) {
	if pool == nil {
		return EntityStore{}, remotestore.ErrNilDatabaseConnection
	}

	return newEntityStore(adapters.NewPGXAdapter(pool), options...)
}

// NewEntityStoreFromSQLDB creates an EntityStore using a database/sql DB.
func NewEntityStoreFromSQLDB(db *sql.DB, options ...Option) (EntityStore, error) {
	if db == nil {
		return EntityStore{}, remotestore.ErrNilDatabaseConnection
	}

	return newEntityStore(adapters.NewSQLAdapter(db), options...)
}

// NewEntityStoreFromSQLX creates an EntityStore using a sqlx.DB.
func NewEntityStoreFromSQLX(db *sqlx.DB, options ...Option) (EntityStore, error) {
	if db == nil {
		return EntityStore{}, remotestore.ErrNilDatabaseConnection
	}

	return newEntityStore(adapters.NewSQLXAdapter(db), options...)
}

func newEntityStore(db adapters.DBAdapter, options ...Option) (EntityStore, error) {
	store := EntityStore{db: db}

	for _, option := range options {
		if err := option(&store); err != nil {
			return EntityStore{}, err
		}
	}

	return store, nil
}

func (s EntityStore) table(entity remotestore.Entity) string {
	return s.tablePrefix + string(entity)
}

// Ping probes the database connection. An error is joined with
// remotestore.ErrUnreachable so callers can branch to the offline queue.
func (s EntityStore) Ping(ctx context.Context) error {
	rows, err := s.db.Query(ctx, "SELECT 1")
	if err != nil {
		return errors.Join(remotestore.ErrUnreachable, err)
	}

	s.closeRows(rows)

	return nil
}

// Insert writes a new record for the entity.
func (s EntityStore) Insert(ctx context.Context, entity remotestore.Entity, record json.RawMessage) error {
	id, columns, err := entityColumns(entity, record)
	if err != nil {
		return err
	}

	columns[colID] = id

	sqlQuery, buildErr := buildInsertSQL(s.table(entity), columns)
	if buildErr != nil {
		s.logError(logMsgBuildQueryFailed, buildErr, entity, id)
		return errors.Join(ErrBuildingQueryFailed, buildErr)
	}

	_, err = s.exec(ctx, sqlQuery, opInsert, entity, id)

	return err
}

// Update rewrites the record with the given id. The id inside the payload is
// ignored in favor of the explicit key.
func (s EntityStore) Update(ctx context.Context, entity remotestore.Entity, id string, record json.RawMessage) error {
	_, columns, err := entityColumns(entity, record)
	if err != nil {
		return err
	}

	sqlQuery, buildErr := buildUpdateSQL(s.table(entity), id, columns)
	if buildErr != nil {
		s.logError(logMsgBuildQueryFailed, buildErr, entity, id)
		return errors.Join(ErrBuildingQueryFailed, buildErr)
	}

	rowsAffected, execErr := s.exec(ctx, sqlQuery, opUpdate, entity, id)
	if execErr != nil {
		return execErr
	}

	if rowsAffected == 0 {
		s.logWarn(logMsgRecordNotFound, entity, id)
		return remotestore.ErrRecordNotFound
	}

	return nil
}

// Delete removes the record with the given id.
func (s EntityStore) Delete(ctx context.Context, entity remotestore.Entity, id string) error {
	sqlQuery, buildErr := buildDeleteSQL(s.table(entity), id)
	if buildErr != nil {
		s.logError(logMsgBuildQueryFailed, buildErr, entity, id)
		return errors.Join(ErrBuildingQueryFailed, buildErr)
	}

	rowsAffected, execErr := s.exec(ctx, sqlQuery, opDelete, entity, id)
	if execErr != nil {
		return execErr
	}

	if rowsAffected == 0 {
		s.logWarn(logMsgRecordNotFound, entity, id)
		return remotestore.ErrRecordNotFound
	}

	return nil
}

// FetchTitles loads all title records.
func (s EntityStore) FetchTitles(ctx context.Context) ([]core.Title, error) {
	rows, err := s.query(ctx, remotestore.EntityTitles, colID,
		colID, colName, colTotalCopies, colCategory, colLanguage)
	if err != nil {
		return nil, err
	}
	defer s.closeRows(rows)

	titles := make([]core.Title, 0)

	for rows.Next() {
		var record core.Title
		if scanErr := rows.Scan(&record.ID, &record.Name, &record.TotalCopies, &record.Category, &record.Language); scanErr != nil {
			s.logError(logMsgScanRowFailed, scanErr, remotestore.EntityTitles, "")
			return nil, errors.Join(ErrScanningRowFailed, scanErr)
		}

		titles = append(titles, record)
	}

	return titles, nil
}

// FetchMembers loads all member records.
func (s EntityStore) FetchMembers(ctx context.Context) ([]core.Member, error) {
	rows, err := s.query(ctx, remotestore.EntityMembers, colID, colID, colName)
	if err != nil {
		return nil, err
	}
	defer s.closeRows(rows)

	members := make([]core.Member, 0)

	for rows.Next() {
		var record core.Member
		if scanErr := rows.Scan(&record.ID, &record.Name); scanErr != nil {
			s.logError(logMsgScanRowFailed, scanErr, remotestore.EntityMembers, "")
			return nil, errors.Join(ErrScanningRowFailed, scanErr)
		}

		members = append(members, record)
	}

	return members, nil
}

// FetchLoanEvents loads the full loan event log in timestamp order.
func (s EntityStore) FetchLoanEvents(ctx context.Context) ([]core.LoanEvent, error) {
	rows, err := s.query(ctx, remotestore.EntityLoanEvents, colOccurredAt,
		colID, colTitleID, colMemberID, colKind, colOccurredAt, colDueDate, colRenewalCount)
	if err != nil {
		return nil, err
	}
	defer s.closeRows(rows)

	events := make([]core.LoanEvent, 0)

	for rows.Next() {
		var record core.LoanEvent
		var kind string
		var dueDate sql.NullTime

		if scanErr := rows.Scan(&record.ID, &record.TitleID, &record.MemberID, &kind, &record.Timestamp, &dueDate, &record.RenewalCount); scanErr != nil {
			s.logError(logMsgScanRowFailed, scanErr, remotestore.EntityLoanEvents, "")
			return nil, errors.Join(ErrScanningRowFailed, scanErr)
		}

		record.Kind = core.LoanEventKind(kind)
		if dueDate.Valid {
			record.DueDate = core.Day(dueDate.Time)
		}

		events = append(events, record)
	}

	return events, nil
}

// FetchReservations loads all reservation records in pickup-date order.
func (s EntityStore) FetchReservations(ctx context.Context) ([]core.Reservation, error) {
	rows, err := s.query(ctx, remotestore.EntityReservations, colPickupDate,
		colID, colTitleID, colMemberID, colCreatedAt, colPickupDate, colStatus)
	if err != nil {
		return nil, err
	}
	defer s.closeRows(rows)

	reservations := make([]core.Reservation, 0)

	for rows.Next() {
		var record core.Reservation
		var status string

		if scanErr := rows.Scan(&record.ID, &record.TitleID, &record.MemberID, &record.CreatedAt, &record.PickupDate, &status); scanErr != nil {
			s.logError(logMsgScanRowFailed, scanErr, remotestore.EntityReservations, "")
			return nil, errors.Join(ErrScanningRowFailed, scanErr)
		}

		record.Status = core.ReservationStatus(status)
		reservations = append(reservations, record)
	}

	return reservations, nil
}

// FetchSettings loads the global settings row, falling back to the defaults
// when no row exists yet.
func (s EntityStore) FetchSettings(ctx context.Context) (core.Settings, error) {
	rows, err := s.query(ctx, remotestore.EntitySettings, colID, colLoanPeriod, colMaxRenewals)
	if err != nil {
		return core.Settings{}, err
	}
	defer s.closeRows(rows)

	if !rows.Next() {
		return core.DefaultSettings(), nil
	}

	var record core.Settings
	if scanErr := rows.Scan(&record.LoanPeriodDays, &record.MaxRenewals); scanErr != nil {
		s.logError(logMsgScanRowFailed, scanErr, remotestore.EntitySettings, "")
		return core.Settings{}, errors.Join(ErrScanningRowFailed, scanErr)
	}

	return record, nil
}

func (s EntityStore) query(ctx context.Context, entity remotestore.Entity, orderBy string, columns ...string) (adapters.DBRows, error) {
	selected := make([]any, 0, len(columns))
	for _, column := range columns {
		selected = append(selected, goqu.C(column))
	}

	sqlQuery, buildErr := buildSelectSQL(s.table(entity), orderBy, selected...)
	if buildErr != nil {
		s.logError(logMsgBuildQueryFailed, buildErr, entity, "")
		return nil, errors.Join(ErrBuildingQueryFailed, buildErr)
	}

	start := time.Now()
	rows, queryErr := s.db.Query(ctx, sqlQuery)
	s.logOperation(opFetch, entity, "", time.Since(start))

	if queryErr != nil {
		s.logError(logMsgDBQueryFailed, queryErr, entity, "")
		return nil, errors.Join(ErrExecutingQueryFailed, queryErr)
	}

	return rows, nil
}

func (s EntityStore) exec(ctx context.Context, sqlQuery string, operation string, entity remotestore.Entity, id string) (int64, error) {
	start := time.Now()
	result, execErr := s.db.Exec(ctx, sqlQuery)
	s.logOperation(operation, entity, id, time.Since(start))

	if execErr != nil {
		s.logError(logMsgDBExecFailed, execErr, entity, id)
		return 0, errors.Join(ErrExecutingQueryFailed, execErr)
	}

	rowsAffected, affectedErr := result.RowsAffected()
	if affectedErr != nil {
		return 0, errors.Join(ErrExecutingQueryFailed, affectedErr)
	}

	return rowsAffected, nil
}

func (s EntityStore) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil && s.logger != nil {
		s.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}

func (s EntityStore) logOperation(operation string, entity remotestore.Entity, id string, duration time.Duration) {
	if s.logger == nil {
		return
	}

	s.logger.Debug(logMsgOperationDone,
		logAttrOperation, operation,
		logAttrEntity, string(entity),
		logAttrRecordID, id,
		logAttrDurationMS, float64(duration.Microseconds())/1000.0,
	)
}

func (s EntityStore) logError(msg string, err error, entity remotestore.Entity, id string) {
	if s.logger == nil {
		return
	}

	s.logger.Error(msg, logAttrError, err.Error(), logAttrEntity, string(entity), logAttrRecordID, id)
}

func (s EntityStore) logWarn(msg string, entity remotestore.Entity, id string) {
	if s.logger == nil {
		return
	}

	s.logger.Warn(msg, logAttrEntity, string(entity), logAttrRecordID, id)
}
