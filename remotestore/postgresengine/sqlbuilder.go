package postgresengine

import (
	"encoding/json"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/shelfwise/circulation/core"
	"github.com/shelfwise/circulation/remotestore"
)

const (
	dialectPostgres = "postgres"

	colID           = "id"
	colName         = "name"
	colTotalCopies  = "total_copies"
	colCategory     = "category"
	colLanguage     = "language"
	colTitleID      = "title_id"
	colMemberID     = "member_id"
	colKind         = "kind"
	colOccurredAt   = "occurred_at"
	colDueDate      = "due_date"
	colRenewalCount = "renewal_count"
	colCreatedAt    = "created_at"
	colPickupDate   = "pickup_date"
	colStatus       = "status"
	colLoanPeriod   = "loan_period_days"
	colMaxRenewals  = "max_renewals"
)

// settingsRecordID keys the single global settings row.
const settingsRecordID = "global"

func buildInsertSQL(table string, record goqu.Record) (string, error) {
	sqlQuery, _, err := goqu.Dialect(dialectPostgres).
		Insert(table).
		Rows(record).
		ToSQL()

	return sqlQuery, err
}

func buildUpdateSQL(table string, id string, record goqu.Record) (string, error) {
	sqlQuery, _, err := goqu.Dialect(dialectPostgres).
		Update(table).
		Set(record).
		Where(goqu.C(colID).Eq(id)).
		ToSQL()

	return sqlQuery, err
}

func buildDeleteSQL(table string, id string) (string, error) {
	sqlQuery, _, err := goqu.Dialect(dialectPostgres).
		Delete(table).
		Where(goqu.C(colID).Eq(id)).
		ToSQL()

	return sqlQuery, err
}

func buildSelectSQL(table string, orderBy string, columns ...any) (string, error) {
	sqlQuery, _, err := goqu.Dialect(dialectPostgres).
		From(table).
		Select(columns...).
		Order(goqu.C(orderBy).Asc()).
		ToSQL()

	return sqlQuery, err
}

// entityColumns decodes a record payload into the column values of its entity.
// The record identity is returned separately so inserts and updates share the
// mapping.
func entityColumns(entity remotestore.Entity, payload json.RawMessage) (string, goqu.Record, error) {
	switch entity {
	case remotestore.EntityTitles:
		record, err := remotestore.DecodeTitle(payload)
		if err != nil {
			return "", nil, err
		}

		return record.ID, goqu.Record{
			colName:        record.Name,
			colTotalCopies: record.TotalCopies,
			colCategory:    record.Category,
			colLanguage:    record.Language,
		}, nil

	case remotestore.EntityMembers:
		record, err := remotestore.DecodeMember(payload)
		if err != nil {
			return "", nil, err
		}

		return record.ID, goqu.Record{
			colName: record.Name,
		}, nil

	case remotestore.EntityLoanEvents:
		record, err := remotestore.DecodeLoanEvent(payload)
		if err != nil {
			return "", nil, err
		}

		columns := goqu.Record{
			colTitleID:      record.TitleID,
			colMemberID:     record.MemberID,
			colKind:         string(record.Kind),
			colOccurredAt:   record.Timestamp,
			colRenewalCount: record.RenewalCount,
		}

		if record.DueDate.IsZero() {
			columns[colDueDate] = nil
		} else {
			columns[colDueDate] = core.Day(record.DueDate)
		}

		return record.ID, columns, nil

	case remotestore.EntityReservations:
		record, err := remotestore.DecodeReservation(payload)
		if err != nil {
			return "", nil, err
		}

		return record.ID, goqu.Record{
			colTitleID:    record.TitleID,
			colMemberID:   record.MemberID,
			colCreatedAt:  record.CreatedAt,
			colPickupDate: core.Day(record.PickupDate),
			colStatus:     string(record.Status),
		}, nil

	case remotestore.EntitySettings:
		record, err := remotestore.DecodeSettings(payload)
		if err != nil {
			return "", nil, err
		}

		return settingsRecordID, goqu.Record{
			colLoanPeriod:  record.LoanPeriodDays,
			colMaxRenewals: record.MaxRenewals,
		}, nil

	default:
		return "", nil, remotestore.ErrUnknownEntity
	}
}
