package remotestore

import (
	"encoding/json"
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/shelfwise/circulation/core"
)

// ErrDecodingRecordFailed is returned when a record payload does not decode
// into the entity's concrete shape.
var ErrDecodingRecordFailed = errors.New("decoding record payload failed")

// EncodeRecord marshals a core record into the payload shape carried over the
// contract and through the offline queue.
func EncodeRecord(record any) (json.RawMessage, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return nil, errors.Join(ErrDecodingRecordFailed, err)
	}

	return payload, nil
}

// DecodeTitle unmarshals a titles payload.
func DecodeTitle(payload json.RawMessage) (core.Title, error) {
	var record core.Title
	if err := jsoniter.ConfigFastest.Unmarshal(payload, &record); err != nil {
		return core.Title{}, errors.Join(ErrDecodingRecordFailed, err)
	}

	return record, nil
}

// DecodeMember unmarshals a members payload.
func DecodeMember(payload json.RawMessage) (core.Member, error) {
	var record core.Member
	if err := jsoniter.ConfigFastest.Unmarshal(payload, &record); err != nil {
		return core.Member{}, errors.Join(ErrDecodingRecordFailed, err)
	}

	return record, nil
}

// DecodeLoanEvent unmarshals a loan_events payload.
func DecodeLoanEvent(payload json.RawMessage) (core.LoanEvent, error) {
	var record core.LoanEvent
	if err := jsoniter.ConfigFastest.Unmarshal(payload, &record); err != nil {
		return core.LoanEvent{}, errors.Join(ErrDecodingRecordFailed, err)
	}

	return record, nil
}

// DecodeReservation unmarshals a reservations payload.
func DecodeReservation(payload json.RawMessage) (core.Reservation, error) {
	var record core.Reservation
	if err := jsoniter.ConfigFastest.Unmarshal(payload, &record); err != nil {
		return core.Reservation{}, errors.Join(ErrDecodingRecordFailed, err)
	}

	return record, nil
}

// DecodeSettings unmarshals a settings payload.
func DecodeSettings(payload json.RawMessage) (core.Settings, error) {
	var record core.Settings
	if err := jsoniter.ConfigFastest.Unmarshal(payload, &record); err != nil {
		return core.Settings{}, errors.Join(ErrDecodingRecordFailed, err)
	}

	return record, nil
}
