package usecase

import (
	"mission-ingestion-service/internal/domain/entity"
	"mission-ingestion-service/pkg/utils"
)

// Messages returned to API clients; the wording is part of the public contract.
const (
	MsgFieldRequired  = "field required"
	MsgInvalidType    = "invalid type"
	MsgVehicleType    = "vehicle_type must be one of: drone, helicopter, ultralight"
	MsgLatitudeRange  = "latitude must be between -90 and 90 degrees"
	MsgLongitudeRange = "longitude must be between -180 and 180 degrees"
	MsgAltitudeRange  = "altitude_m must be a positive integer"
	MsgAltitudeMax    = "altitude_m must not exceed 9223372036854775807"
)

// fieldCheck validates raw and, on success, stores the typed value in m.
type fieldCheck func(raw interface{}, m *entity.MissionRecord) *entity.Violation

type fieldRule struct {
	field string
	check fieldCheck
}

// missionRules is evaluated in order; every rule runs regardless of earlier failures.
var missionRules = []fieldRule{
	{entity.FieldMissionID, nonEmptyText(entity.FieldMissionID, func(m *entity.MissionRecord, s string) { m.MissionID = s })},
	{entity.FieldVehicleType, checkVehicleType},
	{entity.FieldLatitude, boundedFloat(entity.FieldLatitude, -90, 90, MsgLatitudeRange, func(m *entity.MissionRecord, f float64) { m.Latitude = f })},
	{entity.FieldLongitude, boundedFloat(entity.FieldLongitude, -180, 180, MsgLongitudeRange, func(m *entity.MissionRecord, f float64) { m.Longitude = f })},
	{entity.FieldAltitudeM, checkAltitude},
	{entity.FieldPilotID, nonEmptyText(entity.FieldPilotID, func(m *entity.MissionRecord, s string) { m.PilotID = s })},
}

// ValidateMission checks payload against the mission contract. It returns the
// record when every field is valid, otherwise an entity.ValidationErrors with
// at most one violation per field.
func ValidateMission(payload map[string]interface{}) (entity.MissionRecord, error) {
	var (
		mission    entity.MissionRecord
		violations entity.ValidationErrors
	)

	for _, rule := range missionRules {
		raw, ok := payload[rule.field]
		if !ok {
			violations = append(violations, violation(rule.field, entity.ViolationMissing, MsgFieldRequired))
			continue
		}
		if v := rule.check(raw, &mission); v != nil {
			violations = append(violations, *v)
		}
	}

	if len(violations) > 0 {
		return entity.MissionRecord{}, violations
	}
	return mission, nil
}

func nonEmptyText(field string, set func(*entity.MissionRecord, string)) fieldCheck {
	return func(raw interface{}, m *entity.MissionRecord) *entity.Violation {
		s, ok := utils.ToString(raw)
		if !ok {
			return wrongType(field)
		}
		if s == "" {
			v := violation(field, entity.ViolationMissing, field+" must not be empty")
			return &v
		}
		set(m, s)
		return nil
	}
}

func boundedFloat(field string, lo, hi float64, msg string, set func(*entity.MissionRecord, float64)) fieldCheck {
	return func(raw interface{}, m *entity.MissionRecord) *entity.Violation {
		f, ok := utils.ToFloat(raw)
		if !ok {
			return wrongType(field)
		}
		if f < lo || f > hi {
			v := violation(field, entity.ViolationOutOfRange, msg)
			return &v
		}
		set(m, f)
		return nil
	}
}

func checkVehicleType(raw interface{}, m *entity.MissionRecord) *entity.Violation {
	s, ok := utils.ToString(raw)
	if !ok {
		return wrongType(entity.FieldVehicleType)
	}
	vt, ok := entity.ParseVehicleType(s)
	if !ok {
		v := violation(entity.FieldVehicleType, entity.ViolationInvalidEnum, MsgVehicleType)
		return &v
	}
	m.VehicleType = vt
	return nil
}

func checkAltitude(raw interface{}, m *entity.MissionRecord) *entity.Violation {
	n, ok := utils.ToInt(raw)
	if !ok {
		// whole numbers beyond int64 are well typed, just out of range
		sign, whole := utils.IntegerSign(raw)
		switch {
		case !whole:
			return wrongType(entity.FieldAltitudeM)
		case sign > 0:
			v := violation(entity.FieldAltitudeM, entity.ViolationOutOfRange, MsgAltitudeMax)
			return &v
		default:
			v := violation(entity.FieldAltitudeM, entity.ViolationOutOfRange, MsgAltitudeRange)
			return &v
		}
	}
	if n <= 0 {
		v := violation(entity.FieldAltitudeM, entity.ViolationOutOfRange, MsgAltitudeRange)
		return &v
	}
	m.AltitudeM = n
	return nil
}

func violation(field string, kind entity.ViolationKind, msg string) entity.Violation {
	return entity.Violation{Field: field, Kind: kind, Message: msg}
}

func wrongType(field string) *entity.Violation {
	v := violation(field, entity.ViolationWrongType, MsgInvalidType)
	return &v
}
