// internal/domain/entity/mission.go
package entity

import (
	"time"
)

// VehicleType is the kind of aircraft flying a mission
type VehicleType string

const (
	VehicleDrone      VehicleType = "drone"
	VehicleHelicopter VehicleType = "helicopter"
	VehicleUltralight VehicleType = "ultralight"
)

// VehicleTypes lists the accepted vehicle types in display order
var VehicleTypes = []VehicleType{VehicleDrone, VehicleHelicopter, VehicleUltralight}

// ParseVehicleType matches s exactly (case-sensitive) against VehicleTypes
func ParseVehicleType(s string) (VehicleType, bool) {
	for _, vt := range VehicleTypes {
		if string(vt) == s {
			return vt, true
		}
	}
	return "", false
}

// Mission payload field names
const (
	FieldMissionID   = "mission_id"
	FieldVehicleType = "vehicle_type"
	FieldLatitude    = "latitude"
	FieldLongitude   = "longitude"
	FieldAltitudeM   = "altitude_m"
	FieldPilotID     = "pilot_id"
)

// MissionRecord is a fully validated mission. Values are only produced by
// usecase.ValidateMission and are passed by value so callers get their own copy.
type MissionRecord struct {
	MissionID   string      `json:"mission_id"`
	VehicleType VehicleType `json:"vehicle_type"`
	Latitude    float64     `json:"latitude"`
	Longitude   float64     `json:"longitude"`
	AltitudeM   int64       `json:"altitude_m"`
	PilotID     string      `json:"pilot_id"`
}

// MissionReceipt is the confirmation envelope returned for an accepted mission
type MissionReceipt struct {
	Message    string        `json:"message"`
	ReceivedAt time.Time     `json:"received_at"`
	Mission    MissionRecord `json:"mission"`
}
