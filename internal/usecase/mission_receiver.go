package usecase

import (
	"mission-ingestion-service/internal/domain/entity"
)

// MissionReceiver defines the interface the HTTP layer calls into
type MissionReceiver interface {
	// Receive validates payload and returns the confirmation envelope.
	// Validation failures are returned as entity.ValidationErrors.
	Receive(payload map[string]interface{}) (*entity.MissionReceipt, error)

	// Health reports liveness
	Health() entity.HealthStatus
}
