package usecase

import (
	"errors"
	"time"

	"mission-ingestion-service/internal/domain/entity"
	"mission-ingestion-service/pkg/logger"
	"mission-ingestion-service/pkg/metrics"
)

const MissionReceivedMessage = "Mission received successfully"

// MissionIntake validates inbound missions and builds confirmation envelopes
type MissionIntake struct {
	metrics *metrics.Metrics
	logger  logger.Logger
	now     func() time.Time
}

var _ MissionReceiver = (*MissionIntake)(nil)

// NewMissionIntake creates a new mission intake
func NewMissionIntake(m *metrics.Metrics, logger logger.Logger) *MissionIntake {
	return &MissionIntake{
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// WithClock replaces the time source used for receipt and health timestamps
func (mi *MissionIntake) WithClock(now func() time.Time) *MissionIntake {
	mi.now = now
	return mi
}

// Receive validates payload and wraps the resulting record in a receipt
func (mi *MissionIntake) Receive(payload map[string]interface{}) (*entity.MissionReceipt, error) {
	start := time.Now()
	mission, err := ValidateMission(payload)
	mi.metrics.ValidationTime.Observe(time.Since(start).Seconds())

	if err != nil {
		var violations entity.ValidationErrors
		if errors.As(err, &violations) {
			mi.recordRejection(violations)
		}
		return nil, err
	}

	mi.metrics.MissionsReceived.WithLabelValues(metrics.OutcomeAccepted).Inc()
	mi.logger.Info("Mission accepted",
		"mission_id", mission.MissionID,
		"vehicle_type", mission.VehicleType,
		"pilot_id", mission.PilotID,
	)

	return &entity.MissionReceipt{
		Message:    MissionReceivedMessage,
		ReceivedAt: mi.now().UTC(),
		Mission:    mission,
	}, nil
}

// Health returns a fresh liveness status
func (mi *MissionIntake) Health() entity.HealthStatus {
	return entity.HealthStatus{
		Status:    entity.HealthOK,
		Timestamp: mi.now().UTC(),
	}
}

func (mi *MissionIntake) recordRejection(violations entity.ValidationErrors) {
	mi.metrics.MissionsReceived.WithLabelValues(metrics.OutcomeRejected).Inc()

	fields := make([]string, 0, len(violations))
	for _, v := range violations {
		mi.metrics.ViolationsCount.WithLabelValues(v.Field, string(v.Kind)).Inc()
		fields = append(fields, v.Field)
	}

	mi.logger.Warn("Mission rejected",
		"violations", len(violations),
		"fields", fields,
	)
}
