// internal/domain/entity/health.go
package entity

import (
	"time"
)

const HealthOK = "ok"

type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
