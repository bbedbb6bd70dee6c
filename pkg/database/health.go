package database

import (
	"context"
	"fmt"
	"time"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// HealthStatus reports reachability of the history database, the applied
// migration version and the pool counters.
type HealthStatus struct {
	Status        string `json:"status"`
	LatencyMillis int64  `json:"latency_ms"`
	SchemaVersion uint   `json:"schema_version"`
	SchemaDirty   bool   `json:"schema_dirty,omitempty"`
	OpenConns     int    `json:"open_connections"`
	InUse         int    `json:"in_use"`
	Idle          int    `json:"idle"`
	MaxOpenConns  int    `json:"max_open_conns"`
}

// Health pings the database and reads the golang-migrate version row. The
// status is returned alongside any error so callers can render it.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	started := time.Now()
	status := &HealthStatus{Status: statusUnhealthy}

	if err := c.db.PingContext(ctx); err != nil {
		status.LatencyMillis = time.Since(started).Milliseconds()
		return status, err
	}

	err := c.db.QueryRowContext(ctx, `SELECT version, dirty FROM schema_migrations LIMIT 1`).
		Scan(&status.SchemaVersion, &status.SchemaDirty)
	status.LatencyMillis = time.Since(started).Milliseconds()
	if err != nil {
		return status, fmt.Errorf("failed to read schema version: %w", err)
	}

	pool := c.db.Stats()
	status.OpenConns = pool.OpenConnections
	status.InUse = pool.InUse
	status.Idle = pool.Idle
	status.MaxOpenConns = pool.MaxOpenConnections
	if status.SchemaDirty {
		return status, fmt.Errorf("schema version %d is dirty", status.SchemaVersion)
	}
	status.Status = statusHealthy
	return status, nil
}
