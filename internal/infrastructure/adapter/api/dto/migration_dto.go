package dto

import (
	"time"

	"github.com/amirhossein-jamali/schema-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/schema-ledger/internal/domain/port/usecase"
)

// MigrateRequest is the body of POST /api/v1/migrations/migrate
type MigrateRequest struct {
	Target string `json:"target"`
}

// BaselineRequest is the body of POST /api/v1/migrations/baseline
type BaselineRequest struct {
	Version     string `json:"version"`
	Description string `json:"description"`
}

// MigrationInfo is one reconciled migration as rendered by the API and the CLI
type MigrationInfo struct {
	Category      string     `json:"category" yaml:"category"`
	Version       string     `json:"version,omitempty" yaml:"version,omitempty"`
	Description   string     `json:"description" yaml:"description"`
	Type          string     `json:"type" yaml:"type"`
	Script        string     `json:"script" yaml:"script"`
	Checksum      *int32     `json:"checksum,omitempty" yaml:"checksum,omitempty"`
	State         string     `json:"state" yaml:"state"`
	InstalledRank int        `json:"installedRank,omitempty" yaml:"installedRank,omitempty"`
	InstalledOn   *time.Time `json:"installedOn,omitempty" yaml:"installedOn,omitempty"`
	ExecutionTime int        `json:"executionTime,omitempty" yaml:"executionTime,omitempty"`
}

// InfoResponse is the reconciled view of the schema
type InfoResponse struct {
	SchemaVersion string          `json:"schemaVersion,omitempty" yaml:"schemaVersion,omitempty"`
	Migrations    []MigrationInfo `json:"migrations" yaml:"migrations"`
}

// SingleMigrationResponse answers the current and next queries; Migration is null when none exists
type SingleMigrationResponse struct {
	Migration *MigrationInfo `json:"migration" yaml:"migration"`
}

// HealthResponse reports liveness of the server and its database
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// FromMigrationInfo converts one reconciled migration
func FromMigrationInfo(info entity.MigrationInfo) MigrationInfo {
	out := MigrationInfo{
		Category:      "Versioned",
		Description:   info.Description(),
		Type:          info.Type().String(),
		Script:        info.Script(),
		Checksum:      info.Checksum(),
		State:         string(info.State),
		InstalledRank: info.InstalledRank(),
		InstalledOn:   info.InstalledOn(),
		ExecutionTime: info.ExecutionTime(),
	}
	if v := info.Identity.VersionString(); v != nil {
		out.Version = *v
	} else {
		out.Category = "Repeatable"
	}
	return out
}

// FromMigrationInfos converts a list, never returning nil
func FromMigrationInfos(infos []entity.MigrationInfo) []MigrationInfo {
	out := make([]MigrationInfo, 0, len(infos))
	for _, info := range infos {
		out = append(out, FromMigrationInfo(info))
	}
	return out
}

// FromSingle converts an optional migration
func FromSingle(info *entity.MigrationInfo) SingleMigrationResponse {
	if info == nil {
		return SingleMigrationResponse{}
	}
	converted := FromMigrationInfo(*info)
	return SingleMigrationResponse{Migration: &converted}
}

// NewInfoResponse renders migrations together with the current schema version
func NewInfoResponse(service usecase.MigrationInfoService, migrations []entity.MigrationInfo) InfoResponse {
	resp := InfoResponse{Migrations: FromMigrationInfos(migrations)}
	if v, ok := service.CurrentVersion(); ok {
		resp.SchemaVersion = v.String()
	}
	return resp
}
