package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/amirhossein-jamali/schema-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/schema-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/schema-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/schema-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/schema-ledger/internal/domain/usecase/command"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// MigrationHandler exposes the command drivers over HTTP. Commands that write
// the schema history go through the queue of their history table.
type MigrationHandler struct {
	useCase       usecase.MigrationUseCase
	queue         *command.Queue
	table         string
	defaultTarget entity.TargetVersion
	logger        coreport.Logger
}

// NewMigrationHandler creates a new migration handler instance. defaultTarget
// is used by migrate requests that name no target.
func NewMigrationHandler(
	useCase usecase.MigrationUseCase,
	queue *command.Queue,
	table string,
	defaultTarget entity.TargetVersion,
	logger coreport.Logger,
) *MigrationHandler {
	return &MigrationHandler{
		useCase:       useCase,
		queue:         queue,
		table:         table,
		defaultTarget: defaultTarget,
		logger:        logger,
	}
}

// listViews maps the path of a list endpoint to its view of the snapshot
var listViews = map[string]func(usecase.MigrationInfoService) []entity.MigrationInfo{
	"pending":      usecase.MigrationInfoService.Pending,
	"applied":      usecase.MigrationInfoService.Applied,
	"failed":       usecase.MigrationInfoService.Failed,
	"future":       usecase.MigrationInfoService.Future,
	"out-of-order": usecase.MigrationInfoService.OutOfOrder,
	"outdated":     usecase.MigrationInfoService.Outdated,
	"resolved":     usecase.MigrationInfoService.Resolved,
}

// Info handles GET /api/v1/migrations with an optional ?state= filter
func (h *MigrationHandler) Info(c *gin.Context) {
	service, ok := h.info(c)
	if !ok {
		return
	}

	migrations := service.All()
	if stateParam := c.Query("state"); stateParam != "" {
		state, valid := entity.ParseMigrationState(strings.ToUpper(stateParam))
		if !valid {
			h.abort(c, fmt.Errorf("%w: unknown migration state %s", errs.ErrInvalidRequest, stateParam))
			return
		}
		migrations = service.ByState(state)
	}

	c.JSON(http.StatusOK, dto.NewInfoResponse(service, migrations))
}

// List handles GET /api/v1/migrations/:view
func (h *MigrationHandler) List(c *gin.Context) {
	view := c.Param("view")

	if view == "current" || view == "next" {
		service, ok := h.info(c)
		if !ok {
			return
		}
		if view == "current" {
			c.JSON(http.StatusOK, dto.FromSingle(service.Current()))
		} else {
			c.JSON(http.StatusOK, dto.FromSingle(service.Next()))
		}
		return
	}

	selectView, known := listViews[view]
	if !known {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Code:    errs.ErrorCode(errs.ErrInvalidRequest),
			Message: "Unknown migration view: " + view,
		})
		return
	}

	service, ok := h.info(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.NewInfoResponse(service, selectView(service)))
}

// Validate handles POST /api/v1/migrations/validate. The report is returned
// even when validation fails.
func (h *MigrationHandler) Validate(c *gin.Context) {
	result, err := command.Run(c.Request.Context(), h.queue, h.table, "validate",
		func(ctx context.Context) (*entity.ValidateResult, error) {
			return h.useCase.Validate(ctx)
		})
	if err != nil && result == nil {
		h.abort(c, err)
		return
	}
	if err != nil {
		h.logger.Warn("Validation failed", errs.LogFieldsOf(err))
		c.JSON(dto.StatusCode(err), result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Migrate handles POST /api/v1/migrations/migrate
func (h *MigrationHandler) Migrate(c *gin.Context) {
	var req dto.MigrateRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}

	target := h.defaultTarget
	if strings.TrimSpace(req.Target) != "" {
		parsed, err := entity.ParseTargetVersion(req.Target)
		if err != nil {
			h.abort(c, err)
			return
		}
		target = parsed
	}

	result, err := command.Run(c.Request.Context(), h.queue, h.table, "migrate",
		func(ctx context.Context) (*entity.MigrateResult, error) {
			return h.useCase.Migrate(ctx, target)
		})
	if err != nil {
		if result != nil {
			// Executed migrations are reported alongside the failure
			c.JSON(dto.StatusCode(err), gin.H{
				"error":  dto.NewErrorResponse(err),
				"result": result,
			})
			return
		}
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Baseline handles POST /api/v1/migrations/baseline
func (h *MigrationHandler) Baseline(c *gin.Context) {
	var req dto.BaselineRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}

	result, err := command.Run(c.Request.Context(), h.queue, h.table, "baseline",
		func(ctx context.Context) (*entity.BaselineResult, error) {
			return h.useCase.Baseline(ctx, usecase.BaselineRequest{
				Version:     req.Version,
				Description: req.Description,
			})
		})
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Repair handles POST /api/v1/migrations/repair
func (h *MigrationHandler) Repair(c *gin.Context) {
	result, err := command.Run(c.Request.Context(), h.queue, h.table, "repair", h.useCase.Repair)
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Liberate handles POST /api/v1/migrations/liberate
func (h *MigrationHandler) Liberate(c *gin.Context) {
	result, err := command.Run(c.Request.Context(), h.queue, h.table, "liberate", h.useCase.Liberate)
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// info takes a snapshot without the queue; reads never wait behind a running migrate
func (h *MigrationHandler) info(c *gin.Context) (usecase.MigrationInfoService, bool) {
	service, err := h.useCase.Info(c.Request.Context())
	if err != nil {
		h.abort(c, err)
		return nil, false
	}
	return service, true
}

// bindOptionalJSON accepts an empty body as the zero request
func (h *MigrationHandler) bindOptionalJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Error("Invalid request format", map[string]any{
			"path":  c.FullPath(),
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    errs.ErrorCode(errs.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return false
	}
	return true
}

func (h *MigrationHandler) abort(c *gin.Context, err error) {
	status := dto.StatusCode(err)
	fields := errs.LogFieldsOf(err)
	fields["path"] = c.FullPath()
	fields["status"] = status

	if status >= http.StatusInternalServerError {
		h.logger.Error("Migration request failed", fields)
	} else {
		h.logger.Warn("Migration request rejected", fields)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(err))
}
