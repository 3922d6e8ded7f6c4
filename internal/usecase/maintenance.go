package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

type MaintenanceUseCase struct {
	Store  RecordStore
	Logger zerolog.Logger
}

func NewMaintenanceUseCase(store RecordStore, logger zerolog.Logger) *MaintenanceUseCase {
	return &MaintenanceUseCase{Store: store, Logger: logger.With().Str("usecase", "maintenance").Logger()}
}

// ClearHistory drops every call and the report marker; settings survive.
func (uc *MaintenanceUseCase) ClearHistory(ctx context.Context) error {
	if err := uc.Store.ClearCallHistory(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	uc.Logger.Warn().Msg("call history cleared")
	return nil
}

func (uc *MaintenanceUseCase) FactoryReset(ctx context.Context) error {
	if err := uc.Store.FactoryReset(ctx); err != nil {
		return fmt.Errorf("factory reset: %w", err)
	}
	uc.Logger.Warn().Msg("factory reset")
	return nil
}
