package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/xavierca1/calltracker/internal/entity"
	"github.com/xavierca1/calltracker/internal/stats"
)

type StatsUseCase struct {
	Store RecordStore
}

func NewStatsUseCase(store RecordStore) *StatsUseCase {
	return &StatsUseCase{Store: store}
}

// Daily computes stats for date, or today when date is empty.
func (uc *StatsUseCase) Daily(ctx context.Context, date string) (entity.DailyStats, error) {
	if date == "" {
		date = uc.Store.Today()
	} else if err := validateDate(date); err != nil {
		return entity.DailyStats{}, err
	}

	calls, err := uc.Store.CallsOnDate(ctx, date)
	if err != nil {
		return entity.DailyStats{}, fmt.Errorf("read calls: %w", err)
	}
	return stats.ComputeDaily(calls, date), nil
}

// ListCalls returns every call, or only those on date when given.
func (uc *StatsUseCase) ListCalls(ctx context.Context, date string) ([]entity.CallRecord, error) {
	if date == "" {
		return uc.Store.ListCalls(ctx)
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}
	return uc.Store.CallsOnDate(ctx, date)
}

func validateDate(date string) error {
	if _, err := time.Parse(entity.DateLayout, date); err != nil {
		return ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"}
	}
	return nil
}
