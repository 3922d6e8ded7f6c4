// Package store persists call records, settings and the last-report marker
// on top of a key-value substrate.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/xavierca1/calltracker/internal/entity"
)

// Key names carry the version suffix used by earlier releases so existing
// data keeps loading.
const (
	KeyCalls          = "app_calls_v5"
	KeySettings       = "app_settings_v5"
	KeyLastReportDate = "app_last_report_date_v5"
)

type RecordStore struct {
	kv  entity.KeyValueStore
	now func() time.Time
	loc *time.Location

	// serializes read-modify-write of the call list
	mu sync.Mutex
}

type Option func(*RecordStore)

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *RecordStore) { s.now = now }
}

// WithLocation sets the calendar used for date strings. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(s *RecordStore) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func NewRecordStore(kv entity.KeyValueStore, opts ...Option) *RecordStore {
	s := &RecordStore{
		kv:  kv,
		now: time.Now,
		loc: time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the current instant in the store's calendar.
func (s *RecordStore) Now() time.Time {
	return s.now().In(s.loc)
}

func (s *RecordStore) Today() string {
	return s.Now().Format(entity.DateLayout)
}

func (s *RecordStore) ListCalls(ctx context.Context) ([]entity.CallRecord, error) {
	calls := []entity.CallRecord{}
	found, err := s.getJSON(ctx, KeyCalls, &calls)
	if err != nil {
		return nil, fmt.Errorf("read calls: %w", err)
	}
	if !found || calls == nil {
		return []entity.CallRecord{}, nil
	}
	return calls, nil
}

// AppendCall stamps and persists a new record. It trusts the caller on the
// status/reason combination.
func (s *RecordStore) AppendCall(ctx context.Context, status entity.CallStatus, reason *entity.RejectionReason) (entity.CallRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	calls, err := s.ListCalls(ctx)
	if err != nil {
		return entity.CallRecord{}, err
	}

	rec := entity.NewCallRecord(status, reason, s.Now())
	calls = append(calls, rec)

	if err := s.setJSON(ctx, KeyCalls, calls); err != nil {
		return entity.CallRecord{}, fmt.Errorf("write calls: %w", err)
	}
	return rec, nil
}

func (s *RecordStore) CallsOnDate(ctx context.Context, date string) ([]entity.CallRecord, error) {
	calls, err := s.ListCalls(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]entity.CallRecord, 0, len(calls))
	for _, c := range calls {
		if c.DateStr == date {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *RecordStore) GetSettings(ctx context.Context) (entity.AppSettings, error) {
	var settings entity.AppSettings
	found, err := s.getJSON(ctx, KeySettings, &settings)
	if err != nil {
		return entity.AppSettings{}, fmt.Errorf("read settings: %w", err)
	}
	if !found {
		return entity.DefaultSettings(), nil
	}
	return settings, nil
}

func (s *RecordStore) SaveSettings(ctx context.Context, settings entity.AppSettings) error {
	if err := s.setJSON(ctx, KeySettings, settings); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// GetLastReportDate returns the marker and whether one is stored.
func (s *RecordStore) GetLastReportDate(ctx context.Context) (string, bool, error) {
	v, err := s.kv.Get(ctx, KeyLastReportDate)
	if err != nil {
		if errors.Is(err, entity.ErrKeyNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read last report date: %w", err)
	}
	return v, true, nil
}

func (s *RecordStore) SetLastReportDate(ctx context.Context, date string) error {
	if err := s.kv.Set(ctx, KeyLastReportDate, date); err != nil {
		return fmt.Errorf("write last report date: %w", err)
	}
	return nil
}

// ClearCallHistory drops calls and the report marker. Settings survive.
func (s *RecordStore) ClearCallHistory(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Remove(ctx, KeyCalls); err != nil {
		return fmt.Errorf("remove calls: %w", err)
	}
	if err := s.kv.Remove(ctx, KeyLastReportDate); err != nil {
		return fmt.Errorf("remove last report date: %w", err)
	}
	return nil
}

// FactoryReset wipes the substrate, settings included. Anything that cached
// state read from the store must reload afterwards.
func (s *RecordStore) FactoryReset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Clear(ctx); err != nil {
		return fmt.Errorf("clear store: %w", err)
	}
	return nil
}

// Ping reports substrate health when the backend supports it.
func (s *RecordStore) Ping(ctx context.Context) error {
	if p, ok := s.kv.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (s *RecordStore) getJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, entity.ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (s *RecordStore) setJSON(ctx context.Context, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.kv.Set(ctx, key, string(raw))
}
