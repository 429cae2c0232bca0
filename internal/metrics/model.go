package metrics

import (
	"sync"

	"go.uber.org/zap"
)

// Snapshot is a consistent copy of a Model: Derived was computed from
// Assumptions.
type Snapshot struct {
	Assumptions BusinessAssumptions `json:"assumptions"`
	Derived     DerivedMetrics      `json:"derived"`
}

// AssumptionUpdate carries edits to the assumption fields. Nil fields are left
// untouched.
type AssumptionUpdate struct {
	DailyCapacity              *float64 `json:"dailyCapacity,omitempty"`
	SellingPrice               *float64 `json:"sellingPrice,omitempty"`
	CurrencyDepreciationFactor *float64 `json:"currencyDepreciationFactor,omitempty"`
}

// Empty reports whether the update edits nothing.
func (u AssumptionUpdate) Empty() bool {
	return u.DailyCapacity == nil && u.SellingPrice == nil && u.CurrencyDepreciationFactor == nil
}

// Model is the per-session metrics record. Only the assumption fields can be
// written; every write re-derives the dependent figures before the lock is
// released, so readers never see stale derived values.
type Model struct {
	mu            sync.RWMutex
	logger        *zap.Logger
	assumptions   BusinessAssumptions
	derived       DerivedMetrics
	recomputation int
}

// NewModel creates a model from the given assumptions and derives its figures.
func NewModel(logger *zap.Logger, assumptions BusinessAssumptions) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Model{logger: logger, assumptions: assumptions}
	m.recompute("metrics.NewModel")
	return m
}

// NewDefaultModel creates a model with DefaultAssumptions.
func NewDefaultModel(logger *zap.Logger) *Model {
	return NewModel(logger, DefaultAssumptions())
}

// Snapshot returns a consistent copy of the model.
func (m *Model) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{Assumptions: m.assumptions, Derived: m.derived}
}

// Recomputations returns how many times the derived figures were computed.
func (m *Model) Recomputations() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.recomputation
}

// SetDailyCapacity updates the daily capacity and re-derives.
func (m *Model) SetDailyCapacity(kg float64) Snapshot {
	return m.Apply(AssumptionUpdate{DailyCapacity: &kg})
}

// SetSellingPrice updates the selling price and re-derives.
func (m *Model) SetSellingPrice(price float64) Snapshot {
	return m.Apply(AssumptionUpdate{SellingPrice: &price})
}

// SetCurrencyDepreciationFactor updates the depreciation factor and re-derives.
func (m *Model) SetCurrencyDepreciationFactor(factor float64) Snapshot {
	return m.Apply(AssumptionUpdate{CurrencyDepreciationFactor: &factor})
}

// Apply writes every non-nil field of u and re-derives once. An empty update
// leaves the model untouched.
func (m *Model) Apply(u AssumptionUpdate) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	if u.Empty() {
		return Snapshot{Assumptions: m.assumptions, Derived: m.derived}
	}

	if u.DailyCapacity != nil {
		m.assumptions.DailyCapacity = *u.DailyCapacity
	}
	if u.SellingPrice != nil {
		m.assumptions.SellingPrice = *u.SellingPrice
	}
	if u.CurrencyDepreciationFactor != nil {
		m.assumptions.CurrencyDepreciationFactor = *u.CurrencyDepreciationFactor
	}
	m.recompute("metrics.Model.Apply")

	return Snapshot{Assumptions: m.assumptions, Derived: m.derived}
}

// recompute must be called with the write lock held (or before the model is
// shared).
func (m *Model) recompute(op string) {
	m.derived = Derive(m.assumptions)
	m.recomputation++
	m.logger.Debug("metrics recomputed",
		zap.String("op", op),
		zap.Float64("dailyCapacity", m.assumptions.DailyCapacity),
		zap.Float64("sellingPrice", m.assumptions.SellingPrice),
		zap.Float64("currencyDepreciationFactor", m.assumptions.CurrencyDepreciationFactor),
		zap.Int("staffCount", m.derived.StaffCount),
	)
}
