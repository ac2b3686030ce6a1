package bench

import "runtime"

// Usage is the allocation activity observed by a Meter.
type Usage struct {
	Allocs uint64
	Bytes  uint64
}

// Meter observes allocations over one timed section. A Runner asks its
// meter factory for a fresh Meter per measurement, calls Begin right
// before the section and End right after it.
type Meter interface {
	Begin()
	End() Usage
}

// RuntimeMeter reports heap allocation deltas from runtime.MemStats. The
// counters are process-wide, so figures include any concurrent activity.
type RuntimeMeter struct {
	start runtime.MemStats
}

// NewRuntimeMeter is the default meter factory.
func NewRuntimeMeter() Meter { return &RuntimeMeter{} }

func (m *RuntimeMeter) Begin() {
	runtime.ReadMemStats(&m.start)
}

func (m *RuntimeMeter) End() Usage {
	var end runtime.MemStats
	runtime.ReadMemStats(&end)
	return Usage{
		Allocs: end.Mallocs - m.start.Mallocs,
		Bytes:  end.TotalAlloc - m.start.TotalAlloc,
	}
}

// NopMeter records nothing.
type NopMeter struct{}

// NewNopMeter returns a meter that always reports zero usage.
func NewNopMeter() Meter { return NopMeter{} }

func (NopMeter) Begin()     {}
func (NopMeter) End() Usage { return Usage{} }
