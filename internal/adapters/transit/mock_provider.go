package transit

import (
	"context"
	"sync"
	"time"

	"itinerary-scheduler-service/internal/domain"
	"itinerary-scheduler-service/internal/ports"
)

type MockPair struct {
	From, To domain.Coordinates
	Meters   int
	Seconds  int
}

// MockProvider serves scripted matrix results and counts provider calls.
// Pairs not present in the script are omitted from responses, which the
// resolver treats as individually unroutable.
type MockProvider struct {
	mu    sync.Mutex
	m     map[string]ports.TransitResult
	calls int
	err   error
}

func NewMockProvider(pairs []MockPair) *MockProvider {
	m := make(map[string]ports.TransitResult, len(pairs))
	for _, p := range pairs {
		m[ports.PairKey(p.From, p.To)] = ports.TransitResult{
			DistanceMeters:  p.Meters,
			DurationSeconds: p.Seconds,
		}
	}
	return &MockProvider{m: m}
}

// FailWith makes every subsequent call return err (nil restores normal
// operation).
func (p *MockProvider) FailWith(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

// Calls reports how many matrix calls were issued.
func (p *MockProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func (p *MockProvider) Durations(
	_ context.Context,
	origins, destinations []domain.Coordinates,
	_ time.Time,
) (map[string]ports.TransitResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls++
	if p.err != nil {
		return nil, p.err
	}

	out := make(map[string]ports.TransitResult)
	for _, o := range origins {
		for _, d := range destinations {
			key := ports.PairKey(o, d)
			if r, ok := p.m[key]; ok {
				out[key] = r
			}
		}
	}
	return out, nil
}
