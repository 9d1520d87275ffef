package transit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"itinerary-scheduler-service/internal/domain"
	"itinerary-scheduler-service/internal/ports"
)

// ORSProvider implements TransitMatrixProvider against the OpenRouteService
// matrix endpoint. The provider is safe for concurrent use.
//
// ORS does not take a departure time into account; departAt is accepted for
// the contract (traffic-aware providers use it) and ignored here.
type ORSProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	profile string
}

type ORSOption func(*ORSProvider)

func WithBaseURL(url string) ORSOption {
	return func(o *ORSProvider) { o.baseURL = url }
}

func WithProfile(profile string) ORSOption {
	return func(o *ORSProvider) { o.profile = profile }
}

func NewORSProvider(apiKey string, opts ...ORSOption) (*ORSProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	provider := &ORSProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
		profile: "foot-walking",
	}
	for _, opt := range opts {
		opt(provider)
	}
	return provider, nil
}

type matrixRequest struct {
	Locations    [][]float64 `json:"locations"`
	Sources      []int       `json:"sources"`
	Destinations []int       `json:"destinations"`
	Metrics      []string    `json:"metrics"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// Durations fetches one full origins x destinations matrix. Pairs the
// service reports as unroutable (null cells) are omitted from the result
// rather than failing the call.
func (o *ORSProvider) Durations(
	ctx context.Context,
	origins, destinations []domain.Coordinates,
	_ time.Time,
) (map[string]ports.TransitResult, error) {
	if len(origins) == 0 || len(destinations) == 0 {
		return map[string]ports.TransitResult{}, nil
	}

	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, o.profile)

	// ORS expects [lng, lat] pairs, origins first.
	locations := make([][]float64, 0, len(origins)+len(destinations))
	sources := make([]int, 0, len(origins))
	destIdx := make([]int, 0, len(destinations))
	for i, c := range origins {
		locations = append(locations, []float64{c.Lng, c.Lat})
		sources = append(sources, i)
	}
	for i, c := range destinations {
		locations = append(locations, []float64{c.Lng, c.Lat})
		destIdx = append(destIdx, len(origins)+i)
	}

	payload, err := json.Marshal(matrixRequest{
		Locations:    locations,
		Sources:      sources,
		Destinations: destIdx,
		Metrics:      []string{"distance", "duration"},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode matrix response: %w", err)
	}

	if len(mr.Distances) != len(origins) || len(mr.Durations) != len(origins) {
		return nil, fmt.Errorf(
			"expected %d source rows; got distances=%d durations=%d",
			len(origins), len(mr.Distances), len(mr.Durations),
		)
	}

	out := make(map[string]ports.TransitResult, len(origins)*len(destinations))
	for i := range origins {
		if len(mr.Distances[i]) != len(destinations) || len(mr.Durations[i]) != len(destinations) {
			return nil, fmt.Errorf(
				"row %d lengths do not match destinations: distances=%d durations=%d destinations=%d",
				i, len(mr.Distances[i]), len(mr.Durations[i]), len(destinations),
			)
		}
		for j := range destinations {
			metersPtr := mr.Distances[i][j]
			secondsPtr := mr.Durations[i][j]
			if metersPtr == nil || secondsPtr == nil {
				continue
			}

			// ORS returns float metrics; round for domain consistency.
			out[ports.PairKey(origins[i], destinations[j])] = ports.TransitResult{
				DistanceMeters:  int(math.Round(*metersPtr)),
				DurationSeconds: int(math.Round(*secondsPtr)),
			}
		}
	}

	return out, nil
}
