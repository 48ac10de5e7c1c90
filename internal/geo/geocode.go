package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/example/helper-matching/internal/models"
)

// Geocoder resolves a free-text address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (models.Coord, error)
}

// HTTPGeocoder queries a Nominatim-compatible search endpoint.
type HTTPGeocoder struct {
	Endpoint string
	Client   *http.Client
}

func NewHTTPGeocoder(endpoint string) *HTTPGeocoder {
	return &HTTPGeocoder{Endpoint: endpoint, Client: &http.Client{Timeout: 2 * time.Second}}
}

// Geocode resolves the first search hit for the address.
func (g *HTTPGeocoder) Geocode(ctx context.Context, address string) (models.Coord, error) {
	u := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", g.Endpoint, url.QueryEscape(address))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return models.Coord{}, err
	}
	resp, err := g.Client.Do(req)
	if err != nil {
		return models.Coord{}, err
	}
	defer resp.Body.Close()
	var out []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.Coord{}, err
	}
	if len(out) == 0 {
		return models.Coord{}, fmt.Errorf("geocode: no result for %q", address)
	}
	lat, err := strconv.ParseFloat(out[0].Lat, 64)
	if err != nil {
		return models.Coord{}, fmt.Errorf("geocode: bad latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(out[0].Lon, 64)
	if err != nil {
		return models.Coord{}, fmt.Errorf("geocode: bad longitude: %w", err)
	}
	return models.Coord{Lat: lat, Lon: lon}, nil
}

// StaticGeocoder answers every lookup with one configured coordinate. It is
// the fallback tier when no geocoding endpoint is configured, and mirrors the
// fixed reference point the original request flow used for all requests.
type StaticGeocoder struct {
	Ref models.Coord
}

func (g StaticGeocoder) Geocode(ctx context.Context, address string) (models.Coord, error) {
	return g.Ref, nil
}

// Chain tries each geocoder in order and returns the first success.
type Chain []Geocoder

func (c Chain) Geocode(ctx context.Context, address string) (models.Coord, error) {
	var lastErr error
	for _, g := range c {
		coord, err := g.Geocode(ctx, address)
		if err == nil {
			return coord, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("geocode: empty chain")
	}
	return models.Coord{}, lastErr
}
