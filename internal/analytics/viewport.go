package analytics

import (
	"math"

	"github.com/pkordes/habit-trail/internal/domain"
)

// DefaultMapCenter is used when there are no destinations to frame (Tokyo Station).
var DefaultMapCenter = domain.Position{Latitude: 35.6812, Longitude: 139.7671}

// DefaultMapZoom pairs with DefaultMapCenter.
const DefaultMapZoom = 12

// MapViewport is the initial centre and zoom level for the map view.
type MapViewport struct {
	Center domain.Position
	Zoom   int
}

// Viewport frames all destinations: the centre is the midpoint of their
// bounding box and the zoom is chosen from the larger of the two spans.
func Viewport(destinations []domain.Destination) MapViewport {
	if len(destinations) == 0 {
		return MapViewport{Center: DefaultMapCenter, Zoom: DefaultMapZoom}
	}

	minLat, maxLat := destinations[0].Latitude, destinations[0].Latitude
	minLng, maxLng := destinations[0].Longitude, destinations[0].Longitude
	for _, d := range destinations[1:] {
		minLat, maxLat = math.Min(minLat, d.Latitude), math.Max(maxLat, d.Latitude)
		minLng, maxLng = math.Min(minLng, d.Longitude), math.Max(maxLng, d.Longitude)
	}

	span := math.Max(maxLat-minLat, maxLng-minLng)
	zoom := 14
	switch {
	case span > 0.5:
		zoom = 10
	case span > 0.1:
		zoom = 12
	case span > 0.05:
		zoom = 13
	}

	return MapViewport{
		Center: domain.Position{Latitude: (minLat + maxLat) / 2, Longitude: (minLng + maxLng) / 2},
		Zoom:   zoom,
	}
}
