package style

// DefaultReservedLayers lists the layer ids of the stock Mapbox streets and
// satellite styles plus the building overlays shipped with the map page.
// They are hidden when listing custom layers of a live renderer.
var DefaultReservedLayers = []string{
	"background",
	"satellite",
	"tunnel-minor-case",
	"tunnel-street-case",
	"tunnel-minor-link-case",
	"tunnel-secondary-tertiary-case",
	"tunnel-primary-case",
	"tunnel-major-link-case",
	"tunnel-motorway-trunk-case",
	"tunnel-path",
	"tunnel-steps",
	"tunnel-pedestrian",
	"tunnel-minor",
	"tunnel-minor-link",
	"tunnel-major-link",
	"tunnel-street",
	"tunnel-street-low",
	"tunnel-secondary-tertiary",
	"tunnel-primary",
	"tunnel-motorway-trunk",
	"road-path",
	"road-steps",
	"road-pedestrian",
	"road-minor-case",
	"road-street-case",
	"road-minor-link-case",
	"road-secondary-tertiary-case",
	"road-primary-case",
	"road-major-link-case",
	"road-motorway-trunk-case",
	"road-minor",
	"road-minor-link",
	"road-major-link",
	"road-street",
	"road-street-low",
	"road-secondary-tertiary",
	"road-primary",
	"road-motorway-trunk",
	"bridge-path",
	"bridge-steps",
	"bridge-pedestrian",
	"bridge-minor-case",
	"bridge-street-case",
	"bridge-minor-link-case",
	"bridge-secondary-tertiary-case",
	"bridge-primary-case",
	"bridge-major-link-case",
	"bridge-motorway-trunk-case",
	"bridge-minor",
	"bridge-minor-link",
	"bridge-major-link",
	"bridge-street",
	"bridge-street-low",
	"bridge-secondary-tertiary",
	"bridge-primary",
	"bridge-motorway-trunk",
	"bridge-major-link-2-case",
	"bridge-motorway-trunk-2-case",
	"bridge-major-link-2",
	"bridge-motorway-trunk-2",
	"aerialway",
	"admin-1-boundary-bg",
	"admin-0-boundary-bg",
	"admin-1-boundary",
	"admin-0-boundary",
	"admin-0-boundary-disputed",
	"road-label",
	"road-intersection",
	"road-number-shield",
	"road-exit-shield",
	"path-pedestrian-label",
	"ferry-aerialway-label",
	"waterway-label",
	"natural-line-label",
	"natural-point-label",
	"water-line-label",
	"water-point-label",
	"poi-label",
	"transit-label",
	"airport-label",
	"settlement-subdivision-label",
	"settlement-minor-label",
	"settlement-major-label",
	"state-label",
	"country-label",
	"continent-label",
	"tunnel-oneway-arrow-blue",
	"tunnel-oneway-arrow-white",
	"road-oneway-arrow-blue",
	"road-oneway-arrow-white",
	"bridge-oneway-arrow-blue",
	"bridge-oneway-arrow-white",
	"buildingswithid",
	"nearby-roofs",
	"building",
	"council-wide",
	"council-wide-query",
	"council-wide-borders",
}

// ReservedSet is a named set of layer ids that belong to the base map.
type ReservedSet struct {
	ids map[string]struct{}
}

// NewReservedSet builds a set from ids. A nil slice yields DefaultReservedLayers.
func NewReservedSet(ids []string) *ReservedSet {
	if ids == nil {
		ids = DefaultReservedLayers
	}

	s := &ReservedSet{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Contains reports whether id is reserved.
func (s *ReservedSet) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of reserved ids.
func (s *ReservedSet) Len() int {
	return len(s.ids)
}

// Custom returns the ids that are not reserved, keeping their order.
func (s *ReservedSet) Custom(ids []string) []string {
	custom := make([]string, 0, len(ids))
	for _, id := range ids {
		if !s.Contains(id) {
			custom = append(custom, id)
		}
	}
	return custom
}
