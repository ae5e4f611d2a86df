package catalog

import (
	"sort"
	"strings"

	"github.com/lankago/tour-marketplace/pkg/models"
)

// GuideFilter holds the guide listing predicates. Zero values mean "no constraint".
type GuideFilter struct {
	Location      string  `form:"location"`
	MinExperience int     `form:"min_experience"`
	MaxHourlyRate float64 `form:"max_rate"`
	Language      string  `form:"language"`
	Specialty     string  `form:"specialty"`
}

// VehicleFilter holds the vehicle listing predicates. Zero values mean "no constraint".
type VehicleFilter struct {
	VehicleType   string  `form:"vehicle_type"`
	Location      string  `form:"location"`
	MinCapacity   int     `form:"min_capacity"`
	MaxHourlyRate float64 `form:"max_rate"`
}

// GuideFacets are the distinct filterable values across a guide listing,
// used to build filter UI options.
type GuideFacets struct {
	Locations   []string `json:"locations"`
	Languages   []string `json:"languages"`
	Specialties []string `json:"specialties"`
}

// VehicleFacets are the distinct filterable values across a vehicle listing.
type VehicleFacets struct {
	Locations []string `json:"locations"`
	Types     []string `json:"types"`
}

// FilterGuides returns the guides matching every set predicate (AND composition).
func FilterGuides(guides []models.Guide, f GuideFilter) []models.Guide {
	filtered := make([]models.Guide, 0, len(guides))
	for _, g := range guides {
		if f.Location != "" && !containsFold(g.Locations, f.Location) {
			continue
		}
		if f.MinExperience > 0 && g.Experience < f.MinExperience {
			continue
		}
		if f.MaxHourlyRate > 0 && g.HourlyRate > f.MaxHourlyRate {
			continue
		}
		if f.Language != "" && !containsFold(g.Languages, f.Language) {
			continue
		}
		if f.Specialty != "" && !containsFold(g.Specialties, f.Specialty) {
			continue
		}
		filtered = append(filtered, g)
	}
	return filtered
}

// FilterVehicles returns the vehicles matching every set predicate (AND composition).
func FilterVehicles(vehicles []models.Vehicle, f VehicleFilter) []models.Vehicle {
	filtered := make([]models.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if f.VehicleType != "" && !strings.EqualFold(string(v.VehicleType), f.VehicleType) {
			continue
		}
		if f.Location != "" && !containsFold(v.Locations, f.Location) {
			continue
		}
		if f.MinCapacity > 0 && v.Capacity < f.MinCapacity {
			continue
		}
		if f.MaxHourlyRate > 0 && v.HourlyRate > f.MaxHourlyRate {
			continue
		}
		filtered = append(filtered, v)
	}
	return filtered
}

// GuideFacetValues flattens and deduplicates the filterable array fields
// across the full listing.
func GuideFacetValues(guides []models.Guide) GuideFacets {
	locations := map[string]struct{}{}
	languages := map[string]struct{}{}
	specialties := map[string]struct{}{}

	for _, g := range guides {
		collect(locations, g.Locations)
		collect(languages, g.Languages)
		collect(specialties, g.Specialties)
	}

	return GuideFacets{
		Locations:   sortedKeys(locations),
		Languages:   sortedKeys(languages),
		Specialties: sortedKeys(specialties),
	}
}

// VehicleFacetValues flattens and deduplicates the filterable fields
// across the full listing.
func VehicleFacetValues(vehicles []models.Vehicle) VehicleFacets {
	locations := map[string]struct{}{}
	types := map[string]struct{}{}

	for _, v := range vehicles {
		collect(locations, v.Locations)
		if v.VehicleType != "" {
			types[string(v.VehicleType)] = struct{}{}
		}
	}

	return VehicleFacets{
		Locations: sortedKeys(locations),
		Types:     sortedKeys(types),
	}
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}

func collect(set map[string]struct{}, values []string) {
	for _, v := range values {
		if v != "" {
			set[v] = struct{}{}
		}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
