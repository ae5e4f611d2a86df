package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lankago/tour-marketplace/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func guide(locations []string, experience int, hourlyRate float64, languages, specialties []string) models.Guide {
	return models.Guide{
		ID:          uuid.New(),
		Locations:   locations,
		Experience:  experience,
		HourlyRate:  hourlyRate,
		Languages:   languages,
		Specialties: specialties,
	}
}

func vehicle(vehicleType models.VehicleType, locations []string, capacity int, hourlyRate float64) models.Vehicle {
	return models.Vehicle{
		ID:          uuid.New(),
		VehicleType: vehicleType,
		Locations:   locations,
		Capacity:    capacity,
		HourlyRate:  hourlyRate,
	}
}

func TestFilterGuides_EmptyFilterReturnsAll(t *testing.T) {
	guides := []models.Guide{
		guide([]string{"Kandy"}, 5, 30, []string{"English"}, nil),
		guide([]string{"Galle"}, 2, 20, []string{"German"}, nil),
	}

	result := FilterGuides(guides, GuideFilter{})
	assert.Len(t, result, 2)
}

func TestFilterGuides_LocationAndMaxRate(t *testing.T) {
	cheap := guide([]string{"Kandy", "Sigiriya"}, 5, 40, []string{"English"}, nil)
	expensive := guide([]string{"Kandy"}, 10, 90, []string{"English"}, nil)
	elsewhere := guide([]string{"Galle"}, 5, 30, []string{"English"}, nil)

	result := FilterGuides([]models.Guide{cheap, expensive, elsewhere}, GuideFilter{
		Location:      "Kandy",
		MaxHourlyRate: 50,
	})

	require.Len(t, result, 1)
	assert.Equal(t, cheap.ID, result[0].ID)
}

func TestFilterGuides_LocationIsCaseInsensitive(t *testing.T) {
	g := guide([]string{"Kandy"}, 5, 30, []string{"English"}, nil)

	result := FilterGuides([]models.Guide{g}, GuideFilter{Location: "kandy"})
	assert.Len(t, result, 1)
}

func TestFilterGuides_MinExperience(t *testing.T) {
	junior := guide([]string{"Ella"}, 1, 15, []string{"English"}, nil)
	senior := guide([]string{"Ella"}, 8, 35, []string{"English"}, nil)

	result := FilterGuides([]models.Guide{junior, senior}, GuideFilter{MinExperience: 5})

	require.Len(t, result, 1)
	assert.Equal(t, senior.ID, result[0].ID)
}

func TestFilterGuides_LanguageAndSpecialty(t *testing.T) {
	wildlife := guide([]string{"Yala"}, 6, 45, []string{"English", "French"}, []string{"wildlife"})
	cultural := guide([]string{"Anuradhapura"}, 4, 25, []string{"English"}, []string{"cultural"})

	result := FilterGuides([]models.Guide{wildlife, cultural}, GuideFilter{
		Language:  "french",
		Specialty: "wildlife",
	})

	require.Len(t, result, 1)
	assert.Equal(t, wildlife.ID, result[0].ID)
}

func TestFilterGuides_PredicatesCompose(t *testing.T) {
	g := guide([]string{"Kandy"}, 5, 30, []string{"English"}, []string{"hiking"})

	// one failing predicate excludes the guide even when the rest match
	result := FilterGuides([]models.Guide{g}, GuideFilter{
		Location:      "Kandy",
		MinExperience: 5,
		MaxHourlyRate: 25,
	})
	assert.Empty(t, result)
}

func TestFilterVehicles_TypeAndCapacity(t *testing.T) {
	van := vehicle(models.VehicleTypeVan, []string{"Colombo"}, 9, 15)
	tuktuk := vehicle(models.VehicleTypeTukTuk, []string{"Colombo"}, 3, 5)

	result := FilterVehicles([]models.Vehicle{van, tuktuk}, VehicleFilter{
		VehicleType: "van",
		MinCapacity: 5,
	})

	require.Len(t, result, 1)
	assert.Equal(t, van.ID, result[0].ID)
}

func TestFilterVehicles_MaxRate(t *testing.T) {
	cheap := vehicle(models.VehicleTypeCar, []string{"Negombo"}, 4, 10)
	pricey := vehicle(models.VehicleTypeCar, []string{"Negombo"}, 4, 50)

	result := FilterVehicles([]models.Vehicle{cheap, pricey}, VehicleFilter{MaxHourlyRate: 20})

	require.Len(t, result, 1)
	assert.Equal(t, cheap.ID, result[0].ID)
}

func TestGuideFacetValues_DedupAndSort(t *testing.T) {
	guides := []models.Guide{
		guide([]string{"Kandy", "Ella"}, 5, 30, []string{"English", "Sinhala"}, []string{"hiking"}),
		guide([]string{"Ella", "Galle"}, 3, 20, []string{"English"}, []string{"hiking", "wildlife"}),
	}

	facets := GuideFacetValues(guides)

	assert.Equal(t, []string{"Ella", "Galle", "Kandy"}, facets.Locations)
	assert.Equal(t, []string{"English", "Sinhala"}, facets.Languages)
	assert.Equal(t, []string{"hiking", "wildlife"}, facets.Specialties)
}

func TestVehicleFacetValues_DedupAndSort(t *testing.T) {
	vehicles := []models.Vehicle{
		vehicle(models.VehicleTypeVan, []string{"Colombo"}, 9, 15),
		vehicle(models.VehicleTypeVan, []string{"Kandy", "Colombo"}, 6, 12),
		vehicle(models.VehicleTypeTukTuk, []string{"Galle"}, 3, 5),
	}

	facets := VehicleFacetValues(vehicles)

	assert.Equal(t, []string{"Colombo", "Galle", "Kandy"}, facets.Locations)
	assert.Equal(t, []string{"tuktuk", "van"}, facets.Types)
}

func TestFacetValues_EmptyListing(t *testing.T) {
	facets := GuideFacetValues(nil)
	assert.Empty(t, facets.Locations)
	assert.Empty(t, facets.Languages)
	assert.Empty(t, facets.Specialties)
}
