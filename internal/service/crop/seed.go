package crop

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hingaguru/farmdesk/internal/domain/models"
)

// ReferenceCrops returns the five crops every fresh installation starts with.
func ReferenceCrops(ownerID primitive.ObjectID) []models.Crop {
	crops := []models.Crop{
		{
			Name:           "Maize (Corn)",
			ScientificName: "Zea mays",
			Description:    "Staple cereal crop suited to warm climates.",
			OptimalTemp:    "18 - 27°C",
			Soil:           "Well-drained loam, pH 5.8 - 7.0",
			Water:          "Moderate; avoid waterlogging",
			OptimalSoilPH:  []float64{5.8, 7.0},
			CommonPests:    []string{"Stem borer", "Armyworm"},
			Diseases: []models.Disease{
				{Name: "Maize Streak Virus", Symptoms: "Chlorotic streaks, stunted growth", Treatment: "Control leafhoppers, plant resistant varieties"},
				{Name: "Northern Leaf Blight", Symptoms: "Cigar-shaped lesions on leaves", Treatment: "Use resistant hybrids, rotate crops, apply fungicide if severe"},
			},
			Tips: []string{
				"Plant at onset of rains for strong establishment.",
				"Apply nitrogen at knee-high stage and at tasseling.",
				"Mulch to conserve moisture and suppress weeds.",
			},
			Market: models.MarketSnapshot{PricePerKgUSD: 0.28, Trend: models.TrendUp, Note: "Prices rising on regional demand"},
		},
		{
			Name:           "Beans",
			ScientificName: "Phaseolus vulgaris",
			Description:    "Protein-rich legume commonly intercropped.",
			OptimalTemp:    "16 - 24°C",
			Soil:           "Fertile, well-drained, pH 6.0 - 7.5",
			Water:          "Consistent moisture; sensitive to drought during flowering",
			OptimalSoilPH:  []float64{6.0, 7.5},
			CommonPests:    []string{"Bean fly", "Pod borer"},
			Diseases: []models.Disease{
				{Name: "Angular Leaf Spot", Symptoms: "Angular brown lesions on leaves", Treatment: "Use clean seed, resistant varieties; apply copper fungicides"},
				{Name: "Anthracnose", Symptoms: "Dark lesions on stems and pods", Treatment: "Certified seed, crop rotation, remove infected debris"},
			},
			Tips: []string{
				"Inoculate seed with Rhizobium for better nodulation.",
				"Avoid overhead irrigation to reduce foliar diseases.",
				"Harvest promptly to prevent shattering and rot.",
			},
			Market: models.MarketSnapshot{PricePerKgUSD: 1.1, Trend: models.TrendFlat, Note: "Stable demand; quality fetches premium"},
		},
		{
			Name:           "Tomato",
			ScientificName: "Solanum lycopersicum",
			Description:    "High value horticultural crop with precise management needs.",
			OptimalTemp:    "20 - 28°C",
			Soil:           "Loamy, rich in organic matter, pH 6.0 - 6.8",
			Water:          "Regular deep watering; keep foliage dry",
			OptimalSoilPH:  []float64{6.0, 6.8},
			CommonPests:    []string{"Whitefly", "Tomato hornworm"},
			Diseases: []models.Disease{
				{Name: "Early Blight", Symptoms: "Target-like spots on older leaves", Treatment: "Mulch, stake plants, rotate; apply fungicides preventively"},
				{Name: "Bacterial Wilt", Symptoms: "Sudden wilting without yellowing", Treatment: "Use resistant rootstocks, solarize soil, sanitize tools"},
			},
			Tips: []string{
				"Stake and prune to improve airflow and reduce disease.",
				"Feed with balanced NPK and calcium to prevent blossom end rot.",
				"Harvest at breaker stage for better shelf life.",
			},
			Market: models.MarketSnapshot{PricePerKgUSD: 0.9, Trend: models.TrendDown, Note: "Short-term oversupply; focus on quality grading"},
		},
		{
			Name:           "Potato",
			ScientificName: "Solanum tuberosum",
			Description:    "Cool season tuber crop requiring hilling.",
			OptimalTemp:    "15 - 20°C",
			Soil:           "Loose, well-drained sandy loam, pH 5.5 - 6.5",
			Water:          "Even moisture; avoid wet feet, especially at tuber initiation",
			OptimalSoilPH:  []float64{5.5, 6.5},
			CommonPests:    []string{"Cutworms", "Colorado potato beetle"},
			Diseases: []models.Disease{
				{Name: "Late Blight", Symptoms: "Water-soaked lesions on leaves, brown rot on tubers", Treatment: "Certified seed, preventive fungicides, remove infected foliage"},
				{Name: "Blackleg/Soft Rot", Symptoms: "Blackened stems, soft rotting tubers", Treatment: "Sanitation, avoid injuries, store cool and dry"},
			},
			Tips: []string{
				"Plant disease-free certified seed tubers.",
				"Hill soil around plants to prevent greening and improve yields.",
				"Cure harvested tubers before storage to toughen skins.",
			},
			Market: models.MarketSnapshot{PricePerKgUSD: 0.5, Trend: models.TrendFlat, Note: "Stable household demand; storage extends selling window"},
		},
		{
			Name:           "Rice (Paddy)",
			ScientificName: "Oryza sativa",
			Description:    "Water-loving staple requiring consistent irrigation.",
			OptimalTemp:    "20 - 35°C",
			Soil:           "Clay loam that can hold water; pH 5.5 - 7.0",
			Water:          "High; requires flooded or saturated conditions depending on system",
			OptimalSoilPH:  []float64{5.5, 7.0},
			CommonPests:    []string{"Rice stem borer", "Leaf folder"},
			Diseases: []models.Disease{
				{Name: "Rice Blast", Symptoms: "Diamond-shaped lesions on leaves; neck blast", Treatment: "Resistant varieties, balanced nitrogen, fungicides if needed"},
				{Name: "Bacterial Leaf Blight", Symptoms: "Yellowing and wilting of leaves", Treatment: "Clean seed, avoid excess nitrogen, resistant varieties"},
			},
			Tips: []string{
				"Maintain shallow water during tillering; deeper at later stages.",
				"Use balanced fertilisation and avoid lodging.",
				"Dry and store grain below 14% moisture to avoid mould.",
			},
			Market: models.MarketSnapshot{PricePerKgUSD: 0.6, Trend: models.TrendUp, Note: "Uptrend on import constraints; quality milling adds value"},
		},
	}

	for i := range crops {
		owner := ownerID
		crops[i].OwnerID = &owner
	}
	return crops
}
