package pets

import "strings"

const (
	WalkPuppy    = "4 short walks (15 min)"
	WalkActive   = "3 long active walks (40 min)"
	WalkModerate = "2 moderate walks (30 min)"
	WalkDefault  = "3 walks (20 min each)"

	PlayYoung = "1 hour of interactive play"
	PlayAdult = "45 minutes of play"
)

// Razas de alta energía (match parcial, sin distinguir mayúsculas).
var activeBreedKeywords = []string{"beagle", "border collie", "pastor"}

// Recommendation es la actividad diaria sugerida para una mascota.
type Recommendation struct {
	Walk string `json:"walk"`
	Play string `json:"play"`
}

// Recommend es puro: misma mascota, misma recomendación.
// Paseos: gana la primera regla que aplique (edad, raza, peso, default).
func Recommend(p Pet) Recommendation {
	return Recommendation{
		Walk: walkRecommendation(p),
		Play: playRecommendation(p),
	}
}

func walkRecommendation(p Pet) string {
	switch {
	case p.Age < 1:
		return WalkPuppy
	case isActiveBreed(p.Breed):
		return WalkActive
	case p.Weight > 35:
		return WalkModerate
	default:
		return WalkDefault
	}
}

func playRecommendation(p Pet) string {
	if p.Age < 2 {
		return PlayYoung
	}
	return PlayAdult
}

func isActiveBreed(breed string) bool {
	b := strings.ToLower(breed)
	for _, kw := range activeBreedKeywords {
		if strings.Contains(b, kw) {
			return true
		}
	}
	return false
}
