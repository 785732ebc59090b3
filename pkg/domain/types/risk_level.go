package types

// RiskLevel is the derived exposure category of a risk cause
type RiskLevel string

const (
	RiskLevelVeryHigh RiskLevel = "Sangat Tinggi"
	RiskLevelHigh     RiskLevel = "Tinggi"
	RiskLevelMedium   RiskLevel = "Sedang"
	RiskLevelLow      RiskLevel = "Rendah"
	RiskLevelVeryLow  RiskLevel = "Sangat Rendah"
	RiskLevelNA       RiskLevel = "N/A"
)

// String returns the string representation of RiskLevel
func (r RiskLevel) String() string {
	return string(r)
}

// CalculateRiskLevel derives the risk level from likelihood and impact.
// score = likelihood score * impact score, bucketed as:
// >=20 Sangat Tinggi, >=16 Tinggi, >=12 Sedang, >=6 Rendah, >=1 Sangat Rendah.
// When either input is empty or unrecognized the level is N/A and score is nil.
func CalculateRiskLevel(likelihood Likelihood, impact Impact) (RiskLevel, *int) {
	if likelihood == "" || impact == "" {
		return RiskLevelNA, nil
	}

	lv, ok := likelihood.Score()
	if !ok {
		return RiskLevelNA, nil
	}
	iv, ok := impact.Score()
	if !ok {
		return RiskLevelNA, nil
	}

	score := lv * iv

	var level RiskLevel
	switch {
	case score >= 20:
		level = RiskLevelVeryHigh
	case score >= 16:
		level = RiskLevelHigh
	case score >= 12:
		level = RiskLevelMedium
	case score >= 6:
		level = RiskLevelLow
	default:
		level = RiskLevelVeryLow
	}

	return level, &score
}
