package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// Impact represents an impact level of a risk cause
type Impact string

const (
	ImpactInsignificant   Impact = "Tidak Signifikan (1)"
	ImpactMinor           Impact = "Minor (2)"
	ImpactModerate        Impact = "Moderat (3)"
	ImpactSignificant     Impact = "Signifikan (4)"
	ImpactVerySignificant Impact = "Sangat Signifikan (5)"
)

var impactScores = map[Impact]int{
	ImpactInsignificant:   1,
	ImpactMinor:           2,
	ImpactModerate:        3,
	ImpactSignificant:     4,
	ImpactVerySignificant: 5,
}

// Impacts returns all impact levels ordered by score
func Impacts() []Impact {
	return []Impact{
		ImpactInsignificant,
		ImpactMinor,
		ImpactModerate,
		ImpactSignificant,
		ImpactVerySignificant,
	}
}

// Score returns the 1-5 score of the impact level.
// ok is false when the level is not a recognized label.
func (i Impact) Score() (int, bool) {
	score, ok := impactScores[i]
	return score, ok
}

// Validate checks if the Impact is a recognized level
func (i Impact) Validate() error {
	if _, ok := impactScores[i]; !ok {
		return goerr.New("invalid impact level", goerr.V("impact", i))
	}
	return nil
}

// String returns the string representation of Impact
func (i Impact) String() string {
	return string(i)
}
