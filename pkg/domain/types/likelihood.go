package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// Likelihood represents a likelihood level of a risk cause.
// The labels match the analysis form values recorded in documents.
type Likelihood string

const (
	LikelihoodAlmostNever   Likelihood = "Hampir tidak terjadi (1)"
	LikelihoodRare          Likelihood = "Jarang terjadi (2)"
	LikelihoodOccasional    Likelihood = "Kadang Terjadi (3)"
	LikelihoodFrequent      Likelihood = "Sering terjadi (4)"
	LikelihoodAlmostCertain Likelihood = "Hampir pasti terjadi (5)"
)

var likelihoodScores = map[Likelihood]int{
	LikelihoodAlmostNever:   1,
	LikelihoodRare:          2,
	LikelihoodOccasional:    3,
	LikelihoodFrequent:      4,
	LikelihoodAlmostCertain: 5,
}

// Likelihoods returns all likelihood levels ordered by score
func Likelihoods() []Likelihood {
	return []Likelihood{
		LikelihoodAlmostNever,
		LikelihoodRare,
		LikelihoodOccasional,
		LikelihoodFrequent,
		LikelihoodAlmostCertain,
	}
}

// Score returns the 1-5 score of the likelihood level.
// ok is false when the level is not a recognized label.
func (l Likelihood) Score() (int, bool) {
	score, ok := likelihoodScores[l]
	return score, ok
}

// Validate checks if the Likelihood is a recognized level
func (l Likelihood) Validate() error {
	if _, ok := likelihoodScores[l]; !ok {
		return goerr.New("invalid likelihood level", goerr.V("likelihood", l))
	}
	return nil
}

// String returns the string representation of Likelihood
func (l Likelihood) String() string {
	return string(l)
}
