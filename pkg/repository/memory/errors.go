package memory

import "github.com/upr-lab/riskwise/pkg/domain/interfaces"

// ErrNotFound aliases the repository contract sentinel
var ErrNotFound = interfaces.ErrNotFound
