package interfaces

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is the sentinel every repository backend wraps when a
// requested document does not exist. Callers branch with errors.Is.
var ErrNotFound = goerr.New("document not found")
