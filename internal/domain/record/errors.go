package record

import "errors"

// ErrValidation marks client-caused input failures. The HTTP layer maps it
// to a 400 response with the descriptive message.
var ErrValidation = errors.New("invalid submission")
