package notifications

import "errors"

var ErrUnknownCategory = errors.New("unknown notification category")
