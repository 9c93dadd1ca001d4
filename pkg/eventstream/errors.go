package eventstream

import "errors"

// ErrNilEvent is returned by publishers handed a nil event.
var ErrNilEvent = errors.New("nil fact event")
