package manifest

import "errors"

var ErrReorder = errors.New("section reorder error")
