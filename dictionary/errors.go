// SPDX-License-Identifier: MIT

package dictionary

import "errors"

// ErrNegativeLevel is returned by Level for a negative word length.
var ErrNegativeLevel = errors.New("dictionary: negative hierarchy level")
