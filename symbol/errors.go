// SPDX-License-Identifier: MIT

package symbol

import "errors"

// ErrUnknownSymbol is returned when an id is outside the table.
var ErrUnknownSymbol = errors.New("symbol: unknown symbol id")
