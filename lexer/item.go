// SPDX-License-Identifier: MIT
package lexer

import (
	"gitlab.com/fisherprime/fsmlex"
)

type (
	// Item holds a scanned Match, or the error that ended or interrupted lexing.
	//
	// Err is a [*Error] for lexical failures & the context's error on cancellation.
	Item[K fsmlex.Kind] struct {
		fsmlex.Match[K]

		Err error
	}
)
