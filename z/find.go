// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package z

import "fmt"

// Find is the outcome of a search for a viable value.
type Find int8

const (
	// FindEmpty means no value is viable.
	FindEmpty Find = iota
	// FindSingleton means exactly one value is viable and it was found.
	FindSingleton
	// FindMultiple means a viable value was found and at least one other
	// value may be viable as well.
	FindMultiple
)

func (f Find) String() string {
	switch f {
	case FindEmpty:
		return "empty"
	case FindSingleton:
		return "singleton"
	case FindMultiple:
		return "multiple"
	default:
		return fmt.Sprintf("find(%d)", int8(f))
	}
}

// Found returns whether f carries a witness value.
func (f Find) Found() bool {
	return f == FindSingleton || f == FindMultiple
}
