// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package z

import "fmt"

// Var is the index of a bit-vector variable whose viable values are tracked.
//
// Vars are dense: the i'th variable created has index i, and variables are
// destroyed in the reverse order of creation.
type Var uint32

// String renders v as "v<index>".
func (v Var) String() string {
	return fmt.Sprintf("v%d", uint32(v))
}

// Int returns v as an int, for indexing.
func (v Var) Int() int {
	return int(v)
}
