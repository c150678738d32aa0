// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package gen contains generators of affine constraints over bit-vectors,
// together with their evaluation on concrete values, for testing trackers
// against brute force.
package gen
