// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package xo

import (
	"fmt"

	"github.com/go-air/viable/logic"
	"github.com/go-air/viable/z"
)

// BitMap gives the bit encoding of each width.  Encodings are built on
// first use and shared by all variables of that width.
type BitMap struct {
	c    *logic.C
	bits []*logic.Bits
}

// NewBitMap creates a bit map over the levels of c.
func NewBitMap(c *logic.C) *BitMap {
	return &BitMap{c: c, bits: make([]*logic.Bits, c.Levels()+1)}
}

// C returns the circuit the encodings are built in.
func (m *BitMap) C() *logic.C {
	return m.c
}

// ForWidth returns the encoding of width n.
func (m *BitMap) ForWidth(n int) *logic.Bits {
	if n < 0 || n >= len(m.bits) {
		panic(fmt.Sprintf("xo: width %d out of range [0,%d]", n, len(m.bits)-1))
	}
	b := m.bits[n]
	if b == nil {
		b = logic.NewBits(m.c, n)
		m.bits[n] = b
	}
	return b
}

// ForVar returns the encoding of the width of v in st.
func (m *BitMap) ForVar(st *Store, v z.Var) *logic.Bits {
	return m.ForWidth(st.Width(v))
}
