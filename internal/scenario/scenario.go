// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package scenario replays YAML scripts of tracker operations and writes a
// transcript of the resulting domains.
package scenario

import (
	"io"
	"math/big"
	"os"

	"github.com/go-air/viable/config"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Scenario is a script of tracker operations.
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Config      config.Config `yaml:"config,omitempty"`
	Steps       []Step        `yaml:"steps"`
}

// Op names a step.
type Op string

const (
	OpPush    Op = "push"    // create a variable of Width
	OpPop     Op = "pop"     // destroy the last variable
	OpSave    Op = "save"    // save Var on the trail
	OpRestore Op = "restore" // restore the last saved domain
	OpMark    Op = "mark"    // record the trail length as Name
	OpUndo    Op = "undo"    // restore to the trail length recorded as Name
	OpEq      Op = "eq"      // A*x + B == 0
	OpUle     Op = "ule"     // A*x + B <= C*x + D
	OpExclude Op = "exclude" // x != Value
	OpFind    Op = "find"    // find a viable value near Hint
	OpExpect  Op = "expect"  // check Values, Count or Empty
	OpLog     Op = "log"     // log Var
	OpLogAll  Op = "logall"  // log every variable
)

var ops = map[Op]bool{
	OpPush: true, OpPop: true, OpSave: true, OpRestore: true,
	OpMark: true, OpUndo: true, OpEq: true, OpUle: true, OpExclude: true,
	OpFind: true, OpExpect: true, OpLog: true, OpLogAll: true,
}

// Step is one operation.  Fields not used by Op are ignored.
type Step struct {
	Op      Op     `yaml:"op"`
	Var     int    `yaml:"var,omitempty"`
	Width   int    `yaml:"width,omitempty"`
	Name    string `yaml:"name,omitempty"`
	A       *Num   `yaml:"a,omitempty"`
	B       *Num   `yaml:"b,omitempty"`
	C       *Num   `yaml:"c,omitempty"`
	D       *Num   `yaml:"d,omitempty"`
	Negated bool   `yaml:"negated,omitempty"`
	Value   *Num   `yaml:"value,omitempty"`
	Hint    *Num   `yaml:"hint,omitempty"`
	Values  []*Num `yaml:"values,omitempty"`
	Count   *Num   `yaml:"count,omitempty"`
	Empty   *bool  `yaml:"empty,omitempty"`
}

// Num is an integer of any size.  In YAML it is a scalar in any base
// accepted by big.Int.SetString with base 0, such as -3 or 0xff.
type Num struct {
	big.Int
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (n *Num) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.Errorf("line %d: expected an integer", node.Line)
	}
	if _, ok := n.SetString(node.Value, 0); !ok {
		return errors.Errorf("line %d: bad integer %q", node.Line, node.Value)
	}
	return nil
}

// Get returns the value of n, 0 if n is nil.
func (n *Num) Get() *big.Int {
	if n == nil {
		return new(big.Int)
	}
	return &n.Int
}

// Load reads a scenario from r.  Config fields absent from r take their
// default values.
func Load(r io.Reader) (*Scenario, error) {
	sc := &Scenario{Config: config.Default()}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(sc); err != nil {
		return nil, errors.Wrap(err, "parsing scenario")
	}
	if err := sc.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid scenario")
	}
	return sc, nil
}

// LoadFile reads a scenario from the file at path.
func LoadFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening scenario")
	}
	defer f.Close()
	sc, err := Load(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return sc, nil
}

// Validate checks the parts of sc which do not depend on running it.
func (sc *Scenario) Validate() error {
	if sc.Name == "" {
		return errors.New("name is required")
	}
	if len(sc.Steps) == 0 {
		return errors.New("steps must be non-empty")
	}
	if err := sc.Config.Validate(); err != nil {
		return errors.Wrap(err, "config")
	}
	for i := range sc.Steps {
		st := &sc.Steps[i]
		if !ops[st.Op] {
			return errors.Errorf("step %d: unknown op %q", i, st.Op)
		}
		if st.Var < 0 {
			return errors.Errorf("step %d: negative var %d", i, st.Var)
		}
		switch st.Op {
		case OpPush:
			if st.Width < 0 || st.Width > sc.Config.MaxWidth {
				return errors.Errorf("step %d: width %d not in [0,%d]", i, st.Width, sc.Config.MaxWidth)
			}
		case OpMark, OpUndo:
			if st.Name == "" {
				return errors.Errorf("step %d: %s needs a name", i, st.Op)
			}
		case OpExclude:
			if st.Value == nil {
				return errors.Errorf("step %d: exclude needs a value", i)
			}
		}
	}
	return nil
}
