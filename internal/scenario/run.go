// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package scenario

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/go-air/viable"
	"github.com/go-air/viable/z"
	"github.com/pkg/errors"
)

// ListWidth is the largest width whose domains are listed in transcripts.
// Wider domains are shown by their size.
const ListWidth = 8

type runner struct {
	w         io.Writer
	v         *viable.Viable
	marks     map[string]int
	conflicts []z.Var
}

// Run creates a tracker from the config of sc, replays the steps of sc
// on it and writes a transcript to w.  Run stops at the first step which
// fails and returns the tracker in its state after the last step run.
func Run(sc *Scenario, w io.Writer, opts ...viable.Option) (*viable.Viable, error) {
	r := &runner{w: w, marks: make(map[string]int)}
	opts = append(opts, viable.WithConflictHandler(func(v z.Var) {
		r.conflicts = append(r.conflicts, v)
	}))
	v, err := viable.NewConfig(sc.Config, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "scenario %s", sc.Name)
	}
	r.v = v
	for i := range sc.Steps {
		st := &sc.Steps[i]
		line, err := r.step(st)
		if err != nil {
			return v, errors.Wrapf(err, "scenario %s: step %d (%s)", sc.Name, i, st.Op)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return v, errors.Wrap(err, "writing transcript")
		}
		for _, x := range r.conflicts {
			fmt.Fprintf(w, "conflict %s\n", x)
		}
		r.conflicts = r.conflicts[:0]
	}
	return v, nil
}

func (r *runner) step(st *Step) (string, error) {
	v := r.v
	x := z.Var(st.Var)
	switch st.Op {
	case OpPush:
		return fmt.Sprintf("push w=%d -> %s", st.Width, v.Push(st.Width)), nil
	case OpPop:
		if v.NumVars() == 0 {
			return "", errors.New("no variable to pop")
		}
		x = z.Var(v.NumVars() - 1)
		v.Pop()
		return fmt.Sprintf("pop %s", x), nil
	case OpRestore:
		if v.TrailLen() == 0 {
			return "", errors.New("trail is empty")
		}
		v.PopViable()
		return fmt.Sprintf("restore -> trail %d", v.TrailLen()), nil
	case OpMark:
		r.marks[st.Name] = v.TrailLen()
		return fmt.Sprintf("mark %s = %d", st.Name, v.TrailLen()), nil
	case OpUndo:
		n, ok := r.marks[st.Name]
		if !ok {
			return "", errors.Errorf("unknown mark %q", st.Name)
		}
		if n > v.TrailLen() {
			return "", errors.Errorf("mark %s = %d is above the trail", st.Name, n)
		}
		v.PopViableTo(n)
		return fmt.Sprintf("undo %s -> trail %d", st.Name, v.TrailLen()), nil
	case OpLogAll:
		v.LogAll()
		return "logall", nil
	}

	if st.Var >= v.NumVars() {
		return "", errors.Errorf("%s does not exist", x)
	}
	switch st.Op {
	case OpSave:
		v.PushViable(x)
		return fmt.Sprintf("save %s -> trail %d", x, v.TrailLen()), nil
	case OpEq:
		v.IntersectEq(st.A.Get(), x, st.B.Get(), !st.Negated)
		expr := fmt.Sprintf("%s*x + %s == 0", st.A.Get(), st.B.Get())
		return fmt.Sprintf("eq %s %s -> %s", x, negate(expr, st.Negated), r.domain(x)), nil
	case OpUle:
		v.IntersectUle(x, st.A.Get(), st.B.Get(), st.C.Get(), st.D.Get(), !st.Negated)
		expr := fmt.Sprintf("%s*x + %s <= %s*x + %s", st.A.Get(), st.B.Get(), st.C.Get(), st.D.Get())
		return fmt.Sprintf("ule %s %s -> %s", x, negate(expr, st.Negated), r.domain(x)), nil
	case OpExclude:
		v.AddNonViable(x, st.Value.Get())
		return fmt.Sprintf("exclude %s %s -> %s", x, st.Value.Get(), r.domain(x)), nil
	case OpFind:
		f, val := v.FindViable(x, st.Hint.Get())
		line := fmt.Sprintf("find %s hint=%s -> %s", x, st.Hint.Get(), f)
		if val != nil {
			line += " " + val.String()
		}
		return line, nil
	case OpExpect:
		if err := r.expect(x, st); err != nil {
			return "", err
		}
		return fmt.Sprintf("expect %s ok", x), nil
	case OpLog:
		v.Log(x)
		return fmt.Sprintf("log %s", x), nil
	}
	return "", errors.Errorf("unknown op %q", st.Op)
}

func (r *runner) expect(x z.Var, st *Step) error {
	v := r.v
	if st.Empty != nil && *st.Empty != v.IsFalse(x) {
		return errors.Errorf("%s: empty is %t", x, v.IsFalse(x))
	}
	if st.Count != nil && st.Count.Get().Cmp(v.Count(x)) != 0 {
		return errors.Errorf("%s: count %s, want %s", x, v.Count(x), st.Count.Get())
	}
	if st.Values != nil {
		want := make([]*big.Int, len(st.Values))
		for i, n := range st.Values {
			want[i] = n.Get()
		}
		got := v.Values(x)
		if list(got) != list(want) {
			return errors.Errorf("%s: values %s, want %s", x, list(got), list(want))
		}
	}
	return nil
}

// domain renders the domain of x, marking inexact ones with "~".
func (r *runner) domain(x z.Var) string {
	var s string
	if r.v.Width(x) <= ListWidth {
		s = list(r.v.Values(x))
	} else {
		s = fmt.Sprintf("count=%s", r.v.Count(x))
	}
	if r.v.Inexact(x) {
		s += " ~"
	}
	return s
}

func list(vals []*big.Int) string {
	strs := make([]string, len(vals))
	for i, x := range vals {
		strs[i] = x.String()
	}
	return "{" + strings.Join(strs, " ") + "}"
}

func negate(expr string, neg bool) string {
	if neg {
		return "!(" + expr + ")"
	}
	return expr
}
