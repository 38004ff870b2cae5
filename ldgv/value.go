package ldgv

import (
	"fmt"
	"strconv"
)

// ValType is the type of a Val.
type ValType uint

// Possible ValType values
const (
	VInvalid ValType = iota
	VUnit
	VLabel
	VInt
	VPair
	VClosure
	VChan
	VGlobal
)

var valTypeStrings = []string{
	VInvalid: "INVALID",
	VUnit:    "unit",
	VLabel:   "label",
	VInt:     "int",
	VPair:    "pair",
	VClosure: "closure",
	VChan:    "channel",
	VGlobal:  "global",
}

func (t ValType) String() string {
	if int(t) >= len(valTypeStrings) {
		return valTypeStrings[VInvalid]
	}
	return valTypeStrings[t]
}

// ApplyFn is the effectful computation behind a closure value.  The
// argument is always a fully evaluated Val.
type ApplyFn func(*Val) (*Val, error)

// Val is a runtime value.  Values are immutable after construction;
// channel endpoint queues are the single exception and carry their own
// synchronization.
type Val struct {
	Type ValType
	Sym  string // label tag
	Num  int
	Fst  *Val // pair components
	Snd  *Val

	// Variables needed for closure values
	Fn ApplyFn

	// Variables needed for channel endpoints
	Read  *Queue
	Write *Queue

	// Variables needed for unevaluated globals
	Decl *Decl
}

// UnitVal returns the unit value.
func UnitVal() *Val {
	return &Val{Type: VUnit}
}

// LabelVal returns a Val representing the label 'name.
func LabelVal(name string) *Val {
	return &Val{Type: VLabel, Sym: name}
}

// IntVal returns a Val representing the integer x.
func IntVal(x int) *Val {
	return &Val{Type: VInt, Num: x}
}

// PairVal returns a Val pairing v1 and v2.
func PairVal(v1, v2 *Val) *Val {
	return &Val{Type: VPair, Fst: v1, Snd: v2}
}

// ClosureVal returns a Val wrapping the effectful function fn.  The
// captured environment lives inside fn.
func ClosureVal(fn ApplyFn) *Val {
	return &Val{Type: VClosure, Fn: fn}
}

// ChanVal returns a channel endpoint reading from r and writing to w.
func ChanVal(r, w *Queue) *Val {
	return &Val{Type: VChan, Read: r, Write: w}
}

// GlobalVal returns a Val wrapping the unevaluated declaration decl.
// Every variable reference resolving to it re-runs the declaration
// body; results are never cached.
func GlobalVal(decl *Decl) *Val {
	return &Val{Type: VGlobal, Decl: decl}
}

func (v *Val) String() string {
	switch v.Type {
	case VUnit:
		return "()"
	case VLabel:
		return "'" + v.Sym
	case VInt:
		return strconv.Itoa(v.Num)
	case VPair:
		return fmt.Sprintf("(%s . %s)", v.Fst, v.Snd)
	case VClosure:
		return "<closure>"
	case VChan:
		return "<chan>"
	case VGlobal:
		return fmt.Sprintf("<global %s>", v.Decl.Name)
	default:
		return fmt.Sprintf("%#v", v)
	}
}
