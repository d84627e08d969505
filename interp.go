package nock

import (
	"context"
	"strconv"
)

type Opcode uint8

const (
	OpSlot Opcode = iota
	OpConstant
	OpEvaluate
	OpCellTest
	OpIncrement
	OpEqual
	OpIf
	OpCompose
	OpExtend
	OpInvoke
	OpHint
)

var opNames = [...]string{"slot", "constant", "evaluate", "cell-test", "increment", "equal", "if", "compose", "extend", "invoke", "hint"}

func (me Opcode) String() string {
	if int(me) < len(opNames) {
		return opNames[me]
	}
	return "op" + strconv.Itoa(int(me))
}

// OpcodeOf maps a formula head to its opcode.
func OpcodeOf(head Noun) (Opcode, error) {
	if atom, ok := head.(Atom); ok {
		if v, small := atom.Uint64(); small && v <= uint64(OpHint) {
			return Opcode(v), nil
		}
	}
	return 0, ErrInvalidOpcode
}

// how many dispatches pass between checks of the context
const ctxCheckEvery = 1024

// Interp evaluates formulas. The zero value is ready to use; the fields
// are read-only during evaluation, so one Interp can serve many goroutines.
type Interp struct {
	// Fuel caps the number of formula dispatches per evaluation; 0 means no cap.
	Fuel uint64

	// OnStep, if set, sees every subject/formula pair before it is reduced.
	OnStep func(subj Noun, formula Noun)

	// Hint observers for opcode 10. They cannot change the product.
	OnHintStatic  func(subj Noun, tag Atom)
	OnHintDynamic func(subj Noun, tag Noun, clue Noun)
}

// Nock evaluates `formula` against `subj` with a zero-config Interp.
func Nock(subj Noun, formula Noun) (Noun, error) {
	var interp Interp
	return interp.Nock(subj, formula)
}

// Eval associates `v` (see `Assoc`) into `[subject formula]` and evaluates it.
func Eval(v ...any) (Noun, error) {
	code, err := Assoc(v...)
	if err != nil {
		return nil, err
	}
	var interp Interp
	return interp.Interp(code)
}

// Interp evaluates `code`, which must be a cell `[subject formula]`.
func (me *Interp) Interp(code Noun) (Noun, error) {
	sf, ok := code.(*Cell)
	if !ok {
		return nil, &EvalError{Err: ErrMalformedFormula, Formula: code}
	}
	return me.Nock(sf.L, sf.R)
}

func (me *Interp) Nock(subj Noun, formula Noun) (Noun, error) {
	return me.NockContext(context.Background(), subj, formula)
}

// NockContext is `Nock` that gives up with `ctx.Err()` once `ctx` is done.
func (me *Interp) NockContext(ctx context.Context, subj Noun, formula Noun) (Noun, error) {
	m := machine{interp: me, ctx: ctx}
	m.eval(subj, formula)
	return m.run()
}

// Apply runs a single opcode with the given operand against `subj`.
func (me *Interp) Apply(op Opcode, subj Noun, operand Noun) (Noun, error) {
	return me.Nock(subj, C(A(uint64(op)), operand))
}

type frameKind uint8

const (
	frameEval      frameKind = iota // reduce formula against subj
	frameCons                       // pop tail and head, produce the cell
	frameCellTest                   // pop, produce its cell test
	frameIncrement                  // pop, produce its increment
	frameEqual                      // pop, produce its equality test
	frameIf                         // pop condition, reduce a (0) or b (otherwise) against subj
	frameEvaluate                   // pop formula then subject, reduce
	frameCompose                    // pop product, reduce a against it
	frameExtend                     // pop product, reduce a against [product subj]
	frameInvoke                     // pop core, reduce its arm at address a against it
	frameHint                       // pop clue, report hint a, reduce b against subj
)

// frame is a unit of pending work. formula is the one that scheduled it,
// kept for error reports.
type frame struct {
	kind    frameKind
	subj    Noun
	formula Noun
	a, b    Noun
}

// machine reduces with explicit stacks instead of Go recursion, so
// reduction depth is bounded by memory only. Tail positions replace the
// finished frame with the next reduction and never grow `todo`.
type machine struct {
	interp *Interp
	ctx    context.Context
	todo   []frame
	prods  []Noun
	steps  uint64
}

func (me *machine) eval(subj Noun, formula Noun) {
	me.todo = append(me.todo, frame{kind: frameEval, subj: subj, formula: formula})
}

func (me *machine) push(f frame) { me.todo = append(me.todo, f) }

func (me *machine) produce(n Noun) { me.prods = append(me.prods, n) }

func (me *machine) pop() (n Noun) {
	n, me.prods = me.prods[len(me.prods)-1], me.prods[:len(me.prods)-1]
	return
}

func (me *machine) run() (Noun, error) {
	for len(me.todo) > 0 {
		f := me.todo[len(me.todo)-1]
		me.todo = me.todo[:len(me.todo)-1]
		if err := me.step(f); err != nil {
			return nil, &EvalError{Err: err, Subject: f.subj, Formula: f.formula}
		}
	}
	return me.pop(), nil
}

func (me *machine) step(f frame) error {
	switch f.kind {
	case frameEval:
		return me.dispatch(f.subj, f.formula)
	case frameCons:
		tail := me.pop()
		me.produce(C(me.pop(), tail))
	case frameCellTest:
		me.produce(CellTest(me.pop()))
	case frameIncrement:
		n, err := Increment(me.pop())
		if err != nil {
			return err
		}
		me.produce(n)
	case frameEqual:
		n, err := Equals(me.pop())
		if err != nil {
			return err
		}
		me.produce(n)
	case frameIf:
		cond, ok := me.pop().(Atom)
		if !ok {
			return ErrBadCondition
		}
		// any atom but 0 takes the else branch
		if cond.IsZero() {
			me.eval(f.subj, f.a)
		} else {
			me.eval(f.subj, f.b)
		}
	case frameEvaluate:
		formula := me.pop()
		me.eval(me.pop(), formula)
	case frameCompose:
		me.eval(me.pop(), f.a)
	case frameExtend:
		me.eval(C(me.pop(), f.subj), f.a)
	case frameInvoke:
		core := me.pop()
		arm, err := Resolve(f.a, core)
		if err != nil {
			return err
		}
		me.eval(core, arm)
	case frameHint:
		clue := me.pop()
		if me.interp.OnHintDynamic != nil {
			me.interp.OnHintDynamic(f.subj, f.a, clue)
		}
		me.eval(f.subj, f.b)
	}
	return nil
}

func (me *machine) dispatch(subj Noun, code Noun) error {
	if me.steps++; me.interp.Fuel > 0 && me.steps > me.interp.Fuel {
		return ErrFuelExhausted
	}
	if me.steps%ctxCheckEvery == 0 {
		if err := me.ctx.Err(); err != nil {
			return err
		}
	}
	if me.interp.OnStep != nil {
		me.interp.OnStep(subj, code)
	}

	formula, ok := code.(*Cell)
	if !ok {
		return ErrMalformedFormula
	}
	if head, isheadcell := formula.L.(*Cell); isheadcell {
		me.push(frame{kind: frameCons, subj: subj, formula: code})
		me.eval(subj, formula.R)
		me.eval(subj, head)
		return nil
	}
	op, err := OpcodeOf(formula.L)
	if err != nil {
		return err
	}

	args := formula.R
	switch op {
	case OpSlot:
		n, err := Resolve(args, subj)
		if err != nil {
			return err
		}
		me.produce(n)
	case OpConstant:
		me.produce(args)
	case OpCellTest:
		me.push(frame{kind: frameCellTest, subj: subj, formula: code})
		me.eval(subj, args)
	case OpIncrement:
		me.push(frame{kind: frameIncrement, subj: subj, formula: code})
		me.eval(subj, args)
	case OpEqual:
		me.push(frame{kind: frameEqual, subj: subj, formula: code})
		me.eval(subj, args)
	case OpIf:
		cond, branches, err := operands(args)
		if err != nil {
			return err
		}
		yes, no, err := operands(branches)
		if err != nil {
			return err
		}
		me.push(frame{kind: frameIf, subj: subj, formula: code, a: yes, b: no})
		me.eval(subj, cond)
	case OpEvaluate, OpCompose, OpExtend, OpInvoke, OpHint:
		b, c, err := operands(args)
		if err != nil {
			return err
		}
		me.dispatchPair(op, subj, code, b, c)
	default:
		return ErrInvalidOpcode
	}
	return nil
}

// dispatchPair schedules the opcodes whose operand is a pair `[b c]`.
func (me *machine) dispatchPair(op Opcode, subj Noun, code Noun, b Noun, c Noun) {
	switch op {
	case OpEvaluate:
		me.push(frame{kind: frameEvaluate, subj: subj, formula: code})
		me.eval(subj, c)
		me.eval(subj, b)
	case OpCompose:
		me.push(frame{kind: frameCompose, subj: subj, formula: code, a: c})
		me.eval(subj, b)
	case OpExtend:
		me.push(frame{kind: frameExtend, subj: subj, formula: code, a: c})
		me.eval(subj, b)
	case OpInvoke:
		me.push(frame{kind: frameInvoke, subj: subj, formula: code, a: b})
		me.eval(subj, c)
	case OpHint:
		if dyn, isdyn := b.(*Cell); isdyn {
			me.push(frame{kind: frameHint, subj: subj, formula: code, a: dyn.L, b: c})
			me.eval(subj, dyn.R)
		} else {
			if tag, ok := b.(Atom); ok && me.interp.OnHintStatic != nil {
				me.interp.OnHintStatic(subj, tag)
			}
			me.eval(subj, c)
		}
	}
}

func operands(args Noun) (Noun, Noun, error) {
	if cell, ok := args.(*Cell); ok {
		return cell.L, cell.R, nil
	}
	return nil, nil, ErrMalformedFormula
}
