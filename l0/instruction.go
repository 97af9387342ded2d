// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package l0

import "github.com/timewave-computer/causality/id"

// Opcode is the 8-bit instruction tag of the bit-stable instruction set
// (spec.md §6.1).
type Opcode uint8

const (
	OpWitness  Opcode = 0x01
	OpMove     Opcode = 0x02
	OpApply    Opcode = 0x03
	OpAlloc    Opcode = 0x04
	OpConsume  Opcode = 0x05
	OpTensor   Opcode = 0x06
	OpUntensor Opcode = 0x07
	OpInl      Opcode = 0x08
	OpInr      Opcode = 0x09
	OpMatch    Opcode = 0x0A
	OpJump     Opcode = 0x0B
	OpReturn   Opcode = 0x0C
	OpGas      Opcode = 0x0D
)

func (o Opcode) String() string {
	switch o {
	case OpWitness:
		return "Witness"
	case OpMove:
		return "Move"
	case OpApply:
		return "Apply"
	case OpAlloc:
		return "Alloc"
	case OpConsume:
		return "Consume"
	case OpTensor:
		return "Tensor"
	case OpUntensor:
		return "Untensor"
	case OpInl:
		return "Inl"
	case OpInr:
		return "Inr"
	case OpMatch:
		return "Match"
	case OpJump:
		return "Jump"
	case OpReturn:
		return "Return"
	case OpGas:
		return "Gas"
	default:
		return "Invalid"
	}
}

// Register is a small-integer register index.
type Register uint32

// Instruction is one opcode plus its operands. Operands are registers
// unless noted otherwise.
type Instruction struct {
	Op Opcode

	// Operand registers, populated per-opcode:
	//   Witness:  [out]
	//   Move:     [src, dst]
	//   Apply:    [fn, arg, out]
	//   Alloc:    [val, out]
	//   Consume:  [res, out]
	//   Tensor:   [a, b, out]
	//   Untensor: [pair, aOut, bOut]
	//   Inl/Inr:  [val, out]
	//   Match:    [sum] (targets below)
	//   Jump:     [] (target below)
	//   Return:   [val]
	//   Gas:      [] (cost below)
	Regs []Register

	// Match: branch targets. Jump: single target.
	Targets []uint32

	// Gas: cost charged.
	Cost uint64
}

func Witness(out Register) Instruction { return Instruction{Op: OpWitness, Regs: []Register{out}} }

func Move(src, dst Register) Instruction {
	return Instruction{Op: OpMove, Regs: []Register{src, dst}}
}

func Apply(fn, arg, out Register) Instruction {
	return Instruction{Op: OpApply, Regs: []Register{fn, arg, out}}
}

func Alloc(val, out Register) Instruction {
	return Instruction{Op: OpAlloc, Regs: []Register{val, out}}
}

func Consume(res, out Register) Instruction {
	return Instruction{Op: OpConsume, Regs: []Register{res, out}}
}

func TensorOp(a, b, out Register) Instruction {
	return Instruction{Op: OpTensor, Regs: []Register{a, b, out}}
}

func UntensorOp(pair, aOut, bOut Register) Instruction {
	return Instruction{Op: OpUntensor, Regs: []Register{pair, aOut, bOut}}
}

func Inl(val, out Register) Instruction { return Instruction{Op: OpInl, Regs: []Register{val, out}} }
func Inr(val, out Register) Instruction { return Instruction{Op: OpInr, Regs: []Register{val, out}} }

func Match(sum Register, leftTarget, rightTarget uint32) Instruction {
	return Instruction{Op: OpMatch, Regs: []Register{sum}, Targets: []uint32{leftTarget, rightTarget}}
}

func Jump(target uint32) Instruction {
	return Instruction{Op: OpJump, Targets: []uint32{target}}
}

func Return(val Register) Instruction { return Instruction{Op: OpReturn, Regs: []Register{val}} }

func Gas(cost uint64) Instruction { return Instruction{Op: OpGas, Cost: cost} }

// Program is an ordered sequence of instructions plus a witness table:
// the constants/inputs the program consumes via Witness instructions.
type Program struct {
	Instructions []Instruction
	WitnessTable []*Value
}

// CanonicalBytes renders the program in the fixed canonical
// serialization of spec.md §6.2, making Program an id.Entity: two
// programs with identical instructions and witness tables always
// produce the same Id.
func (p *Program) CanonicalBytes() []byte {
	var buf []byte
	var lenBytes [8]byte
	putUint64LE(lenBytes[:], uint64(len(p.Instructions)))
	buf = append(buf, lenBytes[:]...)
	for _, instr := range p.Instructions {
		buf = append(buf, instr.canonicalBytes()...)
	}
	putUint64LE(lenBytes[:], uint64(len(p.WitnessTable)))
	buf = append(buf, lenBytes[:]...)
	for _, v := range p.WitnessTable {
		buf = appendLenPrefixed(buf, v.CanonicalBytes())
	}
	return buf
}

func (instr Instruction) canonicalBytes() []byte {
	buf := []byte{byte(instr.Op)}
	var lenBytes [8]byte
	putUint64LE(lenBytes[:], uint64(len(instr.Regs)))
	buf = append(buf, lenBytes[:]...)
	for _, r := range instr.Regs {
		var b [4]byte
		putUint32LE(b[:], uint32(r))
		buf = append(buf, b[:]...)
	}
	putUint64LE(lenBytes[:], uint64(len(instr.Targets)))
	buf = append(buf, lenBytes[:]...)
	for _, t := range instr.Targets {
		var b [4]byte
		putUint32LE(b[:], t)
		buf = append(buf, b[:]...)
	}
	putUint64LE(lenBytes[:], instr.Cost)
	buf = append(buf, lenBytes[:]...)
	return buf
}

// Id computes the program's content address.
func (p *Program) Id() id.Id { return id.Hash(p.CanonicalBytes()) }

func appendLenPrefixed(buf, data []byte) []byte {
	var lenBytes [8]byte
	putUint64LE(lenBytes[:], uint64(len(data)))
	buf = append(buf, lenBytes[:]...)
	return append(buf, data...)
}

func putUint64LE(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}
