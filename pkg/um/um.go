// Package um implements the Universal Machine: a 32-bit-word virtual
// machine that executes a program image as a flat stream of platters.
package um

import (
	"io"
	"log/slog"
)

// Machine owns the register file, the array heap, the execution finger,
// and the I/O port for a single program run. It is not safe for
// concurrent use — the machine is single-task and single-threaded.
type Machine struct {
	gpr    [8]platter
	heap   *heap
	finger int
	io     *console
	log    *slog.Logger
}

// New constructs a Machine with program as the initial array 0. input
// and output are the engine's I/O Port; logErr receives fatal
// diagnostics only, never per-instruction engine output.
func New(program []platter, input io.Reader, output io.Writer, logErr io.Writer) *Machine {
	return &Machine{
		heap: newHeap(program),
		io:   newConsole(input, output),
		log:  newLogger(logErr),
	}
}

// Run executes the loaded image until a halt or a terminating error.
// err is nil only on NormalHalt; any other return is a *Fault.
func (m *Machine) Run() error {
	defer m.io.restoreTerminal()
	for {
		if err := m.step(); err != nil {
			if err.Kind == NormalHalt {
				_ = m.io.flush()
				return nil
			}
			_ = m.io.flush()
			m.log.Error("machine halted", "kind", err.Kind.String(), "finger", err.Finger, "cause", err.Unwrap())
			return err
		}
	}
}

// step fetches, decodes, and dispatches exactly one platter. A non-nil
// return always means execution must stop: either NormalHalt or one of
// the four error kinds.
func (m *Machine) step() *Fault {
	word, f := m.heap.fetch(m.finger)
	if f != nil {
		return f
	}
	finger := m.finger
	m.finger++

	ins := decode(word)
	if ins.op >= numOperators {
		return faultf(InvalidInstruction, finger, "unknown operator code %d", ins.op)
	}
	return m.dispatch(ins, finger)
}

func (m *Machine) dispatch(ins instruction, finger int) *Fault {
	switch ins.op {
	case opCondMove:
		if m.gpr[ins.c] != 0 {
			m.gpr[ins.a] = m.gpr[ins.b]
		}

	case opArrayIndex:
		v, f := m.heap.read(m.gpr[ins.b], m.gpr[ins.c], finger)
		if f != nil {
			return f
		}
		m.gpr[ins.a] = v

	case opArrayAmend:
		if f := m.heap.write(m.gpr[ins.a], m.gpr[ins.b], m.gpr[ins.c], finger); f != nil {
			return f
		}

	case opAdd:
		m.gpr[ins.a] = m.gpr[ins.b] + m.gpr[ins.c]

	case opMul:
		m.gpr[ins.a] = m.gpr[ins.b] * m.gpr[ins.c]

	case opDiv:
		if m.gpr[ins.c] == 0 {
			return faultf(InvalidOperation, finger, "division by zero")
		}
		m.gpr[ins.a] = m.gpr[ins.b] / m.gpr[ins.c]

	case opNand:
		m.gpr[ins.a] = ^(m.gpr[ins.b] & m.gpr[ins.c])

	case opHalt:
		return fault(NormalHalt, finger, nil)

	case opAlloc:
		m.gpr[ins.b] = m.heap.allocate(m.gpr[ins.c])

	case opAbandon:
		if f := m.heap.abandon(m.gpr[ins.c], finger); f != nil {
			return f
		}

	case opOutput:
		v := m.gpr[ins.c]
		if v > 255 {
			return faultf(InvalidOperation, finger, "output value %d exceeds a byte", v)
		}
		if err := m.io.writeByte(byte(v)); err != nil {
			return fault(IOError, finger, err)
		}

	case opInput:
		b, eof, err := m.io.readByte()
		if err != nil {
			return fault(IOError, finger, err)
		}
		if eof {
			m.gpr[ins.c] = 0xffffffff
		} else {
			m.gpr[ins.c] = platter(b)
		}

	case opLoadProgram:
		if m.gpr[ins.b] != 0 {
			if _, f := m.heap.loadProgram(m.gpr[ins.b], finger); f != nil {
				return f
			}
		}
		m.finger = int(m.gpr[ins.c])

	case opOrthography:
		m.gpr[ins.a] = ins.value
	}
	return nil
}
