package max17048

import "errors"

var errBus = errors.New("nack")

type regWrite struct {
	Reg Register
	Val uint16
}

// fakeTransport is an in-memory register file that records every access.
type fakeTransport struct {
	regs      map[Register]uint16
	failRead  map[Register]bool
	failWrite map[Register]bool
	notReady  bool

	reads  []Register
	writes []regWrite
}

func newFake(regs map[Register]uint16) *fakeTransport {
	if regs == nil {
		regs = map[Register]uint16{}
	}
	return &fakeTransport{
		regs:      regs,
		failRead:  map[Register]bool{},
		failWrite: map[Register]bool{},
	}
}

func (f *fakeTransport) calls() int { return len(f.reads) + len(f.writes) }

func (f *fakeTransport) Ready() bool { return !f.notReady }

func (f *fakeTransport) ReadRegister(reg Register) (uint16, error) {
	f.reads = append(f.reads, reg)
	if f.failRead[reg] {
		return 0, &TransportError{Op: "read", Reg: reg, Err: errBus}
	}
	return f.regs[reg], nil
}

func (f *fakeTransport) WriteRegister(reg Register, val uint16) error {
	f.writes = append(f.writes, regWrite{reg, val})
	if f.failWrite[reg] {
		return &TransportError{Op: "write", Reg: reg, Err: errBus}
	}
	f.regs[reg] = val
	return nil
}
