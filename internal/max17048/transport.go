package max17048

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
)

// Transport moves 16-bit register values to and from the gauge.
//
// Reads are most-significant byte first while writes put the
// least-significant byte first. The gauge expects exactly this, so
// implementations must not normalise the two.
type Transport interface {
	ReadRegister(reg Register) (uint16, error)
	WriteRegister(reg Register, val uint16) error
	Ready() bool
}

// TransportError reports a failed bus transaction.
type TransportError struct {
	Op  string // "read" or "write"
	Reg Register
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("max17048: %s %s: %v", e.Op, e.Reg, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// I2CTransport talks to the gauge through a periph I2C device.
type I2CTransport struct {
	dev *i2c.Dev
}

// NewI2CTransport binds a transport to addr on bus. A zero addr selects Addr.
func NewI2CTransport(bus i2c.Bus, addr uint16) *I2CTransport {
	if addr == 0 {
		addr = Addr
	}
	return &I2CTransport{dev: &i2c.Dev{Addr: addr, Bus: bus}}
}

func (t *I2CTransport) Ready() bool {
	return t != nil && t.dev != nil && t.dev.Bus != nil
}

func (t *I2CTransport) ReadRegister(reg Register) (uint16, error) {
	var buf [2]byte
	if err := t.dev.Tx([]byte{byte(reg)}, buf[:]); err != nil {
		return 0, &TransportError{Op: "read", Reg: reg, Err: err}
	}
	return uint16(buf[0])<<8 | uint16(buf[1]), nil
}

func (t *I2CTransport) WriteRegister(reg Register, val uint16) error {
	w := []byte{byte(reg), byte(val), byte(val >> 8)}
	if err := t.dev.Tx(w, nil); err != nil {
		return &TransportError{Op: "write", Reg: reg, Err: err}
	}
	return nil
}

func (t *I2CTransport) String() string {
	if !t.Ready() {
		return "max17048(unbound)"
	}
	return fmt.Sprintf("max17048(%s@0x%02X)", t.dev.Bus, t.dev.Addr)
}
