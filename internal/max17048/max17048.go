// Package max17048 drives the MAX17048 single-cell fuel gauge.
//
// A Device caches the last raw sample fetched from the gauge and converts it
// to fixed-point values on demand. It also tracks the power state the gauge
// was last programmed into. Device does no locking of its own; callers that
// share one across goroutines must serialise access.
package max17048

import (
	"errors"
	"fmt"
	"log/slog"

	"periph.io/x/conn/v3/physic"
)

var (
	ErrDeviceNotReady     = errors.New("max17048: bus device is not ready")
	ErrDeviceOff          = errors.New("max17048: device is off")
	ErrUnsupportedChannel = errors.New("max17048: unsupported channel")
	ErrUnsupportedAction  = errors.New("max17048: unsupported power action")
	ErrIO                 = errors.New("max17048: i/o error")
)

// Config is fixed for the lifetime of a Device.
type Config struct {
	// EnableSleepOnInit sets MODE.EnSleep during Init so a later TurnOff
	// can put the gauge to sleep.
	EnableSleepOnInit bool
}

// Sample holds the raw register values captured by one FetchSample.
type Sample struct {
	Voltage       uint16 // VCELL, 78.125 µV/LSB
	StateOfCharge uint16 // SOC, 1/256 %/LSB
	CRate         uint16 // CRATE, 0.208 %/h per LSB
}

type Option func(*Device)

// WithLogger routes driver diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(d *Device) {
		if l != nil {
			d.log = l
		}
	}
}

type Device struct {
	t      Transport
	cfg    Config
	state  PowerState
	sample Sample
	log    *slog.Logger
}

func New(t Transport, cfg Config, opts ...Option) *Device {
	d := &Device{
		t:     t,
		cfg:   cfg,
		state: Active,
		log:   slog.Default(),
	}
	for _, o := range opts {
		o(d)
	}
	d.log = d.log.With("device", "max17048")
	return d
}

// Init probes the gauge and applies Config. It does not touch the power state.
func (d *Device) Init() error {
	if d.t == nil || !d.t.Ready() {
		d.log.Error("bus device is not ready")
		return ErrDeviceNotReady
	}

	if _, err := d.read(REG_STATUS); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	if d.cfg.EnableSleepOnInit {
		if err := d.write(REG_MODE, MODE_ENSLEEP); err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
	}
	return nil
}

// FetchSample reads VCELL, SOC and CRATE, in that order, and replaces the
// cached sample only if all three reads succeed.
func (d *Device) FetchSample() error {
	if d.state == Off {
		return ErrDeviceOff
	}
	if d.t == nil {
		return ErrDeviceNotReady
	}

	var s Sample
	regs := [...]struct {
		reg  Register
		dest *uint16
	}{
		{REG_VCELL, &s.Voltage},
		{REG_SOC, &s.StateOfCharge},
		{REG_CRATE, &s.CRate},
	}

	for _, r := range regs {
		v, err := d.read(r.reg)
		if err != nil {
			d.log.Error("failed to fetch sample", "reg", r.reg.String(), "err", err)
			return err
		}
		*r.dest = v
	}

	d.sample = s
	return nil
}

// Value converts the cached sample for ch. It never touches the bus, so a
// Device that was turned off still answers with its last sample.
func (d *Device) Value(ch Channel) (Value, error) {
	switch ch {
	case ChanVoltage:
		return VoltageValue(d.sample.Voltage), nil
	case ChanStateOfCharge:
		return StateOfChargeValue(d.sample.StateOfCharge), nil
	case ChanTimeToEmpty:
		return TimeToEmptyValue(d.sample.StateOfCharge, d.sample.CRate), nil
	default:
		return Value{}, fmt.Errorf("%w: %s", ErrUnsupportedChannel, ch)
	}
}

// Voltage returns the cached cell voltage as a periph physical quantity.
func (d *Device) Voltage() physic.ElectricPotential {
	return physic.ElectricPotential(microvolts(d.sample.Voltage)) * physic.MicroVolt
}

func (d *Device) Sample() Sample { return d.sample }

func (d *Device) State() PowerState { return d.state }

// Version reads the production version register.
func (d *Device) Version() (uint16, error) {
	if d.t == nil {
		return 0, ErrDeviceNotReady
	}
	return d.read(REG_VERSION)
}

func (d *Device) String() string {
	if s, ok := d.t.(fmt.Stringer); ok {
		return s.String()
	}
	return "max17048"
}

func (d *Device) read(reg Register) (uint16, error) {
	v, err := d.t.ReadRegister(reg)
	if err != nil {
		d.log.Error("unable to read register", "reg", reg.String(), "err", err)
		return 0, err
	}
	return v, nil
}

func (d *Device) write(reg Register, val uint16) error {
	if err := d.t.WriteRegister(reg, val); err != nil {
		d.log.Error("unable to write register", "reg", reg.String(), "err", err)
		return err
	}
	return nil
}
