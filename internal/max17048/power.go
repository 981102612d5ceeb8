package max17048

import "fmt"

type PowerState uint8

const (
	Active PowerState = iota
	Suspended
	Off
)

func (s PowerState) String() string {
	switch s {
	case Active:
		return "active"
	case Suspended:
		return "suspended"
	case Off:
		return "off"
	}
	return fmt.Sprintf("PowerState(%d)", uint8(s))
}

type PowerAction uint8

const (
	Resume PowerAction = iota
	Suspend
	TurnOff
)

func (a PowerAction) String() string {
	switch a {
	case Resume:
		return "resume"
	case Suspend:
		return "suspend"
	case TurnOff:
		return "off"
	}
	return fmt.Sprintf("PowerAction(%d)", uint8(a))
}

// ParsePowerAction maps "resume", "suspend" and "off" to their actions.
func ParsePowerAction(s string) (PowerAction, error) {
	for _, a := range []PowerAction{Resume, Suspend, TurnOff} {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedAction, s)
}

// ApplyPowerAction reprograms the gauge for a and records the new state once
// every register access for a has succeeded. TurnOff is a read-modify-write
// of CONFIG; if the write fails nothing is undone and the state stays put.
func (d *Device) ApplyPowerAction(a PowerAction) error {
	if d.t == nil {
		return ErrDeviceNotReady
	}
	var next PowerState

	switch a {
	case Resume:
		if err := d.write(REG_HIBRT, HIBRT_OFF); err != nil {
			return err
		}
		next = Active

	case Suspend:
		if err := d.write(REG_HIBRT, HIBRT_ON); err != nil {
			return err
		}
		next = Suspended

	case TurnOff:
		cfg, err := d.read(REG_CONFIG)
		if err != nil {
			return err
		}
		if err := d.write(REG_CONFIG, cfg|CONFIG_SLEEP); err != nil {
			return err
		}
		next = Off

	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedAction, a)
	}

	d.log.Debug("power state changed", "from", d.state.String(), "to", next.String())
	d.state = next
	return nil
}
