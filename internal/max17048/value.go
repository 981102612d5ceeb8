package max17048

import "fmt"

type Channel uint8

const (
	ChanVoltage Channel = iota
	ChanStateOfCharge
	ChanTimeToEmpty
)

func (c Channel) String() string {
	switch c {
	case ChanVoltage:
		return "voltage"
	case ChanStateOfCharge:
		return "state_of_charge"
	case ChanTimeToEmpty:
		return "time_to_empty"
	}
	return fmt.Sprintf("Channel(%d)", uint8(c))
}

// Value is a fixed-point reading: Val1 whole units plus Val2 millionths.
type Value struct {
	Val1 int32
	Val2 int32
}

func (v Value) Float64() float64 {
	return float64(v.Val1) + float64(v.Val2)/1e6
}

func (v Value) String() string {
	return fmt.Sprintf("%d.%06d", v.Val1, v.Val2)
}

// microvolts converts VCELL (78.125 µV/LSB). 65535*625 fits in uint32.
func microvolts(raw uint16) uint32 {
	return uint32(raw) * 625 / 8
}

// VoltageValue converts a raw VCELL reading to volts.
func VoltageValue(raw uint16) Value {
	uv := microvolts(raw)
	return Value{Val1: int32(uv / 1000000), Val2: int32(uv % 1000000)}
}

// StateOfChargeValue converts a raw SOC reading (1/256 %/LSB) to percent.
func StateOfChargeValue(raw uint16) Value {
	return Value{
		Val1: int32(raw / 256),
		Val2: int32(uint32(raw%256) * 1000000 / 256),
	}
}

// TimeToEmptyValue estimates minutes to empty from raw SOC and CRATE.
// Only whole minutes are reported; Val2 is always zero. A rate too small to
// resolve (CRATE below 5 LSB) reports zero rather than an unbounded time.
func TimeToEmptyValue(soc, crate uint16) Value {
	if crate == 0 {
		return Value{}
	}
	rate := uint32(crate) * 26 / 125 // %/h
	if rate == 0 {
		return Value{}
	}
	return Value{Val1: int32(uint32(soc/256) / rate * 60)}
}
