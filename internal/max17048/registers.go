package max17048

import "fmt"

// Addr is the fixed 7-bit I2C address of the gauge.
const Addr = 0x36

// Register is an 8-bit offset into the gauge register map.
type Register uint8

const (
	REG_VCELL     Register = 0x02
	REG_SOC       Register = 0x04
	REG_MODE      Register = 0x06
	REG_VERSION   Register = 0x08
	REG_HIBRT     Register = 0x0A
	REG_CONFIG    Register = 0x0C
	REG_VALRT     Register = 0x14
	REG_CRATE     Register = 0x16
	REG_VRESET_ID Register = 0x18
	REG_STATUS    Register = 0x1A
	REG_TABLE     Register = 0x40
	REG_CMD       Register = 0xFE
)

const (
	HIBRT_ON  uint16 = 0xFFFF
	HIBRT_OFF uint16 = 0x0000

	CONFIG_SLEEP uint16 = 1 << 7  // Sleep enable in CONFIG
	MODE_ENSLEEP uint16 = 1 << 13 // Allows sleep to be entered via CONFIG
)

var registerNames = map[Register]string{
	REG_VCELL:     "VCELL",
	REG_SOC:       "SOC",
	REG_MODE:      "MODE",
	REG_VERSION:   "VERSION",
	REG_HIBRT:     "HIBRT",
	REG_CONFIG:    "CONFIG",
	REG_VALRT:     "VALRT",
	REG_CRATE:     "CRATE",
	REG_VRESET_ID: "VRESET_ID",
	REG_STATUS:    "STATUS",
	REG_TABLE:     "TABLE",
	REG_CMD:       "CMD",
}

func (r Register) String() string {
	if n, ok := registerNames[r]; ok {
		return n
	}
	return fmt.Sprintf("REG_0x%02X", uint8(r))
}
