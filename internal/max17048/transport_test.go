package max17048

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

func TestI2CTransportReadIsBigEndian(t *testing.T) {
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: Addr, W: []byte{0x02}, R: []byte{0x12, 0x34}},
		},
	}
	tr := NewI2CTransport(bus, 0)

	v, err := tr.ReadRegister(REG_VCELL)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), v)
	require.NoError(t, bus.Close())
}

func TestI2CTransportWriteIsLittleEndian(t *testing.T) {
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: Addr, W: []byte{0x0C, 0x9C, 0x97}},
		},
	}
	tr := NewI2CTransport(bus, Addr)

	require.NoError(t, tr.WriteRegister(REG_CONFIG, 0x979C))
	require.NoError(t, bus.Close())
}

func TestI2CTransportError(t *testing.T) {
	bus := &i2ctest.Playback{DontPanic: true}
	tr := NewI2CTransport(bus, Addr)

	_, err := tr.ReadRegister(REG_SOC)
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "read", te.Op)
	assert.Equal(t, REG_SOC, te.Reg)

	err = tr.WriteRegister(REG_HIBRT, HIBRT_ON)
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "write", te.Op)
}

func TestI2CTransportReady(t *testing.T) {
	assert.False(t, NewI2CTransport(nil, Addr).Ready())
	assert.True(t, NewI2CTransport(&i2ctest.Playback{}, Addr).Ready())
}

func TestDeviceOverI2C(t *testing.T) {
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			// Init: STATUS probe, then MODE.EnSleep little-endian.
			{Addr: Addr, W: []byte{0x1A}, R: []byte{0x01, 0x00}},
			{Addr: Addr, W: []byte{0x06, 0x00, 0x20}},
			// FetchSample: VCELL, SOC, CRATE.
			{Addr: Addr, W: []byte{0x02}, R: []byte{0x40, 0x00}},
			{Addr: Addr, W: []byte{0x04}, R: []byte{0x32, 0x00}},
			{Addr: Addr, W: []byte{0x16}, R: []byte{0x00, 0x7D}},
			// Suspend, one transaction.
			{Addr: Addr, W: []byte{0x0A, 0xFF, 0xFF}},
			// TurnOff: CONFIG read-modify-write.
			{Addr: Addr, W: []byte{0x0C}, R: []byte{0x97, 0x1C}},
			{Addr: Addr, W: []byte{0x0C, 0x9C, 0x97}},
		},
	}
	d := New(NewI2CTransport(bus, Addr), Config{EnableSleepOnInit: true})

	require.NoError(t, d.Init())
	require.NoError(t, d.FetchSample())

	v, err := d.Value(ChanVoltage)
	require.NoError(t, err)
	assert.Equal(t, Value{1, 280000}, v)
	v, err = d.Value(ChanStateOfCharge)
	require.NoError(t, err)
	assert.Equal(t, Value{50, 0}, v)
	v, err = d.Value(ChanTimeToEmpty)
	require.NoError(t, err)
	assert.Equal(t, Value{60, 0}, v)

	require.NoError(t, d.ApplyPowerAction(Suspend))
	require.NoError(t, d.ApplyPowerAction(TurnOff))
	assert.Equal(t, Off, d.State())
	assert.ErrorIs(t, d.FetchSample(), ErrDeviceOff)

	require.NoError(t, bus.Close())
}
