package x11

import (
	"testing"

	"github.com/jezek/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeUint32s(t *testing.T) {
	b := []byte{
		0x03, 0x00, 0xa0, 0x01,
		0x10, 0x00, 0x00, 0x00,
		0xff, // trailing partial value is ignored
	}
	assert.Equal(t, []uint32{0x01a00003, 0x10}, decodeUint32s(b))
	assert.Empty(t, decodeUint32s(nil))
}

func TestDecodeText(t *testing.T) {
	assert.Equal(t, "Terminal", decodeText([]byte("Terminal\x00\x00")))
	assert.Equal(t, "a�b", decodeText([]byte{'a', 0xff, 'b'}))
	assert.Equal(t, "", decodeText(nil))
}

func TestDecodeClass(t *testing.T) {
	instance, class := decodeClass([]byte("navigator\x00Firefox\x00"))
	assert.Equal(t, "navigator", instance)
	assert.Equal(t, "Firefox", class)

	instance, class = decodeClass([]byte("xterm"))
	assert.Equal(t, "xterm", instance)
	assert.Equal(t, "", class)
}

func TestSwitchable(t *testing.T) {
	atoms := switchableAtoms{skipTaskbar: 300, dock: 301, desktop: 302}

	assert.True(t, atoms.switchable(nil, nil))
	assert.True(t, atoms.switchable([]uint32{42}, []uint32{7}))
	assert.False(t, atoms.switchable([]uint32{42, 300}, nil), "skip-taskbar windows are hidden")
	assert.False(t, atoms.switchable(nil, []uint32{301}), "docks are hidden")
	assert.False(t, atoms.switchable(nil, []uint32{302}), "the desktop is hidden")
}

func TestClientMessagePayloads(t *testing.T) {
	assert.Equal(t, []uint32{1, 0, 0, 0, 0}, activateData())
	assert.Equal(t, []uint32{0, 0x2a1, 0, 0, 0}, closeData(xproto.Window(0x2a1)))
}

func TestClientMessageEncoding(t *testing.T) {
	raw := clientMessage(xproto.Window(0x01a00003), xproto.Atom(0x150), activateData())
	require.Len(t, raw, 32, "X events are 32 bytes on the wire")

	ev := xproto.ClientMessageEventNew([]byte(raw)).(xproto.ClientMessageEvent)
	assert.Equal(t, byte(32), ev.Format)
	assert.Equal(t, xproto.Window(0x01a00003), ev.Window)
	assert.Equal(t, xproto.Atom(0x150), ev.Type)
	assert.Equal(t, activateData(), ev.Data.Data32)
}
