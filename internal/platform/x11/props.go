package x11

import (
	"bytes"
	"strings"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// maxPropertyLength is the property read size in 32-bit units.
const maxPropertyLength = 1 << 16

// Atom names used by the backend.
const (
	atomClientList       = "_NET_CLIENT_LIST"
	atomActiveWindow     = "_NET_ACTIVE_WINDOW"
	atomCloseWindow      = "_NET_CLOSE_WINDOW"
	atomWMName           = "_NET_WM_NAME"
	atomWMPID            = "_NET_WM_PID"
	atomWMState          = "_NET_WM_STATE"
	atomStateSkipTaskbar = "_NET_WM_STATE_SKIP_TASKBAR"
	atomWindowType       = "_NET_WM_WINDOW_TYPE"
	atomTypeDock         = "_NET_WM_WINDOW_TYPE_DOCK"
	atomTypeDesktop      = "_NET_WM_WINDOW_TYPE_DESKTOP"
	atomLegacyName       = "WM_NAME"
	atomClass            = "WM_CLASS"
)

// decodeUint32s decodes a format-32 property value.
func decodeUint32s(b []byte) []uint32 {
	n := len(b) / 4
	vals := make([]uint32, n)
	for i := 0; i < n; i++ {
		vals[i] = xgb.Get32(b[i*4:])
	}
	return vals
}

// decodeText decodes a string property, dropping trailing NULs and
// replacing invalid UTF-8.
func decodeText(b []byte) string {
	b = bytes.TrimRight(b, "\x00")
	return strings.ToValidUTF8(string(b), "�")
}

// decodeClass splits WM_CLASS into its instance and class parts.
func decodeClass(b []byte) (instance, class string) {
	parts := strings.Split(strings.TrimRight(string(b), "\x00"), "\x00")
	if len(parts) > 0 {
		instance = parts[0]
	}
	if len(parts) > 1 {
		class = parts[1]
	}
	return instance, class
}

func containsAtom(list []uint32, atom xproto.Atom) bool {
	for _, v := range list {
		if xproto.Atom(v) == atom {
			return true
		}
	}
	return false
}

// switchableAtoms are the atoms that exclude a window from the switcher.
type switchableAtoms struct {
	skipTaskbar xproto.Atom
	dock        xproto.Atom
	desktop     xproto.Atom
}

// switchable reports whether a window with the given _NET_WM_STATE and
// _NET_WM_WINDOW_TYPE values belongs in the switcher.
func (a switchableAtoms) switchable(states, types []uint32) bool {
	if containsAtom(states, a.skipTaskbar) {
		return false
	}
	if containsAtom(types, a.dock) || containsAtom(types, a.desktop) {
		return false
	}
	return true
}

// activateData is the _NET_ACTIVE_WINDOW payload: source indication 1
// (application), current time, no currently active window.
func activateData() []uint32 {
	return []uint32{1, xproto.TimeCurrentTime, 0, 0, 0}
}

// closeData is the _NET_CLOSE_WINDOW payload: current time and the root
// window as the requesting source.
func closeData(root xproto.Window) []uint32 {
	return []uint32{xproto.TimeCurrentTime, uint32(root), 0, 0, 0}
}

// clientMessage encodes a 32-bit client message event for SendEvent.
func clientMessage(window xproto.Window, typ xproto.Atom, data []uint32) string {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: window,
		Type:   typ,
		Data:   xproto.ClientMessageDataUnionData32New(data),
	}
	return string(ev.Bytes())
}
