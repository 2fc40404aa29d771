// Package x11 implements window discovery and activation for X11 desktops
// run by an EWMH-compliant window manager. It talks the X protocol directly
// through xgb, so it needs no cgo and no Xlib.
package x11
