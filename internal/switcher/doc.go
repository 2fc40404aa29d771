// Package switcher keeps the task switcher's buttons in step with the
// desktop's window list.
//
// A Scheduler owns the buttons and decides when a window list change is
// reconciled: at once when the list kept its size or shrank, or after a short
// delay when it grew, since a freshly launched window often has a
// placeholder title. Timers are never cancelled; a pending flag makes every
// update after the first one for the same list a no-op.
//
// A Switcher runs a Scheduler on one goroutine and is the type callers use.
package switcher
