package platform

import "testing"

func TestParseWindowID_Valid(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
	}{
		{"12345", 12345},
		{"0x1a00003", 0x1a00003},
		{" 0x10 ", 16},
	}
	for _, tt := range tests {
		got, err := ParseWindowID(tt.in)
		if err != nil {
			t.Errorf("ParseWindowID(%q): %v", tt.in, err)
			continue
		}
		if uint32(got) != tt.want {
			t.Errorf("ParseWindowID(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseWindowID_Invalid(t *testing.T) {
	tests := []string{
		"",
		"0",
		"abc",
		"0xZZ",
		"-5",
		"99999999999",
	}
	for _, s := range tests {
		if _, err := ParseWindowID(s); err == nil {
			t.Errorf("ParseWindowID(%q) should fail", s)
		}
	}
}

func TestEventConstructors(t *testing.T) {
	ev := WindowTitleEvent(7, "Mail")
	if ev.Kind != EventWindowTitle || ev.Window != 7 || ev.Title != "Mail" {
		t.Errorf("unexpected title event: %+v", ev)
	}
	if ev.Kind.String() != "window-title" {
		t.Errorf("kind string: got %q", ev.Kind.String())
	}
	list := WindowListEvent(nil)
	if list.Kind != EventWindowList {
		t.Errorf("unexpected list event kind: %v", list.Kind)
	}
}
