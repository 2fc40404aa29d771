package platform

import "testing"

func TestNewProvider_UsesRegisteredFunc(t *testing.T) {
	orig := NewProviderFunc
	defer func() { NewProviderFunc = orig }()

	var gotDisplay string
	NewProviderFunc = func(opts Options) (*Provider, error) {
		gotDisplay = opts.Display
		return &Provider{}, nil
	}

	p, err := NewProvider(Options{Display: ":1"})
	if err != nil {
		t.Fatal(err)
	}
	if p == nil {
		t.Fatal("expected provider")
	}
	if gotDisplay != ":1" {
		t.Errorf("display: got %q, want %q", gotDisplay, ":1")
	}
}

func TestNewProvider_UnsupportedPlatform(t *testing.T) {
	// Temporarily clear the provider func to simulate unsupported platform
	orig := NewProviderFunc
	NewProviderFunc = nil
	defer func() { NewProviderFunc = orig }()

	_, err := NewProvider(Options{})
	if err == nil {
		t.Fatal("expected error on unsupported platform")
	}
	if err != ErrUnsupported {
		t.Errorf("expected ErrUnsupported, got: %v", err)
	}
}
