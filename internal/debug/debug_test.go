package debug

import "testing"

func TestVerboseToggle(t *testing.T) {
	SetVerbose(false)
	if enabled == false && Enabled() {
		t.Error("Enabled() should be false without verbose or env")
	}

	SetVerbose(true)
	if !Enabled() {
		t.Error("Enabled() should be true after SetVerbose(true)")
	}
	SetVerbose(false)
}

func TestQuietToggle(t *testing.T) {
	SetQuiet(true)
	if !IsQuiet() {
		t.Error("IsQuiet() should be true after SetQuiet(true)")
	}
	SetQuiet(false)
	if IsQuiet() {
		t.Error("IsQuiet() should be false after SetQuiet(false)")
	}
}
