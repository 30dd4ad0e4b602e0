package lox

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsBreakSignal(t *testing.T) {
	if !isBreakSignal(errBreak) {
		t.Error("isBreakSignal(errBreak) should be true")
	}
	if isBreakSignal(errors.New("break")) {
		t.Error("a look-alike string error must not be mistaken for errBreak")
	}
	if isBreakSignal(nil) {
		t.Error("isBreakSignal(nil) should be false")
	}
}

func TestBreakSignalSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("executing block: %w", errBreak)
	if !isBreakSignal(wrapped) {
		t.Error("isBreakSignal should see through fmt.Errorf %w wrapping")
	}
}
