package logging

import (
	"testing"
)

func TestConstants(t *testing.T) {
	if FieldFile == "" {
		t.Error("FieldFile constant should not be empty")
	}
	if FieldStep == "" {
		t.Error("FieldStep constant should not be empty")
	}
	if FieldExitCode == "" {
		t.Error("FieldExitCode constant should not be empty")
	}
	if FieldInputDir == "" {
		t.Error("FieldInputDir constant should not be empty")
	}
	if FieldOutputFile == "" {
		t.Error("FieldOutputFile constant should not be empty")
	}
}
