package core

import (
	"errors"
	"testing"

	"github.com/laporte-eng/jobnav/pkg/models"
)

func TestExtractJobNumber(t *testing.T) {
	tests := []struct {
		name string
		text string
		want models.JobNumber
	}{
		{"print filename", "123456-SHFT-MFG-00.pdf", "123456"},
		{"interior run", "REV-B 130550 stem.pdf", "130550"},
		{"seven digit run yields first six", "1234567.stp", "123456"},
		{"exactly six", "999999", "999999"},
		{"repeated leading digit", "1x123456", "123456"},
		{"first of two runs", "111111-222222", "111111"},
		{"run at end", "drawing_654321", "654321"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJobNumber(tt.text)
			if err != nil {
				t.Fatalf("ExtractJobNumber(%q) returned error: %v", tt.text, err)
			}
			if got != tt.want {
				t.Errorf("ExtractJobNumber(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractJobNumber_NotFound(t *testing.T) {
	inputs := []string{
		"12F3456-SHF-MFG-00.pdf",
		"",
		"12345",
		"no digits here",
		"12345-67890",
		"１２３４５６", // full-width digits are not ASCII
	}

	for _, text := range inputs {
		_, err := ExtractJobNumber(text)
		if err == nil {
			t.Fatalf("ExtractJobNumber(%q) expected error", text)
		}
		if !errors.Is(err, models.ErrJobNumberNotFound) {
			t.Errorf("ExtractJobNumber(%q) error = %v, want job_number_not_found", text, err)
		}
		var pe *models.PathError
		if !errors.As(err, &pe) || pe.Input != text {
			t.Errorf("error should carry input %q, got %+v", text, pe)
		}
	}
}

func TestJobNumberFromArg(t *testing.T) {
	got, err := JobNumberFromArg("130550")
	if err != nil || got != "130550" {
		t.Fatalf("JobNumberFromArg(130550) = %q, %v", got, err)
	}

	got, err = JobNumberFromArg("130550-STEM-MFG-00.pdf")
	if err != nil || got != "130550" {
		t.Fatalf("JobNumberFromArg(filename) = %q, %v", got, err)
	}

	if _, err := JobNumberFromArg("13055"); !errors.Is(err, models.ErrJobNumberNotFound) {
		t.Errorf("expected job_number_not_found for short input, got %v", err)
	}
}
