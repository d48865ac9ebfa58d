package core

import (
	"encoding/json"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "plain dollars and cents", input: "12.34", want: 1234},
		{name: "comma separator", input: "12,34", want: 1234},
		{name: "integer amount", input: "45", want: 4500},
		{name: "single fraction digit", input: "45.5", want: 4550},
		{name: "zero is valid", input: "0", want: 0},
		{name: "leading dot", input: ".99", want: 99},
		{name: "third decimal rounds down", input: "12.344", want: 1234},
		{name: "third decimal rounds up", input: "12.345", want: 1235},
		{name: "surrounding whitespace", input: "  7.25  ", want: 725},
		{name: "empty string", input: "", wantErr: true},
		{name: "negative amount", input: "-5.00", wantErr: true},
		{name: "explicit plus sign", input: "+5.00", wantErr: true},
		{name: "two separators", input: "1.2.3", wantErr: true},
		{name: "non-numeric", input: "abc", wantErr: true},
		{name: "mixed digits and letters", input: "12x.50", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecimalToCents(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDecimalToCents(%q) expected error, got %d", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDecimalToCents(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDecimalToCents(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestMoney_String(t *testing.T) {
	tests := []struct {
		name  string
		cents int64
		want  string
	}{
		{name: "typical amount", cents: 4550, want: "45.50"},
		{name: "single cent", cents: 1, want: "0.01"},
		{name: "zero", cents: 0, want: "0.00"},
		{name: "whole dollars", cents: 10000, want: "100.00"},
		{name: "negative", cents: -250, want: "-2.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Money{Cents: tt.cents}).String(); got != tt.want {
				t.Errorf("Money{%d}.String() = %q, want %q", tt.cents, got, tt.want)
			}
		})
	}
}

func TestMoney_JSON(t *testing.T) {
	data, err := json.Marshal(Money{Cents: 4550})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "45.50" {
		t.Errorf("marshal = %s, want 45.50", data)
	}

	var fromNumber Money
	if err := json.Unmarshal([]byte("30.00"), &fromNumber); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if fromNumber.Cents != 3000 {
		t.Errorf("unmarshal number = %d cents, want 3000", fromNumber.Cents)
	}

	var fromString Money
	if err := json.Unmarshal([]byte(`"12,34"`), &fromString); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if fromString.Cents != 1234 {
		t.Errorf("unmarshal string = %d cents, want 1234", fromString.Cents)
	}

	var invalid Money
	if err := json.Unmarshal([]byte(`"-1.00"`), &invalid); err == nil {
		t.Error("unmarshal negative amount should fail")
	}
}
