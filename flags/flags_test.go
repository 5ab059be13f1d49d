package flags

import (
	"fmt"
	"testing"
)

type color uint8

const (
	red color = iota
	green
	blue
)

func (color) Bits() int { return 3 }

func (c color) String() string {
	switch c {
	case red:
		return "red"
	case green:
		return "green"
	case blue:
		return "blue"
	}
	return fmt.Sprintf("bit%d", uint8(c))
}

type wide uint8

func (wide) Bits() int        { return 12 }
func (w wide) String() string { return fmt.Sprintf("w%d", uint8(w)) }

func TestFlagsSetResetTest(t *testing.T) {
	var f Flags[color]
	if !f.None() || f.Any() {
		t.Fatalf("zero value should be empty, have %s", f)
	}
	f.Set(red).Set(blue)
	if !f.Test(red) || f.Test(green) || !f.Test(blue) {
		t.Fatalf("unexpected bits %03b", f.Uint64())
	}
	if f.Count() != 2 {
		t.Errorf("Count: want 2, have %d", f.Count())
	}
	f.Reset(red)
	if f.Test(red) {
		t.Error("red still set after Reset")
	}
	f.SetTo(green, true).SetTo(blue, false)
	if f.Uint64() != 0b010 {
		t.Errorf("want 010, have %03b", f.Uint64())
	}
	f.Clear()
	if f.Any() {
		t.Error("Clear left bits set")
	}
}

func TestFlagsAll(t *testing.T) {
	f := New(red, green, blue)
	if !f.All() {
		t.Fatalf("All: want true for %03b", f.Uint64())
	}
	f.Reset(green)
	if f.All() {
		t.Fatal("All: want false after Reset")
	}
}

func TestFlagsBitwise(t *testing.T) {
	a := New(red, green)
	b := New(green, blue)
	tests := []struct {
		name string
		got  Flags[color]
		want uint64
	}{
		{"or", a.Or(b), 0b111},
		{"and", a.And(b), 0b010},
		{"xor", a.Xor(b), 0b101},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.Uint64() != tt.want {
				t.Errorf("want %03b, have %03b", tt.want, tt.got.Uint64())
			}
		})
	}
}

func TestFlagsFromUintMasks(t *testing.T) {
	f := FromUint[color](0xff)
	if f.Uint64() != 0b111 {
		t.Fatalf("want 111, have %b", f.Uint64())
	}
}

func TestFlagsEncodedWidth(t *testing.T) {
	if n := (Flags[color]{}).EncodedWidth(); n != 1 {
		t.Errorf("3-bit set: want 1 byte, have %d", n)
	}
	if n := (Flags[wide]{}).EncodedWidth(); n != 2 {
		t.Errorf("12-bit set: want 2 bytes, have %d", n)
	}
	if n := (Flags[wide]{}).Width(); n != 12 {
		t.Errorf("Width: want 12, have %d", n)
	}
}

func TestFlagsString(t *testing.T) {
	if s := New(red, blue).String(); s != "blue|red" {
		t.Errorf("want blue|red, have %s", s)
	}
	if s := (Flags[color]{}).String(); s != "0" {
		t.Errorf("want 0, have %s", s)
	}
}
