package message

import (
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/hsdfat8/diam-codec/models_base"
)

func mustHex(t testing.TB, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		t.Fatalf("bad hex fixture: %v", err)
	}
	return b
}

func u32(v uint32) *uint32 { return &v }

func mustTime(t testing.TB, s string) time.Time {
	t.Helper()
	v, err := time.Parse(time.DateTime, s)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func mustAddress(t testing.TB, s string) models_base.Address {
	t.Helper()
	a, err := models_base.NewAddress(models_base.FamilyIPv4, s)
	if err != nil {
		t.Fatal(err)
	}
	return a
}
