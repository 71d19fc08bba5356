package sn_test

import (
	"testing"

	"github.com/zenoh-go/ztransport/internal/sn"
)

func TestDeriveIsDeterministic(t *testing.T) {
	local := []byte{1, 2, 3}
	peer := []byte{4, 5, 6}

	a := sn.Derive(local, peer, sn.Width32)
	b := sn.Derive(local, peer, sn.Width32)
	if a != b {
		t.Fatalf("derivation is not deterministic: %d != %d", a, b)
	}
}

func TestDeriveDependsOnOrder(t *testing.T) {
	a := []byte{1, 2, 3}
	b := []byte{4, 5, 6}

	ab := sn.Derive(a, b, sn.Width32)
	ba := sn.Derive(b, a, sn.Width32)
	if ab == ba {
		t.Fatalf("derivation should depend on (local, peer) order")
	}
}

func TestDeriveMasks(t *testing.T) {
	local := []byte{0xAA, 0xBB}
	peer := []byte{0xCC, 0xDD}

	cases := []struct {
		width sn.Width
		mask  uint32
	}{
		{sn.Width8, 0x7F},
		{sn.Width16, 0x3FFF},
		{sn.Width32, 0x0FFFFFFF},
		{sn.Width64, 0x7FFFFFFF},
	}
	for _, c := range cases {
		got := sn.Derive(local, peer, c.width)
		if got&^c.mask != 0 {
			t.Fatalf("width %v: value %#x has bits outside mask %#x", c.width, got, c.mask)
		}
	}
}
