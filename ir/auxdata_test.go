package ir

import (
	"reflect"
	"testing"
)

func TestSolidityDataAllocateImmutable(t *testing.T) {
	data := NewSolidityData()

	if got := data.AllocateImmutable("owner"); got != 0 {
		t.Errorf("first allocation offset = %d, want 0", got)
	}
	if got := data.AllocateImmutable("threshold"); got != FieldBytes {
		t.Errorf("second allocation offset = %d, want %d", got, FieldBytes)
	}
	if got := data.AllocateImmutable("owner"); got != 0 {
		t.Errorf("repeated allocation of %q = %d, want the original offset 0", "owner", got)
	}
	if got := data.ImmutablesSize(); got != 2*FieldBytes {
		t.Errorf("ImmutablesSize = %d, want %d", got, 2*FieldBytes)
	}
}

func TestSolidityDataImmutableOffsets(t *testing.T) {
	data := NewSolidityData()
	if data.ImmutableOffsets("owner") != nil {
		t.Error("offsets of an unknown identifier should be nil")
	}

	data.AddImmutableOffset("owner", 96)
	data.AddImmutableOffset("owner", 32)
	data.AddImmutableOffset("owner", 64)

	offsets := data.ImmutableOffsets("owner")
	if want := []uint64{32, 64, 96}; !reflect.DeepEqual(offsets, want) {
		t.Errorf("ImmutableOffsets = %v, want ascending %v", offsets, want)
	}

	offsets[0] = 12345
	if got := data.ImmutableOffsets("owner")[0]; got != 32 {
		t.Error("mutating the returned slice should not affect the recorded offsets")
	}
}

func TestVyperData(t *testing.T) {
	data := NewVyperData(3 * FieldBytes)
	if got := data.ImmutablesSize(); got != 3*FieldBytes {
		t.Errorf("ImmutablesSize = %d, want %d", got, 3*FieldBytes)
	}

	if data.ForwarderUsed() {
		t.Error("the forwarder should start unused")
	}
	data.SetForwarderUsed()
	if !data.ForwarderUsed() {
		t.Error("ForwarderUsed should report true after SetForwarderUsed")
	}
}

func TestYulDataPaths(t *testing.T) {
	data := NewYulData()
	if _, ok := data.Path("Token"); ok {
		t.Error("an empty mapping should resolve nothing")
	}

	data.InsertPath("Token", "contracts/Token.sol:Token")
	path, ok := data.Path("Token")
	if !ok {
		t.Fatal("Path should resolve an inserted identifier")
	}
	if want := "contracts/Token.sol:Token"; path != want {
		t.Errorf("Path = %q, want %q", path, want)
	}
}
