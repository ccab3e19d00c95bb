package store

import (
	"bytes"
	"testing"
)

func TestIndexKey_Deterministic(t *testing.T) {
	content := []byte("The Pythagorean theorem states a2+b2=c2")

	k1 := IndexKey(content)
	k2 := IndexKey(bytes.Clone(content))
	if k1 != k2 {
		t.Fatalf("identical bytes produced different keys: %s vs %s", k1, k2)
	}
	if len(k1) != 32 {
		t.Fatalf("unexpected key length %d", len(k1))
	}

	changed := bytes.Clone(content)
	changed[0] ^= 1
	if IndexKey(changed) == k1 {
		t.Fatal("one-byte change did not change the key")
	}
}
