package tollgatetest

import (
	"encoding/binary"
	"sync/atomic"
	"testing"

	"github.com/tollgate-dao/tollgate"
)

var condCounter uint64

// NewCondition returns a new, unique condition. Conditions created by this
// function are never equal.
func NewCondition() tollgate.Condition {
	n := atomic.AddUint64(&condCounter, 1)
	return tollgate.NewCondition("test", "signer", SequenceID(n))
}

// NewAddress returns the address of a new, unique condition.
func NewAddress() tollgate.Address {
	return NewCondition().Address()
}

// SequenceID returns the binary representation of a sequence value, as
// used by orm sequences.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}

// ParseAddress takes an address in a human readable format and returns its
// binary representation. It fails the test if the address cannot be parsed.
func ParseAddress(t testing.TB, encodedAddress string) tollgate.Address {
	t.Helper()

	addr, err := tollgate.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
