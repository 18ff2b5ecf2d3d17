package runtime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"corelangc/src/runtime"
)

func TestAddressesResolvesBothSymbols(t *testing.T) {
	addrs := runtime.Addresses()
	for _, name := range []string{"read_int", "println"} {
		addr, ok := addrs[name]
		assert.Truef(t, ok, "Addresses() missing entry for %q", name)
		assert.NotZerof(t, addr, "Addresses()[%q] should be a non-zero function pointer", name)
	}
}
