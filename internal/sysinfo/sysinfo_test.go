package sysinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMemory(t *testing.T) {
	m, err := ReadMemory()
	if err != nil {
		t.Skipf("memory stats unavailable: %v", err)
	}
	require.NotZero(t, m.ProcessRSS)
	assert.NotZero(t, m.HostTotal)
	assert.LessOrEqual(t, m.HostAvailable, m.HostTotal)
}
