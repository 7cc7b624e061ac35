package parsec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMgmtInvoker_Args(t *testing.T) {
	inv := NewMgmtInvoker("parsecmgmt", "gcc-hooks", 4, "native")

	args := inv.args("blackscholes")
	assert.Equal(t, []string{
		"-a", "run",
		"-x", "pre",
		"-p", "blackscholes",
		"-n", "4",
		"-c", "gcc-hooks",
		"-i", "native",
	}, args)
}

func TestMgmtInvoker_RunMissingCommand(t *testing.T) {
	inv := NewMgmtInvoker("definitely-not-parsecmgmt", "gcc-hooks", 1, "test")

	_, err := inv.Run(context.Background(), "blackscholes")
	require.Error(t, err)
	assert.ErrorContains(t, err, "blackscholes")
}
