package commands

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/holiman/uint256"
	"github.com/iov-one/timelock/x/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestGen(t *testing.T) {
	dir, err := ioutil.TempDir("", "testgen-")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	msg := wallet.NewExtendLockMsg(uint256.NewInt(1700000000))
	examples := []Example{{Filename: "extend_lock_msg", Obj: msg}}
	require.NoError(t, TestGenCmd(examples, []string{dir}))

	bin, err := ioutil.ReadFile(filepath.Join(dir, "extend_lock_msg.bin"))
	require.NoError(t, err)
	var got wallet.ExtendLockMsg
	require.NoError(t, got.Unmarshal(bin))
	assert.Equal(t, msg.UnlockTime, got.UnlockTime)

	js, err := ioutil.ReadFile(filepath.Join(dir, "extend_lock_msg.json"))
	require.NoError(t, err)
	assert.Contains(t, string(js), "unlock_time")
}
