package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTransfer(t *testing.T) {
	legal := [][2]string{
		{TransferStatusPending, TransferStatusApproved},
		{TransferStatusPending, TransferStatusRejected},
		{TransferStatusPending, TransferStatusCompleted},
		{TransferStatusApproved, TransferStatusCompleted},
	}
	for _, edge := range legal {
		assert.True(t, CanTransitionTransfer(edge[0], edge[1]), "%s -> %s should be legal", edge[0], edge[1])
	}

	illegal := [][2]string{
		{TransferStatusApproved, TransferStatusRejected},
		{TransferStatusApproved, TransferStatusPending},
		{TransferStatusRejected, TransferStatusApproved},
		{TransferStatusRejected, TransferStatusCompleted},
		{TransferStatusCompleted, TransferStatusPending},
		{TransferStatusCompleted, TransferStatusApproved},
		{TransferStatusPending, TransferStatusPending},
	}
	for _, edge := range illegal {
		assert.False(t, CanTransitionTransfer(edge[0], edge[1]), "%s -> %s should be illegal", edge[0], edge[1])
	}
}

func TestIsTransferStatus(t *testing.T) {
	for _, s := range []string{TransferStatusPending, TransferStatusApproved, TransferStatusRejected, TransferStatusCompleted} {
		assert.True(t, IsTransferStatus(s))
	}
	assert.False(t, IsTransferStatus("SHIPPED"))
	assert.False(t, IsTransferStatus("pending"))
	assert.False(t, IsTransferStatus(""))
}
