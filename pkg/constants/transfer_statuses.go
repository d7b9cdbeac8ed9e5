package constants

const (
	TransferStatusPending   = "PENDING"
	TransferStatusApproved  = "APPROVED"
	TransferStatusRejected  = "REJECTED"
	TransferStatusCompleted = "COMPLETED"
)

// legalTransferTransitions lists every allowed edge of the transfer
// lifecycle. PENDING may move to any terminal status (a completion straight
// from PENDING is the fast-path approval), APPROVED may only complete.
var legalTransferTransitions = map[string][]string{
	TransferStatusPending:  {TransferStatusApproved, TransferStatusRejected, TransferStatusCompleted},
	TransferStatusApproved: {TransferStatusCompleted},
}

func IsTransferStatus(s string) bool {
	switch s {
	case TransferStatusPending, TransferStatusApproved, TransferStatusRejected, TransferStatusCompleted:
		return true
	}
	return false
}

func CanTransitionTransfer(from, to string) bool {
	for _, allowed := range legalTransferTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
