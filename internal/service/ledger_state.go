package service

import "github.com/ayo6706/wallet-ledger/internal/domain"

// Ledger entries transition at most once: a pending entry resolves to
// completed or failed, and nothing leaves a terminal state.
var ledgerTransitions = map[string]map[string]struct{}{
	domain.TxStatusPending: {
		domain.TxStatusCompleted: {},
		domain.TxStatusFailed:    {},
	},
	domain.TxStatusCompleted: {},
	domain.TxStatusFailed:    {},
}

func canTransitionLedger(current, next string) bool {
	nextStates, ok := ledgerTransitions[current]
	if !ok {
		return false
	}
	_, ok = nextStates[next]
	return ok
}
