package usecase_test

import (
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/iho/finwise/internal/usecase/mocks"
)

// expectCommittedTx sets up one Begin that hands out a transaction which
// must be committed. The deferred rollback after commit is tolerated.
func expectCommittedTx(ctrl *gomock.Controller, txm *mocks.MockTransactionManager) *mocks.MockTransaction {
	tx := mocks.NewMockTransaction(ctrl)
	txm.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().Commit(gomock.Any()).Return(nil)
	tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()
	return tx
}

// expectRolledBackTx sets up one Begin whose transaction must end in a
// rollback without commit.
func expectRolledBackTx(ctrl *gomock.Controller, txm *mocks.MockTransactionManager) *mocks.MockTransaction {
	tx := mocks.NewMockTransaction(ctrl)
	txm.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().Rollback(gomock.Any()).Return(nil)
	return tx
}

func newController(t *testing.T) *gomock.Controller {
	t.Helper()
	return gomock.NewController(t)
}
