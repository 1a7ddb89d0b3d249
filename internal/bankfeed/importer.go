package bankfeed

import (
	"context"
	"fmt"
	"time"

	"myfi/internal/core"
	"myfi/internal/log"

	"github.com/google/uuid"
)

// UncategorizedCategory is assigned to every imported transaction; the
// provider supplies no categories.
const UncategorizedCategory = "Uncategorized"

// Provider is the slice of the provider client the importer needs.
type Provider interface {
	CreateSession(ctx context.Context) (Session, error)
	ListAccounts(ctx context.Context, sessionID string) ([]FeedAccount, error)
	ListTransactions(ctx context.Context, accountID string) ([]FeedTransaction, error)
}

// Recorder is the mutation surface the importer dispatches into. Imports
// funnel through the same contract as manual entry.
type Recorder interface {
	AddAccount(a core.Account)
	AddTransaction(t core.Transaction)
}

// ImportResult counts what an import created.
type ImportResult struct {
	Accounts     int
	Transactions int
}

// Importer maps provider payloads into store records. Partial failure
// mid-loop is not rolled back: accounts and transactions created before
// the failing step stay in the store.
type Importer struct {
	provider Provider
	recorder Recorder
	logger   *log.Logger

	now   func() time.Time
	newID func() string
}

func NewImporter(provider Provider, recorder Recorder, logger *log.Logger) *Importer {
	return &Importer{
		provider: provider,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// BeginLinkSession obtains a session handle from the provider. Failure
// leaves no partial state; the caller must re-initiate manually.
func (im *Importer) BeginLinkSession(ctx context.Context) (Session, error) {
	s, err := im.provider.CreateSession(ctx)
	if err != nil {
		im.logger.Error("bank link session failed", "error", err)
		return Session{}, err
	}
	im.logger.Info("bank link session created", "session_id", s.ID)
	return s, nil
}

// ImportFromSession creates one account per provider account and one
// transaction per provider transaction on it. An error after the first
// account keeps everything already created.
func (im *Importer) ImportFromSession(ctx context.Context, sessionID string) (ImportResult, error) {
	var result ImportResult

	accounts, err := im.provider.ListAccounts(ctx, sessionID)
	if err != nil {
		im.logger.Error("bank import aborted", "session_id", sessionID, "error", err)
		return result, fmt.Errorf("import session %s: %w", sessionID, err)
	}

	for _, acc := range accounts {
		localID := im.newID()
		im.recorder.AddAccount(core.Account{
			ID:                 localID,
			Name:               acc.InstitutionName + " " + acc.Last4,
			Type:               core.Checking,
			Balance:            acc.Balance.Current,
			Currency:           acc.Currency,
			Source:             core.ExternalLink,
			ExternalAccountRef: acc.ID,
			LastSyncedAt:       im.now().UTC(),
		})
		result.Accounts++

		txns, err := im.provider.ListTransactions(ctx, acc.ID)
		if err != nil {
			// Accounts and transactions created so far stay put.
			im.logger.Error("bank import stopped mid-way",
				"session_id", sessionID,
				"account", acc.ID,
				"accounts_created", result.Accounts,
				"transactions_created", result.Transactions,
				"error", err)
			return result, fmt.Errorf("fetch transactions for %s: %w", acc.ID, err)
		}

		for _, ft := range txns {
			im.recorder.AddTransaction(mapTransaction(ft, localID))
			result.Transactions++
		}
	}

	im.logger.Info("bank import completed",
		"session_id", sessionID,
		"accounts", result.Accounts,
		"transactions", result.Transactions)
	return result, nil
}

// mapTransaction converts the provider's signed minor-unit convention
// into the non-negative amount plus type convention used everywhere else.
func mapTransaction(ft FeedTransaction, accountID string) core.Transaction {
	txType := core.IncomeTransaction
	if ft.Amount < 0 {
		txType = core.ExpenseTransaction
	}
	return core.Transaction{
		ID:        ft.ID,
		Title:     ft.Description,
		Amount:    core.FromMinorUnits(ft.Amount),
		Date:      core.DateOf(time.Unix(ft.TransactedAt, 0)),
		Category:  UncategorizedCategory,
		Type:      txType,
		AccountID: accountID,
	}
}
