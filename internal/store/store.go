// Package store owns all application state: the four entity collections,
// the UI preference state, and the change-notification hook the
// persistence bridge subscribes to.
//
// Mutations never fail and never validate; callers are expected to
// dispatch well-formed records (validation belongs to the presentation
// layer) and to supply their own unique ids.
package store

import (
	"sync"

	"myfi/internal/core"
)

// ModalKind identifies which entry modal the presentation layer has open.
// Transient convenience state; never persisted.
type ModalKind string

const (
	ModalNone           ModalKind = ""
	ModalAddIncome      ModalKind = "addIncome"
	ModalAddBill        ModalKind = "addBill"
	ModalAddTransaction ModalKind = "addTransaction"
)

// Versions carries one monotonic counter per state slice. Derived
// selectors recompute iff the counter of one of their inputs moved.
type Versions struct {
	Accounts     uint64
	Bills        uint64
	Income       uint64
	Transactions uint64
	UI           uint64
}

// Snapshot is the full persisted shape: every entity collection plus the
// durable part of the UI state.
type Snapshot struct {
	Income       IncomeState       `json:"income"`
	Bills        BillsState        `json:"bills"`
	Transactions TransactionsState `json:"transactions"`
	Accounts     AccountsState     `json:"accounts"`
	UI           UIState           `json:"ui"`
}

type (
	IncomeState struct {
		Items []core.Income `json:"items"`
	}
	BillsState struct {
		Items []core.Bill `json:"items"`
	}
	TransactionsState struct {
		Items []core.Transaction `json:"items"`
	}
	AccountsState struct {
		Items []core.Account `json:"items"`
	}
	UIState struct {
		Theme core.Theme `json:"theme"`
	}
)

// Store is the single in-process source of truth. All access goes through
// its methods; the mutex keeps the deferred persistence flush and the
// bank feed goroutine safe against the event loop.
type Store struct {
	mu sync.Mutex

	accounts     collection[core.Account]
	bills        collection[core.Bill]
	income       collection[core.Income]
	transactions collection[core.Transaction]

	theme       core.Theme
	isLoading   bool
	activeModal ModalKind

	versions Versions
	subs     []func()
}

// Option configures the initial contents of a new store.
type Option func(*options)

type options struct {
	seedBills        []core.Bill
	seedTransactions []core.Transaction
	snapshot         *Snapshot
}

// WithSeedData installs the illustrative first-run rows for bills and
// transactions. Reset* restores these, not the empty set.
func WithSeedData() Option {
	return func(o *options) {
		o.seedBills = SeedBills()
		o.seedTransactions = SeedTransactions()
	}
}

// WithSnapshot rehydrates the current contents from a persisted snapshot.
// The initial contents used by Reset* stay whatever seeding configured;
// rehydration only replaces what is currently held.
func WithSnapshot(s Snapshot) Option {
	return func(o *options) { o.snapshot = &s }
}

func New(opts ...Option) *Store {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	s := &Store{
		accounts:     newCollection(nil, func(a core.Account) string { return a.ID }),
		bills:        newCollection(o.seedBills, func(b core.Bill) string { return b.ID }),
		income:       newCollection(nil, func(i core.Income) string { return i.ID }),
		transactions: newCollection(o.seedTransactions, func(t core.Transaction) string { return t.ID }),
		theme:        core.ThemeLight,
	}

	if o.snapshot != nil {
		s.accounts.replace(o.snapshot.Accounts.Items)
		s.bills.replace(o.snapshot.Bills.Items)
		s.income.replace(o.snapshot.Income.Items)
		s.transactions.replace(o.snapshot.Transactions.Items)
		if o.snapshot.UI.Theme == core.ThemeDark {
			s.theme = core.ThemeDark
		}
	}

	return s
}

// Subscribe registers a change observer. Observers run after every
// mutation, outside the store lock, on the mutating goroutine. They
// receive no payload: a flush reads Snapshot() at its own fire time so it
// always sees the latest state.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// Snapshot returns a deep copy of the full persisted state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Income:       IncomeState{Items: s.income.list()},
		Bills:        BillsState{Items: s.bills.list()},
		Transactions: TransactionsState{Items: s.transactions.list()},
		Accounts:     AccountsState{Items: s.accounts.list()},
		UI:           UIState{Theme: s.theme},
	}
}

// Versions returns the current per-slice version counters.
func (s *Store) Versions() Versions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.versions
}

// Accounts

func (s *Store) AddAccount(a core.Account) {
	s.mu.Lock()
	s.accounts.add(a)
	s.versions.Accounts++
	s.mu.Unlock()
	s.notify()
}

func (s *Store) UpdateAccount(a core.Account) {
	s.mu.Lock()
	changed := s.accounts.update(a)
	if changed {
		s.versions.Accounts++
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

func (s *Store) DeleteAccount(id string) {
	s.mu.Lock()
	changed := s.accounts.deleteByID(id)
	if changed {
		s.versions.Accounts++
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

func (s *Store) ResetAccounts() {
	s.mu.Lock()
	s.accounts.reset()
	s.versions.Accounts++
	s.mu.Unlock()
	s.notify()
}

func (s *Store) Accounts() []core.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts.list()
}

// AccountByID resolves a soft reference. A missing account is a normal
// case, not an error: transactions may outlive the account they point at.
func (s *Store) AccountByID(id string) (core.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts.find(id)
}

// Bills

func (s *Store) AddBill(b core.Bill) {
	s.mu.Lock()
	s.bills.add(b)
	s.versions.Bills++
	s.mu.Unlock()
	s.notify()
}

func (s *Store) UpdateBill(b core.Bill) {
	s.mu.Lock()
	changed := s.bills.update(b)
	if changed {
		s.versions.Bills++
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

func (s *Store) DeleteBill(id string) {
	s.mu.Lock()
	changed := s.bills.deleteByID(id)
	if changed {
		s.versions.Bills++
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// ToggleBillPaid flips the paid flag of one bill. No-op when absent.
func (s *Store) ToggleBillPaid(id string) {
	s.mu.Lock()
	changed := false
	if b, ok := s.bills.find(id); ok {
		b.IsPaid = !b.IsPaid
		s.bills.update(b)
		s.versions.Bills++
		changed = true
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// SetBillsStatus bulk-sets the paid flag for every bill whose id appears
// in ids. Unknown ids are skipped.
func (s *Store) SetBillsStatus(ids []string, paid bool) {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	s.mu.Lock()
	changed := false
	for _, b := range s.bills.items {
		if _, ok := wanted[b.ID]; ok && b.IsPaid != paid {
			b.IsPaid = paid
			s.bills.update(b)
			changed = true
		}
	}
	if changed {
		s.versions.Bills++
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

func (s *Store) ResetBills() {
	s.mu.Lock()
	s.bills.reset()
	s.versions.Bills++
	s.mu.Unlock()
	s.notify()
}

func (s *Store) Bills() []core.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bills.list()
}

// Income

func (s *Store) AddIncome(i core.Income) {
	s.mu.Lock()
	s.income.add(i)
	s.versions.Income++
	s.mu.Unlock()
	s.notify()
}

func (s *Store) UpdateIncome(i core.Income) {
	s.mu.Lock()
	changed := s.income.update(i)
	if changed {
		s.versions.Income++
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

func (s *Store) DeleteIncome(id string) {
	s.mu.Lock()
	changed := s.income.deleteByID(id)
	if changed {
		s.versions.Income++
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

func (s *Store) ResetIncome() {
	s.mu.Lock()
	s.income.reset()
	s.versions.Income++
	s.mu.Unlock()
	s.notify()
}

func (s *Store) Income() []core.Income {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.income.list()
}

// Transactions

func (s *Store) AddTransaction(t core.Transaction) {
	s.mu.Lock()
	s.transactions.add(t)
	s.versions.Transactions++
	s.mu.Unlock()
	s.notify()
}

func (s *Store) UpdateTransaction(t core.Transaction) {
	s.mu.Lock()
	changed := s.transactions.update(t)
	if changed {
		s.versions.Transactions++
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

func (s *Store) DeleteTransaction(id string) {
	s.mu.Lock()
	changed := s.transactions.deleteByID(id)
	if changed {
		s.versions.Transactions++
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

func (s *Store) ResetTransactions() {
	s.mu.Lock()
	s.transactions.reset()
	s.versions.Transactions++
	s.mu.Unlock()
	s.notify()
}

func (s *Store) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transactions.list()
}

// UI preferences

func (s *Store) Theme() core.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

func (s *Store) SetTheme(t core.Theme) {
	s.mu.Lock()
	s.theme = t
	s.versions.UI++
	s.mu.Unlock()
	s.notify()
}

func (s *Store) ToggleTheme() {
	s.mu.Lock()
	if s.theme == core.ThemeLight {
		s.theme = core.ThemeDark
	} else {
		s.theme = core.ThemeLight
	}
	s.versions.UI++
	s.mu.Unlock()
	s.notify()
}

func (s *Store) SetLoading(v bool) {
	s.mu.Lock()
	s.isLoading = v
	s.mu.Unlock()
}

func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isLoading
}

func (s *Store) OpenModal(kind ModalKind) {
	s.mu.Lock()
	s.activeModal = kind
	s.mu.Unlock()
}

func (s *Store) CloseModal() {
	s.mu.Lock()
	s.activeModal = ModalNone
	s.mu.Unlock()
}

func (s *Store) ActiveModal() ModalKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeModal
}
