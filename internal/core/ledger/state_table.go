package ledger

import (
	"errors"

	"github.com/nvalette/marketd/internal/core/types"
)

var ErrEntryExists = errors.New("ledger entry already exists")

// StateTable buffers every change made during one unit of work. Reads pull
// working copies from the base state on first touch; Apply writes the
// working set back in one step. Discarding the table (not calling Apply)
// rolls the whole unit of work back.
type StateTable struct {
	base *State

	accounts  map[types.AccountID]*AccountEntry
	unique    map[types.AssetID]*UniqueAssetEntry
	divisible map[types.AssetID]*DivisibleAssetEntry
	approvals map[approvalKey]bool

	listings      map[types.ListingID]*Listing
	nextListingID types.ListingID

	fees *FeeConfig
}

func NewStateTable(base *State) *StateTable {
	return &StateTable{
		base:          base,
		accounts:      make(map[types.AccountID]*AccountEntry),
		unique:        make(map[types.AssetID]*UniqueAssetEntry),
		divisible:     make(map[types.AssetID]*DivisibleAssetEntry),
		approvals:     make(map[approvalKey]bool),
		listings:      make(map[types.ListingID]*Listing),
		nextListingID: base.nextListingID,
	}
}

func (t *StateTable) Account(id types.AccountID) (*AccountEntry, bool) {
	if e, ok := t.accounts[id]; ok {
		return e, true
	}
	e, ok := t.base.accounts[id]
	if !ok {
		return nil, false
	}
	c := e.Clone()
	t.accounts[id] = c
	return c, true
}

func (t *StateTable) CreateAccount(id types.AccountID) *AccountEntry {
	if e, ok := t.Account(id); ok {
		return e
	}
	e := &AccountEntry{ID: id}
	t.accounts[id] = e
	return e
}

func (t *StateTable) UniqueAsset(id types.AssetID) (*UniqueAssetEntry, bool) {
	if e, ok := t.unique[id]; ok {
		return e, true
	}
	e, ok := t.base.unique[id]
	if !ok {
		return nil, false
	}
	c := e.Clone()
	t.unique[id] = c
	return c, true
}

func (t *StateTable) CreateUniqueAsset(e *UniqueAssetEntry) error {
	if _, ok := t.UniqueAsset(e.ID); ok {
		return ErrEntryExists
	}
	t.unique[e.ID] = e
	return nil
}

func (t *StateTable) DivisibleAsset(id types.AssetID) (*DivisibleAssetEntry, bool) {
	if e, ok := t.divisible[id]; ok {
		return e, true
	}
	e, ok := t.base.divisible[id]
	if !ok {
		return nil, false
	}
	c := e.Clone()
	t.divisible[id] = c
	return c, true
}

func (t *StateTable) CreateDivisibleAsset(e *DivisibleAssetEntry) error {
	if _, ok := t.DivisibleAsset(e.ID); ok {
		return ErrEntryExists
	}
	if e.Balances == nil {
		e.Balances = make(map[types.AccountID]uint64)
	}
	t.divisible[e.ID] = e
	return nil
}

func (t *StateTable) OperatorApproved(holder, operator types.AccountID) bool {
	k := approvalKey{Holder: holder, Operator: operator}
	if v, ok := t.approvals[k]; ok {
		return v
	}
	return t.base.approvals[k]
}

func (t *StateTable) SetOperatorApproval(holder, operator types.AccountID, approved bool) {
	t.approvals[approvalKey{Holder: holder, Operator: operator}] = approved
}

func (t *StateTable) Listing(id types.ListingID) (*Listing, bool) {
	if l, ok := t.listings[id]; ok {
		return l, true
	}
	l, ok := t.base.listings[id]
	if !ok {
		return nil, false
	}
	c := l.Clone()
	t.listings[id] = c
	return c, true
}

func (t *StateTable) AppendListing(l *Listing) types.ListingID {
	id := t.nextListingID
	t.nextListingID++
	l.ID = id
	t.listings[id] = l
	return id
}

func (t *StateTable) ForEachListing(fn func(*Listing) bool) {
	for id := types.ListingID(1); id < t.nextListingID; id++ {
		if l, ok := t.Listing(id); ok {
			if !fn(l) {
				return
			}
		}
	}
}

func (t *StateTable) FeeConfig() *FeeConfig {
	if t.fees == nil {
		t.fees = t.base.fees.Clone()
	}
	return t.fees
}

// Apply commits the working set to the base state. After Apply the table
// must not be used again.
func (t *StateTable) Apply() {
	for id, e := range t.accounts {
		t.base.accounts[id] = e
	}
	for id, e := range t.unique {
		t.base.unique[id] = e
	}
	for id, e := range t.divisible {
		t.base.divisible[id] = e
	}
	for k, v := range t.approvals {
		if v {
			t.base.approvals[k] = true
		} else {
			delete(t.base.approvals, k)
		}
	}
	for id, l := range t.listings {
		t.base.listings[id] = l
	}
	t.base.nextListingID = t.nextListingID
	if t.fees != nil {
		t.base.fees = *t.fees
	}
}
