package ledger

import (
	"github.com/nvalette/marketd/internal/core/amount"
	"github.com/nvalette/marketd/internal/core/types"
)

// State is the full ledger state. It is only ever mutated by committing a
// StateTable; readers go through Ledger, which serializes access.
type State struct {
	accounts  map[types.AccountID]*AccountEntry
	unique    map[types.AssetID]*UniqueAssetEntry
	divisible map[types.AssetID]*DivisibleAssetEntry
	approvals map[approvalKey]bool

	// listings is the arena: monotonically keyed, append-only.
	listings      map[types.ListingID]*Listing
	nextListingID types.ListingID

	fees FeeConfig
}

func NewState() *State {
	return &State{
		accounts:      make(map[types.AccountID]*AccountEntry),
		unique:        make(map[types.AssetID]*UniqueAssetEntry),
		divisible:     make(map[types.AssetID]*DivisibleAssetEntry),
		approvals:     make(map[approvalKey]bool),
		listings:      make(map[types.ListingID]*Listing),
		nextListingID: 1,
	}
}

// GenesisConfig seeds a fresh ledger.
type GenesisConfig struct {
	PlatformOwner     types.AccountID
	PlatformBalance   amount.Amount
	DirectTransferFee amount.Amount
}

// NewGenesisState creates a state holding only the platform-owner account
// and the fee configuration.
func NewGenesisState(cfg GenesisConfig) *State {
	s := NewState()
	s.fees = FeeConfig{
		PlatformOwner:     cfg.PlatformOwner,
		DirectTransferFee: cfg.DirectTransferFee,
	}
	if !cfg.PlatformOwner.IsZero() {
		s.accounts[cfg.PlatformOwner] = &AccountEntry{
			ID:      cfg.PlatformOwner,
			Balance: cfg.PlatformBalance,
		}
	}
	return s
}

// Read-side accessors. All return copies so callers can never mutate state
// behind the arena's back.

func (s *State) Account(id types.AccountID) (AccountEntry, bool) {
	e, ok := s.accounts[id]
	if !ok {
		return AccountEntry{}, false
	}
	return *e, true
}

func (s *State) UniqueAsset(id types.AssetID) (UniqueAssetEntry, bool) {
	e, ok := s.unique[id]
	if !ok {
		return UniqueAssetEntry{}, false
	}
	return *e, true
}

func (s *State) DivisibleAsset(id types.AssetID) (DivisibleAssetEntry, bool) {
	e, ok := s.divisible[id]
	if !ok {
		return DivisibleAssetEntry{}, false
	}
	return *e.Clone(), true
}

func (s *State) OperatorApproved(holder, operator types.AccountID) bool {
	return s.approvals[approvalKey{Holder: holder, Operator: operator}]
}

func (s *State) Listing(id types.ListingID) (Listing, bool) {
	l, ok := s.listings[id]
	if !ok {
		return Listing{}, false
	}
	return *l, true
}

// ForEachListing visits every listing in insertion (ID) order. Iteration
// stops early when fn returns false.
func (s *State) ForEachListing(fn func(Listing) bool) {
	for id := types.ListingID(1); id < s.nextListingID; id++ {
		if l, ok := s.listings[id]; ok {
			if !fn(*l) {
				return
			}
		}
	}
}

// ActiveListings returns every active listing in insertion order.
func (s *State) ActiveListings() []Listing {
	var out []Listing
	s.ForEachListing(func(l Listing) bool {
		if l.Active {
			out = append(out, l)
		}
		return true
	})
	return out
}

func (s *State) ListingCount() int {
	return len(s.listings)
}

func (s *State) NextListingID() types.ListingID {
	return s.nextListingID
}

func (s *State) FeeConfig() FeeConfig {
	return s.fees
}
