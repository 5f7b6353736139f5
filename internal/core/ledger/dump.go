package ledger

import (
	"sort"

	"github.com/nvalette/marketd/internal/core/types"
)

// Approval is the exported form of a blanket operator approval.
type Approval struct {
	Holder   types.AccountID
	Operator types.AccountID
}

// Dump is a deep, deterministic copy of the full state, used by the
// snapshot store. Slices are sorted so identical states serialize to
// identical bytes.
type Dump struct {
	Accounts      []AccountEntry
	Unique        []UniqueAssetEntry
	Divisible     []DivisibleAssetEntry
	Approvals     []Approval
	Listings      []Listing
	NextListingID types.ListingID
	Fees          FeeConfig
}

// Export copies the state into a Dump.
func (s *State) Export() *Dump {
	d := &Dump{
		NextListingID: s.nextListingID,
		Fees:          s.fees,
	}

	for _, e := range s.accounts {
		d.Accounts = append(d.Accounts, *e)
	}
	sort.Slice(d.Accounts, func(i, j int) bool {
		return d.Accounts[i].ID.String() < d.Accounts[j].ID.String()
	})

	for _, e := range s.unique {
		d.Unique = append(d.Unique, *e)
	}
	sort.Slice(d.Unique, func(i, j int) bool { return d.Unique[i].ID < d.Unique[j].ID })

	for _, e := range s.divisible {
		d.Divisible = append(d.Divisible, *e.Clone())
	}
	sort.Slice(d.Divisible, func(i, j int) bool { return d.Divisible[i].ID < d.Divisible[j].ID })

	for k, approved := range s.approvals {
		if approved {
			d.Approvals = append(d.Approvals, Approval{Holder: k.Holder, Operator: k.Operator})
		}
	}
	sort.Slice(d.Approvals, func(i, j int) bool {
		a, b := d.Approvals[i], d.Approvals[j]
		if a.Holder != b.Holder {
			return a.Holder.String() < b.Holder.String()
		}
		return a.Operator.String() < b.Operator.String()
	})

	s.ForEachListing(func(l Listing) bool {
		d.Listings = append(d.Listings, l)
		return true
	})

	return d
}

// FromDump rebuilds a State from an exported Dump.
func FromDump(d *Dump) *State {
	s := NewState()
	s.nextListingID = d.NextListingID
	if s.nextListingID == 0 {
		s.nextListingID = 1
	}
	s.fees = d.Fees

	for i := range d.Accounts {
		e := d.Accounts[i]
		s.accounts[e.ID] = &e
	}
	for i := range d.Unique {
		e := d.Unique[i]
		s.unique[e.ID] = &e
	}
	for i := range d.Divisible {
		e := *d.Divisible[i].Clone()
		s.divisible[e.ID] = &e
	}
	for _, a := range d.Approvals {
		s.approvals[approvalKey{Holder: a.Holder, Operator: a.Operator}] = true
	}
	for i := range d.Listings {
		l := d.Listings[i]
		s.listings[l.ID] = &l
	}
	return s
}
