package grpc

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/nvalette/marketd/internal/core/ledger"
	"github.com/nvalette/marketd/internal/core/tx"
	"github.com/nvalette/marketd/internal/core/types"
)

// GetAccountRequest asks for one account's ledger record.
type GetAccountRequest struct {
	Account string
}

// GetAccountResponse carries the account record.
type GetAccountResponse struct {
	Account  string
	Balance  int64
	Sequence uint32
}

// GetAccount retrieves account information.
func (s *Server) GetAccount(ctx context.Context, req *GetAccountRequest) (*GetAccountResponse, error) {
	if req == nil || req.Account == "" {
		return nil, status.Error(codes.InvalidArgument, "account is required")
	}
	id, err := types.ParseAccountID(req.Account)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "malformed account: %s", req.Account)
	}

	var (
		entry ledger.AccountEntry
		found bool
	)
	s.engine.Ledger().Read(func(st *ledger.State) {
		entry, found = st.Account(id)
	})
	if !found {
		return nil, status.Errorf(codes.NotFound, "account not found: %s", req.Account)
	}

	return &GetAccountResponse{
		Account:  entry.ID.String(),
		Balance:  entry.Balance.Units(),
		Sequence: entry.Sequence,
	}, nil
}

// ListingRecord is the gRPC shape of one listing.
type ListingRecord struct {
	ListingID    uint64
	Seller       string
	AssetKind    string
	AssetID      uint64
	Quantity     uint64
	PricePerUnit int64
	Active       bool
}

func listingRecord(l ledger.Listing) *ListingRecord {
	return &ListingRecord{
		ListingID:    uint64(l.ID),
		Seller:       l.Seller.String(),
		AssetKind:    l.Ref.Kind.String(),
		AssetID:      uint64(l.Ref.ID),
		Quantity:     l.Quantity,
		PricePerUnit: l.PricePerUnit.Units(),
		Active:       l.Active,
	}
}

// GetListingRequest asks for one listing by ID.
type GetListingRequest struct {
	ListingID uint64
}

// GetListing retrieves one listing, active or not.
func (s *Server) GetListing(ctx context.Context, req *GetListingRequest) (*ListingRecord, error) {
	if req == nil || req.ListingID == 0 {
		return nil, status.Error(codes.InvalidArgument, "listing_id is required")
	}

	var (
		l     ledger.Listing
		found bool
	)
	s.engine.Ledger().Read(func(st *ledger.State) {
		l, found = st.Listing(types.ListingID(req.ListingID))
	})
	if !found {
		return nil, status.Errorf(codes.NotFound, "listing not found: %d", req.ListingID)
	}
	return listingRecord(l), nil
}

// ListActiveListingsResponse carries the active listing set.
type ListActiveListingsResponse struct {
	Listings []*ListingRecord
}

// ListActiveListings enumerates every active listing in creation order.
func (s *Server) ListActiveListings(ctx context.Context) (*ListActiveListingsResponse, error) {
	resp := &ListActiveListingsResponse{}
	s.engine.Ledger().Read(func(st *ledger.State) {
		for _, l := range st.ActiveListings() {
			resp.Listings = append(resp.Listings, listingRecord(l))
		}
	})
	return resp, nil
}

// SubmitTransactionRequest carries one transaction as JSON.
type SubmitTransactionRequest struct {
	TxJSON []byte
}

// SubmitTransactionResponse reports the engine outcome.
type SubmitTransactionResponse struct {
	EngineResult        string
	EngineResultCode    int32
	EngineResultMessage string
	Applied             bool
	Hash                string
}

// SubmitTransaction parses and applies one transaction.
func (s *Server) SubmitTransaction(ctx context.Context, req *SubmitTransactionRequest) (*SubmitTransactionResponse, error) {
	if req == nil || len(req.TxJSON) == 0 {
		return nil, status.Error(codes.InvalidArgument, "tx_json is required")
	}

	t, err := tx.FromJSON(req.TxJSON)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid transaction: %v", err)
	}

	result := s.engine.Submit(t)
	return &SubmitTransactionResponse{
		EngineResult:        result.Result.String(),
		EngineResultCode:    int32(result.Result),
		EngineResultMessage: result.Message,
		Applied:             result.Applied,
		Hash:                result.Hash,
	}, nil
}
