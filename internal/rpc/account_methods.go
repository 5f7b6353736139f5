package rpc

import (
	"encoding/json"

	"github.com/nvalette/marketd/internal/core/ledger"
	"github.com/nvalette/marketd/internal/core/tx"
	"github.com/nvalette/marketd/internal/core/types"
)

// AccountInfoMethod returns the ledger record for one account.
type AccountInfoMethod struct {
	services *Services
}

type accountInfoParams struct {
	Account string `json:"account"`
}

func (m *AccountInfoMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p accountInfoParams
	if params == nil {
		return nil, RpcErrorInvalidParams("Missing account field")
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, RpcErrorInvalidParams("Invalid params: " + err.Error())
	}
	if p.Account == "" {
		return nil, RpcErrorInvalidParams("Missing account field")
	}

	id, err := types.ParseAccountID(p.Account)
	if err != nil {
		return nil, RpcErrorAccountMalformed(p.Account)
	}

	var (
		entry ledger.AccountEntry
		found bool
	)
	m.services.Engine.Ledger().Read(func(s *ledger.State) {
		entry, found = s.Account(id)
	})
	if !found {
		return nil, RpcErrorAccountNotFound(p.Account)
	}

	return map[string]interface{}{
		"account_data": map[string]interface{}{
			"account":  entry.ID.String(),
			"balance":  entry.Balance.Units(),
			"sequence": entry.Sequence,
		},
	}, nil
}

// AccountTxMethod returns the submission history for one account.
type AccountTxMethod struct {
	services *Services
}

type accountTxParams struct {
	Account string `json:"account"`
	Limit   int    `json:"limit,omitempty"`
}

func (m *AccountTxMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	if m.services.History == nil {
		return nil, RpcErrorNoHistory()
	}

	var p accountTxParams
	if params == nil {
		return nil, RpcErrorInvalidParams("Missing account field")
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, RpcErrorInvalidParams("Invalid params: " + err.Error())
	}
	if p.Account == "" {
		return nil, RpcErrorInvalidParams("Missing account field")
	}
	if _, err := types.ParseAccountID(p.Account); err != nil {
		return nil, RpcErrorAccountMalformed(p.Account)
	}

	entries, err := m.services.History.ByAccount(ctx.Context, p.Account, p.Limit)
	if err != nil {
		return nil, RpcErrorInternal(err.Error())
	}

	return map[string]interface{}{
		"account":      p.Account,
		"transactions": historyEntriesJSON(entries),
	}, nil
}

func historyEntriesJSON(entries []tx.HistoryEntry) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		out = append(out, historyEntryJSON(e))
	}
	return out
}

func historyEntryJSON(e tx.HistoryEntry) map[string]interface{} {
	entry := map[string]interface{}{
		"hash":         e.Hash,
		"tx_type":      e.TxType,
		"account":      e.Account,
		"sequence":     e.Sequence,
		"result":       e.Result,
		"applied":      e.Applied,
		"submitted_at": e.SubmittedAt,
	}
	if len(e.Raw) > 0 {
		entry["tx_json"] = json.RawMessage(e.Raw)
	}
	return entry
}
