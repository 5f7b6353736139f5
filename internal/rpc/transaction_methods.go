package rpc

import (
	"encoding/json"
	"errors"

	"github.com/nvalette/marketd/internal/core/tx"
	_ "github.com/nvalette/marketd/internal/core/tx/marketplace" // transactor registration
	"github.com/nvalette/marketd/internal/storage/history"
)

// SubmitMethod accepts a signed transaction and applies it to the ledger.
type SubmitMethod struct {
	services *Services
}

type submitParams struct {
	TxJSON json.RawMessage `json:"tx_json"`
}

func (m *SubmitMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p submitParams
	if params == nil {
		return nil, RpcErrorInvalidParams("Missing tx_json field")
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, RpcErrorInvalidParams("Invalid params: " + err.Error())
	}
	if len(p.TxJSON) == 0 {
		return nil, RpcErrorInvalidParams("Missing tx_json field")
	}

	t, err := tx.FromJSON(p.TxJSON)
	if err != nil {
		if errors.Is(err, tx.ErrUnknownTransactionType) {
			return nil, RpcErrorInvalidParams("Unknown transaction type")
		}
		return nil, RpcErrorInvalidParams("Invalid tx_json: " + err.Error())
	}

	result := m.services.Engine.Submit(t)

	response := map[string]interface{}{
		"engine_result":         result.Result.String(),
		"engine_result_code":    int(result.Result),
		"engine_result_message": result.Message,
		"applied":               result.Applied,
		"tx_hash":               result.Hash,
	}
	if len(result.Output) > 0 {
		for k, v := range result.Output {
			response[k] = v
		}
	}
	return response, nil
}

// TxMethod looks up a recorded submission by hash.
type TxMethod struct {
	services *Services
}

type txParams struct {
	Transaction string `json:"transaction"`
}

func (m *TxMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	if m.services.History == nil {
		return nil, RpcErrorNoHistory()
	}

	var p txParams
	if params == nil {
		return nil, RpcErrorInvalidParams("Missing transaction field")
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, RpcErrorInvalidParams("Invalid params: " + err.Error())
	}
	if p.Transaction == "" {
		return nil, RpcErrorInvalidParams("Missing transaction field")
	}

	entry, err := m.services.History.ByHash(ctx.Context, p.Transaction)
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			return nil, RpcErrorTransactionNotFound(p.Transaction)
		}
		return nil, RpcErrorInternal(err.Error())
	}
	return historyEntryJSON(entry), nil
}

// TxHistoryMethod returns the most recent submissions.
type TxHistoryMethod struct {
	services *Services
}

type txHistoryParams struct {
	Limit int `json:"limit,omitempty"`
}

func (m *TxHistoryMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	if m.services.History == nil {
		return nil, RpcErrorNoHistory()
	}

	var p txHistoryParams
	if params != nil {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, RpcErrorInvalidParams("Invalid params: " + err.Error())
		}
	}

	entries, err := m.services.History.Recent(ctx.Context, p.Limit)
	if err != nil {
		return nil, RpcErrorInternal(err.Error())
	}
	return map[string]interface{}{
		"txs": historyEntriesJSON(entries),
	}, nil
}
