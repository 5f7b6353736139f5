package rpc

import "fmt"

// RpcError is the JSON error payload returned inside result objects.
type RpcError struct {
	Code        int    `json:"error_code"`
	ErrorString string `json:"error"`
	Message     string `json:"error_message,omitempty"`
}

func (e RpcError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.ErrorString
}

// Error codes. Negative codes follow JSON-RPC conventions; positive codes
// are application level.
const (
	RpcUNKNOWN          = -1
	RpcJSON_RPC         = -32600
	RpcMETHOD_NOT_FOUND = -32601
	RpcINVALID_PARAMS   = -32602
	RpcINTERNAL         = -32603
	RpcPARSE_ERROR      = -32700

	RpcGENERAL         = 1
	RpcMISSING_COMMAND = 2
	RpcNO_HISTORY      = 3

	RpcACT_NOT_FOUND     = 19
	RpcACT_MALFORMED     = 50
	RpcTXN_NOT_FOUND     = 24
	RpcLISTING_NOT_FOUND = 60
	RpcASSET_NOT_FOUND   = 61
)

func NewRpcError(code int, errorString, message string) *RpcError {
	return &RpcError{Code: code, ErrorString: errorString, Message: message}
}

func RpcErrorMethodNotFound(method string) *RpcError {
	return NewRpcError(RpcMETHOD_NOT_FOUND, "unknownCmd",
		fmt.Sprintf("Unknown method: %s", method))
}

func RpcErrorInvalidParams(message string) *RpcError {
	return NewRpcError(RpcINVALID_PARAMS, "invalidParams", message)
}

func RpcErrorInternal(message string) *RpcError {
	return NewRpcError(RpcINTERNAL, "internal", message)
}

func RpcErrorAccountNotFound(account string) *RpcError {
	return NewRpcError(RpcACT_NOT_FOUND, "actNotFound",
		fmt.Sprintf("Account not found: %s", account))
}

func RpcErrorAccountMalformed(account string) *RpcError {
	return NewRpcError(RpcACT_MALFORMED, "actMalformed",
		fmt.Sprintf("Malformed account: %s", account))
}

func RpcErrorListingNotFound(id uint64) *RpcError {
	return NewRpcError(RpcLISTING_NOT_FOUND, "entryNotFound",
		fmt.Sprintf("Listing not found: %d", id))
}

func RpcErrorAssetNotFound(ref string) *RpcError {
	return NewRpcError(RpcASSET_NOT_FOUND, "entryNotFound",
		fmt.Sprintf("Asset not found: %s", ref))
}

func RpcErrorTransactionNotFound(hash string) *RpcError {
	return NewRpcError(RpcTXN_NOT_FOUND, "txnNotFound",
		fmt.Sprintf("Transaction not found: %s", hash))
}

func RpcErrorNoHistory() *RpcError {
	return NewRpcError(RpcNO_HISTORY, "noHistory",
		"Submission history is not enabled on this server")
}
