package tx

import (
	"log"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/nvalette/marketd/internal/core/ledger"
	"github.com/nvalette/marketd/internal/core/market"
	"github.com/nvalette/marketd/internal/core/types"
	"github.com/nvalette/marketd/internal/crypto"
)

// EngineConfig holds configuration for the transaction engine
type EngineConfig struct {
	// SkipSignatureVerification disables signature checks (tests only)
	SkipSignatureVerification bool
}

// Engine processes transactions against the ledger. Each submission is one
// unit of work: it either applies completely (tesSUCCESS) or leaves the
// ledger untouched.
type Engine struct {
	ledger *ledger.Ledger
	market *market.Market
	config EngineConfig

	// applying holds the goroutine running the in-flight unit of work.
	// The ledger lock is not reentrant, so a receive hook calling back
	// into Submit on that goroutine must be refused, not left to block.
	applying atomic.Uint64

	recorder  Recorder
	publisher Publisher
}

// ApplyResult is the outcome of one submission
type ApplyResult struct {
	Result  Result
	Applied bool
	Hash    string
	Message string
	Output  map[string]any
}

// NewEngine creates a transaction engine over the given ledger and market.
func NewEngine(l *ledger.Ledger, m *market.Market, config EngineConfig) *Engine {
	return &Engine{ledger: l, market: m, config: config}
}

// SetRecorder installs a submission history recorder.
func (e *Engine) SetRecorder(r Recorder) {
	e.recorder = r
}

// SetPublisher installs an event publisher.
func (e *Engine) SetPublisher(p Publisher) {
	e.publisher = p
}

// Market returns the marketplace component suite.
func (e *Engine) Market() *market.Market {
	return e.market
}

// Ledger returns the underlying ledger.
func (e *Engine) Ledger() *ledger.Ledger {
	return e.ledger
}

// Submit runs the full pipeline for one transaction: preflight (syntax and
// signature), preclaim (account and sequence against current state), then
// apply inside a state table that commits only on success.
func (e *Engine) Submit(t Transaction) ApplyResult {
	gid := goroutineID()
	if gid != 0 && e.applying.Load() == gid {
		return ApplyResult{Result: TecREENTRANCY, Message: TecREENTRANCY.Message()}
	}

	hash, err := Hash(t)
	if err != nil {
		return ApplyResult{Result: TefINTERNAL, Message: "failed to compute transaction hash: " + err.Error()}
	}

	result, accountID := e.preflight(t)
	if !result.IsSuccess() {
		return e.finish(t, hash, result, nil, nil)
	}

	table, done := e.ledger.Begin()
	e.applying.Store(gid)
	// The clear runs after done releases the lock; CAS keeps it from
	// wiping the marker of a unit of work that started in between.
	defer e.applying.CompareAndSwap(gid, 0)

	result = e.preclaim(table, t, accountID)
	if !result.IsSuccess() {
		done(false)
		return e.finish(t, hash, result, nil, nil)
	}

	account, _ := table.Account(accountID)
	account.Sequence = t.GetCommon().GetSequence() + 1

	ctx := &ApplyContext{
		View:      table,
		AccountID: accountID,
		Account:   account,
		Market:    e.market,
	}

	if appliable, ok := t.(Appliable); ok {
		result = appliable.Apply(ctx)
	} else {
		result = TefINTERNAL
	}

	done(result.IsSuccess())

	var events []Event
	if result.IsSuccess() {
		events = ctx.events
	}
	return e.finish(t, hash, result, ctx.Output, events)
}

// preflight performs syntax validation and signature verification. Nothing
// here touches ledger state.
func (e *Engine) preflight(t Transaction) (Result, types.AccountID) {
	common := t.GetCommon()

	accountID, err := types.ParseAccountID(common.Account)
	if err != nil {
		return TemBAD_SRC_ACCOUNT, types.AccountID{}
	}
	if common.TransactionType == "" {
		return TemINVALID, accountID
	}
	if common.Sequence == nil {
		return TemINVALID, accountID
	}

	if err := t.Validate(); err != nil {
		return resultFromValidationError(err), accountID
	}

	if !e.config.SkipSignatureVerification {
		if common.SigningPubKey == "" || common.TxnSignature == "" {
			return TemBAD_SIGNATURE, accountID
		}
		signer, err := crypto.AccountFromPubKeyHex(common.SigningPubKey)
		if err != nil {
			return TemBAD_SIGNATURE, accountID
		}
		if signer != accountID {
			return TemBAD_SRC_ACCOUNT, accountID
		}
		payload, err := SigningPayload(t)
		if err != nil {
			return TefINTERNAL, accountID
		}
		if err := crypto.Verify(common.SigningPubKey, common.TxnSignature, payload); err != nil {
			return TemBAD_SIGNATURE, accountID
		}
	}

	return TesSUCCESS, accountID
}

// preclaim validates the transaction against current state: the source
// account must exist and the sequence number must be exactly the account's
// next one.
func (e *Engine) preclaim(v ledger.View, t Transaction, accountID types.AccountID) Result {
	account, ok := v.Account(accountID)
	if !ok {
		return TerNO_ACCOUNT
	}

	seq := t.GetCommon().GetSequence()
	if seq < account.Sequence {
		return TefPAST_SEQ
	}
	if seq > account.Sequence {
		return TerPRE_SEQ
	}
	return TesSUCCESS
}

func (e *Engine) finish(t Transaction, hash string, result Result, output map[string]any, events []Event) ApplyResult {
	applied := result.IsApplied()

	if e.recorder != nil {
		raw, err := ToJSON(t)
		if err != nil {
			raw = nil
		}
		entry := HistoryEntry{
			Hash:        hash,
			TxType:      t.TxType().String(),
			Account:     t.GetCommon().Account,
			Sequence:    t.GetCommon().GetSequence(),
			Result:      result.String(),
			Applied:     applied,
			Raw:         raw,
			SubmittedAt: time.Now().UTC(),
		}
		if err := e.recorder.Record(entry); err != nil {
			log.Printf("tx: failed to record %s: %v", hash, err)
		}
	}

	if applied && e.publisher != nil {
		for _, ev := range events {
			e.publisher.Publish(ev)
		}
	}

	return ApplyResult{
		Result:  result,
		Applied: applied,
		Hash:    hash,
		Message: result.Message(),
		Output:  output,
	}
}

// goroutineID reads the current goroutine number from the runtime stack
// header ("goroutine N [running]:").
func goroutineID() uint64 {
	var buf [32]byte
	header := string(buf[:runtime.Stack(buf[:], false)])
	header = strings.TrimPrefix(header, "goroutine ")
	i := strings.IndexByte(header, ' ')
	if i <= 0 {
		return 0
	}
	id, _ := strconv.ParseUint(header[:i], 10, 64)
	return id
}

// resultFromValidationError maps a Validate() error to a malformed-code
// result. Validate implementations prefix messages with the code name.
func resultFromValidationError(err error) Result {
	msg := err.Error()

	codes := map[string]Result{
		"temMALFORMED":       TemMALFORMED,
		"temBAD_AMOUNT":      TemBAD_AMOUNT,
		"temBAD_FEE":         TemBAD_FEE,
		"temBAD_PRICE":       TemBAD_PRICE,
		"temBAD_QUANTITY":    TemBAD_QUANTITY,
		"temBAD_ASSET":       TemBAD_ASSET,
		"temBAD_SIGNATURE":   TemBAD_SIGNATURE,
		"temBAD_SRC_ACCOUNT": TemBAD_SRC_ACCOUNT,
		"temSELF_TRANSFER":   TemSELF_TRANSFER,
		"temINVALID":         TemINVALID,
	}

	for code, result := range codes {
		if len(msg) >= len(code) && msg[:len(code)] == code {
			if len(msg) == len(code) || msg[len(code)] == ':' || msg[len(code)] == ' ' {
				return result
			}
		}
	}
	return TemINVALID
}
