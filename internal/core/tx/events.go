package tx

import "time"

// Event names published by the market transactors.
const (
	EventListingCreated   = "listingCreated"
	EventListingCancelled = "listingCancelled"
	EventListingFilled    = "listingFilled"
	EventDirectTransfer   = "directTransfer"
)

// Event is a notification emitted by a successfully applied transaction.
type Event struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

// Publisher receives events from applied transactions. Implementations must
// not block; the engine calls Publish while holding no locks but inside the
// submission path.
type Publisher interface {
	Publish(ev Event)
}

// HistoryEntry is the durable record of one submission.
type HistoryEntry struct {
	Hash        string
	TxType      string
	Account     string
	Sequence    uint32
	Result      string
	Applied     bool
	Raw         []byte
	SubmittedAt time.Time
}

// Recorder persists submission history.
type Recorder interface {
	Record(entry HistoryEntry) error
}
