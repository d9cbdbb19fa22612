package ledger

import "time"

// EntryView is the JSON shape of an entry returned to clients.
type EntryView struct {
	ID             string           `json:"id"`
	StoreID        int64            `json:"store_id"`
	DebitAccount   string           `json:"debit_account"`
	CreditAccount  string           `json:"credit_account"`
	Amount         string           `json:"amount"`
	Category       string           `json:"category"`
	PaymentMethod  string           `json:"payment_method"`
	Counterparty   string           `json:"counterparty"`
	CounterpartyID *int64           `json:"counterparty_id,omitempty"`
	Correlation    *CorrelationView `json:"correlation,omitempty"`
	Ref            string           `json:"ref,omitempty"`
	Details        map[string]any   `json:"details"`
	ActorID        int64            `json:"actor_id"`
	CreatedAt      time.Time        `json:"created_at"`
}

// CorrelationView is the JSON shape of a correlation ref.
type CorrelationView struct {
	Kind string `json:"kind"`
	ID   int64  `json:"id"`
}

// NewEntryView converts an Entry for responses.
func NewEntryView(e Entry) EntryView {
	view := EntryView{
		ID:             e.ID.String(),
		StoreID:        e.StoreID,
		DebitAccount:   e.DebitAccount,
		CreditAccount:  e.CreditAccount,
		Amount:         e.Amount.StringFixed(2),
		Category:       e.Category,
		PaymentMethod:  string(e.PaymentMethod),
		Counterparty:   string(e.Counterparty.Kind),
		CounterpartyID: e.Counterparty.ID,
		Ref:            e.Ref,
		Details:        e.Details,
		ActorID:        e.ActorID,
		CreatedAt:      e.CreatedAt,
	}
	if e.Correlation != nil {
		view.Correlation = &CorrelationView{Kind: string(e.Correlation.Kind), ID: e.Correlation.ID}
	}
	return view
}

// NewEntryViews converts a slice of entries.
func NewEntryViews(entries []Entry) []EntryView {
	out := make([]EntryView, 0, len(entries))
	for _, e := range entries {
		out = append(out, NewEntryView(e))
	}
	return out
}
