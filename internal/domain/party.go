package domain

// NewParty is the construction input for a Party; the store assigns the ID.
type NewParty struct {
	Name      string
	Phone     string
	EBAN      string
	AddressID int64
}

// Validate checks that every required text field is present.
func (p NewParty) Validate() error {
	if err := RequireText("name", p.Name); err != nil {
		return err
	}
	if err := RequireText("phone", p.Phone); err != nil {
		return err
	}
	return RequireText("eban", p.EBAN)
}

// Party is any entity that can own accounts or move money.
type Party struct {
	ID        int64
	Name      string
	Phone     string
	EBAN      string
	AddressID int64
}

// PartyReferences counts the rows that still point at a party.
// Deleting a party never cascades, so callers use this to decide.
type PartyReferences struct {
	Accounts     int64
	Transactions int64
	Receipts     int64
}

// Total returns the number of referencing rows across all tables.
func (r PartyReferences) Total() int64 {
	return r.Accounts + r.Transactions + r.Receipts
}
