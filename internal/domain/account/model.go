package account

// Account is the engine's view of a user: identity for ranking output plus
// the stored points balance. The balance is a derived running sum; settlement
// corrects it from the ledger, never the other way around.
type Account struct {
	ID          string
	DisplayName string
	Balance     int
}
