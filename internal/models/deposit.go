package models

// DepositPlan is one entry of the deposit catalog. Amounts are minor
// currency units (cents); the charged amount always comes from here,
// never from client input.
type DepositPlan struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
}

// DepositCatalog returns the fixed plan set. Built once at startup and
// treated as read-only after that.
func DepositCatalog() map[string]DepositPlan {
	plans := []DepositPlan{
		{
			ID:          "starter_deposit",
			Name:        "Starter — Project Deposit",
			Description: "Deposit to start: landing/one-page web or small scope kickoff.",
			Amount:      15000,
		},
		{
			ID:          "pro_deposit",
			Name:        "Pro — Project Deposit",
			Description: "Deposit to start: multi-page or stronger scope kickoff.",
			Amount:      30000,
		},
		{
			ID:          "studio_deposit",
			Name:        "Studio — Project Deposit",
			Description: "Deposit to start: higher scope / priority scheduling.",
			Amount:      50000,
		},
	}

	catalog := make(map[string]DepositPlan, len(plans))
	for _, p := range plans {
		catalog[p.ID] = p
	}
	return catalog
}
