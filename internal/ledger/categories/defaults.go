package categories

// BaseCategories is the fixed business-event list every store starts
// with. Account codes refer to the base chart seeded alongside.
var BaseCategories = []Category{
	{Code: "cylinder-purchase", DebitAccount: "1200", CreditAccount: "1000", Kind: KindCashOutflow,
		Template: "Bought {{quantity}} cylinders ({{size}}) at {{price}} each"},
	{Code: "cylinder-sale", DebitAccount: "1000", CreditAccount: "4000", Kind: KindCashInflow,
		Template: "Sold {{quantity}} cylinders ({{size}}) at {{price}} each"},
	{Code: "cylinder-defect", DebitAccount: "5100", CreditAccount: "1200", Kind: KindNonCash,
		Template: "Marked {{quantity}} cylinders ({{size}}) as {{state}}"},
	{Code: "regulator-purchase", DebitAccount: "1210", CreditAccount: "1000", Kind: KindCashOutflow,
		Template: "Bought {{quantity}} regulators ({{type}}) at {{price}} each"},
	{Code: "regulator-sale", DebitAccount: "1000", CreditAccount: "4000", Kind: KindCashInflow,
		Template: "Sold {{quantity}} regulators ({{type}}) at {{price}} each"},
	{Code: "regulator-defect", DebitAccount: "5100", CreditAccount: "1210", Kind: KindNonCash,
		Template: "Marked {{quantity}} regulators ({{type}}) as {{state}}"},
	{Code: "stove-purchase", DebitAccount: "1220", CreditAccount: "1000", Kind: KindCashOutflow,
		Template: "Bought {{quantity}} stoves ({{burners}} burner) at {{price}} each"},
	{Code: "stove-sale", DebitAccount: "1000", CreditAccount: "4000", Kind: KindCashInflow,
		Template: "Sold {{quantity}} stoves ({{burners}} burner) at {{price}} each"},
	{Code: "stove-defect", DebitAccount: "5100", CreditAccount: "1220", Kind: KindNonCash,
		Template: "Marked {{quantity}} stoves ({{burners}} burner) as {{state}}"},
	{Code: "exchange-cash", DebitAccount: "1000", CreditAccount: "4100", Kind: KindCashInflow,
		Template: "Exchange with {{shop}}: {{quantity}} cylinders, paid {{paid}} of {{total}}"},
	{Code: "exchange-credit", DebitAccount: "1100", CreditAccount: "4100", Kind: KindNonCash,
		Template: "Exchange with {{shop}}: {{due}} of {{total}} due"},
	{Code: "due-payment", DebitAccount: "1000", CreditAccount: "1100", Kind: KindCashInflow,
		Template: "Due payment of {{amount}} from {{shop}}"},
}
