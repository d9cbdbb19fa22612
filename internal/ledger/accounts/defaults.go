package accounts

// BaseAccount describes one row of the onboarding chart.
type BaseAccount struct {
	Code string
	Name string
	Type AccountType
}

// BaseChart is the fixed chart every store starts with.
var BaseChart = []BaseAccount{
	{Code: "1000", Name: "Cash", Type: AccountTypeAsset},
	{Code: "1100", Name: "Trade Receivables", Type: AccountTypeAsset},
	{Code: "1200", Name: "Cylinder Inventory", Type: AccountTypeAsset},
	{Code: "1210", Name: "Regulator Inventory", Type: AccountTypeAsset},
	{Code: "1220", Name: "Stove Inventory", Type: AccountTypeAsset},
	{Code: "2000", Name: "Trade Payables", Type: AccountTypeLiability},
	{Code: "3000", Name: "Owner Equity", Type: AccountTypeEquity},
	{Code: "4000", Name: "Sales Revenue", Type: AccountTypeIncome},
	{Code: "4100", Name: "Exchange Revenue", Type: AccountTypeIncome},
	{Code: "5000", Name: "Cost of Goods", Type: AccountTypeExpense},
	{Code: "5100", Name: "Inventory Loss", Type: AccountTypeExpense},
}
