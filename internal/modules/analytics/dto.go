package analytics

type MonthlyIncome struct {
	Month        string  `json:"month"`
	Total        float64 `json:"total"`
	DisplayMonth string  `json:"display_month"`
}

type LandlordAnalytics struct {
	IncomeReceived       float64         `json:"income_received"`
	PendingDues          float64         `json:"pending_dues"`
	AwaitingConfirmation float64         `json:"awaiting_confirmation"`
	TotalProperties      int64           `json:"total_properties"`
	OccupiedProperties   int64           `json:"occupied_properties"`
	OccupancyRate        float64         `json:"occupancy_rate"`
	MonthlyIncome        []MonthlyIncome `json:"monthly_income"`
}
