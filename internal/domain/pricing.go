package domain

// PriceBreakdown itemizes a fare estimate. All amounts are in GBP.
//
// Invariant: Total equals the sum of all other fields within 2-decimal
// rounding, and Total is never below BaseFare.
type PriceBreakdown struct {
	BaseFare      float64 `json:"baseFare"`
	DistanceCost  float64 `json:"distanceCost"`
	TimeCost      float64 `json:"timeCost"`
	SchedulingFee float64 `json:"schedulingFee"`
	SurgeFee      float64 `json:"surgeFee"`
	PlatformFee   float64 `json:"platformFee"`
	VAT           float64 `json:"vat"`
	Total         float64 `json:"total"`
}
