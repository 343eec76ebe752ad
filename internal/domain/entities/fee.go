package entities

import "math"

const (
	// PlatformFee is the flat per-booking platform charge in rupees
	PlatformFee = 100
	// GSTRate applies to the service fee plus the platform fee
	GSTRate = 0.18
	// PaisePerRupee converts rupees to the stored minor unit
	PaisePerRupee = 100
)

// FeeQuote is the price breakdown shown before a booking is placed.
// Rupee amounts except TotalAmount, which is in paise.
type FeeQuote struct {
	ServiceFee  int   `json:"serviceFee"`
	PlatformFee int   `json:"platformFee"`
	GST         int   `json:"gst"`
	Total       int   `json:"total"`
	TotalAmount int64 `json:"totalAmount"`
}

// QuoteBooking computes serviceFee + 100 + round((serviceFee+100) * 0.18).
func QuoteBooking(serviceFee int) FeeQuote {
	taxable := serviceFee + PlatformFee
	gst := int(math.Round(float64(taxable) * GSTRate))
	total := taxable + gst
	return FeeQuote{
		ServiceFee:  serviceFee,
		PlatformFee: PlatformFee,
		GST:         gst,
		Total:       total,
		TotalAmount: int64(total) * PaisePerRupee,
	}
}
