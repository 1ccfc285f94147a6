package config

import (
	"os"
	"strconv"
)

const (
	midtransServerKeyEnv = "MIDTRANS_SERVER_KEY"
	midtransEnvEnv       = "MIDTRANS_ENV"
	monthlyPriceEnv      = "PREMIUM_MONTHLY_PRICE"
	yearlyPriceEnv       = "PREMIUM_YEARLY_PRICE"

	// Prices in Indonesian rupiah, the gateway's native unit.
	defaultMonthlyPrice = 15000
	defaultYearlyPrice  = 120000
)

type PaymentConfig struct {
	MidtransServerKey string
	Production        bool
	MonthlyPrice      int64
	YearlyPrice       int64
}

func LoadPaymentConfig() *PaymentConfig {
	monthly := int64(defaultMonthlyPrice)
	if v := os.Getenv(monthlyPriceEnv); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			monthly = parsed
		}
	}

	yearly := int64(defaultYearlyPrice)
	if v := os.Getenv(yearlyPriceEnv); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			yearly = parsed
		}
	}

	return &PaymentConfig{
		MidtransServerKey: os.Getenv(midtransServerKeyEnv),
		Production:        os.Getenv(midtransEnvEnv) == "production",
		MonthlyPrice:      monthly,
		YearlyPrice:       yearly,
	}
}

// Enabled reports whether checkout can be offered at all. Without a server
// key the billing endpoints refuse service instead of failing mid-flow.
func (c *PaymentConfig) Enabled() bool {
	return c != nil && c.MidtransServerKey != ""
}
