// Package domain defines the core business types for crosslist.
package domain

import (
	"time"
)

// User represents a seller account.
type User struct {
	ID           string    `json:"id"         db:"id"`
	Email        string    `json:"email"      db:"email"`
	Name         string    `json:"name"       db:"name"`
	PasswordHash string    `json:"-"          db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Setting holds a user's marketplace API credentials. Exactly one row
// exists per user; it is created lazily on first read or write.
type Setting struct {
	UserID            string    `json:"id"                  db:"user_id"`
	YahooClientID     string    `json:"yahoo_client_id"     db:"yahoo_client_id"`
	YahooClientSecret string    `json:"yahoo_client_secret" db:"yahoo_client_secret"`
	EbayClientID      string    `json:"ebay_client_id"      db:"ebay_client_id"`
	EbayDevID         string    `json:"ebay_dev_id"         db:"ebay_dev_id"`
	EbayClientSecret  string    `json:"ebay_client_secret"  db:"ebay_client_secret"`
	EbayAuthToken     string    `json:"-"                   db:"ebay_auth_token"`
	CreatedAt         time.Time `json:"created_at"          db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"          db:"updated_at"`
}

// SettingPatch carries a partial settings update. Nil fields are left
// untouched; the recognized fields are exactly the credential columns a
// seller may rotate.
type SettingPatch struct {
	YahooClientID     *string `json:"yahoo_client_id,omitempty"`
	YahooClientSecret *string `json:"yahoo_client_secret,omitempty"`
	EbayClientID      *string `json:"ebay_client_id,omitempty"`
	EbayDevID         *string `json:"ebay_dev_id,omitempty"`
	EbayClientSecret  *string `json:"ebay_client_secret,omitempty"`
	EbayAuthToken     *string `json:"ebay_auth_token,omitempty"`
}

// Apply merges the patch into s, field by field.
func (p *SettingPatch) Apply(s *Setting) {
	if p.YahooClientID != nil {
		s.YahooClientID = *p.YahooClientID
	}
	if p.YahooClientSecret != nil {
		s.YahooClientSecret = *p.YahooClientSecret
	}
	if p.EbayClientID != nil {
		s.EbayClientID = *p.EbayClientID
	}
	if p.EbayDevID != nil {
		s.EbayDevID = *p.EbayDevID
	}
	if p.EbayClientSecret != nil {
		s.EbayClientSecret = *p.EbayClientSecret
	}
	if p.EbayAuthToken != nil {
		s.EbayAuthToken = *p.EbayAuthToken
	}
}

// ShippingService represents a carrier service (EMS, ePacket, ...).
type ShippingService struct {
	ID   int    `json:"id"   db:"id"`
	Name string `json:"name" db:"name"`
}

// Country maps an ISO country code to a tariff zone for a carrier service.
type Country struct {
	ID        int    `json:"id"              db:"id"`
	Code      string `json:"country_code"    db:"country_code"`
	Name      string `json:"country_name"    db:"country_name"`
	NameJP    string `json:"country_name_jp" db:"country_name_jp"`
	Zone      string `json:"zone"            db:"zone"`
	ServiceID int    `json:"service_id"      db:"service_id"`
}

// ShippingRate is the base price for a (zone, weight bracket) pair.
// WeightGrams is the upper bound of the bracket.
type ShippingRate struct {
	ID          int     `json:"id"          db:"id"`
	Zone        string  `json:"zone"        db:"zone"`
	WeightGrams int     `json:"weight"      db:"weight"`
	BasicPrice  float64 `json:"basic_price" db:"basic_price"`
	ServiceID   int     `json:"service_id"  db:"service_id"`
}

// SurchargeType classifies a shipping surcharge.
type SurchargeType string

// Surcharge type constants.
const (
	SurchargeFuel     SurchargeType = "FUEL"
	SurchargeOversize SurchargeType = "OVERSIZE"
	SurchargeSaturday SurchargeType = "SATURDAY"
)

// ShippingSurcharge is a percentage and/or fixed add-on with a validity
// window. A nil EndDate means the surcharge is currently open-ended.
type ShippingSurcharge struct {
	ID          int           `json:"id"                     db:"id"`
	ServiceID   int           `json:"service_id"             db:"service_id"`
	Type        SurchargeType `json:"surcharge_type"         db:"surcharge_type"`
	Rate        float64       `json:"rate"                   db:"rate"`
	FixedAmount *float64      `json:"fixed_amount,omitempty" db:"fixed_amount"`
	StartDate   time.Time     `json:"start_date"             db:"start_date"`
	EndDate     *time.Time    `json:"end_date,omitempty"     db:"end_date"`
}

// Active reports whether the surcharge applies on the given date.
func (s *ShippingSurcharge) Active(at time.Time) bool {
	if at.Before(s.StartDate) {
		return false
	}
	return s.EndDate == nil || !at.After(*s.EndDate)
}

// ShippingQuote is the result of a shipping cost calculation.
type ShippingQuote struct {
	ServiceID   int                `json:"service_id"`
	CountryCode string             `json:"country_code"`
	Zone        string             `json:"zone"`
	WeightGrams int                `json:"weight_grams"`
	BasePrice   float64            `json:"base_price"`
	Surcharges  []AppliedSurcharge `json:"surcharges"`
	Total       float64            `json:"total"`
	Currency    string             `json:"currency"`
}

// AppliedSurcharge records one surcharge applied to a quote.
type AppliedSurcharge struct {
	Type   SurchargeType `json:"type"`
	Amount float64       `json:"amount"`
}
