package models

// SubscriptionStatus is a read-only snapshot reported by the upstream API.
type SubscriptionStatus struct {
	IsTrial               bool   `json:"is_trial"`
	TrialDaysRemaining    int    `json:"trial_days_remaining"`
	HasActiveSubscription bool   `json:"has_active_subscription"`
	SubscriptionType      string `json:"subscription_type,omitempty"`
}

// Package is a purchasable subscription package.
type Package struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Interval    string  `json:"interval"` // monthly or yearly
	Description string  `json:"description,omitempty"`
}

// CheckoutSession is returned by the payment provider via the upstream API.
type CheckoutSession struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

// PaymentStatus reports the state of a checkout session.
type PaymentStatus struct {
	SessionID     string `json:"session_id"`
	PaymentStatus string `json:"payment_status"` // pending, paid, failed
	Status        string `json:"status"`
}
