package entity

// CheckoutSession is the response body for a newly created checkout session.
type CheckoutSession struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}
