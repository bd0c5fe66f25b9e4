package models

// Scenario is a canned block markup used by a host test harness
type Scenario struct {
	Title string `json:"title"`
	XML   string `json:"xml"`
}
