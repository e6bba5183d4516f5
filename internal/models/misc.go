package models

// AdUnit is an advertisement placement. Only active units are exposed
// publicly.
type AdUnit struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	Placement string `json:"placement"`
	IsActive  bool   `json:"isActive"`
}

// Setting is one entry of the flat key-value settings store. Value holds any
// JSON-serializable value.
type Setting struct {
	ID    int    `json:"id"`
	Key   string `json:"key"`
	Value any    `json:"value"`
	Group string `json:"group"`
}
