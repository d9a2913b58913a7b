package domain

// ProviderARecord is one row of the provider A JSON feed.
type ProviderARecord struct {
	IPAddress    string `json:"ip_address"`
	ThreatLevel  int    `json:"threat_level"`
	DateDetected string `json:"date_detected"`
	Country      string `json:"country"`
	Source       string `json:"source"`
}

// ProviderBRecord is one row of the provider B CSV feed.
type ProviderBRecord struct {
	IPAddress     string `json:"ip_address"`
	Severity      int    `json:"severity"`
	DetectionTime string `json:"detection_time"`
	Country       string `json:"country"`
	Source        string `json:"source"`
}

// ThreatRecord is a threat observation in the unified schema, tagged with
// the task that produced it. It is the only shape persisted and returned.
type ThreatRecord struct {
	TaskName      string `json:"task_name"`
	Country       string `json:"country"`
	DiscoveryDate string `json:"discovery_date"`
	Source        string `json:"source"`
	RiskLevel     int    `json:"risk_level"`
}
