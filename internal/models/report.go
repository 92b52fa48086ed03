package models

// ReportSubmitted is the trigger event emitted by the report-creation flow once
// an incident report has been durably persisted. It carries everything the
// fan-out needs; nothing is read from ambient request state.
type ReportSubmitted struct {
	ReportID    int64   `json:"report_id"   validate:"required"`
	ReporterID  int64   `json:"reporter_id" validate:"required"`
	Latitude    float64 `json:"lat"         validate:"gte=-90,lte=90"`
	Longitude   float64 `json:"lon"         validate:"gte=-180,lte=180"`
	Title       string  `json:"title"       validate:"required"`
	Description string  `json:"description"`
	CrimeType   string  `json:"crime_type"`
}

// Location returns the report's incident point.
func (r ReportSubmitted) Location() Coordinates {
	return Coordinates{Latitude: r.Latitude, Longitude: r.Longitude}
}
