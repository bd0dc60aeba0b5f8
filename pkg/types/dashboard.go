package types

// ReportRow - строка отчета по статусам или категориям.
type ReportRow struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Color string `json:"color"`
	Count int64  `json:"count"`
}

type Report struct {
	Kind  string      `json:"kind"`
	Total int64       `json:"total"`
	Rows  []ReportRow `json:"rows"`
}
