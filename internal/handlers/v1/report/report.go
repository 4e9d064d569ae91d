package report

// Total is one bucket of an aggregate report.
type Total struct {
	Bucket        int    `json:"bucket" doc:"Month 1-12 for monthly reports, week index from 1 for weekly reports"`
	Amount        string `json:"amount" doc:"Summed decimal amount, never negated"`
	OperationType string `json:"operationType" enum:"income,expense" doc:"Operation type of the summed transactions"`
}

// ReportResponseBody is the response body of both report endpoints.
type ReportResponseBody struct {
	Totals []Total `json:"totals" doc:"Non-empty buckets ordered by bucket, then operation type"`
}

type ReportOutput struct {
	Body ReportResponseBody
}
