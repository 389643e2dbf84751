package entities

// Classification is the structured taxonomy a Phase-2 model call extracts
// from a transcript. The model must return exactly this object as JSON;
// anything else is a parse failure and aborts the enrichment run.
type Classification struct {
	Subsidiary     string   `json:"subsidiary"`
	Department     string   `json:"department"`
	MeetingType    string   `json:"meeting_type"`
	MeetingSubtype string   `json:"meeting_subtype"`
	KeyDecisions   []string `json:"key_decisions"`
	Tags           []string `json:"tags"`
}
