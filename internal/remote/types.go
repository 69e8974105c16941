package remote

// LastLineKey is the sentinel sample key meaning "the last line of the
// file." The service resolves it to the real line number in its reply.
const LastLineKey = "-1"

// SampleResult is the normalized reply to a Sample call.
//
// Samples is keyed either by an explicit "start-end" range string or by
// a single line number; each value is the ordered list of line contents
// for that key. BeforeContext says how many of those lines precede the
// key line itself.
type SampleResult struct {
	Samples           map[string][]string `json:"samples"`
	BeforeContext     int                 `json:"before_context"`
	AfterContext      int                 `json:"after_context"`
	IsCompressed      bool                `json:"is_compressed"`
	CompressionFormat string              `json:"compression_format"`

	// LineCount is populated from an opportunistic index lookup, when
	// one was requested and succeeded. Nil means unknown.
	LineCount *int `json:"-"`
}

// IndexResult describes a file known to the service's index.
type IndexResult struct {
	LineCount int   `json:"line_count"`
	SizeBytes int64 `json:"size_bytes"`
}
