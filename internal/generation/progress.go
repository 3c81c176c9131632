package generation

// Progress steps emitted during a run, in order.
const (
	StepSource     = "source"
	StepKeywords   = "keywords"
	StepIndustry   = "industry"
	StepNames      = "names"
	StepTaglines   = "taglines"
	StepCategories = "categories"
)

// ProgressEvent represents a progress update during a generation run.
type ProgressEvent struct {
	Step      string `json:"step"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
	Content   any    `json:"content,omitempty"`
}

// ProgressCallback is called when a run makes progress.
type ProgressCallback func(event ProgressEvent)

func (cb ProgressCallback) emit(requestID, step, message string, content any) {
	if cb == nil {
		return
	}
	cb(ProgressEvent{Step: step, Message: message, RequestID: requestID, Content: content})
}
