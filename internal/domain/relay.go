package domain

// Action is the kind of work requested from the relay
type Action string

const (
	ActionTranslate Action = "translate"
	ActionSummarize Action = "summarize"
)

// Valid reports whether the action is one the relay understands
func (a Action) Valid() bool {
	return a == ActionTranslate || a == ActionSummarize
}

// Verb returns the progressive form used in loading labels
func (a Action) Verb() string {
	if a == ActionSummarize {
		return "Summarizing"
	}
	return "Translating"
}

// RelayRequest is one unit of work sent from the overlay to the relay
type RelayRequest struct {
	Action         Action
	Text           string
	TargetLanguage string
}

// RelayReply carries exactly one of Text or ErrorMessage
type RelayReply struct {
	Text         string
	ErrorMessage string
}

// Ok reports whether the reply is a success
func (r RelayReply) Ok() bool {
	return r.ErrorMessage == ""
}

// ReplyText builds a success reply
func ReplyText(text string) RelayReply {
	return RelayReply{Text: text}
}

// ReplyError builds a failure reply
func ReplyError(msg string) RelayReply {
	return RelayReply{ErrorMessage: msg}
}

// ModelCandidate is one entry of the provider's model catalog
type ModelCandidate struct {
	Name               string
	SupportsGeneration bool
}
