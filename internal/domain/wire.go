package domain

// Message is the request shape carried by the messaging channel
type Message struct {
	Action         Action `json:"action"`
	Text           string `json:"text"`
	TargetLanguage string `json:"targetLanguage,omitempty"`
}

// Response is the reply shape carried by the messaging channel.
// Exactly one of the three fields is set.
type Response struct {
	Translation string `json:"translation,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Empty reports whether no field is set
func (r Response) Empty() bool {
	return r.Translation == "" && r.Summary == "" && r.Error == ""
}

// ToRequest converts a wire message into a relay request
func (m Message) ToRequest() RelayRequest {
	return RelayRequest{
		Action:         m.Action,
		Text:           m.Text,
		TargetLanguage: m.TargetLanguage,
	}
}

// MessageFor converts a relay request into its wire form
func MessageFor(req RelayRequest) Message {
	return Message{
		Action:         req.Action,
		Text:           req.Text,
		TargetLanguage: req.TargetLanguage,
	}
}

// ResponseFor encodes a reply using the success field that matches action
func ResponseFor(action Action, reply RelayReply) Response {
	if !reply.Ok() {
		return Response{Error: reply.ErrorMessage}
	}
	if action == ActionSummarize {
		return Response{Summary: reply.Text}
	}
	return Response{Translation: reply.Text}
}

// Reply decodes a wire response back into a relay reply
func (r Response) Reply() RelayReply {
	switch {
	case r.Error != "":
		return ReplyError(r.Error)
	case r.Translation != "":
		return ReplyText(r.Translation)
	default:
		return ReplyText(r.Summary)
	}
}
