package model

import "encoding/json"

// ScreeningRequest is the body of POST /screening/{instrument}.
// Answers stays raw so a non-list or non-integer payload can be reported
// with the instrument's own message.
type ScreeningRequest struct {
	Answers json.RawMessage `json:"answers"`
}

// IntAnswers decodes Answers as a list of integers
func (r ScreeningRequest) IntAnswers() ([]int, bool) {
	if len(r.Answers) == 0 {
		return nil, false
	}
	var answers []int
	if err := json.Unmarshal(r.Answers, &answers); err != nil {
		return nil, false
	}
	return answers, true
}
