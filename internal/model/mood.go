package model

type MoodRequest struct {
	Text string `json:"text"`
}

// MoodResult is the classifier's top label and its confidence (0-1)
type MoodResult struct {
	Mood  string  `json:"mood"`
	Score float64 `json:"score"`
}
