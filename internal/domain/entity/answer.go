package entity

// Answer is the assistant reply to a question over the selected documents.
type Answer struct {
	Text string
}
