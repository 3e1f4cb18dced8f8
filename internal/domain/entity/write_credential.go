package entity

// WriteCredential is a single-use grant to write one object to storage.
// It is minted per upload attempt and never reused.
type WriteCredential struct {
	URL        string
	ObjectKey  string
	BucketName string
}
