package domain

// Credentials is the Rovas API key pair. Both values are required for any
// call; a missing pair fails the pipeline before any request is made.
type Credentials struct {
	APIKey string
	Token  string
}

// Missing reports whether either half of the pair is absent.
func (c Credentials) Missing() bool {
	return c.APIKey == "" || c.Token == ""
}
