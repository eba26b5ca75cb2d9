package resolve

import "github.com/matzehuels/layoutcfg/pkg/bundle"

// Status classifies one version probe.
type Status int

const (
	// Missing means at least one of the three files could not be fetched.
	Missing Status = iota
	// Malformed means all three files were fetched but one did not decode.
	Malformed
	// Complete means all three files were fetched and decoded.
	Complete
)

func (s Status) String() string {
	switch s {
	case Missing:
		return "missing"
	case Malformed:
		return "malformed"
	case Complete:
		return "complete"
	}
	return "unknown"
}

// Candidate is the outcome of probing a single version.
type Candidate struct {
	Version int
	Names   [3]string
	Status  Status

	// Bundle is set only when Status is Complete.
	Bundle *bundle.Bundle

	// Err explains a Missing or Malformed status.
	Err error
}

// Result is a resolved bundle together with where it was found.
type Result struct {
	Bundle  bundle.Bundle
	Version int
	Names   [3]string
	Probes  int
}
