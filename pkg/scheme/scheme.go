package scheme

// Status classifies the outcome of probing one partition scheme on a device.
type Status int

const (
	// StatusAbsent means the scheme's defining signature did not match.
	// A device legitimately may lack a scheme, so this is not an error.
	StatusAbsent Status = iota

	// StatusPresent means the scheme validated and was fully decoded.
	StatusPresent

	// StatusCorrupt means the signature matched but a later structural
	// check failed. The reason is carried in Result.Err.
	StatusCorrupt
)

func (s Status) String() string {
	switch s {
	case StatusAbsent:
		return "absent"
	case StatusPresent:
		return "present"
	case StatusCorrupt:
		return "corrupt"
	default:
		return "unknown"
	}
}

// Result is the tagged outcome of one scheme's decode pass. Header and
// Partitions are only meaningful when Status is StatusPresent; Err is only
// set when Status is StatusCorrupt. The three schemes on a device produce
// independent Results since schemes are not mutually exclusive on disk.
type Result[H any, P any] struct {
	Status     Status
	Header     H
	Partitions []P
	Err        error
}

// Present builds a successful result.
func Present[H any, P any](header H, partitions []P) Result[H, P] {
	return Result[H, P]{Status: StatusPresent, Header: header, Partitions: partitions}
}

// Absent builds a scheme-not-found result.
func Absent[H any, P any]() Result[H, P] {
	return Result[H, P]{Status: StatusAbsent}
}

// Corrupt builds a structurally-invalid result carrying the reason.
func Corrupt[H any, P any](err error) Result[H, P] {
	return Result[H, P]{Status: StatusCorrupt, Err: err}
}

func (r Result[H, P]) IsPresent() bool { return r.Status == StatusPresent }

func (r Result[H, P]) IsAbsent() bool { return r.Status == StatusAbsent }

func (r Result[H, P]) IsCorrupt() bool { return r.Status == StatusCorrupt }
