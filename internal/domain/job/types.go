package job

type Type string

const (
	TypeContactReceived Type = "contact.received"
)

// check to see if the job type is a known constant
func (t Type) IsValid() bool {
	switch t {
	case TypeContactReceived:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusSucceeded, StatusFailed:
		return true
	default:
		return false
	}
}
