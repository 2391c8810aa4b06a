package retry

// Code is a canonical RPC status code.
type Code uint32

const (
	CodeOK Code = iota
	CodeCancelled
	CodeUnknown
	CodeInvalidArgument
	CodeDeadlineExceeded
	CodeNotFound
	CodeAlreadyExists
	CodePermissionDenied
	CodeResourceExhausted
	CodeFailedPrecondition
	CodeAborted
	CodeOutOfRange
	CodeUnimplemented
	CodeInternal
	CodeUnavailable
	CodeDataLoss
	CodeUnauthenticated
)

var codeNames = map[string]Code{
	"OK":                  CodeOK,
	"CANCELLED":           CodeCancelled,
	"UNKNOWN":             CodeUnknown,
	"INVALID_ARGUMENT":    CodeInvalidArgument,
	"DEADLINE_EXCEEDED":   CodeDeadlineExceeded,
	"NOT_FOUND":           CodeNotFound,
	"ALREADY_EXISTS":      CodeAlreadyExists,
	"PERMISSION_DENIED":   CodePermissionDenied,
	"RESOURCE_EXHAUSTED":  CodeResourceExhausted,
	"FAILED_PRECONDITION": CodeFailedPrecondition,
	"ABORTED":             CodeAborted,
	"OUT_OF_RANGE":        CodeOutOfRange,
	"UNIMPLEMENTED":       CodeUnimplemented,
	"INTERNAL":            CodeInternal,
	"UNAVAILABLE":         CodeUnavailable,
	"DATA_LOSS":           CodeDataLoss,
	"UNAUTHENTICATED":     CodeUnauthenticated,
}

// CodeFromString maps a canonical status-code name to its Code.
func CodeFromString(name string) (Code, bool) {
	c, ok := codeNames[name]
	return c, ok
}

// CodeSet is a small set of status codes backed by a bitmask.
type CodeSet uint32

// Add returns the set with c included.
func (s CodeSet) Add(c Code) CodeSet { return s | 1<<c }

// Contains reports whether c is in the set.
func (s CodeSet) Contains(c Code) bool { return s&(1<<c) != 0 }

// Empty reports whether the set has no codes.
func (s CodeSet) Empty() bool { return s == 0 }
