package ir

// CodeSegment distinguishes the two code parts of a contract. A contract
// compiles into a deploy segment, executed once to initialize the account,
// and a runtime segment that serves all subsequent calls. Several lowering
// rules branch on the active segment.
type CodeSegment int

const (
	// SegmentDeploy is the constructor part of the contract.
	SegmentDeploy CodeSegment = iota
	// SegmentRuntime is the part stored on chain and executed on calls.
	SegmentRuntime
)

func (s CodeSegment) String() string {
	if s == SegmentDeploy {
		return "deploy"
	}
	return "runtime"
}

// Short returns the two-letter prefix used in block key rendering and in
// debug dump file names.
func (s CodeSegment) Short() string {
	if s == SegmentDeploy {
		return "dt"
	}
	return "rt"
}
