package enum

// OpenState is the live opening state of a pub.
//
//go:generate go tool enumer -type=OpenState -trimprefix=OpenState -transform=snake
type OpenState int

const (
	OpenStateOpen OpenState = iota
	OpenStateClosingSoon
	OpenStateClosed
	OpenStateUnknown
)

// IsOpen reports whether the pub is currently serving.
func (i OpenState) IsOpen() bool {
	return i == OpenStateOpen || i == OpenStateClosingSoon
}
