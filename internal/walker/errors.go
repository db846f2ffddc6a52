package walker

import "errors"

// ErrScanAborted is returned by Wait once the walk's context is cancelled
// and the in-flight directory reads have been allowed to finish (spec.md
// §4.D: "subsequent next raises ScanAborted").
var ErrScanAborted = errors.New("walker: scan aborted")

// IsScanAborted reports whether err is (or wraps) ErrScanAborted.
func IsScanAborted(err error) bool {
	return errors.Is(err, ErrScanAborted)
}
