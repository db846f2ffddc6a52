// Package retry classifies filesystem errors, retries the transient ones
// with exponential backoff and jitter, and aggregates a process-global
// summary of what happened (spec.md §4.J, §5).
package retry

import (
	"errors"
	"io/fs"
	"syscall"
)

// Classification categorizes a filesystem error for retry purposes.
type Classification string

const (
	Retryable Classification = "retryable"
	Permanent Classification = "permanent"
	GaveUp    Classification = "gave-up"
)

// retryableErrno and permanentErrno enumerate the syscall error codes
// spec.md §4.J assigns to each bucket. Anything else is treated as
// retryable up to the attempt cap ("Unknown: treated as retryable").
var retryableErrno = map[syscall.Errno]bool{
	syscall.EBUSY:  true,
	syscall.EAGAIN: true,
	syscall.EMFILE: true,
	syscall.ENFILE: true,
	syscall.EINTR:  true,
}

var permanentErrno = map[syscall.Errno]bool{
	syscall.ENOENT:  true,
	syscall.EACCES:  true,
	syscall.EPERM:   true,
	syscall.ENOTDIR: true,
	syscall.EISDIR:  true,
}

// Classify inspects err and returns its classification. A nil error
// classifies as Permanent (trivially, since there's nothing to retry); this
// case should never actually be queried by callers.
func Classify(err error) Classification {
	if err == nil {
		return Permanent
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if permanentErrno[errno] {
			return Permanent
		}
		if retryableErrno[errno] {
			return Retryable
		}
		return Retryable // unknown errno: retryable up to the cap
	}

	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return Permanent
	}

	return Retryable
}
