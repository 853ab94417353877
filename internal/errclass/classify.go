//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: https://github.com/rbmk-project/rbmk/blob/v0.17.0/pkg/common/errclass/errclass.go
//

// Package errclass classifies network errors into short, platform-portable
// labels (e.g. "ECONNRESET", "ETIMEDOUT") suitable for structured logging.
//
// The per-platform constant tables ([unix.go], [windows.go]) map each label
// to the OS-specific errno the standard library surfaces for it; [New]
// contains the actual dispatch logic shared across platforms.
package errclass

import (
	"context"
	"errors"
	"net"
	"os"
	"syscall"
)

// New classifies err into a short label, or returns "" if err is nil or
// unrecognized.
func New(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "ETIMEDOUT"
	case errors.Is(err, context.Canceled):
		return "ECANCELED"
	case errors.Is(err, net.ErrClosed):
		return "ECONNCLOSED"
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if label, ok := errnoLabel(errno); ok {
			return label
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "ETIMEDOUT"
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsNotFound {
			return "EDNSNOTFOUND"
		}
		return "EDNSOTHER"
	}

	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return "EOTHER"
	}

	return ""
}

// errnoLabel maps a platform errno to its label using the per-platform
// constant tables in unix.go / windows.go.
func errnoLabel(errno syscall.Errno) (string, bool) {
	switch errno {
	case errEADDRNOTAVAIL:
		return "EADDRNOTAVAIL", true
	case errEADDRINUSE:
		return "EADDRINUSE", true
	case errECONNABORTED:
		return "ECONNABORTED", true
	case errECONNREFUSED:
		return "ECONNREFUSED", true
	case errECONNRESET:
		return "ECONNRESET", true
	case errEHOSTUNREACH:
		return "EHOSTUNREACH", true
	case errEINVAL:
		return "EINVAL", true
	case errEINTR:
		return "EINTR", true
	case errENETDOWN:
		return "ENETDOWN", true
	case errENETUNREACH:
		return "ENETUNREACH", true
	case errENOBUFS:
		return "ENOBUFS", true
	case errENOTCONN:
		return "ENOTCONN", true
	case errEPROTONOSUPPORT:
		return "EPROTONOSUPPORT", true
	case errETIMEDOUT:
		return "ETIMEDOUT", true
	default:
		return "", false
	}
}
