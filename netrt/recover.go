// SPDX-License-Identifier: GPL-3.0-or-later

package netrt

import "fmt"

// RecoverToError invokes fn and, if it panics, recovers the panic and
// returns it as an error instead of letting it unwind further.
//
// This is for an FFI layer outside torcore's scope to call at the
// boundary where a panic would otherwise cross into foreign code and
// leave undefined behavior behind it (spec.md §7: "Panics anywhere
// inside the core's public entry points ... are caught and converted
// into an abort of the entire process"). torcore's own code never
// calls RecoverToError internally; this package does not decide what
// the caller does with the returned error.
func RecoverToError(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("netrt: recovered panic: %v", r)
		}
	}()
	fn()
	return nil
}
