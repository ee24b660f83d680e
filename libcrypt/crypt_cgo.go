//go:build cgo && linux

package libcrypt

/*
#cgo LDFLAGS: -lcrypt
#define _GNU_SOURCE
#include <crypt.h>
#include <stdlib.h>
#include <string.h>
*/
import "C"

import (
	"errors"
	"strings"
	"syscall"
	"unsafe"
)

// Available reports whether [Crypt] is backed by the system library.
const Available = true

// Crypt hashes key with the method, parameters and salt encoded in setting.
//
// Each call gets its own crypt_data buffer, so Crypt is safe for concurrent
// use. The C copy of key is zeroed before it is released.
func Crypt(key, setting string) (string, error) {
	if strings.IndexByte(key, 0) >= 0 || strings.IndexByte(setting, 0) >= 0 {
		return "", ErrInvalidKey
	}

	ckey := C.CString(key)
	defer func() {
		C.memset(unsafe.Pointer(ckey), 0, C.size_t(len(key)))
		C.free(unsafe.Pointer(ckey))
	}()
	csetting := C.CString(setting)
	defer C.free(unsafe.Pointer(csetting))

	data := (*C.struct_crypt_data)(C.calloc(1, C.size_t(C.sizeof_struct_crypt_data)))
	if data == nil {
		return "", &Error{Errno: syscall.ENOMEM}
	}
	defer func() {
		C.memset(unsafe.Pointer(data), 0, C.size_t(C.sizeof_struct_crypt_data))
		C.free(unsafe.Pointer(data))
	}()

	out, err := C.crypt_r(ckey, csetting, data)
	// libxcrypt reports failure with a "*0"/"*1" token instead of NULL
	// unless it was built with --disable-failure-tokens.
	if out == nil || *out == '*' {
		return "", &Error{Errno: errnoOf(err)}
	}
	return C.GoString(out), nil
}

func errnoOf(err error) syscall.Errno {
	var errno syscall.Errno
	if errors.As(err, &errno) && errno != 0 {
		return errno
	}
	return syscall.EINVAL
}
