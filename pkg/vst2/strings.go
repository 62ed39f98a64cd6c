package vst2

import "unsafe"

// CopyString writes s into the host buffer at ptr as a fixed-width field:
// at most max bytes, no terminator. It returns the number of bytes written.
// A nil ptr or non-positive max writes nothing.
func CopyString(ptr unsafe.Pointer, s string, max int) int {
	if ptr == nil || max <= 0 {
		return 0
	}
	n := len(s)
	if n > max {
		n = max
	}
	if n == 0 {
		return 0
	}
	dst := unsafe.Slice((*byte)(ptr), n)
	return copy(dst, s)
}

// CopyDisplay writes s into the host buffer at ptr followed by a zero byte.
// The string is cut to max-1 bytes so the terminator always fits within
// max. It returns the number of bytes written including the terminator.
func CopyDisplay(ptr unsafe.Pointer, s string, max int) int {
	if ptr == nil || max <= 0 {
		return 0
	}
	n := len(s)
	if n > max-1 {
		n = max - 1
	}
	dst := unsafe.Slice((*byte)(ptr), n+1)
	copy(dst, s[:n])
	dst[n] = 0
	return n + 1
}

// ReadString reads a zero-terminated string from ptr, looking at no more
// than max bytes.
func ReadString(ptr unsafe.Pointer, max int) string {
	if ptr == nil {
		return ""
	}
	var buf []byte
	for i := 0; i < max; i++ {
		b := *(*byte)(unsafe.Add(ptr, i))
		if b == 0 {
			break
		}
		buf = append(buf, b)
	}
	return string(buf)
}

// CString returns a zero-terminated copy of s suitable for passing as a
// pointer argument, e.g. to CanDo.
func CString(s string) unsafe.Pointer {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return unsafe.Pointer(&b[0])
}

// GoString converts a fixed-width field filled by CopyString or CopyDisplay
// back into a string, stopping at the first zero byte.
func GoString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
