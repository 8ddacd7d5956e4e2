package main

import (
	"errors"
	"fmt"
	"io"
)

const (
	defaultReadBufSize = 32 * 1024
	defaultMaxInput    = 1 << 30
)

// readBuffer collects a whole input, doubling its buffer up to max bytes.
// It keeps one spare byte beyond max to tell a full input from an oversized one.
type readBuffer struct {
	buf []byte
	end int
	max int
}

func (rb *readBuffer) init() {
	if rb.max <= 0 {
		rb.max = defaultMaxInput
	}
	if len(rb.buf) == 0 {
		rb.buf = make([]byte, min(defaultReadBufSize, rb.max+1))
	}
}

func (rb *readBuffer) ensureWriteSpace() {
	if rb.end < len(rb.buf) {
		return
	}

	nb := make([]byte, min(len(rb.buf)*2, rb.max+1))
	copy(nb, rb.buf[:rb.end])
	rb.buf = nb
}

func (rb *readBuffer) readMore(r io.Reader) (int, error) {
	rb.ensureWriteSpace()
	n, err := r.Read(rb.buf[rb.end:])
	if n > 0 {
		rb.end += n
	}
	if rb.end > rb.max {
		return n, fmt.Errorf("input exceeds %d bytes", rb.max)
	}
	return n, err
}

// readAll reads r until EOF.
func (rb *readBuffer) readAll(r io.Reader) ([]byte, error) {
	rb.init()

	for {
		if _, err := rb.readMore(r); err != nil {
			if errors.Is(err, io.EOF) {
				return rb.buf[:rb.end], nil
			}
			return nil, err
		}
	}
}
