package msfw

import (
	"encoding/hex"
	"errors"
	"fmt"
)

var (
	ErrorValidation      = errors.New("Invalid patch request")
	ErrorUnsupported     = errors.New("Operation not supported by this chip")
	ErrorPatternNotFound = errors.New("Pattern not found in base image")
	ErrorOutOfBounds     = errors.New("Write outside of image")
	ErrorOverlap         = errors.New("Write overlaps another field")
	ErrorChecksum        = errors.New("Checksum mismatch")
	ErrorUnknownChip     = errors.New("Unknown chip profile")
)

// ValidationError describes one malformed field of a Request.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func (e *ValidationError) Unwrap() error {
	return ErrorValidation
}

func invalid(field string, format string, param ...interface{}) error {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, param...)}
}

// OutOfBoundsError means a profile points a field outside the image.
type OutOfBoundsError struct {
	Field  string
	Offset int
	Length int
	Size   int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("%s: write of %d bytes at %04x exceeds image size %04x", e.Field, e.Length, e.Offset, e.Size)
}

func (e *OutOfBoundsError) Unwrap() error {
	return ErrorOutOfBounds
}

type OverlapError struct {
	Field string
	Other string
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("%s overlaps %s", e.Field, e.Other)
}

func (e *OverlapError) Unwrap() error {
	return ErrorOverlap
}

type PatternNotFoundError struct {
	Field   string
	Pattern []byte
}

func (e *PatternNotFoundError) Error() string {
	return fmt.Sprintf("%s: anchor %s not found, wrong or corrupted base image", e.Field, hex.EncodeToString(e.Pattern))
}

func (e *PatternNotFoundError) Unwrap() error {
	return ErrorPatternNotFound
}

type ChecksumError struct {
	Which    string
	Computed uint16
	Stored   uint16
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("%s checksum mismatch: %x != %x", e.Which, e.Computed, e.Stored)
}

func (e *ChecksumError) Unwrap() error {
	return ErrorChecksum
}
