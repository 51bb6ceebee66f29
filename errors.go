package termcore

import "errors"

// Error kinds, grouped as in the taxonomy. Callers compare with
// errors.Is; concrete errors are usually these sentinels wrapped with
// additional context via fmt.Errorf("...: %w", ErrX).
var (
	// Environment
	ErrNotATTY             = errors.New("termcore: stdout is not a terminal")
	ErrUnsupportedTerminal = errors.New("termcore: unsupported terminal")

	// Mode
	ErrAlreadyInRawMode = errors.New("termcore: already in raw mode")
	ErrNotInRawMode     = errors.New("termcore: not in raw mode")
	ErrRawModeFailed    = errors.New("termcore: failed to enter or exit raw mode")

	// Size detection
	ErrGetSizeFailed          = errors.New("termcore: failed to get terminal size")
	ErrInvalidSize            = errors.New("termcore: invalid terminal size")
	ErrANSIQueryFailed        = errors.New("termcore: ANSI size query failed")
	ErrDeviceStatusReportFail = errors.New("termcore: device status report failed")

	// I/O
	ErrWriteFailed = errors.New("termcore: write failed")
	ErrPipeError   = errors.New("termcore: pipe error")
	ErrIO          = errors.New("termcore: I/O error")
	ErrTimeout     = errors.New("termcore: timed out")

	// Resize subsystem
	ErrResizeMonitoringFailed = errors.New("termcore: resize monitoring failed")
	ErrThreadCreationFailed   = errors.New("termcore: background worker creation failed")
	ErrSignalHandlingFailed   = errors.New("termcore: signal handling failed")
	ErrResizeInProgress       = errors.New("termcore: resize already in progress")

	// Manager
	ErrScreenNotFound         = errors.New("termcore: screen not found")
	ErrInvalidLayout          = errors.New("termcore: invalid layout")
	ErrDuplicateID            = errors.New("termcore: duplicate screen id")
	ErrTerminalNotSet         = errors.New("termcore: manager has no terminal set")
	ErrNoScreensManaged       = errors.New("termcore: no screens are managed")
	ErrLayoutCalculationFailed = errors.New("termcore: layout calculation failed")
	ErrFocusLocked            = errors.New("termcore: focus is locked")
	ErrNoFocusableScreens     = errors.New("termcore: no focusable screens")

	// Loop
	ErrInvalidInput      = errors.New("termcore: invalid input")
	ErrInvalidDimensions = errors.New("termcore: invalid dimensions")
	ErrAllocation        = errors.New("termcore: allocation error")
)
