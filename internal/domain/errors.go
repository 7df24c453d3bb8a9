package domain

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrIncompatibleFileType rejects remote URLs whose path extension is not
	// on the fetcher allow-list.
	ErrIncompatibleFileType = errors.New("incompatible file type")

	// ErrStorage marks a failure to persist a downloaded file locally.
	ErrStorage = errors.New("storage error")

	// ErrUnarchive marks a failed archive extraction; the archive is left in
	// place for diagnosis.
	ErrUnarchive = errors.New("unarchive error")

	// ErrRecordParse marks a feed line that did not decode into the expected
	// field count. Per-row, never fatal to the batch.
	ErrRecordParse = errors.New("record parse error")

	// ErrImportRunning rejects a run while another import holds the job lock.
	ErrImportRunning = errors.New("an inventory import is already running")
)
