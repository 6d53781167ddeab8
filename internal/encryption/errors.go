package encryption

import (
	"errors"
	"io/fs"
)

var (
	// ErrDirectoryNotFound is returned when the walk root does not exist.
	ErrDirectoryNotFound = errors.New("directory not found")
	// ErrConfiguration is returned for invalid engine settings, such as an empty selection policy.
	ErrConfiguration = errors.New("configuration error")
	// ErrMalformedInput is returned when an artifact is shorter than nonce plus tag.
	ErrMalformedInput = errors.New("malformed input")
	// ErrAuthentication is returned when the authentication tag does not verify.
	ErrAuthentication = errors.New("authentication failed")
	// ErrArtifactCollision is returned when the output path already exists.
	ErrArtifactCollision = errors.New("artifact collision")
	// ErrIO is returned for read, write or listing failures.
	ErrIO = errors.New("i/o failure")
	// ErrErase is returned when the secure erase of a file fails.
	ErrErase = errors.New("erase failure")
	// ErrRandomSource is returned when the random source cannot produce a nonce or key.
	// It is fatal for the whole run.
	ErrRandomSource = errors.New("random source failure")
)

// Kind classifies an error into one of the engine's error kinds.
type Kind string

// Error kinds reported in a Summary.
const (
	KindDirectoryNotFound Kind = "DirectoryNotFound"
	KindConfiguration     Kind = "ConfigurationError"
	KindMalformedInput    Kind = "MalformedInput"
	KindAuthentication    Kind = "AuthenticationFailure"
	KindArtifactCollision Kind = "ArtifactCollision"
	KindIO                Kind = "IOFailure"
	KindErase             Kind = "EraseFailure"
	KindRandomSource      Kind = "RandomSourceFailure"
)

//nolint:gochecknoglobals
var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrRandomSource, KindRandomSource},
	{ErrDirectoryNotFound, KindDirectoryNotFound},
	{ErrConfiguration, KindConfiguration},
	{ErrMalformedInput, KindMalformedInput},
	{ErrAuthentication, KindAuthentication},
	{ErrArtifactCollision, KindArtifactCollision},
	{ErrErase, KindErase},
	{ErrIO, KindIO},
}

// KindOf returns the kind of err. Unclassified errors, including raw OS errors, are IOFailure.
// A nil error has an empty kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}

	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}

	if errors.Is(err, fs.ErrExist) {
		return KindArtifactCollision
	}

	return KindIO
}

// IsFatal reports whether err must abort the whole run.
func IsFatal(err error) bool {
	return errors.Is(err, ErrRandomSource)
}
