package encryption

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/absfs/absfs"
	"github.com/absfs/osfs"

	"github.com/idelchi/sealwalk/internal/fileutil"
)

// DefaultSuffix is appended to sealed artifacts.
const DefaultSuffix = ".enc"

// Options configure a Processor. The zero value encrypts on the host filesystem with
// AES-256-GCM, the ".enc" suffix, one worker per CPU and secure erase of originals.
type Options struct {
	// FS is the filesystem to operate on. Nil means the host filesystem.
	FS absfs.FileSystem

	// Suite is the cipher construction. Empty means AES-256-GCM.
	Suite Suite

	// Suffix is appended to artifacts and stripped on decrypt. Empty means DefaultSuffix.
	Suffix string

	// DecryptSuffix is appended to decrypted files after stripping Suffix.
	DecryptSuffix string

	// Parallel bounds the number of files transformed at once. Values below 1 mean NumCPU.
	Parallel int

	// NoWipe removes originals without overwriting them first.
	NoWipe bool

	// PreserveTimestamps copies the source modification time to the target.
	PreserveTimestamps bool

	// Reporter receives per-file events. Nil discards them.
	Reporter Reporter

	// Random is the nonce source for suites that accept one. Nil means crypto/rand.
	Random io.Reader
}

// Processor handles the encryption and decryption of files.
type Processor struct {
	fs       absfs.FileSystem
	cipher   Cipher
	suffix   string
	decSfx   string
	parallel int
	noWipe   bool
	preserve bool
	reporter Reporter
}

// NewProcessor creates a Processor for key. The key is only used to build the cipher;
// the caller keeps ownership of its slice and the processor's own copy is zeroed.
func NewProcessor(key []byte, opts Options) (*Processor, error) {
	keyCopy := append([]byte(nil), key...)
	defer wipe(keyCopy)

	c, err := NewCipher(opts.Suite, keyCopy, opts.Random)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	p := &Processor{
		fs:       opts.FS,
		cipher:   c,
		suffix:   opts.Suffix,
		decSfx:   opts.DecryptSuffix,
		parallel: opts.Parallel,
		noWipe:   opts.NoWipe,
		preserve: opts.PreserveTimestamps,
		reporter: opts.Reporter,
	}

	if p.fs == nil {
		host, err := osfs.NewFS()
		if err != nil {
			return nil, fmt.Errorf("%w: opening host filesystem: %w", ErrIO, err)
		}

		p.fs = host
	}

	if p.suffix == "" {
		p.suffix = DefaultSuffix
	}

	if p.parallel < 1 {
		p.parallel = runtime.NumCPU()
	}

	if p.reporter == nil {
		p.reporter = nopReporter{}
	}

	return p, nil
}

// Suffix returns the artifact suffix.
func (p *Processor) Suffix() string { return p.suffix }

// Cipher returns the cipher in use.
func (p *Processor) Cipher() Cipher { return p.cipher }

// Transform applies direction to one file.
func (p *Processor) Transform(path string, direction Direction) Outcome {
	if direction == Decrypt {
		return p.DecryptFile(path)
	}

	return p.EncryptFile(path)
}

// EncryptFile seals path into path+suffix and then erases path.
// On any failure before the artifact is in place the original is left untouched.
// A failed erase is reported as a warning and the artifact is kept.
func (p *Processor) EncryptFile(path string) Outcome {
	outcome := Outcome{Source: path, Target: p.outputPath(path, Encrypt)}

	p.reporter.Debugw("sealing", "source", path, "target", outcome.Target)

	outcome.Size, outcome.Err = p.sealFile(path, outcome.Target)
	if outcome.Err != nil {
		p.reporter.Errorw("sealing failed", "source", path, "kind", KindOf(outcome.Err), "error", outcome.Err)

		return outcome
	}

	if err := p.removeOriginal(path); err != nil {
		outcome.Warnings = append(outcome.Warnings, err)

		p.reporter.Warnw("original not erased", "source", path, "error", err)
	}

	p.reporter.Infow("sealed", "source", path, "target", outcome.Target, "size", outcome.Size)

	return outcome
}

// DecryptFile opens path, writes the plaintext to path without its suffix and
// then removes path. Nothing is written unless the artifact authenticates.
func (p *Processor) DecryptFile(path string) Outcome {
	outcome := Outcome{Source: path, Target: p.outputPath(path, Decrypt)}

	p.reporter.Debugw("opening", "source", path, "target", outcome.Target)

	outcome.Size, outcome.Err = p.openFile(path, outcome.Target)
	if outcome.Err != nil {
		p.reporter.Errorw("opening failed", "source", path, "kind", KindOf(outcome.Err), "error", outcome.Err)

		return outcome
	}

	if err := p.fs.Remove(path); err != nil {
		err = fmt.Errorf("%w: removing artifact %q: %w", ErrIO, path, err)
		outcome.Warnings = append(outcome.Warnings, err)

		p.reporter.Warnw("artifact not removed", "source", path, "error", err)
	}

	p.reporter.Infow("opened", "source", path, "target", outcome.Target, "size", outcome.Size)

	return outcome
}

// sealFile covers Read → Sealed → Written.
func (p *Processor) sealFile(src, dst string) (int64, error) {
	info, plaintext, err := p.readFile(src)
	if err != nil {
		return 0, err
	}
	defer wipe(plaintext)

	artifact, err := p.cipher.Seal(plaintext)
	if err != nil {
		return 0, err
	}

	return p.writeTarget(dst, artifact, info)
}

// openFile covers Read → Opened → Written.
func (p *Processor) openFile(src, dst string) (int64, error) {
	if !strings.HasSuffix(src, p.suffix) || strings.TrimSuffix(filepath.Base(src), p.suffix) == "" {
		return 0, fmt.Errorf("%w: %q does not carry the %q suffix", ErrConfiguration, src, p.suffix)
	}

	info, artifact, err := p.readFile(src)
	if err != nil {
		return 0, err
	}

	plaintext, err := p.cipher.Open(artifact)
	if err != nil {
		return 0, fmt.Errorf("opening %q: %w", src, err)
	}
	defer wipe(plaintext)

	return p.writeTarget(dst, plaintext, info)
}

func (p *Processor) readFile(path string) (os.FileInfo, []byte, error) {
	f, err := p.fs.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: opening %q: %w", ErrIO, path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: stat %q: %w", ErrIO, path, err)
	}

	if !info.Mode().IsRegular() {
		return nil, nil, fmt.Errorf("%w: %q is not a regular file", ErrIO, path)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: reading %q: %w", ErrIO, path, err)
	}

	return info, data, nil
}

// writeTarget writes data to dst exclusively with the permission bits of the source,
// so a file keeps its mode through an encrypt and decrypt round trip.
func (p *Processor) writeTarget(dst string, data []byte, src os.FileInfo) (int64, error) {
	if err := fileutil.WriteExclusive(p.fs, dst, data, src.Mode().Perm()); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return 0, fmt.Errorf("%w: %w", ErrArtifactCollision, err)
		}

		return 0, fmt.Errorf("%w: writing %q: %w", ErrIO, dst, err)
	}

	size, err := fileutil.FinalizeOutput(p.fs, dst, p.preserve, src.ModTime())
	if err != nil {
		// The target is complete; a timestamp problem does not undo it.
		p.reporter.Warnw("finalizing output", "target", dst, "error", err)

		return int64(len(data)), nil
	}

	return size, nil
}

func (p *Processor) removeOriginal(path string) error {
	if p.noWipe {
		if err := p.fs.Remove(path); err != nil {
			return fmt.Errorf("%w: removing %q: %w", ErrIO, path, err)
		}

		return nil
	}

	if err := fileutil.Erase(p.fs, path); err != nil {
		return fmt.Errorf("%w: %w", ErrErase, err)
	}

	return nil
}

// outputPath returns the artifact path for Encrypt and the plaintext path for Decrypt.
func (p *Processor) outputPath(path string, direction Direction) string {
	if direction == Decrypt {
		return strings.TrimSuffix(path, p.suffix) + p.decSfx
	}

	return path + p.suffix
}

// OutputPath exposes the target naming used by the transforms.
func (p *Processor) OutputPath(path string, direction Direction) string {
	return p.outputPath(path, direction)
}
