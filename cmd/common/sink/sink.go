// Package sink persists wordlists: one word per line, optionally compressed
// and passphrase-encrypted, written atomically.
package sink

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"filippo.io/age"
	"github.com/mholt/archives"
)

// Stdout is the destination that selects the Options.Stdout writer.
const Stdout = "-"

const ageExtension = ".age"

type Options struct {
	// Compression is one of gz, zst, xz, lz4, bz2, br. Empty or "none"
	// writes plain text.
	Compression string
	// Passphrase enables age scrypt encryption when non-empty.
	Passphrase string
	// WorkFactor is the scrypt log2 work factor. Zero keeps the age default.
	WorkFactor int
	// Stdout receives the output when the destination is "-". Defaults to os.Stdout.
	Stdout io.Writer
}

// Compressions lists the supported compression names.
var Compressions = []string{"gz", "zst", "xz", "lz4", "bz2", "br"}

var ErrUnknownCompression = errors.New("unknown compression")

// Compression resolves a compression name to its format. A nil format
// means no compression.
func Compression(name string) (archives.Compression, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ".")) {
	case "", "none":
		return nil, nil
	case "gz", "gzip":
		return archives.Gz{}, nil
	case "zst", "zstd":
		return archives.Zstd{}, nil
	case "xz":
		return archives.Xz{}, nil
	case "lz4":
		return archives.Lz4{}, nil
	case "bz2", "bzip2":
		return archives.Bz2{}, nil
	case "br", "brotli":
		return archives.Brotli{}, nil
	default:
		return nil, fmt.Errorf("%w: %s (use one of %s)", ErrUnknownCompression, name, strings.Join(Compressions, ", "))
	}
}

func (o Options) compression() (archives.Compression, error) {
	return Compression(o.Compression)
}

// FinalPath returns the path Write produces for dest: the compression
// extension, then ".age" when encrypting, are appended if missing.
func FinalPath(dest string, opts Options) (string, error) {
	comp, err := opts.compression()
	if err != nil {
		return "", err
	}
	if dest == Stdout {
		return dest, nil
	}
	path := dest
	if comp != nil && !strings.HasSuffix(path, comp.Extension()) {
		path += comp.Extension()
	}
	if opts.Passphrase != "" && !strings.HasSuffix(path, ageExtension) {
		path += ageExtension
	}
	return path, nil
}

// Write stores words to dest and returns the final path. File output goes to
// a temp file next to the destination that is renamed into place.
func Write(words []string, dest string, opts Options) (string, error) {
	path, err := FinalPath(dest, opts)
	if err != nil {
		return "", err
	}
	comp, _ := opts.compression()

	if path == Stdout {
		out := opts.Stdout
		if out == nil {
			out = os.Stdout
		}
		if err := encode(out, words, comp, opts); err != nil {
			return "", err
		}
		return path, nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("cannot create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("cannot create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := encode(tmp, words, comp, opts); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("cannot close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("cannot set permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("cannot move wordlist into place: %w", err)
	}
	return path, nil
}

// encode writes the words through the optional encryption and compression
// layers. Layers are closed innermost first.
func encode(w io.Writer, words []string, comp archives.Compression, opts Options) error {
	var closers []io.Closer
	out := w

	if opts.Passphrase != "" {
		recipient, err := age.NewScryptRecipient(opts.Passphrase)
		if err != nil {
			return fmt.Errorf("failed to create recipient: %w", err)
		}
		if opts.WorkFactor > 0 {
			recipient.SetWorkFactor(opts.WorkFactor)
		}
		enc, err := age.Encrypt(out, recipient)
		if err != nil {
			return fmt.Errorf("failed to initialize encryption: %w", err)
		}
		closers = append(closers, enc)
		out = enc
	}

	if comp != nil {
		cw, err := comp.OpenWriter(out)
		if err != nil {
			return fmt.Errorf("failed to open %s writer: %w", comp.Extension(), err)
		}
		closers = append(closers, cw)
		out = cw
	}

	bw := bufio.NewWriter(out)
	for _, word := range words {
		if _, err := bw.WriteString(word); err != nil {
			return fmt.Errorf("failed to write wordlist: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write wordlist: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write wordlist: %w", err)
	}

	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			return fmt.Errorf("failed to finalize output: %w", err)
		}
	}
	return nil
}

// Read loads a wordlist written by Write. The layers are detected from the
// file extensions.
func Read(path, passphrase string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	name := path

	if trimmed, ok := strings.CutSuffix(name, ageExtension); ok {
		if passphrase == "" {
			return nil, errors.New("wordlist is encrypted, a passphrase is required")
		}
		identity, err := age.NewScryptIdentity(passphrase)
		if err != nil {
			return nil, fmt.Errorf("failed to create identity: %w", err)
		}
		dec, err := age.Decrypt(r, identity)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt: %w", err)
		}
		r = dec
		name = trimmed
	}

	comp, err := Compression(filepath.Ext(name))
	if err != nil && !errors.Is(err, ErrUnknownCompression) {
		return nil, err
	}
	if comp != nil {
		rc, err := comp.OpenReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s reader: %w", comp.Extension(), err)
		}
		defer rc.Close()
		r = rc
	}

	var words []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read wordlist: %w", err)
	}
	return words, nil
}
