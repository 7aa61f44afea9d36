package sink

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"filippo.io/age"
	"github.com/mholt/archives"
)

var testWords = []string{"Sam", "Sam2024", "S4m", "été"}

func TestWrite_PlainText(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "wordlist.txt")

	path, err := Write(testWords, dest, Options{})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if path != dest {
		t.Errorf("path = %q, want %q", path, dest)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	expected := "Sam\nSam2024\nS4m\nété\n"
	if string(data) != expected {
		t.Errorf("content = %q, want %q", data, expected)
	}
}

func TestWrite_EmptyList(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "empty.txt")
	if _, err := Write(nil, dest, Options{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	info, err := os.Stat(dest)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 0 {
		t.Errorf("size = %d, want 0", info.Size())
	}
}

func TestWrite_Overwrites(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "wordlist.txt")
	if err := os.WriteFile(dest, []byte("old content that is long\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Write([]string{"new"}, dest, Options{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, _ := os.ReadFile(dest)
	if string(data) != "new\n" {
		t.Errorf("content = %q, want %q", data, "new\n")
	}
}

func TestWrite_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	if _, err := Write(testWords, filepath.Join(dir, "w.txt"), Options{Compression: "gz"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "w.txt.gz" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory contains %q, want only w.txt.gz", names)
	}
}

func TestWrite_CreatesParentDirs(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "a", "b", "w.txt")
	if _, err := Write(testWords, dest, Options{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Errorf("output missing: %v", err)
	}
}

func TestWrite_Gzip(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "wordlist.txt")

	path, err := Write(testWords, dest, Options{Compression: "gz"})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if path != dest+".gz" {
		t.Errorf("path = %q, want %q", path, dest+".gz")
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rc, err := archives.Gz{}.OpenReader(f)
	if err != nil {
		t.Fatalf("not a gzip stream: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != strings.Join(testWords, "\n")+"\n" {
		t.Errorf("decompressed content = %q", data)
	}
}

func TestWrite_GzipKeepsExistingExtension(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "wordlist.txt.gz")
	path, err := Write(testWords, dest, Options{Compression: "gz"})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if path != dest {
		t.Errorf("path = %q, want %q", path, dest)
	}
}

func TestWrite_AllCompressionsRoundTrip(t *testing.T) {
	for _, name := range Compressions {
		t.Run(name, func(t *testing.T) {
			dest := filepath.Join(t.TempDir(), "wordlist.txt")
			path, err := Write(testWords, dest, Options{Compression: name})
			if err != nil {
				t.Fatalf("Write failed: %v", err)
			}
			if !strings.HasSuffix(path, "."+name) {
				t.Errorf("path %q lacks extension .%s", path, name)
			}

			got, err := Read(path, "")
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			if !slices.Equal(got, testWords) {
				t.Errorf("round trip = %q, want %q", got, testWords)
			}
		})
	}
}

func TestWrite_UnknownCompression(t *testing.T) {
	dir := t.TempDir()
	_, err := Write(testWords, filepath.Join(dir, "w.txt"), Options{Compression: "rar"})
	if !errors.Is(err, ErrUnknownCompression) {
		t.Errorf("err = %v, want ErrUnknownCompression", err)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Error("nothing should be written on a bad compression name")
	}
}

func TestWrite_Encrypted(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "wordlist.txt")
	opts := Options{Compression: "gz", Passphrase: "hunter2", WorkFactor: 10}

	path, err := Write(testWords, dest, opts)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if path != dest+".gz.age" {
		t.Errorf("path = %q, want %q", path, dest+".gz.age")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(raw, []byte("age-encryption.org/")) {
		t.Error("output is not an age file")
	}

	identity, err := age.NewScryptIdentity("hunter2")
	if err != nil {
		t.Fatal(err)
	}
	dec, err := age.Decrypt(bytes.NewReader(raw), identity)
	if err != nil {
		t.Fatalf("age decrypt failed: %v", err)
	}
	rc, err := archives.Gz{}.OpenReader(dec)
	if err != nil {
		t.Fatalf("decrypted payload is not gzip: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != strings.Join(testWords, "\n")+"\n" {
		t.Errorf("content = %q", data)
	}

	got, err := Read(path, "hunter2")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !slices.Equal(got, testWords) {
		t.Errorf("Read = %q, want %q", got, testWords)
	}

	if _, err := Read(path, "wrong"); err == nil {
		t.Error("Read with a wrong passphrase should fail")
	}
	if _, err := Read(path, ""); err == nil {
		t.Error("Read without a passphrase should fail")
	}
}

func TestWrite_Stdout(t *testing.T) {
	var buf bytes.Buffer
	path, err := Write(testWords, Stdout, Options{Stdout: &buf})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if path != Stdout {
		t.Errorf("path = %q, want %q", path, Stdout)
	}
	if buf.String() != strings.Join(testWords, "\n")+"\n" {
		t.Errorf("stdout = %q", buf.String())
	}
}

func TestWrite_StdoutCompressed(t *testing.T) {
	var buf bytes.Buffer
	if _, err := Write(testWords, Stdout, Options{Stdout: &buf, Compression: "gz"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	rc, err := archives.Gz{}.OpenReader(&buf)
	if err != nil {
		t.Fatalf("stdout is not gzip: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != strings.Join(testWords, "\n")+"\n" {
		t.Errorf("content = %q", data)
	}
}

func TestFinalPath(t *testing.T) {
	tests := []struct {
		dest     string
		opts     Options
		expected string
	}{
		{"w.txt", Options{}, "w.txt"},
		{"w.txt", Options{Compression: "none"}, "w.txt"},
		{"w.txt", Options{Compression: "gz"}, "w.txt.gz"},
		{"w.txt", Options{Compression: "zstd"}, "w.txt.zst"},
		{"w.txt", Options{Compression: ".xz"}, "w.txt.xz"},
		{"w.txt", Options{Compression: "gzip"}, "w.txt.gz"},
		{"w.txt", Options{Passphrase: "x"}, "w.txt.age"},
		{"w.txt.age", Options{Passphrase: "x"}, "w.txt.age"},
		{"w.txt", Options{Compression: "br", Passphrase: "x"}, "w.txt.br.age"},
		{Stdout, Options{Compression: "gz", Passphrase: "x"}, Stdout},
	}

	for _, tt := range tests {
		got, err := FinalPath(tt.dest, tt.opts)
		if err != nil {
			t.Errorf("FinalPath(%q, %+v) returned error: %v", tt.dest, tt.opts, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("FinalPath(%q, %+v) = %q, want %q", tt.dest, tt.opts, got, tt.expected)
		}
	}
}
