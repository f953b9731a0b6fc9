package main

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gogs/chardet"
	"golang.org/x/crypto/blake2b"
)

// headerSize is how many bytes are read for MIME and charset sniffing.
const headerSize = 4096

// DigestSet selects which checksums inspectFile computes.
type DigestSet struct {
	SHA256  bool
	MD5     bool
	BLAKE2b bool
}

func (d DigestSet) any() bool {
	return d.SHA256 || d.MD5 || d.BLAKE2b
}

// inspectFile reads path in a single pass: the first headerSize bytes feed
// the MIME and charset sniffers, then the same bytes plus the remainder of
// the file are streamed through the requested digests. When no digest is
// requested only the header is read.
func inspectFile(path string, digests DigestSet, overrides *TypeOverrides) (Report, error) {
	report := Report{Path: path}

	file, err := os.Open(path)
	if err != nil {
		return report, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return report, fmt.Errorf("failed to stat file: %w", err)
	}
	report.Size = info.Size()
	report.FormattedSize = formatSize(report.Size)

	header := make([]byte, headerSize)
	n, err := io.ReadFull(file, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return report, fmt.Errorf("failed to read file header: %w", err)
	}
	header = header[:n]

	report.MIMEType = detectMIME(path, header, overrides)
	report.Encoding = detectEncoding(header)

	if !digests.any() {
		return report, nil
	}

	var shaSum, md5Sum, blakeSum hash.Hash
	var writers []io.Writer
	if digests.SHA256 {
		shaSum = sha256.New()
		writers = append(writers, shaSum)
	}
	if digests.MD5 {
		md5Sum = md5.New()
		writers = append(writers, md5Sum)
	}
	if digests.BLAKE2b {
		blakeSum, _ = blake2b.New256(nil)
		writers = append(writers, blakeSum)
	}

	// Hash the header bytes already read, then stream the rest in chunks so
	// memory stays bounded for large files.
	sink := io.MultiWriter(writers...)
	_, _ = sink.Write(header)
	if _, err := io.Copy(sink, file); err != nil {
		return report, fmt.Errorf("failed to read file for checksums: %w", err)
	}

	if shaSum != nil {
		report.SHA256 = hex.EncodeToString(shaSum.Sum(nil))
	}
	if md5Sum != nil {
		report.MD5 = hex.EncodeToString(md5Sum.Sum(nil))
	}
	if blakeSum != nil {
		report.BLAKE2b = hex.EncodeToString(blakeSum.Sum(nil))
	}

	return report, nil
}

// detectMIME sniffs the MIME type from the header bytes. When sniffing can
// do no better than application/octet-stream, the extension override map
// gets a chance to name the type.
func detectMIME(path string, header []byte, overrides *TypeOverrides) string {
	mt := mimetype.Detect(header)
	if mt.Is("application/octet-stream") {
		if mime, ok := overrides.Lookup(path); ok {
			return mime
		}
	}
	return mt.String()
}

// detectEncoding guesses the text encoding of the header bytes. Detection
// failures (and empty files) are reported as "unknown" rather than errors.
func detectEncoding(header []byte) string {
	if len(header) == 0 {
		return "unknown"
	}
	result, err := chardet.NewTextDetector().DetectBest(header)
	if err != nil {
		return "unknown"
	}
	return result.Charset
}

const (
	sizeKB int64 = 1 << 10
	sizeMB       = 1024 * sizeKB
	sizeGB       = 1024 * sizeMB
	sizeTB       = 1024 * sizeGB
	sizePB       = 1024 * sizeTB
	sizeEB       = 1024 * sizePB
)

// formatSize renders a byte count in the report's fixed human-readable form:
// plain bytes below 1 KB, then two-decimal binary units.
func formatSize(bytes int64) string {
	switch {
	case bytes < sizeKB:
		return fmt.Sprintf("%d bytes", bytes)
	case bytes < sizeMB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(sizeKB))
	case bytes < sizeGB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(sizeMB))
	case bytes < sizeTB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(sizeGB))
	case bytes < sizePB:
		return fmt.Sprintf("%.2f TB", float64(bytes)/float64(sizeTB))
	case bytes < sizeEB:
		return fmt.Sprintf("%.2f PB", float64(bytes)/float64(sizePB))
	default:
		return fmt.Sprintf("%.2f EB", float64(bytes)/float64(sizeEB))
	}
}
