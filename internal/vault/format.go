package vault

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/zombocoder/vaultura/internal/crypto"
)

// On-disk layout:
//
//	magic(4) | version(4, LE) | salt(32) | kdf params(12, 3x LE u32) | nonce(24) | ciphertext
//
// The header is authenticated only indirectly: tampering with salt, params
// or nonce changes the derived key or AEAD inputs and fails the tag check.
var fileMagic = [4]byte{'V', 'L', 'T', 'R'}

const (
	// FormatVersion only increases through an explicit migration step.
	FormatVersion uint32 = 1

	kdfParamsSize = 12
	headerSize    = 4 + 4 + crypto.SaltSize + kdfParamsSize + crypto.NonceSize

	// A valid ciphertext is never shorter than the 16-byte Poly1305 tag.
	minFileSize = headerSize + 16
)

var (
	ErrBadMagic           = errors.New("vault: not a vault file")
	ErrUnsupportedVersion = errors.New("vault: unsupported format version")
	ErrTruncated          = errors.New("vault: truncated vault file")
)

// Header is the unencrypted prefix of a vault file. Salt and KDF params are
// fixed at vault creation; the nonce is replaced on every save.
type Header struct {
	Version uint32
	Salt    [crypto.SaltSize]byte
	KDF     crypto.KDFParams
	Nonce   [crypto.NonceSize]byte
}

// EncodeFile lays out the header followed by the ciphertext.
func EncodeFile(h Header, ciphertext []byte) []byte {
	buf := make([]byte, 0, headerSize+len(ciphertext))
	buf = append(buf, fileMagic[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, h.Version)
	buf = append(buf, h.Salt[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, h.KDF.Memory)
	buf = binary.LittleEndian.AppendUint32(buf, h.KDF.Time)
	buf = binary.LittleEndian.AppendUint32(buf, h.KDF.Parallelism)
	buf = append(buf, h.Nonce[:]...)
	buf = append(buf, ciphertext...)
	return buf
}

// DecodeFile validates and splits a vault file into header and ciphertext.
// Length is checked before any slicing; unknown future versions are
// rejected, never best-effort parsed.
func DecodeFile(data []byte) (Header, []byte, error) {
	h, err := decodeHeader(data)
	if err != nil {
		return Header{}, nil, err
	}
	if len(data) < minFileSize {
		return Header{}, nil, ErrTruncated
	}
	ciphertext := append([]byte(nil), data[headerSize:]...)
	return h, ciphertext, nil
}

// DecodeHeader reads just the unencrypted prefix, used to recover the salt
// and KDF params for key derivation before decryption.
func DecodeHeader(data []byte) (Header, error) {
	return decodeHeader(data)
}

func decodeHeader(data []byte) (Header, error) {
	if len(data) < 8 {
		return Header{}, ErrTruncated
	}
	if !bytes.Equal(data[:4], fileMagic[:]) {
		return Header{}, ErrBadMagic
	}
	version := binary.LittleEndian.Uint32(data[4:8])
	if version != FormatVersion {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	if len(data) < headerSize {
		return Header{}, ErrTruncated
	}

	h := Header{Version: version}
	off := 8
	copy(h.Salt[:], data[off:off+crypto.SaltSize])
	off += crypto.SaltSize
	h.KDF.Memory = binary.LittleEndian.Uint32(data[off : off+4])
	h.KDF.Time = binary.LittleEndian.Uint32(data[off+4 : off+8])
	h.KDF.Parallelism = binary.LittleEndian.Uint32(data[off+8 : off+12])
	off += kdfParamsSize
	copy(h.Nonce[:], data[off:off+crypto.NonceSize])
	return h, nil
}
