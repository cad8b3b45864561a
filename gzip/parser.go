package gzip

import (
	"encoding/binary"
	"hash/crc32"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/chronos-tachyon/rgz/bits"
)

// Option configures a Parser.
type Option func(*Parser)

// WithRFC1952Flags makes the Parser accept any combination of the FLG bits
// defined by RFC 1952 and parse the optional fields they announce.  By
// default only FLG == FlagName is accepted.  Reserved bits are always
// rejected.
func WithRFC1952Flags() Option {
	return func(p *Parser) { p.rfc1952Flags = true }
}

// WithAnyOS makes the Parser accept any OS value.  By default only OSUnix is
// accepted.
func WithAnyOS() Option {
	return func(p *Parser) { p.anyOS = true }
}

// WithLogger sets the logger used for debug output and warnings.
func WithLogger(log logrus.FieldLogger) Option {
	return func(p *Parser) { p.log = log }
}

// Parser consumes a gzip member through a forward-only byte cursor.
type Parser struct {
	data []byte
	pos  int
	log  logrus.FieldLogger

	rfc1952Flags bool
	anyOS        bool
}

// NewParser returns a Parser positioned at the start of data.
func NewParser(data []byte, opts ...Option) *Parser {
	p := &Parser{
		data: data,
		log:  logrus.WithField("pkg", "gzip"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Offset returns the index of the next unread byte.
func (p *Parser) Offset() int {
	return p.pos
}

// Header reads and validates the gzip member header, failing fast on the
// first field that does not match.
func (p *Parser) Header() (*Header, error) {
	llog := p.log.WithFields(logrus.Fields{
		"method": "Header",
	})

	start := p.pos
	h := &Header{}
	var err error

	if h.ID1, err = p.readByte("ID1"); err != nil {
		return nil, err
	}
	if h.ID1 != gzipID1 {
		return nil, errors.Wrapf(ErrInvalidMagic, "ID1 is %#02x, expected %#02x", h.ID1, gzipID1)
	}

	if h.ID2, err = p.readByte("ID2"); err != nil {
		return nil, err
	}
	if h.ID2 != gzipID2 {
		return nil, errors.Wrapf(ErrInvalidMagic, "ID2 is %#02x, expected %#02x", h.ID2, gzipID2)
	}

	if h.CompressionMethod, err = p.readByte("CM"); err != nil {
		return nil, err
	}
	if h.CompressionMethod != gzipDeflate {
		return nil, errors.Wrapf(ErrUnsupportedCompressionMethod, "CM is %d, only %d (deflate) is supported", h.CompressionMethod, gzipDeflate)
	}

	if h.Flags, err = p.readByte("FLG"); err != nil {
		return nil, err
	}
	if err = p.checkFlags(h.Flags); err != nil {
		return nil, err
	}

	for i := range h.ModTime {
		if h.ModTime[i], err = p.readByte("MTIME"); err != nil {
			return nil, err
		}
	}

	if h.ExtraFlags, err = p.readByte("XFL"); err != nil {
		return nil, err
	}
	if h.ExtraFlags != 0 {
		llog.Warnf("ignoring non-zero XFL %#02x", h.ExtraFlags)
	}

	if h.OS, err = p.readByte("OS"); err != nil {
		return nil, err
	}
	if h.OS != OSUnix && !p.anyOS {
		return nil, errors.Wrapf(ErrUnsupportedOperatingSystem, "OS is %d, only %d (Unix) is supported", h.OS, OSUnix)
	}

	llog.Debugf("fixed header ok: cm=%d flg=%#02x os=%d", h.CompressionMethod, h.Flags, h.OS)

	if h.HasFlag(FlagExtra) {
		if h.Extra, err = p.readExtra(); err != nil {
			return nil, err
		}
	}

	if h.HasFlag(FlagName) {
		if h.Name, err = p.readStringZ("original filename"); err != nil {
			return nil, err
		}
		if !utf8.Valid(h.Name) {
			return nil, errors.Wrapf(ErrInvalidFilenameEncoding, "%q", h.Name)
		}
		llog.Debugf("original filename: %q", h.Name)
	}

	if h.HasFlag(FlagComment) {
		if h.Comment, err = p.readStringZ("comment"); err != nil {
			return nil, err
		}
	}

	if h.HasFlag(FlagHeaderCRC) {
		computed := uint16(crc32.ChecksumIEEE(p.data[start:p.pos]))
		lo, err := p.readByte("header CRC16")
		if err != nil {
			return nil, err
		}
		hi, err := p.readByte("header CRC16")
		if err != nil {
			return nil, err
		}
		h.HeaderCRC16 = uint16(lo) | uint16(hi)<<8
		if h.HeaderCRC16 != computed {
			return nil, errors.Wrapf(ErrHeaderChecksum, "header value %#04x, computed value %#04x", h.HeaderCRC16, computed)
		}
	}

	return h, nil
}

// BlockHeader reads the next byte and decodes the DEFLATE block header held
// in its three low-order bits.  See DecodeBlockHeader.
func (p *Parser) BlockHeader() (BlockHeader, error) {
	b, err := p.readByte("block header")
	if err != nil {
		return BlockHeader{}, err
	}

	bh, err := DecodeBlockHeader(b)
	if err != nil {
		return bh, errors.Wrapf(err, "block at offset %d", p.pos-1)
	}

	p.log.WithFields(logrus.Fields{
		"method": "BlockHeader",
	}).Debugf("block header: final=%v type=%v", bh.Final, bh.Type)

	return bh, nil
}

func (p *Parser) checkFlags(flg byte) error {
	if p.rfc1952Flags {
		if flg&flagReserved != 0 {
			return errors.Wrapf(ErrUnsupportedFlags, "reserved FLG bits %#02x are set", flg&flagReserved)
		}
		return nil
	}
	if flg != FlagName {
		return errors.Wrapf(ErrUnsupportedFlags, "FLG is %#02x, only %#02x (original filename) is supported", flg, FlagName)
	}
	return nil
}

func (p *Parser) readByte(field string) (byte, error) {
	if p.pos >= len(p.data) {
		return 0, errors.Wrapf(ErrTruncatedHeader, "missing %s at offset %d", field, p.pos)
	}
	b := p.data[p.pos]
	p.pos++
	return b, nil
}

// readStringZ reads bytes up to and including a NUL terminator and returns
// them without the terminator.
func (p *Parser) readStringZ(field string) ([]byte, error) {
	start := p.pos
	for p.pos < len(p.data) {
		b := p.data[p.pos]
		p.pos++
		if b == 0 {
			out := make([]byte, p.pos-1-start)
			copy(out, p.data[start:p.pos-1])
			return out, nil
		}
	}
	return nil, errors.Wrapf(ErrTruncatedHeader, "unterminated %s at offset %d", field, start)
}

func (p *Parser) readExtra() ([]byte, error) {
	if len(p.data)-p.pos < 2 {
		start := p.pos
		p.pos = len(p.data)
		return nil, errors.Wrapf(ErrTruncatedHeader, "missing XLEN at offset %d", start)
	}
	xlen := int(binary.LittleEndian.Uint16(p.data[p.pos:]))
	p.pos += 2

	if len(p.data)-p.pos < xlen {
		start := p.pos
		p.pos = len(p.data)
		return nil, errors.Wrapf(ErrTruncatedHeader, "extra field at offset %d needs %d bytes, %d left", start, xlen, len(p.data)-start)
	}
	out := make([]byte, xlen)
	copy(out, p.data[p.pos:p.pos+xlen])
	p.pos += xlen
	return out, nil
}

// Member is a parsed gzip member up to its first block header.
type Member struct {
	Header *Header
	Block  BlockHeader

	// Offset is the index of the byte holding the block header.
	Offset int

	data []byte
}

// Parse reads the member header and first block header from data.
func Parse(data []byte, opts ...Option) (*Member, error) {
	p := NewParser(data, opts...)

	h, err := p.Header()
	if err != nil {
		return nil, errors.Wrap(err, "reading member header")
	}

	offset := p.Offset()
	bh, err := p.BlockHeader()
	if err != nil {
		return nil, errors.Wrap(err, "reading block header")
	}

	return &Member{
		Header: h,
		Block:  bh,
		Offset: offset,
		data:   data,
	}, nil
}

// PayloadBits returns every bit of the member following BFINAL and BTYPE, in
// DEFLATE bit order.  Huffman codes in the block read front first from this
// sequence, so it can be passed to huffman.Node.Decode directly.  The
// trailer is included; locating the end of the block is up to the caller.
func (m *Member) PayloadBits() bits.Sequence {
	return bits.FromDeflate(m.data[m.Offset:], 3)
}
