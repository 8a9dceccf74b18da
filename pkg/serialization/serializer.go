// Package serialization provides the codec and compression pipeline used
// for run trace records. Traces are written often and read rarely, so the
// default pairs msgpack encoding with zstd compression.
package serialization

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec encodes values to bytes and back.
type Codec interface {
	Encode(v interface{}) ([]byte, error)
	Decode(data []byte, v interface{}) error
	Name() string
}

// CompressionType selects the compression applied after encoding.
type CompressionType string

const (
	CompressionNone CompressionType = "none"
	CompressionGzip CompressionType = "gzip"
	CompressionZstd CompressionType = "zstd"
)

// Config holds serializer settings.
type Config struct {
	Codec       Codec
	Compression CompressionType
}

// Serializer runs the encode-then-compress pipeline and its inverse.
type Serializer struct {
	config Config
}

// NewSerializer creates a serializer with the given configuration.
func NewSerializer(config Config) *Serializer {
	return &Serializer{config: config}
}

// Default creates the msgpack+zstd serializer used by the trace recorder.
func Default() *Serializer {
	return NewSerializer(Config{Codec: NewMsgPackCodec(), Compression: CompressionZstd})
}

// Serialize encodes and compresses a value.
func (s *Serializer) Serialize(v interface{}) ([]byte, error) {
	data, err := s.config.Codec.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("codec encoding failed: %w", err)
	}
	data, err = s.compress(data)
	if err != nil {
		return nil, fmt.Errorf("compression failed: %w", err)
	}
	return data, nil
}

// Deserialize decompresses and decodes data into v.
func (s *Serializer) Deserialize(data []byte, v interface{}) error {
	data, err := s.decompress(data)
	if err != nil {
		return fmt.Errorf("decompression failed: %w", err)
	}
	if err := s.config.Codec.Decode(data, v); err != nil {
		return fmt.Errorf("codec decoding failed: %w", err)
	}
	return nil
}

func (s *Serializer) compress(data []byte) ([]byte, error) {
	switch s.config.Compression {
	case CompressionGzip:
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	default:
		return data, nil
	}
}

func (s *Serializer) decompress(data []byte) ([]byte, error) {
	switch s.config.Compression {
	case CompressionGzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(data, nil)
	default:
		return data, nil
	}
}

// JSONCodec implements JSON serialization, useful for debugging traces.
type JSONCodec struct{}

func (c *JSONCodec) Encode(v interface{}) ([]byte, error)    { return json.Marshal(v) }
func (c *JSONCodec) Decode(data []byte, v interface{}) error { return json.Unmarshal(data, v) }
func (c *JSONCodec) Name() string                            { return "json" }

// MsgPackCodec implements MessagePack serialization.
type MsgPackCodec struct{}

func (c *MsgPackCodec) Encode(v interface{}) ([]byte, error)    { return msgpack.Marshal(v) }
func (c *MsgPackCodec) Decode(data []byte, v interface{}) error { return msgpack.Unmarshal(data, v) }
func (c *MsgPackCodec) Name() string                            { return "msgpack" }

// NewJSONCodec creates a new JSON codec.
func NewJSONCodec() Codec { return &JSONCodec{} }

// NewMsgPackCodec creates a new MessagePack codec.
func NewMsgPackCodec() Codec { return &MsgPackCodec{} }
