package tfidf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/kailas-cloud/resumatch/internal/domain"
)

// ErrInvalidArtifact signals a model artifact that cannot be decoded.
var ErrInvalidArtifact = errors.New("invalid model artifact")

var artifactMagic = []byte("RMTF")

const artifactVersion byte = 1

// MarshalBinary encodes the fitted vocabulary and IDF weights.
// Layout: magic, version, uvarint term count, then per term a uvarint length,
// the term bytes and the little-endian IEEE-754 bits of its IDF.
func (m *Model) MarshalBinary() ([]byte, error) {
	s := m.current.Load()
	if s == nil {
		return nil, fmt.Errorf("marshal: %w", domain.ErrModelNotReady)
	}

	var buf bytes.Buffer
	buf.Write(artifactMagic)
	buf.WriteByte(artifactVersion)
	buf.Write(binary.AppendUvarint(nil, uint64(len(s.terms))))

	var f [8]byte
	for i, t := range s.terms {
		buf.Write(binary.AppendUvarint(nil, uint64(len(t))))
		buf.WriteString(t)
		binary.LittleEndian.PutUint64(f[:], math.Float64bits(s.idf[i]))
		buf.Write(f[:])
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary replaces the model state with a decoded artifact.
func (m *Model) UnmarshalBinary(data []byte) error {
	s, err := decode(data)
	if err != nil {
		return err
	}
	m.current.Store(s)
	return nil
}

// Save writes the artifact to w.
func (m *Model) Save(w io.Writer) error {
	data, err := m.MarshalBinary()
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}

// Load reads an artifact from r and fully replaces the model state.
func (m *Model) Load(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}
	return m.UnmarshalBinary(data)
}

func decode(data []byte) (*state, error) {
	r := bytes.NewReader(data)

	head := make([]byte, len(artifactMagic)+1)
	if _, err := io.ReadFull(r, head); err != nil || !bytes.Equal(head[:len(artifactMagic)], artifactMagic) {
		return nil, fmt.Errorf("%w: bad header", ErrInvalidArtifact)
	}
	if v := head[len(artifactMagic)]; v != artifactVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidArtifact, v)
	}

	n, err := binary.ReadUvarint(r)
	if err != nil || n == 0 || n > uint64(len(data)) {
		return nil, fmt.Errorf("%w: bad term count", ErrInvalidArtifact)
	}

	s := &state{
		vocab: make(map[string]int, n),
		terms: make([]string, 0, n),
		idf:   make([]float64, 0, n),
	}
	var f [8]byte
	for i := range int(n) {
		l, err := binary.ReadUvarint(r)
		if err != nil || l == 0 || l > uint64(r.Len()) {
			return nil, fmt.Errorf("%w: term %d: bad length", ErrInvalidArtifact, i)
		}
		term := make([]byte, l)
		if _, err := io.ReadFull(r, term); err != nil {
			return nil, fmt.Errorf("%w: term %d: %w", ErrInvalidArtifact, i, err)
		}
		if _, err := io.ReadFull(r, f[:]); err != nil {
			return nil, fmt.Errorf("%w: term %d idf: %w", ErrInvalidArtifact, i, err)
		}
		idf := math.Float64frombits(binary.LittleEndian.Uint64(f[:]))
		if math.IsNaN(idf) || math.IsInf(idf, 0) || idf <= 0 {
			return nil, fmt.Errorf("%w: term %d: idf %v", ErrInvalidArtifact, i, idf)
		}

		t := string(term)
		if _, dup := s.vocab[t]; dup {
			return nil, fmt.Errorf("%w: duplicate term %q", ErrInvalidArtifact, t)
		}
		s.vocab[t] = i
		s.terms = append(s.terms, t)
		s.idf = append(s.idf, idf)
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrInvalidArtifact, r.Len())
	}
	return s, nil
}
