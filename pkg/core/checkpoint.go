package core

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/golang/snappy"
)

// Property-store checkpointing. A checkpoint captures every attached
// object's store (full domain included) as a snappy-compressed binary blob
// so a caller can snapshot before an experiment and roll back after.
// Persistence of the blob itself is left to the caller.

const checkpointMagic = uint32(0x504e4d43) // "PNMC"

// Checkpoint serializes the property stores of the full domain and every
// attached object.
// Blob format: [magic:4][checksum:4][compressed payload]
// Payload format, per object: [name][np:4][nt:4][numeric entries][label entries]
func (p *Project) Checkpoint() ([]byte, error) {
	p.refreshFullDomain()

	var payload bytes.Buffer
	objects := append([]*Base{p.full}, p.objects...)
	if err := binary.Write(&payload, binary.BigEndian, uint32(len(objects))); err != nil {
		return nil, err
	}
	for _, obj := range objects {
		if err := encodeStore(&payload, obj.name, obj.store); err != nil {
			return nil, err
		}
	}

	compressed := snappy.Encode(nil, payload.Bytes())

	var out bytes.Buffer
	binary.Write(&out, binary.BigEndian, checkpointMagic)
	binary.Write(&out, binary.BigEndian, crc32.ChecksumIEEE(compressed))
	out.Write(compressed)
	return out.Bytes(), nil
}

// Restore replaces the property stores of this project's objects with the
// checkpointed contents. Objects are matched by name; a checkpointed object
// missing from the roster fails, as does a store whose element counts no
// longer match the object.
func (p *Project) Restore(blob []byte) error {
	if len(blob) < 8 {
		return &DataError{Op: "Restore", Cause: fmt.Errorf("%w: truncated header", ErrCorruptCheckpoint)}
	}
	if binary.BigEndian.Uint32(blob[0:4]) != checkpointMagic {
		return &DataError{Op: "Restore", Cause: fmt.Errorf("%w: bad magic", ErrCorruptCheckpoint)}
	}
	checksum := binary.BigEndian.Uint32(blob[4:8])
	compressed := blob[8:]
	if crc32.ChecksumIEEE(compressed) != checksum {
		return &DataError{Op: "Restore", Cause: fmt.Errorf("%w: checksum mismatch", ErrCorruptCheckpoint)}
	}

	payload, err := snappy.Decode(nil, compressed)
	if err != nil {
		return &DataError{Op: "Restore", Cause: fmt.Errorf("%w: %v", ErrCorruptCheckpoint, err)}
	}

	r := bytes.NewReader(payload)
	var count uint32
	if err := binary.Read(r, binary.BigEndian, &count); err != nil {
		return &DataError{Op: "Restore", Cause: fmt.Errorf("%w: %v", ErrCorruptCheckpoint, err)}
	}

	p.refreshFullDomain()
	// Decode everything before touching the project so a corrupt blob
	// cannot leave a half-restored roster.
	type decoded struct {
		obj   *Base
		store *PropertyStore
	}
	var pending []decoded
	for i := uint32(0); i < count; i++ {
		name, store, err := decodeStore(r)
		if err != nil {
			return err
		}
		obj, ok := p.FindObject(name)
		if !ok {
			return &DataError{Op: "Restore", Object: name, Cause: fmt.Errorf("object not attached to project")}
		}
		if store.np != obj.store.np || store.nt != obj.store.nt {
			return ShapeMismatchError("Restore", name, "", obj.store.np, store.np)
		}
		store.owner = name
		pending = append(pending, decoded{obj: obj, store: store})
	}

	for _, d := range pending {
		d.obj.store = d.store
	}
	return nil
}

func encodeStore(w *bytes.Buffer, name string, s *PropertyStore) error {
	writeString(w, name)
	binary.Write(w, binary.BigEndian, uint32(s.np))
	binary.Write(w, binary.BigEndian, uint32(s.nt))

	keys := s.Keys()
	binary.Write(w, binary.BigEndian, uint32(len(keys)))
	for _, key := range keys {
		writeString(w, key)
		values := s.data[key]
		binary.Write(w, binary.BigEndian, uint32(len(values)))
		for _, v := range values {
			binary.Write(w, binary.BigEndian, v)
		}
	}

	labelKeys := s.LabelKeys()
	binary.Write(w, binary.BigEndian, uint32(len(labelKeys)))
	for _, key := range labelKeys {
		writeString(w, key)
		mask := s.labels[key]
		binary.Write(w, binary.BigEndian, uint32(len(mask)))
		for _, b := range mask {
			if b {
				w.WriteByte(1)
			} else {
				w.WriteByte(0)
			}
		}
	}
	return nil
}

func decodeStore(r *bytes.Reader) (string, *PropertyStore, error) {
	corrupt := func(err error) (string, *PropertyStore, error) {
		return "", nil, &DataError{Op: "Restore", Cause: fmt.Errorf("%w: %v", ErrCorruptCheckpoint, err)}
	}

	name, err := readString(r)
	if err != nil {
		return corrupt(err)
	}
	var np, nt uint32
	if err := binary.Read(r, binary.BigEndian, &np); err != nil {
		return corrupt(err)
	}
	if err := binary.Read(r, binary.BigEndian, &nt); err != nil {
		return corrupt(err)
	}

	store := NewPropertyStore(name, int(np), int(nt))

	var numKeys uint32
	if err := binary.Read(r, binary.BigEndian, &numKeys); err != nil {
		return corrupt(err)
	}
	for i := uint32(0); i < numKeys; i++ {
		key, err := readString(r)
		if err != nil {
			return corrupt(err)
		}
		var n uint32
		if err := binary.Read(r, binary.BigEndian, &n); err != nil {
			return corrupt(err)
		}
		if int64(n)*8 > int64(r.Len()) {
			return corrupt(fmt.Errorf("array length %d exceeds remaining payload", n))
		}
		values := make([]float64, n)
		for j := range values {
			if err := binary.Read(r, binary.BigEndian, &values[j]); err != nil {
				return corrupt(err)
			}
		}
		store.data[key] = values
	}

	var numLabels uint32
	if err := binary.Read(r, binary.BigEndian, &numLabels); err != nil {
		return corrupt(err)
	}
	for i := uint32(0); i < numLabels; i++ {
		key, err := readString(r)
		if err != nil {
			return corrupt(err)
		}
		var n uint32
		if err := binary.Read(r, binary.BigEndian, &n); err != nil {
			return corrupt(err)
		}
		if int64(n) > int64(r.Len()) {
			return corrupt(fmt.Errorf("mask length %d exceeds remaining payload", n))
		}
		mask := make([]bool, n)
		for j := range mask {
			b, err := r.ReadByte()
			if err != nil {
				return corrupt(err)
			}
			mask[j] = b == 1
		}
		store.labels[key] = mask
	}

	return name, store, nil
}

func writeString(w *bytes.Buffer, s string) {
	binary.Write(w, binary.BigEndian, uint32(len(s)))
	w.WriteString(s)
}

func readString(r *bytes.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return "", err
	}
	if int64(n) > int64(r.Len()) {
		return "", fmt.Errorf("string length %d exceeds remaining payload", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
