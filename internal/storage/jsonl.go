// Package storage persists publications. The JSONL file is the source of
// truth; the SQLite database is an index rebuilt from it.
package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/publication"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (4MB per line).
// Publications with many contributors run well past the scanner default.
const MaxJSONLLineCapacity = 4 * 1024 * 1024

// ReadAll reads all publications from a JSONL file.
func ReadAll(path string) ([]publication.Publication, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Missing file is an empty store
		}
		return nil, fmt.Errorf("opening publications file: %w", err)
	}
	defer f.Close()

	var pubs []publication.Publication
	scanner := bufio.NewScanner(f)

	buf := make([]byte, 64*1024)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var pub publication.Publication
		if err := json.Unmarshal(line, &pub); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		pubs = append(pubs, pub)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading publications file: %w", err)
	}

	return pubs, nil
}

// Append adds a publication to the end of a JSONL file.
func Append(path string, pub publication.Publication) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening publications file for append: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(pub)
	if err != nil {
		return fmt.Errorf("encoding publication: %w", err)
	}
	data = append(data, '\n')

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("writing publication: %w", err)
	}
	return nil
}

// WriteAll writes all publications to a JSONL file, replacing existing
// content. The file is written to a temporary sibling and renamed so a
// failed write never truncates the store.
func WriteAll(path string, pubs []publication.Publication) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating publications file: %w", err)
	}

	w := bufio.NewWriter(f)
	for i, pub := range pubs {
		data, err := json.Marshal(pub)
		if err != nil {
			f.Close()
			os.Remove(tmp)
			return fmt.Errorf("encoding publication %d: %w", i, err)
		}
		w.Write(data)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing publications: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing publications file: %w", err)
	}

	return os.Rename(tmp, path)
}

// FindByID searches for a publication by identifier.
func FindByID(pubs []publication.Publication, id string) (int, bool) {
	for i, pub := range pubs {
		if pub.Identifier == id {
			return i, true
		}
	}
	return -1, false
}
