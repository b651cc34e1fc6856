// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/scholarmatch/internal/recommend"
	"github.com/tomtom215/scholarmatch/internal/recommend/algorithms"
)

// FormatVersion is bumped whenever the on-disk layout changes.
const FormatVersion = 2

// Artifact file names inside an artifact set directory.
const (
	CorpusFile     = "corpus.json.gz"
	VectorizerFile = "vectorizer.gob.gz"
	MatrixFile     = "matrix.gob.gz"
	IndexFile      = "index.gob.gz"
	ManifestFile   = "manifest.json"
)

// Payload encodings recorded in ArtifactMetadata.
const (
	encodingGob  = "gob"
	encodingJSON = "json"
)

// ErrFormatVersion is returned when an artifact set was written by an
// incompatible format version.
var ErrFormatVersion = errors.New("unsupported artifact format version")

// ErrUnsupportedIndex is returned when the stored index is not one Load can
// rebuild from the matrix.
var ErrUnsupportedIndex = errors.New("unsupported index type")

// ArtifactMetadata describes one stored artifact.
type ArtifactMetadata struct {
	// Name is the artifact name (e.g., "corpus", "index").
	Name string `json:"name"`

	// File is the file name inside the artifact set directory.
	File string `json:"file"`

	// FormatVersion is the layout version the file was written with.
	FormatVersion int `json:"format_version"`

	// Encoding is the payload encoding before compression.
	Encoding string `json:"encoding"`

	// CreatedAt is when the artifact was written.
	CreatedAt time.Time `json:"created_at"`

	// Checksum is the SHA-256 checksum of the uncompressed payload.
	Checksum string `json:"checksum"`

	// SizeBytes is the compressed payload size in bytes.
	SizeBytes int64 `json:"size_bytes"`

	// Records is the number of rows (authors, vectors or terms).
	Records int `json:"records"`

	// Dimension is the vocabulary size the artifact agrees with.
	Dimension int `json:"dimension"`
}

// Manifest lists the artifacts of one set and the model they form.
type Manifest struct {
	ModelVersion   string             `json:"model_version"`
	FormatVersion  int                `json:"format_version"`
	TrainedAt      time.Time          `json:"trained_at"`
	SavedAt        time.Time          `json:"saved_at"`
	CorpusSize     int                `json:"corpus_size"`
	VocabularySize int                `json:"vocabulary_size"`
	Artifacts      []ArtifactMetadata `json:"artifacts"`
}

// Artifact returns the metadata entry for name.
func (m *Manifest) Artifact(name string) (ArtifactMetadata, bool) {
	for _, a := range m.Artifacts {
		if a.Name == name {
			return a, true
		}
	}
	return ArtifactMetadata{}, false
}

// storedFile is the on-disk format for artifact files.
type storedFile struct {
	Metadata       ArtifactMetadata
	CompressedData []byte
}

// ArtifactStore persists a model artifact set in a single directory.
type ArtifactStore struct {
	dir string
	mu  sync.RWMutex
}

// NewArtifactStore creates a store for the artifact set at dir. The
// directory is created on the first Save.
func NewArtifactStore(dir string) *ArtifactStore {
	return &ArtifactStore{dir: filepath.Clean(dir)}
}

// Dir returns the artifact set directory.
func (s *ArtifactStore) Dir() string {
	return s.dir
}

// Exists reports whether a manifest is present.
func (s *ArtifactStore) Exists() bool {
	_, err := os.Stat(filepath.Join(s.dir, ManifestFile))
	return err == nil
}

// Save writes all four artifacts and the manifest to a temporary sibling
// directory and swaps it into place, so readers never observe a partial set.
func (s *ArtifactStore) Save(ctx context.Context, model *recommend.Model) (*Manifest, error) {
	if model == nil || model.Vectorizer == nil || model.Matrix == nil || model.Index == nil {
		return nil, fmt.Errorf("save artifacts: %w", recommend.ErrModelNotLoaded)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	parent := filepath.Dir(s.dir)
	if err := os.MkdirAll(parent, 0o750); err != nil { //nolint:gosec // 0750 is acceptable for model storage
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	tmp, err := os.MkdirTemp(parent, filepath.Base(s.dir)+".tmp-")
	if err != nil {
		return nil, fmt.Errorf("create staging directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmp) }() //nolint:errcheck // no-op after a successful swap

	now := time.Now().UTC()
	version := model.Version
	if version == "" {
		version = newModelVersion(now)
	}
	trainedAt := model.TrainedAt
	if trainedAt.IsZero() {
		trainedAt = now
	}
	dim := model.Vectorizer.Dim()

	corpus, err := json.Marshal(model.Corpus)
	if err != nil {
		return nil, fmt.Errorf("encode corpus: %w", err)
	}

	writes := []struct {
		name, file, encoding string
		payload              interface{}
		raw                  []byte
		records              int
	}{
		{name: "corpus", file: CorpusFile, encoding: encodingJSON, raw: corpus, records: len(model.Corpus)},
		{name: "vectorizer", file: VectorizerFile, encoding: encodingGob, payload: model.Vectorizer.State(), records: dim},
		{name: "matrix", file: MatrixFile, encoding: encodingGob, payload: *model.Matrix, records: model.Matrix.Len()},
		{name: "index", file: IndexFile, encoding: encodingGob, payload: model.Index.State(), records: model.Index.Len()},
	}

	manifest := &Manifest{
		ModelVersion:   version,
		FormatVersion:  FormatVersion,
		TrainedAt:      trainedAt,
		SavedAt:        now,
		CorpusSize:     len(model.Corpus),
		VocabularySize: dim,
	}
	for _, w := range writes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw := w.raw
		if raw == nil {
			if raw, err = encodeGob(w.payload); err != nil {
				return nil, fmt.Errorf("encode %s: %w", w.name, err)
			}
		}
		meta := ArtifactMetadata{
			Name:          w.name,
			File:          w.file,
			FormatVersion: FormatVersion,
			Encoding:      w.encoding,
			CreatedAt:     now,
			Records:       w.records,
			Dimension:     dim,
		}
		if meta, err = writeStoredFile(filepath.Join(tmp, w.file), raw, meta); err != nil {
			return nil, fmt.Errorf("write %s: %w", w.name, err)
		}
		manifest.Artifacts = append(manifest.Artifacts, meta)
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(tmp, ManifestFile), data, 0o600); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}

	if err := swapDir(tmp, s.dir); err != nil {
		return nil, fmt.Errorf("swap artifact directory: %w", err)
	}
	return manifest, nil
}

// ReadManifest reads the manifest of the stored artifact set.
func (s *ArtifactStore) ReadManifest() (*Manifest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readManifest()
}

func (s *ArtifactStore) readManifest() (*Manifest, error) {
	path := filepath.Join(s.dir, ManifestFile)
	data, err := os.ReadFile(path) //nolint:gosec // path is built from the configured model directory
	if err != nil {
		return nil, recommend.NewArtifactLoadError(path, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, recommend.NewArtifactLoadError(path, fmt.Errorf("decode manifest: %w", err))
	}
	if m.FormatVersion != FormatVersion {
		return nil, recommend.NewArtifactLoadError(path,
			fmt.Errorf("%w: %d (want %d)", ErrFormatVersion, m.FormatVersion, FormatVersion))
	}
	return &m, nil
}

// Load reads and cross-checks the four artifacts. Any failure returns an
// *recommend.ArtifactLoadError and no model.
func (s *ArtifactStore) Load(ctx context.Context) (*recommend.Model, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	manifest, err := s.readManifest()
	if err != nil {
		return nil, err
	}

	var corpus []recommend.AuthorRecord
	if err := s.loadArtifact(ctx, manifest, "corpus", CorpusFile, &corpus); err != nil {
		return nil, err
	}
	var vecState algorithms.VectorizerState
	if err := s.loadArtifact(ctx, manifest, "vectorizer", VectorizerFile, &vecState); err != nil {
		return nil, err
	}
	var matrix algorithms.Matrix
	if err := s.loadArtifact(ctx, manifest, "matrix", MatrixFile, &matrix); err != nil {
		return nil, err
	}
	var indexState algorithms.IndexState
	if err := s.loadArtifact(ctx, manifest, "index", IndexFile, &indexState); err != nil {
		return nil, err
	}

	vec, err := algorithms.NewVectorizerFromState(vecState)
	if err != nil {
		return nil, recommend.NewArtifactLoadError(filepath.Join(s.dir, VectorizerFile), err)
	}

	indexPath := filepath.Join(s.dir, IndexFile)
	if indexState.Metric != algorithms.MetricCosine || indexState.Algorithm != algorithms.AlgorithmBrute {
		return nil, recommend.NewArtifactLoadError(indexPath,
			fmt.Errorf("%w: %s/%s", ErrUnsupportedIndex, indexState.Algorithm, indexState.Metric))
	}
	index := algorithms.NewIndex()
	if err := index.Build(&matrix); err != nil {
		return nil, recommend.NewArtifactLoadError(filepath.Join(s.dir, MatrixFile), err)
	}
	if built := index.State(); built != indexState {
		return nil, recommend.NewArtifactLoadError(indexPath,
			fmt.Errorf("%w: stored index %+v, rebuilt %+v", algorithms.ErrDimensionMismatch, indexState, built))
	}

	model, err := recommend.NewModel(corpus, vec, &matrix, index)
	if err != nil {
		return nil, recommend.NewArtifactLoadError(s.dir, err)
	}
	model.Version = manifest.ModelVersion
	model.TrainedAt = manifest.TrainedAt
	return model, nil
}

// loadArtifact reads one stored file, verifies it against the manifest and
// decodes its payload into target.
func (s *ArtifactStore) loadArtifact(ctx context.Context, manifest *Manifest, name, file string, target interface{}) error {
	path := filepath.Join(s.dir, file)
	if err := ctx.Err(); err != nil {
		return recommend.NewArtifactLoadError(path, err)
	}

	want, ok := manifest.Artifact(name)
	if !ok {
		return recommend.NewArtifactLoadError(path, fmt.Errorf("%s missing from manifest", name))
	}

	meta, raw, err := readStoredFile(path)
	if err != nil {
		return recommend.NewArtifactLoadError(path, err)
	}
	if meta.Checksum != want.Checksum {
		return recommend.NewArtifactLoadError(path,
			fmt.Errorf("checksum mismatch with manifest: expected %s, got %s", want.Checksum, meta.Checksum))
	}

	switch meta.Encoding {
	case encodingJSON:
		err = json.Unmarshal(raw, target)
	case encodingGob:
		err = gob.NewDecoder(bytes.NewReader(raw)).Decode(target)
	default:
		err = fmt.Errorf("unknown encoding %q", meta.Encoding)
	}
	if err != nil {
		return recommend.NewArtifactLoadError(path, fmt.Errorf("decode %s: %w", name, err))
	}
	return nil
}

func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeStoredFile compresses raw, stamps its checksum and size into meta and
// writes the envelope to path.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func writeStoredFile(path string, raw []byte, meta ArtifactMetadata) (ArtifactMetadata, error) {
	hash := sha256.Sum256(raw)
	meta.Checksum = hex.EncodeToString(hash[:])

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw); err != nil {
		return meta, fmt.Errorf("compress: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return meta, fmt.Errorf("finalize compression: %w", err)
	}
	meta.SizeBytes = int64(compressed.Len())

	f, err := os.Create(path) //nolint:gosec // path is inside the staging directory
	if err != nil {
		return meta, fmt.Errorf("create file: %w", err)
	}
	if err := gob.NewEncoder(f).Encode(storedFile{Metadata: meta, CompressedData: compressed.Bytes()}); err != nil {
		_ = f.Close() //nolint:errcheck // write error takes precedence
		return meta, fmt.Errorf("encode file: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close() //nolint:errcheck // sync error takes precedence
		return meta, fmt.Errorf("sync file: %w", err)
	}
	return meta, f.Close()
}

// readStoredFile reads the envelope at path, decompresses the payload and
// verifies its checksum.
func readStoredFile(path string) (ArtifactMetadata, []byte, error) {
	f, err := os.Open(path) //nolint:gosec // path is built from the configured model directory
	if err != nil {
		return ArtifactMetadata{}, nil, err
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // error on close after read is not actionable

	var sf storedFile
	if err := gob.NewDecoder(f).Decode(&sf); err != nil {
		return ArtifactMetadata{}, nil, fmt.Errorf("read artifact file: %w", err)
	}
	if sf.Metadata.FormatVersion != FormatVersion {
		return sf.Metadata, nil, fmt.Errorf("%w: %d", ErrFormatVersion, sf.Metadata.FormatVersion)
	}

	gzr, err := gzip.NewReader(bytes.NewReader(sf.CompressedData))
	if err != nil {
		return sf.Metadata, nil, fmt.Errorf("decompress artifact: %w", err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // error on gzip close after read is not actionable

	raw, err := io.ReadAll(gzr)
	if err != nil {
		return sf.Metadata, nil, fmt.Errorf("read decompressed data: %w", err)
	}

	hash := sha256.Sum256(raw)
	if checksum := hex.EncodeToString(hash[:]); checksum != sf.Metadata.Checksum {
		return sf.Metadata, nil, fmt.Errorf("checksum mismatch: expected %s, got %s", sf.Metadata.Checksum, checksum)
	}
	return sf.Metadata, raw, nil
}

// swapDir replaces dest with src, keeping the previous set until the rename
// succeeds.
func swapDir(src, dest string) error {
	backup := dest + ".bak"
	_ = os.RemoveAll(backup) //nolint:errcheck // stale backup from an interrupted save

	if _, err := os.Stat(dest); err == nil {
		if err := os.Rename(dest, backup); err != nil {
			return err
		}
	}
	if err := os.Rename(src, dest); err != nil {
		if _, statErr := os.Stat(backup); statErr == nil {
			_ = os.Rename(backup, dest) //nolint:errcheck // best-effort rollback
		}
		return err
	}
	_ = os.RemoveAll(backup) //nolint:errcheck // best-effort cleanup
	return nil
}

// newModelVersion names an artifact set by its save time plus a short
// random suffix.
func newModelVersion(t time.Time) string {
	return t.Format("20060102T150405Z") + "-" + uuid.New().String()[:8]
}

// Register gob types for serialization.
//
//nolint:gochecknoinits // gob.Register must be called in init for type registration
func init() {
	gob.Register(ArtifactMetadata{})
	gob.Register(storedFile{})
	gob.Register(algorithms.VectorizerState{})
	gob.Register(algorithms.Matrix{})
	gob.Register(algorithms.IndexState{})
}
