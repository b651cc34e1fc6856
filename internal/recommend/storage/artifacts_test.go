// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/scholarmatch/internal/recommend"
	"github.com/tomtom215/scholarmatch/internal/recommend/algorithms"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// buildModel fits a small model over one profile per author.
func buildModel(t *testing.T, corpus []recommend.AuthorRecord) *recommend.Model {
	t.Helper()

	cfg := algorithms.DefaultVectorizerConfig()
	cfg.MinDF = 1
	cfg.MaxDF = 1.0

	profiles := make([]string, len(corpus))
	for i := range corpus {
		profiles[i] = strings.Join(corpus[i].Interests, " ")
	}
	vec := algorithms.NewVectorizer(cfg)
	matrix, err := vec.Fit(profiles)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	index := algorithms.NewIndex()
	if err := index.Build(matrix); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	model, err := recommend.NewModel(corpus, vec, matrix, index)
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	model.TrainedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return model
}

func testCorpus() []recommend.AuthorRecord {
	return []recommend.AuthorRecord{
		{
			ID:             "A1",
			Name:           strPtr("Ada Lovelace"),
			Interests:      []string{"machine learning", "bioinformatics"},
			Keywords:       []string{"neural networks"},
			InterestsCount: intPtr(2),
			ArticlesCount:  intPtr(0),
			MainInterest:   strPtr("machine learning"),
			Cluster:        intPtr(0),
		},
		{
			ID:        "A2",
			Interests: []string{"protein folding"},
		},
		{
			ID:            "A3",
			Name:          strPtr("Edwin Hubble"),
			Interests:     []string{"astronomy", "cosmology"},
			ArticlesCount: intPtr(17),
		},
	}
}

func TestArtifactStore_SaveAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "model")
	store := NewArtifactStore(dir)
	ctx := context.Background()

	if store.Exists() {
		t.Fatal("Exists() = true before Save")
	}

	original := buildModel(t, testCorpus())
	manifest, err := store.Save(ctx, original)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !store.Exists() {
		t.Fatal("Exists() = false after Save")
	}

	for _, file := range []string{CorpusFile, VectorizerFile, MatrixFile, IndexFile, ManifestFile} {
		if _, err := os.Stat(filepath.Join(dir, file)); err != nil {
			t.Errorf("missing %s: %v", file, err)
		}
	}
	if len(manifest.Artifacts) != 4 || manifest.CorpusSize != 3 || manifest.ModelVersion == "" {
		t.Errorf("manifest = %+v", manifest)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.Version != manifest.ModelVersion {
		t.Errorf("Version = %q, want %q", loaded.Version, manifest.ModelVersion)
	}
	if !loaded.TrainedAt.Equal(original.TrainedAt) {
		t.Errorf("TrainedAt = %v, want %v", loaded.TrainedAt, original.TrainedAt)
	}
	if !reflect.DeepEqual(loaded.Corpus, original.Corpus) {
		t.Errorf("corpus differs:\n got %+v\nwant %+v", loaded.Corpus, original.Corpus)
	}
	// Pointers to zero values must survive the round trip.
	if loaded.Corpus[0].ArticlesCount == nil || loaded.Corpus[0].Cluster == nil {
		t.Error("zero-valued optional fields were dropped")
	}
	if loaded.Corpus[1].Name != nil {
		t.Error("absent name became present")
	}
	if !reflect.DeepEqual(loaded.Vectorizer.Vocabulary(), original.Vectorizer.Vocabulary()) {
		t.Error("vocabulary differs")
	}
	if loaded.MaxArticles() != 17 {
		t.Errorf("MaxArticles() = %d, want 17", loaded.MaxArticles())
	}

	q1, _ := original.Vectorizer.Transform("machine learning")
	q2, _ := loaded.Vectorizer.Transform("machine learning")
	n1, err := original.Index.Query(ctx, q1, 3)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	n2, err := loaded.Index.Query(ctx, q2, 3)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if !reflect.DeepEqual(n1, n2) {
		t.Errorf("neighbors differ after reload: %v vs %v", n1, n2)
	}
}

func TestArtifactStore_SaveLoadSaveIdempotent(t *testing.T) {
	ctx := context.Background()
	first := NewArtifactStore(filepath.Join(t.TempDir(), "first"))
	second := NewArtifactStore(filepath.Join(t.TempDir(), "second"))

	m1, err := first.Save(ctx, buildModel(t, testCorpus()))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := first.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	m2, err := second.Save(ctx, loaded)
	if err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	if m1.ModelVersion != m2.ModelVersion {
		t.Errorf("model version changed: %s -> %s", m1.ModelVersion, m2.ModelVersion)
	}
	for _, a := range m1.Artifacts {
		b, ok := m2.Artifact(a.Name)
		if !ok {
			t.Fatalf("artifact %s missing from second manifest", a.Name)
		}
		if a.Checksum != b.Checksum {
			t.Errorf("%s checksum changed across save/load/save", a.Name)
		}
	}
}

func TestArtifactStore_SaveReplacesExisting(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "model")
	store := NewArtifactStore(dir)
	ctx := context.Background()

	if _, err := store.Save(ctx, buildModel(t, testCorpus())); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := store.Save(ctx, buildModel(t, testCorpus()[:2])); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Size() != 2 {
		t.Errorf("Size() = %d, want 2 after replacement", loaded.Size())
	}

	entries, err := os.ReadDir(filepath.Dir(dir))
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("staging or backup directories left behind: %v", names)
	}
}

func TestArtifactStore_EmptyCorpus(t *testing.T) {
	ctx := context.Background()
	store := NewArtifactStore(filepath.Join(t.TempDir(), "model"))

	vec := algorithms.NewVectorizer(algorithms.VectorizerConfig{MinDF: 1, MaxDF: 1, NGramMin: 1, NGramMax: 1})
	if _, err := vec.Fit([]string{"genomics"}); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	matrix := &algorithms.Matrix{Dim: vec.Dim()}
	index := algorithms.NewIndex()
	if err := index.Build(matrix); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	model, err := recommend.NewModel(nil, vec, matrix, index)
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}

	if _, err := store.Save(ctx, model); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Size() != 0 {
		t.Errorf("Size() = %d, want 0", loaded.Size())
	}
}

func TestArtifactStore_FileNamesMatchEncoding(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "model")
	manifest, err := NewArtifactStore(dir).Save(context.Background(), buildModel(t, testCorpus()))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	wantEncoding := map[string]string{
		"corpus":     "json",
		"vectorizer": "gob",
		"matrix":     "gob",
		"index":      "gob",
	}
	for _, meta := range manifest.Artifacts {
		want, ok := wantEncoding[meta.Name]
		if !ok {
			t.Errorf("unexpected artifact %q", meta.Name)
			continue
		}
		if meta.Encoding != want {
			t.Errorf("%s encoding = %q, want %q", meta.Name, meta.Encoding, want)
		}
		if suffix := "." + meta.Encoding + ".gz"; !strings.HasSuffix(meta.File, suffix) {
			t.Errorf("%s file %q does not end in %q", meta.Name, meta.File, suffix)
		}
	}
}

// describedIndex reports a different index kind than the exact index it wraps.
type describedIndex struct {
	algorithms.NeighborSearcher
	state algorithms.IndexState
}

func (d describedIndex) State() algorithms.IndexState { return d.state }

func TestArtifactStore_UnsupportedIndex(t *testing.T) {
	ctx := context.Background()
	exact := buildModel(t, testCorpus())
	state := exact.Index.State()
	state.Algorithm = "hnsw"

	model, err := recommend.NewModel(exact.Corpus, exact.Vectorizer, exact.Matrix,
		describedIndex{NeighborSearcher: exact.Index, state: state})
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}

	store := NewArtifactStore(filepath.Join(t.TempDir(), "model"))
	if _, err := store.Save(ctx, model); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := store.Load(ctx)
	if !errors.Is(err, ErrUnsupportedIndex) || !errors.Is(err, recommend.ErrArtifactLoad) {
		t.Errorf("Load() error = %v, want ErrUnsupportedIndex wrapped in ErrArtifactLoad", err)
	}
	if loaded != nil {
		t.Error("Load() returned a model for an unsupported index")
	}
}

func TestArtifactStore_SaveNilModel(t *testing.T) {
	store := NewArtifactStore(filepath.Join(t.TempDir(), "model"))
	if _, err := store.Save(context.Background(), nil); !errors.Is(err, recommend.ErrModelNotLoaded) {
		t.Errorf("Save(nil) error = %v, want ErrModelNotLoaded", err)
	}
}

func TestArtifactStore_LoadFailures(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		corrupt func(t *testing.T, dir string)
		wantIs  error
	}{
		{
			name: "missing directory",
			corrupt: func(t *testing.T, dir string) {
				if err := os.RemoveAll(dir); err != nil {
					t.Fatal(err)
				}
			},
			wantIs: fs.ErrNotExist,
		},
		{
			name: "missing artifact file",
			corrupt: func(t *testing.T, dir string) {
				if err := os.Remove(filepath.Join(dir, IndexFile)); err != nil {
					t.Fatal(err)
				}
			},
			wantIs: fs.ErrNotExist,
		},
		{
			name: "artifact swapped for another",
			corrupt: func(t *testing.T, dir string) {
				copyFile(t, filepath.Join(dir, VectorizerFile), filepath.Join(dir, MatrixFile))
			},
		},
		{
			name: "truncated artifact",
			corrupt: func(t *testing.T, dir string) {
				path := filepath.Join(dir, CorpusFile)
				data, err := os.ReadFile(path)
				if err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(path, data[:len(data)/2], 0o600); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name: "unsupported format version",
			corrupt: func(t *testing.T, dir string) {
				rewriteManifest(t, dir, func(m *Manifest) { m.FormatVersion = 99 })
			},
			wantIs: ErrFormatVersion,
		},
		{
			name: "corpus from another artifact set",
			corrupt: func(t *testing.T, dir string) {
				other := filepath.Join(t.TempDir(), "other")
				manifest, err := NewArtifactStore(other).Save(ctx, buildModel(t, testCorpus()[:1]))
				if err != nil {
					t.Fatal(err)
				}
				copyFile(t, filepath.Join(other, CorpusFile), filepath.Join(dir, CorpusFile))
				corpusMeta, _ := manifest.Artifact("corpus")
				rewriteManifest(t, dir, func(m *Manifest) {
					for i := range m.Artifacts {
						if m.Artifacts[i].Name == "corpus" {
							m.Artifacts[i] = corpusMeta
						}
					}
				})
			},
			wantIs: algorithms.ErrDimensionMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "model")
			store := NewArtifactStore(dir)
			if _, err := store.Save(ctx, buildModel(t, testCorpus())); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			tt.corrupt(t, dir)

			model, err := store.Load(ctx)
			if err == nil {
				t.Fatal("Load() succeeded on a corrupted artifact set")
			}
			if model != nil {
				t.Error("Load() returned a partial model")
			}
			if !errors.Is(err, recommend.ErrArtifactLoad) {
				t.Errorf("error %v does not wrap ErrArtifactLoad", err)
			}
			var loadErr *recommend.ArtifactLoadError
			if !errors.As(err, &loadErr) || loadErr.Path == "" {
				t.Errorf("error %v is not an ArtifactLoadError with a path", err)
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("error %v does not wrap %v", err, tt.wantIs)
			}
		})
	}
}

func TestArtifactStore_LoadCancelled(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "model")
	store := NewArtifactStore(dir)
	if _, err := store.Save(context.Background(), buildModel(t, testCorpus())); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Load(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func copyFile(t *testing.T, src, dst string) {
	t.Helper()
	data, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, data, 0o600); err != nil {
		t.Fatal(err)
	}
}

func rewriteManifest(t *testing.T, dir string, modify func(*Manifest)) {
	t.Helper()
	path := filepath.Join(dir, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	modify(&m)
	if data, err = json.Marshal(&m); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
}
