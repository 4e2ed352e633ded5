package object

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	"github.com/gorewood/gitobj/internal/git"
	"github.com/gorewood/gitobj/internal/store"
)

// fakeStore serves canned answers and counts calls per method. A method
// listed in failures returns errFake that many times before succeeding.
type fakeStore struct {
	mu       sync.Mutex
	calls    map[string]int
	failures map[string]int

	refs     map[string]string
	types    map[string]string
	sizes    map[string]int64
	contents map[string][]byte
	commits  map[string]*store.CommitRecord
	tags     map[string]*store.TagRecord // by name and by hash
	tagRefs  map[string]string
	trees    map[string]*store.TreeEntries
	log      []*store.CommitRecord
}

var errFake = errors.New("fake store failure")

func newFakeStore() *fakeStore {
	return &fakeStore{
		calls:    map[string]int{},
		failures: map[string]int{},
		refs:     map[string]string{},
		types:    map[string]string{},
		sizes:    map[string]int64{},
		contents: map[string][]byte{},
		commits:  map[string]*store.CommitRecord{},
		tags:     map[string]*store.TagRecord{},
		tagRefs:  map[string]string{},
		trees:    map[string]*store.TreeEntries{},
	}
}

func (f *fakeStore) called(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[method]++
	if f.failures[method] > 0 {
		f.failures[method]--
		return errFake
	}
	return nil
}

func (f *fakeStore) count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeStore) fail(method string, times int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[method] = times
}

func (f *fakeStore) ResolveRef(_ context.Context, ref string) (string, error) {
	if err := f.called("ResolveRef"); err != nil {
		return "", err
	}
	sha, ok := f.refs[ref]
	if !ok {
		return "", &git.NotFoundError{Ref: ref}
	}
	return sha, nil
}

func (f *fakeStore) ObjectType(_ context.Context, ref string) (string, error) {
	if err := f.called("ObjectType"); err != nil {
		return "", err
	}
	typ, ok := f.types[ref]
	if !ok {
		return "", &git.NotFoundError{Ref: ref}
	}
	return typ, nil
}

func (f *fakeStore) ObjectSize(_ context.Context, ref string) (int64, error) {
	if err := f.called("ObjectSize"); err != nil {
		return 0, err
	}
	return f.sizes[ref], nil
}

func (f *fakeStore) ObjectContents(_ context.Context, ref string) ([]byte, error) {
	if err := f.called("ObjectContents"); err != nil {
		return nil, err
	}
	return f.contents[ref], nil
}

func (f *fakeStore) StreamObjectContents(_ context.Context, ref string, consumer func(io.Reader) error) error {
	if err := f.called("StreamObjectContents"); err != nil {
		return err
	}
	return consumer(bytes.NewReader(f.contents[ref]))
}

func (f *fakeStore) ReadCommit(_ context.Context, ref string) (*store.CommitRecord, error) {
	if err := f.called("ReadCommit"); err != nil {
		return nil, err
	}
	record, ok := f.commits[ref]
	if !ok {
		return nil, &git.NotFoundError{Ref: ref}
	}
	return record, nil
}

func (f *fakeStore) ReadAnnotatedTag(_ context.Context, name string) (*store.TagRecord, error) {
	if err := f.called("ReadAnnotatedTag"); err != nil {
		return nil, err
	}
	record, ok := f.tags[name]
	if !ok {
		return nil, &git.NotFoundError{Ref: name}
	}
	return record, nil
}

func (f *fakeStore) ReadTagObject(_ context.Context, ref string) (*store.TagRecord, error) {
	if err := f.called("ReadTagObject"); err != nil {
		return nil, err
	}
	record, ok := f.tags[ref]
	if !ok {
		return nil, &git.NotFoundError{Ref: ref}
	}
	return record, nil
}

func (f *fakeStore) TagTargetHash(_ context.Context, name string) (string, error) {
	if err := f.called("TagTargetHash"); err != nil {
		return "", err
	}
	return f.tagRefs[name], nil
}

func (f *fakeStore) ListTreeEntries(_ context.Context, ref string) (*store.TreeEntries, error) {
	if err := f.called("ListTreeEntries"); err != nil {
		return nil, err
	}
	entries, ok := f.trees[ref]
	if !ok {
		return nil, &git.NotFoundError{Ref: ref}
	}
	return entries, nil
}

func (f *fakeStore) FullTree(_ context.Context, ref string) ([]string, error) {
	if err := f.called("FullTree"); err != nil {
		return nil, err
	}
	return []string{"100644 blob aaaa\t" + ref + "/file"}, nil
}

func (f *fakeStore) TreeDepth(_ context.Context, _ string) (int, error) {
	if err := f.called("TreeDepth"); err != nil {
		return 0, err
	}
	return 1, nil
}

func (f *fakeStore) Diff(_ context.Context, from, to string) (string, error) {
	if err := f.called("Diff"); err != nil {
		return "", err
	}
	return from + ".." + to, nil
}

func (f *fakeStore) DiffStat(_ context.Context, from, _ string) (store.DiffStat, error) {
	if err := f.called("DiffStat"); err != nil {
		return store.DiffStat{}, err
	}
	if from == "" {
		return store.DiffStat{Files: 1, Insertions: 1}, nil
	}
	return store.DiffStat{Files: 2, Insertions: 3, Deletions: 1}, nil
}

func (f *fakeStore) Log(_ context.Context, _ string, count int) ([]*store.CommitRecord, error) {
	if err := f.called("Log"); err != nil {
		return nil, err
	}
	if count < len(f.log) {
		return f.log[:count], nil
	}
	return f.log, nil
}

func (f *fakeStore) Grep(_ context.Context, ref, pattern, _ string, _ store.GrepOptions) (map[string][]store.GrepMatch, error) {
	if err := f.called("Grep"); err != nil {
		return nil, err
	}
	return map[string][]store.GrepMatch{ref: {{Line: 1, Text: pattern}}}, nil
}

func (f *fakeStore) Archive(_ context.Context, ref string, w io.Writer, _ store.ArchiveOptions) error {
	if err := f.called("Archive"); err != nil {
		return err
	}
	_, err := io.WriteString(w, "archive of "+ref)
	return err
}

func (f *fakeStore) NameRev(_ context.Context, sha string) (string, error) {
	if err := f.called("NameRev"); err != nil {
		return "", err
	}
	return "name-of-" + sha, nil
}
